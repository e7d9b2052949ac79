package hmm

import "postagger.com/hpt/types"

// ViterbiDecoder finds the exact maximum-a-posteriori tag sequence under
// the bigram model by dynamic programming. Backpointers are recorded
// during the forward pass and the path is recovered by walking them from
// the best final state, so the returned sequence provably maximizes the
// joint log-probability. Ties fall to the lexicographically smaller tag.
// O(n * |tags|^2) time, O(n * |tags|) space.
type ViterbiDecoder struct {
	model *Model
}

func (d ViterbiDecoder) Tag(sent types.Sentence) types.Sentence {
	if !sent.IsBounded() {
		return copySentence(sent)
	}

	interior := sent.Interior()
	n := len(interior)
	tagset := d.model.tags
	if n == 0 || len(tagset) == 0 {
		return predicted(sent, make([]types.Tag, n))
	}

	scores := make([][]float64, n)
	backptr := make([][]int, n)
	for i := range scores {
		scores[i] = make([]float64, len(tagset))
		backptr[i] = make([]int, len(tagset))
	}

	for t, tag := range tagset {
		scores[0][t] = d.model.TransitionLogProb(types.TagStart, tag) +
			d.model.EmissionLogProb(tag, interior[0].Word)
		backptr[0][t] = -1
	}

	for i := 1; i < n; i++ {
		word := interior[i].Word
		for t, tag := range tagset {
			best := MinLogProb
			bestPrev := 0
			for p, prevTag := range tagset {
				score := scores[i-1][p] + d.model.TransitionLogProb(prevTag, tag)
				if p == 0 || score > best {
					best = score
					bestPrev = p
				}
			}
			scores[i][t] = best + d.model.EmissionLogProb(tag, word)
			backptr[i][t] = bestPrev
		}
	}

	// fold the transition into END to pick the best final state
	bestLast := 0
	bestScore := MinLogProb
	for p, prevTag := range tagset {
		score := scores[n-1][p] + d.model.TransitionLogProb(prevTag, types.TagEnd)
		if p == 0 || score > bestScore {
			bestScore = score
			bestLast = p
		}
	}

	tags := make([]types.Tag, n)
	for i, t := n-1, bestLast; i >= 0; i-- {
		tags[i] = tagset[t]
		t = backptr[i][t]
	}

	return predicted(sent, tags)
}

// PathLogProb scores a full candidate tag assignment for the interior of
// sent under the model, boundary transitions included.
func (d ViterbiDecoder) PathLogProb(sent types.Sentence, tags []types.Tag) float64 {
	interior := sent.Interior()
	total := 0.0
	prev := types.TagStart
	for i, token := range interior {
		total += d.model.TransitionLogProb(prev, tags[i])
		total += d.model.EmissionLogProb(tags[i], token.Word)
		prev = tags[i]
	}
	return total + d.model.TransitionLogProb(prev, types.TagEnd)
}
