package hmm

import "postagger.com/hpt/types"

// EagerDecoder commits to the locally best tag at each position, left to
// right, never reconsidering past choices. Cheap, but long-range errors
// propagate since there is no backtracking.
type EagerDecoder struct {
	model *Model
}

func (d EagerDecoder) Tag(sent types.Sentence) types.Sentence {
	if !sent.IsBounded() {
		return copySentence(sent)
	}

	interior := sent.Interior()
	tagset := d.model.tags
	tags := make([]types.Tag, len(interior))

	prev := types.TagStart
	for i, token := range interior {
		bestScore := MinLogProb
		var bestTag types.Tag

		for _, tag := range tagset {
			score := d.model.EmissionLogProb(tag, token.Word) + d.model.TransitionLogProb(prev, tag)
			if bestTag == "" || score > bestScore {
				bestScore = score
				bestTag = tag
			}
		}

		tags[i] = bestTag
		prev = bestTag
	}

	return predicted(sent, tags)
}
