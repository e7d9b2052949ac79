package hmm

import "postagger.com/hpt/types"

// ForwardBackwardDecoder picks, at every position, the individually most
// probable tag given the whole observed sequence, by combining forward
// and backward log-probability tables. The normalizing sequence
// probability cancels when comparing tags at one position, so decoding
// never computes it; SequenceLogProb exposes it for reporting.
type ForwardBackwardDecoder struct {
	model *Model
}

func (d ForwardBackwardDecoder) Tag(sent types.Sentence) types.Sentence {
	if !sent.IsBounded() {
		return copySentence(sent)
	}

	interior := sent.Interior()
	n := len(interior)
	tagset := d.model.tags
	if n == 0 || len(tagset) == 0 {
		return predicted(sent, make([]types.Tag, n))
	}

	forward, backward := d.tables(interior)

	tags := make([]types.Tag, n)
	for i := 0; i < n; i++ {
		best := MinLogProb
		bestTag := 0
		for t := range tagset {
			posterior := forward[i][t] + backward[i][t]
			if t == 0 || posterior > best {
				best = posterior
				bestTag = t
			}
		}
		tags[i] = tagset[bestTag]
	}

	return predicted(sent, tags)
}

// tables computes both recursions over the interior observations.
// forward[i][t] aggregates all paths from START emitting observations
// 0..i and ending in t; backward[i][t] aggregates all paths from t at
// position i to END emitting observations i+1..n-1. The boundary
// transitions are folded into the first forward and last backward
// columns, mirroring the Viterbi initialization and termination.
func (d ForwardBackwardDecoder) tables(interior []types.Token) (forward, backward [][]float64) {
	tagset := d.model.tags
	n := len(interior)

	forward = make([][]float64, n)
	backward = make([][]float64, n)
	for i := range forward {
		forward[i] = make([]float64, len(tagset))
		backward[i] = make([]float64, len(tagset))
	}

	for t, tag := range tagset {
		forward[0][t] = d.model.TransitionLogProb(types.TagStart, tag) +
			d.model.EmissionLogProb(tag, interior[0].Word)
		backward[n-1][t] = d.model.TransitionLogProb(tag, types.TagEnd)
	}

	inner := make([]float64, len(tagset))
	for i := 1; i < n; i++ {
		word := interior[i].Word
		for t, tag := range tagset {
			for p, prevTag := range tagset {
				inner[p] = forward[i-1][p] + d.model.TransitionLogProb(prevTag, tag)
			}
			forward[i][t] = LogSumExp(inner) + d.model.EmissionLogProb(tag, word)
		}
	}

	for i := n - 2; i >= 0; i-- {
		word := interior[i+1].Word
		for t, tag := range tagset {
			for nt, nextTag := range tagset {
				inner[nt] = backward[i+1][nt] +
					d.model.TransitionLogProb(tag, nextTag) +
					d.model.EmissionLogProb(nextTag, word)
			}
			backward[i][t] = LogSumExp(inner)
		}
	}

	return forward, backward
}

// SequenceLogProb computes the total log-probability of the observed
// sentence twice, by closing the forward table into END and the backward
// table out of START. The two agree up to floating-point error.
func (d ForwardBackwardDecoder) SequenceLogProb(sent types.Sentence) (fromForward, fromBackward float64) {
	interior := sent.Interior()
	n := len(interior)
	tagset := d.model.tags
	if n == 0 || len(tagset) == 0 {
		return MinLogProb, MinLogProb
	}

	forward, backward := d.tables(interior)

	inner := make([]float64, len(tagset))
	for t, tag := range tagset {
		inner[t] = forward[n-1][t] + d.model.TransitionLogProb(tag, types.TagEnd)
	}
	fromForward = LogSumExp(inner)

	for t, tag := range tagset {
		inner[t] = backward[0][t] +
			d.model.TransitionLogProb(types.TagStart, tag) +
			d.model.EmissionLogProb(tag, interior[0].Word)
	}
	fromBackward = LogSumExp(inner)

	return fromForward, fromBackward
}
