package hmm

import (
	"postagger.com/hpt/types"
	"fmt"
)

// Decoder predicts a tag sequence for an observed sentence. Only the
// word fields of the input are consulted; any gold tags it carries are
// ignored. The result is freshly allocated and the input is never
// mutated. Boundary tokens are copied through verbatim.
type Decoder interface {
	Tag(sent types.Sentence) types.Sentence
}

func NewDecoder(algorithm string, model *Model) (Decoder, error) {
	switch algorithm {
	case types.AlgorithmEager:
		return NewEager(model), nil
	case types.AlgorithmViterbi:
		return NewViterbi(model), nil
	case types.AlgorithmForwardBackward:
		return NewForwardBackward(model), nil
	}
	return nil, fmt.Errorf("hmm: unknown algorithm %q", algorithm)
}

func NewEager(model *Model) EagerDecoder {
	return EagerDecoder{model: model}
}

func NewViterbi(model *Model) ViterbiDecoder {
	return ViterbiDecoder{model: model}
}

func NewForwardBackward(model *Model) ForwardBackwardDecoder {
	return ForwardBackwardDecoder{model: model}
}

// copySentence is the fallback for degenerate inputs missing boundary
// markers; decoders hand those back untouched rather than crash.
func copySentence(sent types.Sentence) types.Sentence {
	return append(types.Sentence(nil), sent...)
}

// predicted assembles the output sentence: boundaries from the input,
// interior words paired with the predicted tags.
func predicted(sent types.Sentence, tags []types.Tag) types.Sentence {
	pred := make(types.Sentence, 0, len(sent))
	pred = append(pred, sent[0])
	for i, token := range sent.Interior() {
		pred = append(pred, types.Token{Word: token.Word, Tag: tags[i]})
	}
	pred = append(pred, sent[len(sent)-1])
	return pred
}
