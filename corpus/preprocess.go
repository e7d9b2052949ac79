package corpus

import "postagger.com/hpt/types"

// Preprocess turns parsed CoNLL-U sentences into the boundary-marked
// internal representation: every form is lowercased, (<s>, START) is
// prepended and (</s>, END) appended. Pure transform; sentence and token
// order are preserved.
func Preprocess(sentences [][]Row) []types.Sentence {
	sents := make([]types.Sentence, 0, len(sentences))

	for _, sentence := range sentences {
		sent := make(types.Sentence, 0, len(sentence)+2)
		sent = append(sent, types.StartToken())
		for _, row := range sentence {
			sent = append(sent, types.NewToken(row.Form, types.Tag(row.UPos)))
		}
		sent = append(sent, types.EndToken())
		sents = append(sents, sent)
	}

	return sents
}
