package corpus

import (
	"postagger.com/hpt/types"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

const sampleCoNLLU = `# sent_id = 1
# text = The dog runs.
1	The	the	DET	DT	_	2	det	_	_
2	dog	dog	NOUN	NN	_	3	nsubj	_	_
3	runs	run	VERB	VBZ	_	0	root	_	_
4	.	.	PUNCT	.	_	3	punct	_	_

1-2	It's	_	_	_	_	_	_	_	_
1	It	it	PRON	PRP	_	2	nsubj	_	_
2	's	be	AUX	VBZ	_	0	root	_	_
2.1	_	_	VERB	_	_	_	_	_	_
3	fine	fine	ADJ	JJ	_	2	xcomp	_	_
`

func TestReadCoNLLU(t *testing.T) {
	sents, err := ReadCoNLLU(strings.NewReader(sampleCoNLLU))
	require.NoError(t, err)
	require.Len(t, sents, 2)

	require.Len(t, sents[0], 4)
	require.Equal(t, "The", sents[0][0].Form)
	require.Equal(t, "DET", sents[0][0].UPos)

	// multiword range and empty node rows are dropped
	require.Len(t, sents[1], 3)
	require.Equal(t, "It", sents[1][0].Form)
	require.Equal(t, "fine", sents[1][2].Form)
}

func TestReadCoNLLUMalformedRow(t *testing.T) {
	_, err := ReadCoNLLU(strings.NewReader("1\tonly\tthree\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 10")
}

func TestReadCoNLLUEmptyInput(t *testing.T) {
	sents, err := ReadCoNLLU(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, sents)
}

func TestPreprocess(t *testing.T) {
	raw, err := ReadCoNLLU(strings.NewReader(sampleCoNLLU))
	require.NoError(t, err)

	sents := Preprocess(raw)
	require.Len(t, sents, 2)

	first := sents[0]
	require.True(t, first.IsBounded())
	require.Equal(t, types.StartToken(), first[0])
	require.Equal(t, types.EndToken(), first[len(first)-1])

	// forms are lowercased once, here
	require.Equal(t, "the", first[1].Word)
	require.Equal(t, types.Tag("DET"), first[1].Tag)
	require.Len(t, first.Interior(), 4)
}

func TestPreprocessEmptyCorpus(t *testing.T) {
	require.Empty(t, Preprocess(nil))
}
