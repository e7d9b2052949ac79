package corpus

import (
	"fmt"
	"path"
)

// Treebank locates the train/test splits of a Universal Dependencies
// treebank for one language inside a local directory.
type Treebank struct {
	Dir  string
	Lang string
}

func (tb Treebank) TrainPath() string {
	return path.Join(tb.Dir, fmt.Sprintf("%s-ud-train.conllu", tb.Lang))
}

func (tb Treebank) TestPath() string {
	return path.Join(tb.Dir, fmt.Sprintf("%s-ud-test.conllu", tb.Lang))
}

// Load reads both splits.
func (tb Treebank) Load() (train [][]Row, test [][]Row, err error) {
	train, err = ReadCoNLLUFile(tb.TrainPath())
	if err != nil {
		return nil, nil, fmt.Errorf("treebank %s: train split: %w", tb.Lang, err)
	}
	test, err = ReadCoNLLUFile(tb.TestPath())
	if err != nil {
		return nil, nil, fmt.Errorf("treebank %s: test split: %w", tb.Lang, err)
	}
	return train, test, nil
}
