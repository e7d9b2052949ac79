package eval

import (
	"postagger.com/hpt/types"
	"errors"
	"fmt"
)

// ErrNoTokens signals an empty test set: accuracy is undefined rather
// than NaN.
var ErrNoTokens = errors.New("eval: no token positions to score")

// Accuracy compares predicted against gold tags position by position
// over parallel sentence sequences. Boundary tokens count; they always
// match by construction. A length mismatch between the two sides is a
// contract violation and surfaces as an error.
func Accuracy(predicted, gold []types.Sentence) (float64, error) {
	if len(predicted) != len(gold) {
		return 0, fmt.Errorf("eval: %d predicted sentences vs %d gold", len(predicted), len(gold))
	}

	correct := 0
	total := 0
	for i := range gold {
		pred := predicted[i]
		label := gold[i]
		if len(pred) != len(label) {
			return 0, fmt.Errorf("eval: sentence %d: %d predicted tokens vs %d gold", i, len(pred), len(label))
		}
		for j := range label {
			if pred[j].Tag == label[j].Tag {
				correct++
			}
			total++
		}
	}

	if total == 0 {
		return 0, ErrNoTokens
	}
	return float64(correct) / float64(total), nil
}
