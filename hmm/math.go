package hmm

import "math"

// MinLogProb is the sentinel standing in for log(0). All decoding
// arithmetic stays in log space; nothing below ever renormalizes out.
const MinLogProb = -math.MaxFloat64

// LogSumExp sums probabilities given their logs, guarding overflow with
// the max-subtraction trick. An empty input yields the sentinel, as does
// an input whose maximum is already the sentinel (all terms are zero).
func LogSumExp(vals []float64) float64 {
	if len(vals) == 0 {
		return MinLogProb
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	if m == MinLogProb {
		return MinLogProb
	}
	sum := 0.0
	for _, v := range vals {
		sum += math.Exp(v - m)
	}
	return m + math.Log(sum)
}
