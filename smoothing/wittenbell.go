package smoothing

import (
	"math"
)

// Distribution yields probabilities for discrete events, seen or unseen.
// Implementations must return a finite log-probability for every event.
type Distribution interface {
	Prob(event string) float64
	LogProb(event string) float64
}

// WittenBell smooths an observed frequency distribution by reserving
// probability mass for unseen events in proportion to the number of
// distinct events seen so far:
//
//	P(e) = c(e) / (N + T)        if c(e) > 0
//	P(e) = T / (Z * (N + T))     otherwise
//
// where N is the total observation count, T the number of distinct seen
// events and Z = bins - T the number of event types assumed unseen. The
// bins parameter caps the size of the whole event space.
type WittenBell struct {
	freq        *FreqDist
	unseenProb  float64
	seenDivisor float64
}

func NewWittenBell(freq *FreqDist, bins float64) *WittenBell {
	t := float64(freq.B())
	n := float64(freq.N())
	if bins <= t {
		bins = t + 1
	}
	z := bins - t

	unseen := 1.0 / z
	if n > 0 {
		unseen = t / (z * (n + t))
	}

	return &WittenBell{
		freq:        freq,
		unseenProb:  unseen,
		seenDivisor: n + t,
	}
}

func (wb *WittenBell) Prob(event string) float64 {
	c := wb.freq.Count(event)
	if c == 0 {
		return wb.unseenProb
	}
	return float64(c) / wb.seenDivisor
}

func (wb *WittenBell) LogProb(event string) float64 {
	return math.Log(wb.Prob(event))
}
