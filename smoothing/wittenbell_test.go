package smoothing

import (
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestWittenBellSeenProbabilities(t *testing.T) {
	fd := NewFreqDistFrom([]string{"the", "the", "the", "dog", "runs"})
	wb := NewWittenBell(fd, 1e5)

	// N=5, T=3: seen mass is c/(N+T)
	require.InDelta(t, 3.0/8.0, wb.Prob("the"), 1e-12)
	require.InDelta(t, 1.0/8.0, wb.Prob("dog"), 1e-12)
}

func TestWittenBellUnseenMass(t *testing.T) {
	fd := NewFreqDistFrom([]string{"a", "b", "b"})
	bins := 100.0
	wb := NewWittenBell(fd, bins)

	// N=3, T=2, Z=98: each unseen event gets T/(Z*(N+T))
	want := 2.0 / (98.0 * 5.0)
	require.InDelta(t, want, wb.Prob("zebra"), 1e-12)
	require.True(t, wb.Prob("zebra") > 0)

	// total mass over seen events plus reserved unseen mass is 1
	seen := wb.Prob("a") + wb.Prob("b")
	unseenTotal := 98.0 * wb.Prob("zebra")
	require.InDelta(t, 1.0, seen+unseenTotal, 1e-12)
}

func TestWittenBellLogProbFinite(t *testing.T) {
	fd := NewFreqDistFrom([]string{"x"})
	wb := NewWittenBell(fd, 1e5)

	lp := wb.LogProb("never-seen")
	require.False(t, math.IsInf(lp, 0))
	require.False(t, math.IsNaN(lp))
	require.True(t, lp < 0)
}

func TestWittenBellEmptyDistribution(t *testing.T) {
	wb := NewWittenBell(NewFreqDist(), 50)

	// no observations at all: uniform over the event space
	require.InDelta(t, 1.0/50.0, wb.Prob("anything"), 1e-12)
	require.False(t, math.IsInf(wb.LogProb("anything"), 0))
}

func TestWittenBellBinsClamped(t *testing.T) {
	fd := NewFreqDistFrom([]string{"a", "b", "c"})
	wb := NewWittenBell(fd, 2) // fewer bins than distinct events

	// bins clamps to T+1, so Z=1 and the whole reserved mass lands in
	// the single unseen bin: T/(N+T) = 3/6
	require.InDelta(t, 0.5, wb.Prob("unseen"), 1e-12)
	require.InDelta(t, 1.0/6.0, wb.Prob("a"), 1e-12)
}
