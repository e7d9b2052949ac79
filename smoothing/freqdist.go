package smoothing

// FreqDist counts occurrences of discrete string events.
type FreqDist struct {
	counts map[string]int
	total  int
}

func NewFreqDist() *FreqDist {
	return &FreqDist{counts: make(map[string]int)}
}

func NewFreqDistFrom(events []string) *FreqDist {
	fd := NewFreqDist()
	for _, event := range events {
		fd.Add(event)
	}
	return fd
}

func (fd *FreqDist) Add(event string) {
	fd.counts[event]++
	fd.total++
}

func (fd *FreqDist) Count(event string) int {
	return fd.counts[event]
}

// N is the total number of observations.
func (fd *FreqDist) N() int {
	return fd.total
}

// B is the number of distinct observed events.
func (fd *FreqDist) B() int {
	return len(fd.counts)
}
