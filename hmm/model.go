package hmm

import (
	"postagger.com/hpt/smoothing"
	"postagger.com/hpt/types"
	"sort"
)

// DefaultBins caps the assumed event space of the smoothed distributions.
const DefaultBins = 1e5

type Params struct {
	Bins float64 `json:"bins"`
}

// Model holds the emission distributions P(word|tag) and the shared
// transition distribution P(tag|prev) fitted on a preprocessed training
// corpus. It is immutable after construction, so any number of decoders
// may read it concurrently.
type Model struct {
	tags        []types.Tag
	emissions   map[types.Tag]smoothing.Distribution
	transitions smoothing.Distribution
	fallback    smoothing.Distribution
}

func NewModel(sents []types.Sentence, params Params) *Model {
	bins := params.Bins
	if bins <= 0 {
		bins = DefaultBins
	}

	wordsByTag := make(map[types.Tag]*smoothing.FreqDist)
	bigrams := smoothing.NewFreqDist()

	for _, sent := range sents {
		for i, token := range sent {
			if !token.Tag.IsBoundary() {
				fd, ok := wordsByTag[token.Tag]
				if !ok {
					fd = smoothing.NewFreqDist()
					wordsByTag[token.Tag] = fd
				}
				fd.Add(token.Word)
			}
			if i > 0 {
				// boundary bigrams (START,t) and (t,END) are real transitions
				bigrams.Add(transitionEvent(sent[i-1].Tag, token.Tag))
			}
		}
	}

	tags := make([]types.Tag, 0, len(wordsByTag))
	emissions := make(map[types.Tag]smoothing.Distribution, len(wordsByTag))
	for tag, fd := range wordsByTag {
		tags = append(tags, tag)
		emissions[tag] = smoothing.NewWittenBell(fd, bins)
	}
	// decoders iterate tags in this order, which fixes tie-breaks:
	// of equally scored tags the lexicographically smallest wins
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	return &Model{
		tags:        tags,
		emissions:   emissions,
		transitions: smoothing.NewWittenBell(bigrams, bins),
		fallback:    smoothing.NewWittenBell(smoothing.NewFreqDist(), bins),
	}
}

// Tags returns a copy of the training tag inventory in lexicographic
// order. Boundary tags are excluded; they are transition endpoints,
// never emission candidates. A copy keeps the model's tie-break order
// safe from caller mutation.
func (m *Model) Tags() []types.Tag {
	return append([]types.Tag(nil), m.tags...)
}

func (m *Model) EmissionLogProb(tag types.Tag, word string) float64 {
	dist, ok := m.emissions[tag]
	if !ok {
		return m.fallback.LogProb(word)
	}
	return dist.LogProb(word)
}

func (m *Model) TransitionLogProb(prev, next types.Tag) float64 {
	return m.transitions.LogProb(transitionEvent(prev, next))
}

// transitionEvent encodes a tag bigram as a single smoothing event. NUL
// never occurs in a tag name, so the encoding cannot collide.
func transitionEvent(prev, next types.Tag) string {
	return string(prev) + "\x00" + string(next)
}
