package types

// Tag is a part-of-speech category label.
type Tag string

const (
	// TagStart and TagEnd are sentence boundary markers. They only ever
	// appear on the first and last token of a sentence and are never
	// predicted for interior tokens.
	TagStart Tag = "START"
	TagEnd   Tag = "END"
)

const (
	StartWord = "<s>"
	EndWord   = "</s>"
)

func (t Tag) IsBoundary() bool {
	return t == TagStart || t == TagEnd
}
