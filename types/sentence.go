package types

import "strings"

// Token is a single observation: a lowercased surface form and its tag.
type Token struct {
	Word string
	Tag  Tag
}

func NewToken(form string, tag Tag) Token {
	return Token{Word: strings.ToLower(form), Tag: tag}
}

// Sentence is an ordered token sequence bracketed by boundary markers:
// the first token is always (<s>, START) and the last (</s>, END).
type Sentence []Token

func StartToken() Token {
	return Token{Word: StartWord, Tag: TagStart}
}

func EndToken() Token {
	return Token{Word: EndWord, Tag: TagEnd}
}

// IsBounded reports whether the sentence carries both boundary markers.
func (sent Sentence) IsBounded() bool {
	if len(sent) < 2 {
		return false
	}
	return sent[0].Tag == TagStart && sent[len(sent)-1].Tag == TagEnd
}

// Interior returns the tokens between the boundary markers.
func (sent Sentence) Interior() Sentence {
	if len(sent) < 2 {
		return nil
	}
	return sent[1 : len(sent)-1]
}

func (sent Sentence) Words() []string {
	words := make([]string, len(sent))
	for i, token := range sent {
		words[i] = token.Word
	}
	return words
}

func (sent Sentence) Tags() []Tag {
	tags := make([]Tag, len(sent))
	for i, token := range sent {
		tags[i] = token.Tag
	}
	return tags
}
