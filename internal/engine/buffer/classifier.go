package buffer

import (
	"strings"
	"unicode"
)

// CharKind classifies a character for word motion.
type CharKind uint8

const (
	CharWhitespace CharKind = iota
	CharPunctuation
	CharWord
)

// String returns the kind name.
func (k CharKind) String() string {
	switch k {
	case CharWhitespace:
		return "whitespace"
	case CharPunctuation:
		return "punctuation"
	default:
		return "word"
	}
}

// CharClassifier decides which characters belong to words.
type CharClassifier struct {
	wordChars         string
	ignorePunctuation bool
}

// NewCharClassifier creates a classifier that treats letters, digits,
// underscore, and the characters in wordChars as word characters.
func NewCharClassifier(wordChars string) CharClassifier {
	return CharClassifier{wordChars: wordChars}
}

// IgnorePunctuation returns a classifier that treats punctuation as word
// characters when ignore is true.
func (c CharClassifier) IgnorePunctuation(ignore bool) CharClassifier {
	c.ignorePunctuation = ignore
	return c
}

// Kind returns the kind of r.
func (c CharClassifier) Kind(r rune) CharKind {
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return CharWord
	}
	if c.wordChars != "" && strings.ContainsRune(c.wordChars, r) {
		return CharWord
	}
	if unicode.IsSpace(r) {
		return CharWhitespace
	}
	if c.ignorePunctuation {
		return CharWord
	}
	return CharPunctuation
}

// IsWord returns true if r is a word character.
func (c CharClassifier) IsWord(r rune) bool {
	return c.Kind(r) == CharWord
}

// IsWhitespace returns true if r is whitespace.
func (c CharClassifier) IsWhitespace(r rune) bool {
	return c.Kind(r) == CharWhitespace
}

// IsPunctuation returns true if r is punctuation.
func (c CharClassifier) IsPunctuation(r rune) bool {
	return c.Kind(r) == CharPunctuation
}
