package movement

import (
	"unicode"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/rope"
)

// Boundary predicates are stateful: the first pair examined gets special
// treatment, so each search needs a fresh predicate.

func wordStartBoundary(c buffer.CharClassifier) BoundaryFunc {
	first := true
	return func(left, right rune) bool {
		// "two.|" moves to "|two." rather than stopping after the word.
		if first && c.IsPunctuation(right) && !c.IsPunctuation(left) && left != '\n' {
			first = false
			return false
		}
		first = false
		return (c.Kind(left) != c.Kind(right) && !c.IsWhitespace(right)) || left == '\n'
	}
}

func wordStartOrNewlineBoundary(c buffer.CharClassifier) BoundaryFunc {
	return func(left, right rune) bool {
		return (c.Kind(left) != c.Kind(right) && !c.IsWhitespace(right)) || left == '\n' || right == '\n'
	}
}

func wordEndBoundary(c buffer.CharClassifier) BoundaryFunc {
	first := true
	return func(left, right rune) bool {
		// "|.three" moves to ".three|".
		if first && c.IsPunctuation(left) && !c.IsPunctuation(right) && right != '\n' {
			first = false
			return false
		}
		first = false
		return (c.Kind(left) != c.Kind(right) && !c.IsWhitespace(left)) || right == '\n'
	}
}

func wordEndOrNewlineBoundary(c buffer.CharClassifier) BoundaryFunc {
	return func(left, right rune) bool {
		return (c.Kind(left) != c.Kind(right) && !c.IsWhitespace(left)) || right == '\n' || left == '\n'
	}
}

func subwordStartBoundary(c buffer.CharClassifier) BoundaryFunc {
	word := wordStartBoundary(c)
	return func(left, right rune) bool {
		subword := (c.IsWord('-') && left == '-' && right != '-') ||
			(left == '_' && right != '_') ||
			(unicode.IsLower(left) && unicode.IsUpper(right))
		return word(left, right) || subword
	}
}

func subwordEndBoundary(c buffer.CharClassifier) BoundaryFunc {
	word := wordEndBoundary(c)
	return func(left, right rune) bool {
		subword := (c.IsWord('-') && left != '-' && right == '-') ||
			(left != '_' && right == '_') ||
			(unicode.IsLower(left) && unicode.IsUpper(right))
		return word(left, right) || subword
	}
}

// PreviousWordStartOffset returns the start of the word before offset.
func PreviousWordStartOffset(s *buffer.Snapshot, offset int) int {
	return FindPrecedingBoundaryOffset(s, offset, MultiLine, wordStartBoundary(s.CharClassifierAt(offset)))
}

// PreviousWordStartOrNewlineOffset is PreviousWordStartOffset but also
// stops at line boundaries.
func PreviousWordStartOrNewlineOffset(s *buffer.Snapshot, offset int) int {
	return FindPrecedingBoundaryOffset(s, offset, MultiLine, wordStartOrNewlineBoundary(s.CharClassifierAt(offset)))
}

// NextWordEndOffset returns the end of the word after offset.
func NextWordEndOffset(s *buffer.Snapshot, offset int) int {
	return FindBoundaryOffset(s, offset, MultiLine, wordEndBoundary(s.CharClassifierAt(offset)))
}

// NextWordEndOrNewlineOffset is NextWordEndOffset but also stops at line
// boundaries.
func NextWordEndOrNewlineOffset(s *buffer.Snapshot, offset int) int {
	return FindBoundaryOffset(s, offset, MultiLine, wordEndOrNewlineBoundary(s.CharClassifierAt(offset)))
}

// PreviousSubwordStartOffset is PreviousWordStartOffset that also stops
// inside camelCase, snake_case and kebab-case identifiers.
func PreviousSubwordStartOffset(s *buffer.Snapshot, offset int) int {
	return FindPrecedingBoundaryOffset(s, offset, MultiLine, subwordStartBoundary(s.CharClassifierAt(offset)))
}

// NextSubwordEndOffset is NextWordEndOffset that also stops inside
// camelCase, snake_case and kebab-case identifiers.
func NextSubwordEndOffset(s *buffer.Snapshot, offset int) int {
	return FindBoundaryOffset(s, offset, MultiLine, subwordEndBoundary(s.CharClassifierAt(offset)))
}

// PreviousWordStart returns the display point of the word start before p.
func PreviousWordStart(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	return backward(m, p, PreviousWordStartOffset)
}

// PreviousWordStartOrNewline is PreviousWordStart that stops at newlines.
func PreviousWordStartOrNewline(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	return backward(m, p, PreviousWordStartOrNewlineOffset)
}

// NextWordEnd returns the display point of the word end after p.
func NextWordEnd(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	return forward(m, p, NextWordEndOffset)
}

// NextWordEndOrNewline is NextWordEnd that stops at newlines.
func NextWordEndOrNewline(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	return forward(m, p, NextWordEndOrNewlineOffset)
}

// PreviousSubwordStart returns the display point of the subword start
// before p.
func PreviousSubwordStart(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	return backward(m, p, PreviousSubwordStartOffset)
}

// NextSubwordEnd returns the display point of the subword end after p.
func NextSubwordEnd(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	return forward(m, p, NextSubwordEndOffset)
}

func backward(m *display.Snapshot, p display.DisplayPoint, f func(*buffer.Snapshot, int) int) display.DisplayPoint {
	offset := f(m.Buffer(), m.DisplayPointToOffset(p, rope.Left))
	return m.OffsetToDisplayPoint(offset, rope.Left)
}

func forward(m *display.Snapshot, p display.DisplayPoint, f func(*buffer.Snapshot, int) int) display.DisplayPoint {
	offset := f(m.Buffer(), m.DisplayPointToOffset(p, rope.Right))
	return m.ClipPoint(m.OffsetToDisplayPoint(offset, rope.Right), rope.Right)
}
