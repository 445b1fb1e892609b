package movement

import (
	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/rope"
)

// FindRange limits how far a boundary search may travel.
type FindRange uint8

const (
	// SingleLine stops the search at a newline.
	SingleLine FindRange = iota
	// MultiLine lets the search cross newlines.
	MultiLine
)

// BoundaryFunc reports whether there is a boundary between left and right.
type BoundaryFunc func(left, right rune) bool

// FindPrecedingBoundaryOffset scans backward from offset and returns the
// offset of the first boundary, or the start of the search range.
// The char immediately before offset is always passed over.
func FindPrecedingBoundaryOffset(s *buffer.Snapshot, offset int, findRange FindRange, isBoundary BoundaryFunc) int {
	var prev rune
	havePrev := false
	it := s.ReversedCharsAt(offset)
	for it.Next() {
		c := it.Rune()
		if findRange == SingleLine && c == '\n' {
			break
		}
		if havePrev && isBoundary(c, prev) {
			break
		}
		offset = it.Offset()
		prev, havePrev = c, true
	}
	return offset
}

// FindBoundaryOffset scans forward from offset and returns the offset of
// the first boundary, or the end of the search range.
func FindBoundaryOffset(s *buffer.Snapshot, offset int, findRange FindRange, isBoundary BoundaryFunc) int {
	var prev rune
	havePrev := false
	it := s.CharsAt(offset)
	for it.Next() {
		c := it.Rune()
		if findRange == SingleLine && c == '\n' {
			return it.Offset()
		}
		if havePrev && isBoundary(prev, c) {
			return it.Offset()
		}
		prev, havePrev = c, true
	}
	return s.Len()
}

// FindPrecedingBoundaryPoint is FindPrecedingBoundaryOffset over points.
func FindPrecedingBoundaryPoint(s *buffer.Snapshot, from rope.Point, findRange FindRange, isBoundary BoundaryFunc) rope.Point {
	offset := FindPrecedingBoundaryOffset(s, s.PointToOffset(from), findRange, isBoundary)
	return s.OffsetToPoint(offset)
}

// FindBoundaryPoint is FindBoundaryOffset over points.
func FindBoundaryPoint(s *buffer.Snapshot, from rope.Point, findRange FindRange, isBoundary BoundaryFunc) rope.Point {
	offset := FindBoundaryOffset(s, s.PointToOffset(from), findRange, isBoundary)
	return s.OffsetToPoint(offset)
}

// FindPrecedingBoundaryDisplayPoint is FindPrecedingBoundaryOffset over
// display points.
func FindPrecedingBoundaryDisplayPoint(m *display.Snapshot, from display.DisplayPoint, findRange FindRange, isBoundary BoundaryFunc) display.DisplayPoint {
	offset := m.DisplayPointToOffset(from, rope.Left)
	offset = FindPrecedingBoundaryOffset(m.Buffer(), offset, findRange, isBoundary)
	return m.OffsetToDisplayPoint(offset, rope.Left)
}

// FindBoundaryDisplayPoint is FindBoundaryOffset over display points.
func FindBoundaryDisplayPoint(m *display.Snapshot, from display.DisplayPoint, findRange FindRange, isBoundary BoundaryFunc) display.DisplayPoint {
	offset := m.DisplayPointToOffset(from, rope.Right)
	offset = FindBoundaryOffset(m.Buffer(), offset, findRange, isBoundary)
	return m.ClipPoint(m.OffsetToDisplayPoint(offset, rope.Right), rope.Right)
}
