package movement

import (
	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/cursor"
	"github.com/zakuhq/zaku/internal/engine/rope"
)

// Left returns the position one grapheme to the left of p, or the end of
// the previous row when p is at the start of a row.
func Left(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	switch {
	case p.Column > 0:
		line := m.LineText(p.Row)
		p.Column = uint32(PrevGraphemeBoundary(line, int(min(p.Column, uint32(len(line))))))
	case p.Row > 0:
		p.Row--
		p.Column = m.LineLen(p.Row)
	}
	return m.ClipPoint(p, rope.Left)
}

// Right returns the position one grapheme to the right of p, or the start
// of the next row when p is at the end of a row.
func Right(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	switch {
	case p.Column < m.LineLen(p.Row):
		p.Column = uint32(NextGraphemeBoundary(m.LineText(p.Row), int(p.Column)))
	case p.Row < m.MaxPoint().Row:
		p.Row++
		p.Column = 0
	}
	return m.ClipPoint(p, rope.Right)
}

// Up moves p one row up. See UpByRows.
func Up(m *display.Snapshot, p display.DisplayPoint, goal cursor.Goal, preserveColumnAtStart bool, details display.LayoutDetails) (display.DisplayPoint, cursor.Goal) {
	return UpByRows(m, p, 1, goal, preserveColumnAtStart, details)
}

// Down moves p one row down. See DownByRows.
func Down(m *display.Snapshot, p display.DisplayPoint, goal cursor.Goal, preserveColumnAtEnd bool, details display.LayoutDetails) (display.DisplayPoint, cursor.Goal) {
	return DownByRows(m, p, 1, goal, preserveColumnAtEnd, details)
}

// goalX returns the x position vertical motion aims for.
func goalX(m *display.Snapshot, p display.DisplayPoint, goal cursor.Goal, details display.LayoutDetails) float64 {
	if x, ok := goal.TargetX(); ok {
		return x
	}
	return m.XForDisplayPoint(p, details)
}

// UpByRows moves p up by rows, keeping the horizontal position recorded
// in goal. When the move runs past the first row, p is returned unchanged
// if preserveColumnAtStart is set, otherwise the start of the document is
// returned.
func UpByRows(m *display.Snapshot, p display.DisplayPoint, rows uint32, goal cursor.Goal, preserveColumnAtStart bool, details display.LayoutDetails) (display.DisplayPoint, cursor.Goal) {
	x := goalX(m, p, goal, details)

	var target display.DisplayPoint
	if uint32(p.Row) >= rows {
		row := p.Row - display.DisplayRow(rows)
		target = display.DisplayPoint{Row: row, Column: m.DisplayColumnForX(row, x, details)}
	} else if preserveColumnAtStart {
		return p, goal
	}

	clipped := m.ClipPoint(target, rope.Left)
	if clipped.Row < target.Row {
		clipped = m.ClipPoint(target, rope.Right)
	}
	return clipped, cursor.HorizontalPosition(x)
}

// DownByRows moves p down by rows, keeping the horizontal position
// recorded in goal. When the move runs past the last row, p is returned
// unchanged if preserveColumnAtEnd is set, otherwise the end of the
// document is returned.
func DownByRows(m *display.Snapshot, p display.DisplayPoint, rows uint32, goal cursor.Goal, preserveColumnAtEnd bool, details display.LayoutDetails) (display.DisplayPoint, cursor.Goal) {
	x := goalX(m, p, goal, details)

	maxPoint := m.MaxPoint()
	target := maxPoint
	if uint64(p.Row)+uint64(rows) <= uint64(maxPoint.Row) {
		row := p.Row + display.DisplayRow(rows)
		target = display.DisplayPoint{Row: row, Column: m.DisplayColumnForX(row, x, details)}
	} else if preserveColumnAtEnd {
		return p, goal
	}

	clipped := m.ClipPoint(target, rope.Left)
	if clipped.Row < target.Row {
		clipped = m.ClipPoint(target, rope.Right)
	}
	return clipped, cursor.HorizontalPosition(x)
}

// LineBeginning returns the start of p's row. Rows are never soft
// wrapped, so stopAtSoftWraps has no effect.
func LineBeginning(m *display.Snapshot, p display.DisplayPoint, stopAtSoftWraps bool) display.DisplayPoint {
	return display.DisplayPoint{Row: p.Row}
}

// IndentedLineBeginning returns the start of p's row, or the first
// non-whitespace position when stopAtIndent is set and p is past it.
// Repeated calls alternate between the indent and the row start.
func IndentedLineBeginning(m *display.Snapshot, p display.DisplayPoint, stopAtSoftWraps, stopAtIndent bool) display.DisplayPoint {
	start := LineBeginning(m, p, stopAtSoftWraps)
	if !stopAtIndent {
		return start
	}
	row := uint32(p.Row)
	indent := m.PointToDisplayPoint(rope.Point{Row: row, Column: IndentLen(m.Buffer().LineText(row))}, rope.Left)
	return display.DisplayPoint{Row: p.Row, Column: indentToggle(p.Column, indent.Column)}
}

// indentToggle picks the indent when col is past it or at the row start,
// and the row start otherwise.
func indentToggle(col, indent uint32) uint32 {
	if col > indent || col == 0 {
		return indent
	}
	return 0
}

// IndentLen returns the byte length of the leading spaces and tabs of
// line.
func IndentLen(line string) uint32 {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return uint32(n)
}

// LineEnd returns the end of p's row.
func LineEnd(m *display.Snapshot, p display.DisplayPoint, stopAtSoftWraps bool) display.DisplayPoint {
	return m.ClipPoint(display.DisplayPoint{Row: p.Row, Column: m.LineLen(p.Row)}, rope.Left)
}

// StartOfDocument returns the first display point.
func StartOfDocument(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	return display.DisplayPoint{}
}

// EndOfDocument returns the last display point.
func EndOfDocument(m *display.Snapshot, p display.DisplayPoint) display.DisplayPoint {
	return m.ClipPoint(m.MaxPoint(), rope.Left)
}

// PreviousGraphemeOffset returns the start of the grapheme before offset.
// At the start of a line it returns the offset before the newline.
func PreviousGraphemeOffset(s *buffer.Snapshot, offset int) int {
	offset = s.ClipOffset(offset, rope.Left)
	p := s.OffsetToPoint(offset)
	if p.Column == 0 {
		return max(offset-1, 0)
	}
	lineStart := offset - int(p.Column)
	return lineStart + PrevGraphemeBoundary(s.LineText(p.Row), int(p.Column))
}

// NextGraphemeOffset returns the end of the grapheme after offset. At the
// end of a line it returns the offset after the newline.
func NextGraphemeOffset(s *buffer.Snapshot, offset int) int {
	offset = s.ClipOffset(offset, rope.Right)
	p := s.OffsetToPoint(offset)
	if p.Column == s.LineLen(p.Row) {
		return min(offset+1, s.Len())
	}
	lineStart := offset - int(p.Column)
	return lineStart + NextGraphemeBoundary(s.LineText(p.Row), int(p.Column))
}

// IndentedLineBeginningOffset is IndentedLineBeginning over buffer
// offsets.
func IndentedLineBeginningOffset(s *buffer.Snapshot, offset int, stopAtIndent bool) int {
	p := s.OffsetToPoint(offset)
	lineStart := offset - int(p.Column)
	if !stopAtIndent {
		return lineStart
	}
	return lineStart + int(indentToggle(p.Column, IndentLen(s.LineText(p.Row))))
}

// LineEndOffset returns the offset of the end of the line containing
// offset.
func LineEndOffset(s *buffer.Snapshot, offset int) int {
	p := s.OffsetToPoint(offset)
	return offset - int(p.Column) + int(s.LineLen(p.Row))
}
