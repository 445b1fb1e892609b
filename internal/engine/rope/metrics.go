package rope

import (
	"fmt"
	"unicode/utf8"
)

// Bias disambiguates positions that fall between two valid locations.
type Bias uint8

const (
	// Left rounds toward the lower offset.
	Left Bias = iota
	// Right rounds toward the higher offset.
	Right
)

// String returns the bias name.
func (b Bias) String() string {
	if b == Right {
		return "Right"
	}
	return "Left"
}

// Invert returns the opposite bias.
func (b Bias) Invert() Bias {
	if b == Left {
		return Right
	}
	return Left
}

// Point is a row/column position where Column counts bytes.
// Both Row and Column are 0-indexed.
type Point struct {
	Row    uint32
	Column uint32
}

// NewPoint returns the point at row, column.
func NewPoint(row, column uint32) Point {
	return Point{Row: row, Column: column}
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Less reports whether p sorts before other.
func (p Point) Less(other Point) bool {
	return p.Compare(other) < 0
}

// Add appends the extent other to p, the way text of extent other would
// advance a cursor sitting at p.
func (p Point) Add(other Point) Point {
	if other.Row == 0 {
		return Point{Row: p.Row, Column: p.Column + other.Column}
	}
	return Point{Row: p.Row + other.Row, Column: other.Column}
}

// PointUTF16 is a row/column position where Column counts UTF-16 code units.
type PointUTF16 struct {
	Row    uint32
	Column uint32
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p PointUTF16) Compare(other PointUTF16) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// TextSummary holds aggregated metrics for a text span.
// The zero value summarizes the empty string and is the monoid identity.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the code point count.
	Chars int

	// UTF16 is the UTF-16 code unit count.
	UTF16 int

	// Lines is the extent of the text: newline count and byte length of the last line.
	Lines Point

	// LastLineUTF16 is the UTF-16 length of the last line.
	LastLineUTF16 uint32

	// FirstLineChars is the char length of the first line.
	FirstLineChars uint32

	// LastLineChars is the char length of the last line.
	LastLineChars uint32

	// LongestRow is the row with the most chars; LongestRowChars is its length.
	LongestRow      uint32
	LongestRowChars uint32

	// Tabs is the number of tab characters.
	Tabs int
}

// Add combines two summaries (monoid operation).
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		UTF16: s.UTF16 + other.UTF16,
		Lines: s.Lines.Add(other.Lines),
		Tabs:  s.Tabs + other.Tabs,
	}

	if other.Lines.Row == 0 {
		result.LastLineUTF16 = s.LastLineUTF16 + other.LastLineUTF16
		result.LastLineChars = s.LastLineChars + other.LastLineChars
	} else {
		result.LastLineUTF16 = other.LastLineUTF16
		result.LastLineChars = other.LastLineChars
	}

	if s.Lines.Row == 0 {
		result.FirstLineChars = s.FirstLineChars + other.FirstLineChars
	} else {
		result.FirstLineChars = s.FirstLineChars
	}

	// The last row of s joins the first row of other.
	result.LongestRow, result.LongestRowChars = s.LongestRow, s.LongestRowChars
	if joined := s.LastLineChars + other.FirstLineChars; joined > result.LongestRowChars {
		result.LongestRow, result.LongestRowChars = s.Lines.Row, joined
	}
	if other.LongestRowChars > result.LongestRowChars {
		result.LongestRow = s.Lines.Row + other.LongestRow
		result.LongestRowChars = other.LongestRowChars
	}

	return result
}

// IsZero returns true if this is the zero/identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	var sum TextSummary
	if len(s) == 0 {
		return sum
	}
	sum.Bytes = len(s)

	var rowChars uint32
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		sum.Chars++
		units := uint32(utf16Len(r))
		sum.UTF16 += int(units)

		if r == '\n' {
			if sum.Lines.Row == 0 {
				sum.FirstLineChars = rowChars
			}
			if rowChars > sum.LongestRowChars {
				sum.LongestRow, sum.LongestRowChars = sum.Lines.Row, rowChars
			}
			sum.Lines.Row++
			sum.Lines.Column = 0
			sum.LastLineUTF16 = 0
			rowChars = 0
			continue
		}

		if r == '\t' {
			sum.Tabs++
		}
		rowChars++
		sum.Lines.Column += uint32(size)
		sum.LastLineUTF16 += units
	}

	sum.LastLineChars = rowChars
	if sum.Lines.Row == 0 {
		sum.FirstLineChars = rowChars
	}
	if rowChars > sum.LongestRowChars {
		sum.LongestRow, sum.LongestRowChars = sum.Lines.Row, rowChars
	}
	return sum
}

// utf16Len returns the number of UTF-16 code units needed for r.
func utf16Len(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}
