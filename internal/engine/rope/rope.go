package rope

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
// This enables cheap snapshots and thread-safe concurrent read access.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: leafNode(nil)}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// buildFromChunks builds a balanced rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += maxLeafChunks {
		end := min(i+maxLeafChunks, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, leafNode(leafChunks))
	}
	return Rope{root: balanced(leaves)}
}

// Len returns the total byte length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{}
	}
	return r.root.summary
}

// MaxPoint returns the point at the end of the text.
func (r Rope) MaxPoint() Point {
	return r.Summary().Lines
}

// MaxPointUTF16 returns the UTF-16 point at the end of the text.
func (r Rope) MaxPointUTF16() PointUTF16 {
	s := r.Summary()
	return PointUTF16{Row: s.Lines.Row, Column: s.LastLineUTF16}
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end).
func (r Rope) Slice(start, end int) string {
	start = max(start, 0)
	if r.root == nil || start >= end {
		return ""
	}
	return r.root.textInRange(start, end)
}

// Insert inserts text at the given byte offset.
func (r Rope) Insert(offset int, text string) Rope {
	return r.Replace(offset, offset, text)
}

// Delete removes text in the byte range [start, end).
func (r Rope) Delete(start, end int) Rope {
	return r.Replace(start, end, "")
}

// Replace replaces text in the byte range [start, end) with new text.
// The range is clamped to the rope.
func (r Rope) Replace(start, end int, text string) Rope {
	start = min(max(start, 0), r.Len())
	end = min(max(end, start), r.Len())
	if start == end && len(text) == 0 {
		return r
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(FromString(text)).Concat(right)
}

// Split splits the rope at offset, returning two ropes.
// Left rope contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}

	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Height returns the height of the rope tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// OffsetSummary returns the summary of the text in [0, offset).
func (r Rope) OffsetSummary(offset int) TextSummary {
	offset = min(max(offset, 0), r.Len())
	if r.root == nil || offset == 0 {
		return TextSummary{}
	}
	before, chunk, ok := r.root.seek(func(s TextSummary) bool { return s.Bytes >= offset })
	if !ok {
		return before
	}
	return before.Add(ComputeSummary(chunk.text[:offset-before.Bytes]))
}

// TextSummaryForRange returns the summary of the text in [start, end).
func (r Rope) TextSummaryForRange(start, end int) TextSummary {
	var sum TextSummary
	it := r.Chunks(start, end)
	for it.Next() {
		sum = sum.Add(ComputeSummary(it.Text()))
	}
	return sum
}

// OffsetToPoint converts a byte offset to a row/column position.
func (r Rope) OffsetToPoint(offset int) Point {
	return r.OffsetSummary(offset).Lines
}

// OffsetToOffsetUTF16 converts a byte offset to a UTF-16 code unit offset.
func (r Rope) OffsetToOffsetUTF16(offset int) int {
	return r.OffsetSummary(offset).UTF16
}

// OffsetToPointUTF16 converts a byte offset to a UTF-16 row/column position.
func (r Rope) OffsetToPointUTF16(offset int) PointUTF16 {
	s := r.OffsetSummary(offset)
	return PointUTF16{Row: s.Lines.Row, Column: s.LastLineUTF16}
}

// PointToOffset converts a row/column position to a byte offset.
// Columns past the end of the row clamp to the row end; rows past the end
// of the text clamp to the text end.
func (r Rope) PointToOffset(p Point) int {
	if r.root == nil {
		return 0
	}
	before, chunk, ok := r.root.seek(func(s TextSummary) bool { return s.Lines.Compare(p) >= 0 })
	if !ok {
		return 0
	}

	pos := before.Lines
	text := chunk.text
	for i := 0; i < len(text); i++ {
		if pos.Compare(p) >= 0 {
			return before.Bytes + i
		}
		if text[i] == '\n' {
			if pos.Row == p.Row {
				return before.Bytes + i
			}
			pos = Point{Row: pos.Row + 1}
			continue
		}
		pos.Column++
	}
	return before.Bytes + len(text)
}

// PointToPointUTF16 converts a byte point to a UTF-16 point.
func (r Rope) PointToPointUTF16(p Point) PointUTF16 {
	return r.OffsetToPointUTF16(r.PointToOffset(p))
}

// OffsetUTF16ToOffset converts a UTF-16 code unit offset to a byte offset.
// An offset inside a surrogate pair resolves to the start of the character.
func (r Rope) OffsetUTF16ToOffset(units int) int {
	if r.root == nil || units <= 0 {
		return 0
	}
	before, chunk, ok := r.root.seek(func(s TextSummary) bool { return s.UTF16 >= units })
	if !ok {
		return 0
	}

	acc := before.UTF16
	text := chunk.text
	for i := 0; i < len(text); {
		if acc >= units {
			return before.Bytes + i
		}
		c, size := utf8.DecodeRuneInString(text[i:])
		if acc+utf16Len(c) > units {
			return before.Bytes + i
		}
		acc += utf16Len(c)
		i += size
	}
	return before.Bytes + len(text)
}

// PointUTF16ToPoint converts a UTF-16 point to a byte point.
func (r Rope) PointUTF16ToPoint(p PointUTF16) Point {
	if r.root == nil {
		return Point{}
	}
	reached := func(s TextSummary) bool {
		return PointUTF16{Row: s.Lines.Row, Column: s.LastLineUTF16}.Compare(p) >= 0
	}
	before, chunk, ok := r.root.seek(reached)
	if !ok {
		return Point{}
	}

	pos := before.Lines
	units := PointUTF16{Row: before.Lines.Row, Column: before.LastLineUTF16}
	text := chunk.text
	for i := 0; i < len(text); {
		if units.Compare(p) >= 0 {
			return pos
		}
		c, size := utf8.DecodeRuneInString(text[i:])
		if c == '\n' {
			if pos.Row == p.Row {
				return pos
			}
			pos = Point{Row: pos.Row + 1}
			units = PointUTF16{Row: units.Row + 1}
		} else {
			if units.Row == p.Row && units.Column+uint32(utf16Len(c)) > p.Column {
				return pos
			}
			pos.Column += uint32(size)
			units.Column += uint32(utf16Len(c))
		}
		i += size
	}
	return pos
}

// LineLen returns the byte length of row, excluding its newline.
func (r Rope) LineLen(row uint32) uint32 {
	return r.OffsetToPoint(r.PointToOffset(Point{Row: row, Column: math.MaxUint32})).Column
}

// ClipOffset moves offset onto a char boundary, rounding in the direction
// of bias, and clamps it to [0, Len].
func (r Rope) ClipOffset(offset int, bias Bias) int {
	n := r.Len()
	if offset <= 0 {
		return 0
	}
	if offset >= n {
		return n
	}

	lo := max(offset-utf8.UTFMax, 0)
	hi := min(offset+utf8.UTFMax, n)
	window := r.Slice(lo, hi)
	i := offset - lo
	if utf8.RuneStart(window[i]) {
		return offset
	}
	if bias == Left {
		for i > 0 && !utf8.RuneStart(window[i]) {
			i--
		}
		return lo + i
	}
	for i < len(window) && !utf8.RuneStart(window[i]) {
		i++
	}
	return lo + i
}

// ClipPoint clamps p to the text and moves it onto a char boundary.
func (r Rope) ClipPoint(p Point, bias Bias) Point {
	maxPoint := r.MaxPoint()
	if p.Row > maxPoint.Row {
		return maxPoint
	}
	p.Column = min(p.Column, r.LineLen(p.Row))
	offset := r.PointToOffset(p)
	clipped := r.ClipOffset(offset, bias)
	if clipped == offset {
		return p
	}
	return r.OffsetToPoint(clipped)
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.String() == other.String()
}
