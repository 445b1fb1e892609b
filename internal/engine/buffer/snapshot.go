package buffer

import (
	"github.com/zakuhq/zaku/internal/engine/rope"
	"github.com/zakuhq/zaku/internal/engine/tracking"
)

// Snapshot is an immutable view of a buffer at one version.
// Snapshots are cheap to create and safe to share between goroutines.
type Snapshot struct {
	rope      rope.Rope
	view      tracking.View
	wordChars string
}

// Rope returns the underlying rope.
func (s *Snapshot) Rope() rope.Rope {
	return s.rope
}

// Version returns the number of edits applied to produce this snapshot.
func (s *Snapshot) Version() int {
	return s.view.Version()
}

// Text returns the full content.
func (s *Snapshot) Text() string {
	return s.rope.String()
}

// TextForRange returns the text in [start, end).
func (s *Snapshot) TextForRange(start, end int) string {
	return s.rope.Slice(start, end)
}

// Len returns the length in bytes.
func (s *Snapshot) Len() int {
	return s.rope.Len()
}

// IsEmpty returns true if the snapshot contains no text.
func (s *Snapshot) IsEmpty() bool {
	return s.rope.IsEmpty()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return int(s.rope.MaxPoint().Row) + 1
}

// LineLen returns the byte length of row, excluding the newline.
func (s *Snapshot) LineLen(row uint32) uint32 {
	return s.rope.LineLen(row)
}

// LineText returns the text of row without its newline.
func (s *Snapshot) LineText(row uint32) string {
	start := s.rope.PointToOffset(Point{Row: row})
	return s.rope.Slice(start, start+int(s.rope.LineLen(row)))
}

// MaxPoint returns the position at the end of the text.
func (s *Snapshot) MaxPoint() Point {
	return s.rope.MaxPoint()
}

// MaxPointUTF16 returns the UTF-16 position at the end of the text.
func (s *Snapshot) MaxPointUTF16() PointUTF16 {
	return s.rope.MaxPointUTF16()
}

// Summary returns the summary of the whole text.
func (s *Snapshot) Summary() rope.TextSummary {
	return s.rope.Summary()
}

// TextSummaryForRange returns the summary of the text in [start, end).
func (s *Snapshot) TextSummaryForRange(start, end int) rope.TextSummary {
	return s.rope.TextSummaryForRange(start, end)
}

// ClipOffset moves offset onto a char boundary in the direction of bias.
func (s *Snapshot) ClipOffset(offset int, bias Bias) int {
	return s.rope.ClipOffset(offset, bias)
}

// ClipPoint clamps p to the text and onto a char boundary.
func (s *Snapshot) ClipPoint(p Point, bias Bias) Point {
	return s.rope.ClipPoint(p, bias)
}

// OffsetToPoint converts a byte offset to a point.
func (s *Snapshot) OffsetToPoint(offset int) Point {
	return s.rope.OffsetToPoint(offset)
}

// PointToOffset converts a point to a byte offset.
func (s *Snapshot) PointToOffset(p Point) int {
	return s.rope.PointToOffset(p)
}

// OffsetToOffsetUTF16 converts a byte offset to a UTF-16 offset.
func (s *Snapshot) OffsetToOffsetUTF16(offset int) int {
	return s.rope.OffsetToOffsetUTF16(offset)
}

// OffsetUTF16ToOffset converts a UTF-16 offset to a byte offset.
func (s *Snapshot) OffsetUTF16ToOffset(units int) int {
	return s.rope.OffsetUTF16ToOffset(units)
}

// OffsetToPointUTF16 converts a byte offset to a UTF-16 point.
func (s *Snapshot) OffsetToPointUTF16(offset int) PointUTF16 {
	return s.rope.OffsetToPointUTF16(offset)
}

// PointToPointUTF16 converts a point to a UTF-16 point.
func (s *Snapshot) PointToPointUTF16(p Point) PointUTF16 {
	return s.rope.PointToPointUTF16(p)
}

// PointUTF16ToPoint converts a UTF-16 point to a point.
func (s *Snapshot) PointUTF16ToPoint(p PointUTF16) Point {
	return s.rope.PointUTF16ToPoint(p)
}

// Iteration

// CharsAt iterates chars forward from offset.
func (s *Snapshot) CharsAt(offset int) *rope.CharIterator {
	return s.rope.CharsAt(offset)
}

// ReversedCharsAt iterates chars backward from offset.
func (s *Snapshot) ReversedCharsAt(offset int) *rope.CharIterator {
	return s.rope.ReversedCharsAt(offset)
}

// Chunks iterates the text of [start, end) chunk by chunk.
func (s *Snapshot) Chunks(start, end int) *rope.ChunkIterator {
	return s.rope.Chunks(start, end)
}

// ReversedChunks iterates the text of [start, end) backward.
func (s *Snapshot) ReversedChunks(start, end int) *rope.ChunkIterator {
	return s.rope.ReversedChunks(start, end)
}

// RawChunks iterates [start, end) as raw chunks with char, tab, and
// newline masks.
func (s *Snapshot) RawChunks(start, end int) *rope.RawChunkIterator {
	return s.rope.RawChunks(start, end)
}

// CharClassifierAt returns the classifier for word motion at offset.
func (s *Snapshot) CharClassifierAt(offset int) CharClassifier {
	return NewCharClassifier(s.wordChars)
}

// Anchors

// AnchorAt creates an anchor at offset. Offset is clipped to a char
// boundary in the direction of bias.
func (s *Snapshot) AnchorAt(offset int, bias Bias) Anchor {
	offset = s.rope.ClipOffset(offset, bias)
	switch {
	case offset == 0 && bias == Left:
		return AnchorMin
	case offset == s.rope.Len() && bias == Right:
		return AnchorMax
	}
	return Anchor{offset: offset, version: s.view.Version(), bias: bias}
}

// AnchorBefore creates an anchor that stays before text inserted at offset.
func (s *Snapshot) AnchorBefore(offset int) Anchor {
	return s.AnchorAt(offset, Left)
}

// AnchorAfter creates an anchor that stays after text inserted at offset.
func (s *Snapshot) AnchorAfter(offset int) Anchor {
	return s.AnchorAt(offset, Right)
}

// ResolveAnchor returns the current offset of a.
func (s *Snapshot) ResolveAnchor(a Anchor) int {
	switch a.edge {
	case edgeMin:
		return 0
	case edgeMax:
		return s.rope.Len()
	}
	offset := s.view.Resolve(a.offset, a.version, a.bias)
	return min(max(offset, 0), s.rope.Len())
}

// ResolveAnchors returns the current offsets of anchors.
func (s *Snapshot) ResolveAnchors(anchors []Anchor) []int {
	offsets := make([]int, len(anchors))
	for i, a := range anchors {
		offsets[i] = s.ResolveAnchor(a)
	}
	return offsets
}

// PointForAnchor returns the current point of a.
func (s *Snapshot) PointForAnchor(a Anchor) Point {
	return s.rope.OffsetToPoint(s.ResolveAnchor(a))
}

// EditsSince returns the composed edits between version and this
// snapshot.
func (s *Snapshot) EditsSince(version int) []tracking.Edit {
	p := s.view.Patch(version)
	return p.Edits()
}
