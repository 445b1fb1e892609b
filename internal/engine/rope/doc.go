// Package rope provides an immutable rope data structure for text storage.
//
// A rope is a B+ tree whose leaves hold bounded text chunks and whose internal
// nodes cache a TextSummary of their subtree: byte, char and UTF-16 counts, the
// line/column extent, and the longest row. Summaries form a monoid, so any
// prefix of the text can be summarized by descending the tree once.
//
// Key features:
//   - O(log n) edits, offset/point/UTF-16 conversions, and clipping
//   - Immutable operations return new ropes; originals are never modified
//   - Forward and reversed chunk and char iteration over byte ranges
//   - Raw chunks of at most 128 bytes carrying char, tab and newline bitmaps
//
// Basic usage:
//
//	r := rope.FromString("hello\tworld")
//	r = r.Replace(5, 6, " ")        // "hello world"
//	p := r.OffsetToPoint(6)         // {Row: 0, Column: 6}
//	it := r.RawChunks(0, r.Len())
//	for it.Next() {
//		_ = it.Chunk().Tabs
//	}
package rope
