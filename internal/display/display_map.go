package display

import (
	"fmt"

	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/rope"
)

// DisplayRow is a row in display coordinates.
type DisplayRow uint32

// DisplayPoint is a position in display coordinates. It is a distinct type
// from TabPoint and rope.Point so that the coordinate spaces cannot be
// mixed by accident.
type DisplayPoint struct {
	Row    DisplayRow
	Column uint32
}

// NewDisplayPoint returns the display point at row, column.
func NewDisplayPoint(row DisplayRow, column uint32) DisplayPoint {
	return DisplayPoint{Row: row, Column: column}
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p DisplayPoint) Compare(other DisplayPoint) int {
	return p.tabPoint().Compare(other.tabPoint())
}

// String returns a human-readable representation of the point.
func (p DisplayPoint) String() string {
	return fmt.Sprintf("Display(%d:%d)", p.Row, p.Column)
}

func (p DisplayPoint) tabPoint() TabPoint {
	return TabPoint{Row: uint32(p.Row), Column: p.Column}
}

func displayPoint(p TabPoint) DisplayPoint {
	return DisplayPoint{Row: DisplayRow(p.Row), Column: p.Column}
}

// Map keeps a display snapshot in step with a buffer.
// A Map is not safe for concurrent use.
type Map struct {
	buffer  *buffer.Buffer
	tabMap  *TabMap
	tabSize int
	version int
}

// NewMap creates a display map over buf.
func NewMap(buf *buffer.Buffer, tabSize int) *Map {
	snap := buf.Snapshot()
	tabMap, _ := NewTabMap(snap, tabSize)
	return &Map{
		buffer:  buf,
		tabMap:  tabMap,
		tabSize: tabSize,
		version: snap.Version(),
	}
}

// Buffer returns the underlying buffer.
func (m *Map) Buffer() *buffer.Buffer {
	return m.buffer
}

// TabSize returns the configured tab size.
func (m *Map) TabSize() int {
	return m.tabSize
}

// SetTabSize changes the tab size. The next sync invalidates the whole
// document.
func (m *Map) SetTabSize(n int) {
	m.tabSize = n
}

// SetMaxExpansionColumn changes the column past which tabs are not
// expanded.
func (m *Map) SetMaxExpansionColumn(column uint32) {
	m.tabMap.SetMaxExpansionColumn(column)
}

// Sync brings the tab map up to date with the buffer and returns the
// resulting snapshot together with the display edits since the last sync.
// The longest row of the new snapshot is derived from the previous one and
// the edited rows.
func (m *Map) Sync() (*Snapshot, []TabEdit) {
	snap := m.buffer.Snapshot()
	edits := snap.EditsSince(m.version)
	prev := m.tabMap.Snapshot().longestRow()
	tabs, tabEdits := m.tabMap.Sync(snap, edits, m.tabSize)
	tabs.cacheLongestRow(nextLongestRow(prev, tabs, tabEdits))
	m.version = snap.Version()
	return &Snapshot{buffer: snap, tabs: tabs}, tabEdits
}

// nextLongestRow returns the longest row of tabs given prev, the longest
// row before edits were applied. When an edit touches prev's row the
// whole snapshot is rescanned.
func nextLongestRow(prev rowLen, tabs *TabSnapshot, edits []TabEdit) rowLen {
	row := prev.row
	for _, e := range edits {
		if e.Old.Start.Row > prev.row {
			break
		}
		if e.Old.End.Row >= prev.row {
			return tabs.scanLongestRow()
		}
		row = uint32(int(prev.row) + int(e.New.End.Row) - int(e.Old.End.Row))
	}

	// Untouched rows are no longer than prev, and those as long as it
	// come after it, so the first maximum is among prev and the new rows.
	best := rowLen{row: row, len: prev.len}
	for _, e := range edits {
		for r := e.New.Start.Row; r <= e.New.End.Row; r++ {
			if n := tabs.LineLen(r); n > best.len || n == best.len && r < best.row {
				best = rowLen{row: r, len: n}
			}
		}
	}
	return best
}

// Snapshot syncs and returns the current display snapshot.
func (m *Map) Snapshot() *Snapshot {
	s, _ := m.Sync()
	return s
}

// Snapshot is an immutable display view of a buffer snapshot.
type Snapshot struct {
	buffer *buffer.Snapshot
	tabs   *TabSnapshot
}

// NewSnapshot builds a display snapshot directly over a buffer snapshot.
func NewSnapshot(buf *buffer.Snapshot, tabSize int) *Snapshot {
	_, tabs := NewTabMap(buf, tabSize)
	return &Snapshot{buffer: buf, tabs: tabs}
}

// Buffer returns the buffer snapshot.
func (s *Snapshot) Buffer() *buffer.Snapshot {
	return s.buffer
}

// Tabs returns the tab snapshot.
func (s *Snapshot) Tabs() *TabSnapshot {
	return s.tabs
}

// PointToDisplayPoint converts a buffer point to a display point.
func (s *Snapshot) PointToDisplayPoint(p rope.Point, bias rope.Bias) DisplayPoint {
	return displayPoint(s.tabs.ToTabPoint(s.buffer.ClipPoint(p, bias)))
}

// DisplayPointToPoint converts a display point to a buffer point.
func (s *Snapshot) DisplayPointToPoint(p DisplayPoint, bias rope.Bias) rope.Point {
	point, _, _ := s.tabs.ToPoint(p.tabPoint(), bias)
	return s.buffer.ClipPoint(point, bias)
}

// OffsetToDisplayPoint converts a buffer offset to a display point.
func (s *Snapshot) OffsetToDisplayPoint(offset int, bias rope.Bias) DisplayPoint {
	return s.PointToDisplayPoint(s.buffer.OffsetToPoint(s.buffer.ClipOffset(offset, bias)), bias)
}

// DisplayPointToOffset converts a display point to a buffer offset.
func (s *Snapshot) DisplayPointToOffset(p DisplayPoint, bias rope.Bias) int {
	return s.buffer.PointToOffset(s.DisplayPointToPoint(p, bias))
}

// DisplayPointToAnchor converts a display point to an anchor. Left bias
// yields an anchor before the position, Right an anchor after it.
func (s *Snapshot) DisplayPointToAnchor(p DisplayPoint, bias rope.Bias) buffer.Anchor {
	return s.buffer.AnchorAt(s.DisplayPointToOffset(p, bias), bias)
}

// AnchorToDisplayPoint resolves an anchor to a display point.
func (s *Snapshot) AnchorToDisplayPoint(a buffer.Anchor) DisplayPoint {
	return s.OffsetToDisplayPoint(s.buffer.ResolveAnchor(a), a.Bias())
}

// MaxPoint returns the display point at the end of the text.
func (s *Snapshot) MaxPoint() DisplayPoint {
	return displayPoint(s.tabs.MaxPoint())
}

// LineLen returns the display length of row.
func (s *Snapshot) LineLen(row DisplayRow) uint32 {
	return s.tabs.LineLen(uint32(row))
}

// LongestRow returns the row with the greatest display length.
func (s *Snapshot) LongestRow() DisplayRow {
	return DisplayRow(s.tabs.LongestRow())
}

// ClipPoint moves p onto a valid display position.
func (s *Snapshot) ClipPoint(p DisplayPoint, bias rope.Bias) DisplayPoint {
	return displayPoint(s.tabs.ClipPoint(p.tabPoint(), bias))
}

// TextChunks returns the display text from the start of row to the end of
// the document.
func (s *Snapshot) TextChunks(row DisplayRow) *TabChunks {
	return s.tabs.Chunks(TabPoint{Row: uint32(row)}, s.tabs.MaxPoint())
}

// Chunks returns the display text in [start, end).
func (s *Snapshot) Chunks(start, end DisplayPoint) *TabChunks {
	return s.tabs.Chunks(start.tabPoint(), end.tabPoint())
}

// Text returns the whole display text.
func (s *Snapshot) Text() string {
	return s.tabs.Text(TabPoint{}, s.tabs.MaxPoint())
}

// LineText returns the display text of row without its newline.
func (s *Snapshot) LineText(row DisplayRow) string {
	start := TabPoint{Row: uint32(row)}
	end := TabPoint{Row: uint32(row), Column: s.tabs.LineLen(uint32(row))}
	return s.tabs.Text(start, end)
}

// IsLineBlank returns true if row contains only whitespace.
func (s *Snapshot) IsLineBlank(row DisplayRow) bool {
	for _, c := range s.buffer.LineText(uint32(row)) {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}
