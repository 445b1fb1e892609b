package display

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/rope"
	"github.com/zakuhq/zaku/internal/engine/tracking"
)

const (
	// MaxTabSize is the largest supported tab size.
	MaxTabSize = 128

	// DefaultMaxExpansionColumn is the byte column past which tabs render
	// as a single space.
	DefaultMaxExpansionColumn = 256
)

// TabPoint is a position after tab expansion. Column counts display
// bytes: every tab contributes the spaces it expands to.
type TabPoint struct {
	Row    uint32
	Column uint32
}

// NewTabPoint returns the tab point at row, column.
func NewTabPoint(row, column uint32) TabPoint {
	return TabPoint{Row: row, Column: column}
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p TabPoint) Compare(other TabPoint) int {
	return rope.Point(p).Compare(rope.Point(other))
}

// String returns a human-readable representation of the point.
func (p TabPoint) String() string {
	return fmt.Sprintf("Tab(%d:%d)", p.Row, p.Column)
}

// TabRange is a half-open range of tab points.
type TabRange struct {
	Start TabPoint
	End   TabPoint
}

// TabEdit maps a range of the previous tab snapshot to the range of the
// new snapshot that replaced it.
type TabEdit struct {
	Old TabRange
	New TabRange
}

// clampTabSize limits a configured tab size to [1, MaxTabSize].
func clampTabSize(n int) uint32 {
	return uint32(min(max(n, 1), MaxTabSize))
}

// TabMap maintains the tab-expanded view of a buffer across edits.
type TabMap struct {
	snapshot           *TabSnapshot
	maxExpansionColumn uint32
}

// NewTabMap creates a tab map over buf. The tab size is clamped to
// [1, MaxTabSize].
func NewTabMap(buf *buffer.Snapshot, tabSize int) (*TabMap, *TabSnapshot) {
	s := newTabSnapshot(buf, clampTabSize(tabSize), DefaultMaxExpansionColumn, 0)
	return &TabMap{snapshot: s, maxExpansionColumn: DefaultMaxExpansionColumn}, s
}

// SetMaxExpansionColumn changes the expansion cap. It takes effect on the
// next Sync, which invalidates the whole document.
func (m *TabMap) SetMaxExpansionColumn(column uint32) {
	m.maxExpansionColumn = column
}

// Snapshot returns the most recently synced snapshot.
func (m *TabMap) Snapshot() *TabSnapshot {
	return m.snapshot
}

// Sync reconciles the map with buf, given the buffer edits between the
// previous snapshot's buffer and buf. It returns the new snapshot and the
// edits in tab coordinates.
func (m *TabMap) Sync(buf *buffer.Snapshot, edits []tracking.Edit, tabSize int) (*TabSnapshot, []TabEdit) {
	old := m.snapshot
	next := newTabSnapshot(buf, clampTabSize(tabSize), m.maxExpansionColumn, old.version)
	if old.buffer.Version() != buf.Version() {
		next.version++
	}

	var tabEdits []TabEdit
	if old.tabSize == next.tabSize && old.maxExpansionColumn == next.maxExpansionColumn {
		tabEdits = syncEdits(old, next, edits)
	} else {
		next.version++
		tabEdits = []TabEdit{{
			Old: TabRange{End: old.MaxPoint()},
			New: TabRange{End: next.MaxPoint()},
		}}
	}

	m.snapshot = next
	return next, tabEdits
}

// syncEdits widens each buffer edit to cover the tabs after it whose
// expansion may have changed, merges the results, and converts them to tab
// coordinates.
func syncEdits(old, next *TabSnapshot, edits []tracking.Edit) []TabEdit {
	widened := make([]tracking.Edit, len(edits))
	copy(widened, edits)

	for i := range widened {
		e := &widened[i]
		oldEnd := old.buffer.OffsetToPoint(e.Old.End)
		newEnd := next.buffer.OffsetToPoint(e.New.End)
		lineEnd := old.buffer.PointToOffset(rope.Point{Row: oldEnd.Row + 1})

		var offsetFromEdit uint32
		firstTab, lastChanged := -1, -1
		it := old.buffer.RawChunks(e.Old.End, lineEnd)
	scan:
		for it.Next() {
			c := it.Chunk()
			for tabs := c.Tabs; !tabs.IsZero(); tabs = tabs.ClearLowest() {
				off := offsetFromEdit + uint32(tabs.TrailingZeros())
				if firstTab < 0 {
					firstTab = int(off)
				}
				wasExpanded := oldEnd.Column+off < old.maxExpansionColumn
				isExpanded := newEnd.Column+off < next.maxExpansionColumn
				if wasExpanded != isExpanded {
					lastChanged = int(off)
				} else if !wasExpanded {
					break scan
				}
			}

			offsetFromEdit += uint32(len(c.Text))
			if oldEnd.Column+offsetFromEdit >= old.maxExpansionColumn &&
				newEnd.Column+offsetFromEdit >= next.maxExpansionColumn {
				break
			}
		}

		off := lastChanged
		if off < 0 {
			off = firstTab
		}
		if off >= 0 {
			e.Old.End += off + 1
			e.New.End += off + 1
		}
	}

	// Past the end of the last edit in a group, new offsets differ from old
	// ones by that edit's delta, whichever edit's widening reaches further.
	merged := widened[:0]
	for _, e := range widened {
		if n := len(merged); n > 0 && merged[n-1].Old.End >= e.Old.Start {
			last := &merged[n-1]
			last.Old.End = max(last.Old.End, e.Old.End)
			last.New.End = last.Old.End + e.New.End - e.Old.End
			continue
		}
		merged = append(merged, e)
	}

	tabEdits := make([]TabEdit, 0, len(merged))
	for _, e := range merged {
		tabEdits = append(tabEdits, TabEdit{
			Old: TabRange{
				Start: old.ToTabPoint(old.buffer.OffsetToPoint(e.Old.Start)),
				End:   old.ToTabPoint(old.buffer.OffsetToPoint(e.Old.End)),
			},
			New: TabRange{
				Start: next.ToTabPoint(next.buffer.OffsetToPoint(e.New.Start)),
				End:   next.ToTabPoint(next.buffer.OffsetToPoint(e.New.End)),
			},
		})
	}
	return tabEdits
}

// TabSnapshot is an immutable tab-expanded view of a buffer snapshot.
type TabSnapshot struct {
	buffer             *buffer.Snapshot
	tabSize            uint32
	maxExpansionColumn uint32
	version            int

	longestOnce sync.Once
	longest     rowLen
}

// rowLen is a row and its display length.
type rowLen struct {
	row uint32
	len uint32
}

func newTabSnapshot(buf *buffer.Snapshot, tabSize, maxExpansionColumn uint32, version int) *TabSnapshot {
	if tabSize < 1 || tabSize > MaxTabSize {
		panic(fmt.Sprintf("display: tab size %d out of range", tabSize))
	}
	return &TabSnapshot{
		buffer:             buf,
		tabSize:            tabSize,
		maxExpansionColumn: maxExpansionColumn,
		version:            version,
	}
}

// Buffer returns the buffer snapshot the tab snapshot was built from.
func (s *TabSnapshot) Buffer() *buffer.Snapshot {
	return s.buffer
}

// TabSize returns the tab size.
func (s *TabSnapshot) TabSize() int {
	return int(s.tabSize)
}

// MaxExpansionColumn returns the byte column past which tabs are not
// expanded.
func (s *TabSnapshot) MaxExpansionColumn() uint32 {
	return s.maxExpansionColumn
}

// Version increases whenever the buffer or the tab size changes.
func (s *TabSnapshot) Version() int {
	return s.version
}

// MaxPoint returns the tab point at the end of the text.
func (s *TabSnapshot) MaxPoint() TabPoint {
	return s.ToTabPoint(s.buffer.MaxPoint())
}

// LineLen returns the display length of row.
func (s *TabSnapshot) LineLen(row uint32) uint32 {
	maxPoint := s.MaxPoint()
	if row < maxPoint.Row {
		return s.ToTabPoint(rope.Point{Row: row, Column: s.buffer.LineLen(row)}).Column
	}
	return maxPoint.Column
}

// LongestRow returns the first row with the greatest display length. It is
// computed once per snapshot.
func (s *TabSnapshot) LongestRow() uint32 {
	return s.longestRow().row
}

func (s *TabSnapshot) longestRow() rowLen {
	s.longestOnce.Do(func() { s.longest = s.scanLongestRow() })
	return s.longest
}

// cacheLongestRow records a longest row computed elsewhere. It has no
// effect once the snapshot has computed its own.
func (s *TabSnapshot) cacheLongestRow(r rowLen) {
	s.longestOnce.Do(func() { s.longest = r })
}

func (s *TabSnapshot) scanLongestRow() rowLen {
	var longest rowLen
	maxRow := s.buffer.MaxPoint().Row
	for row := uint32(0); row <= maxRow; row++ {
		if n := s.LineLen(row); n > longest.len {
			longest = rowLen{row: row, len: n}
		}
	}
	return longest
}

// ClipPoint moves p onto a valid position, rounding inside tabs and
// multi-byte chars in the direction of bias.
func (s *TabSnapshot) ClipPoint(p TabPoint, bias rope.Bias) TabPoint {
	point, _, _ := s.ToPoint(p, bias)
	return s.ToTabPoint(s.buffer.ClipPoint(point, bias))
}

// ToTabPoint converts a buffer point to a tab point.
func (s *TabSnapshot) ToTabPoint(p rope.Point) TabPoint {
	return TabPoint{Row: p.Row, Column: s.expandTabs(p.Row, p.Column)}
}

// ToPoint converts a tab point to a buffer point. A column inside a tab's
// expansion resolves to the tab itself with Left bias and to the byte
// after it with Right bias. It also returns the expanded char column and,
// for Left bias inside a tab, the distance to the next tab stop.
func (s *TabSnapshot) ToPoint(p TabPoint, bias rope.Bias) (point rope.Point, expandedCharColumn, toNextStop uint32) {
	column, chars, next := s.collapseTabs(p.Row, p.Column, bias)
	return rope.Point{Row: p.Row, Column: column}, chars, next
}

// linePrefix returns up to n bytes from the start of row.
func (s *TabSnapshot) linePrefix(row, n uint32) string {
	start := s.buffer.PointToOffset(rope.Point{Row: row})
	n = min(n, s.buffer.LineLen(row))
	return s.buffer.TextForRange(start, start+int(n))
}

// expandTabs returns the display column of byte column on row.
func (s *TabSnapshot) expandTabs(row, column uint32) uint32 {
	endColumn := min(column, s.maxExpansionColumn)
	text := s.linePrefix(row, endColumn+utf8.UTFMax)

	var expandedChars, expandedBytes, collapsedBytes uint32
	for i := 0; i < len(text) && collapsedBytes < endColumn; {
		c, size := utf8.DecodeRuneInString(text[i:])
		if c == '\t' {
			tabLen := s.tabSize - expandedChars%s.tabSize
			expandedBytes += tabLen
			expandedChars += tabLen
		} else {
			expandedBytes += uint32(size)
			expandedChars++
		}
		collapsedBytes += uint32(size)
		i += size
	}
	return expandedBytes + saturatingSub(column, collapsedBytes)
}

// collapseTabs returns the byte column of display column on row, the
// expanded char column, and the distance to the next tab stop.
func (s *TabSnapshot) collapseTabs(row, column uint32, bias rope.Bias) (uint32, uint32, uint32) {
	text := s.linePrefix(row, min(column, s.maxExpansionColumn)+utf8.UTFMax)

	var expandedBytes, expandedChars, collapsedBytes uint32
	for i := 0; i < len(text); {
		if expandedBytes >= column || collapsedBytes >= s.maxExpansionColumn {
			break
		}
		c, size := utf8.DecodeRuneInString(text[i:])
		if c == '\t' {
			tabLen := s.tabSize - expandedChars%s.tabSize
			expandedChars += tabLen
			expandedBytes += tabLen
			if expandedBytes > column {
				expandedChars -= expandedBytes - column
				if bias == rope.Left {
					return collapsedBytes, expandedChars, expandedBytes - column
				}
				return collapsedBytes + 1, expandedChars, 0
			}
		} else {
			expandedChars++
			expandedBytes += uint32(size)
		}

		if expandedBytes > column && bias == rope.Left {
			expandedChars--
			break
		}
		collapsedBytes += uint32(size)
		i += size
	}
	return collapsedBytes + saturatingSub(column, expandedBytes), expandedChars, 0
}

// Chunks returns the display text in [start, end) chunk by chunk.
func (s *TabSnapshot) Chunks(start, end TabPoint) *TabChunks {
	if start.Compare(end) >= 0 {
		return &TabChunks{}
	}

	inputStart, expandedCharColumn, toNextStop := s.ToPoint(start, rope.Left)
	inputEnd, _, _ := s.ToPoint(end, rope.Right)
	if start.Row == end.Row && start.Column+toNextStop > end.Column {
		toNextStop = end.Column - start.Column
	}

	startOffset := s.buffer.PointToOffset(inputStart)
	endOffset := s.buffer.PointToOffset(inputEnd)
	return &TabChunks{
		input:              s.buffer.RawChunks(startOffset, endOffset),
		inputColumn:        inputStart.Column,
		column:             expandedCharColumn,
		maxExpansionColumn: s.maxExpansionColumn,
		outputPosition:     start,
		maxOutputPosition:  end,
		tabSize:            s.tabSize,
		chunk: Chunk{
			Text:  spaces[:toNextStop],
			Chars: rope.BitmapOnes(int(toNextStop)),
			IsTab: true,
		},
		insideLeadingTab: toNextStop > 0,
	}
}

func saturatingSub(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return 0
}
