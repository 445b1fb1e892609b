package selections

import (
	"slices"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/cursor"
	"github.com/zakuhq/zaku/internal/engine/rope"
)

// AnchorRange is a range between two anchors.
type AnchorRange struct {
	Start, End buffer.Anchor
}

// DisplayRange is a range between two display points.
type DisplayRange struct {
	Start, End display.DisplayPoint
}

// Mutator is the mutable view of a Collection handed out by ChangeWith.
// It is only valid for the duration of the callback.
type Mutator struct {
	c       *Collection
	display *display.Snapshot
	buffer  *buffer.Snapshot
}

// Display returns the display snapshot the change is made against.
func (m *Mutator) Display() *display.Snapshot {
	return m.display
}

// Buffer returns the buffer snapshot the change is made against.
func (m *Mutator) Buffer() *buffer.Snapshot {
	return m.buffer
}

// All returns the current selections as offsets.
func (m *Mutator) All() []cursor.Selection[int] {
	return All(m.c, Offsets{m.buffer})
}

// ClearDisjoint removes all committed selections.
func (m *Mutator) ClearDisjoint() {
	m.c.disjoint = nil
}

// ClearPending removes the pending selection.
func (m *Mutator) ClearPending() {
	m.c.pending = nil
	m.c.isExtending = false
}

// SetPendingAnchorRange replaces the pending selection with a new
// selection between start and end.
func (m *Mutator) SetPendingAnchorRange(start, end buffer.Anchor, mode cursor.SelectMode) {
	m.SetPending(Selection{ID: m.c.newID(), Start: start, End: end}, mode)
}

// SetPendingRange is SetPendingAnchorRange over offsets.
func (m *Mutator) SetPendingRange(start, end int, mode cursor.SelectMode) {
	sel := toAnchors(m.buffer, cursor.NewSelection(m.c.newID(), start, end, cursor.CompareInts))
	m.SetPending(sel, mode)
}

// SetPending replaces the pending selection and records its mode as the
// collection's select mode.
func (m *Mutator) SetPending(sel Selection, mode cursor.SelectMode) {
	m.c.pending = &PendingSelection{Selection: sel, Mode: mode}
	m.c.selectMode = mode
	m.c.isExtending = false
}

// ExtendPending moves the head of the pending selection to offset, keeping
// its tail. It does nothing without a pending selection.
func (m *Mutator) ExtendPending(offset int) {
	p := m.c.pending
	if p == nil {
		return
	}
	offset = m.buffer.ClipOffset(min(max(offset, 0), m.buffer.Len()), rope.Left)
	tail := m.buffer.ResolveAnchor(p.Selection.Tail())
	sel := cursor.NewSelection(p.Selection.ID, tail, offset, cursor.CompareInts)
	m.c.pending = &PendingSelection{Selection: toAnchors(m.buffer, sel), Mode: p.Mode}
	m.c.isExtending = true
}

// CommitPending merges the pending selection into the disjoint ones.
func (m *Mutator) CommitPending() {
	if m.c.pending == nil {
		return
	}
	m.Select(m.All())
}

// Select replaces all selections with sels. Selections are clipped to the
// buffer, sorted, and merged where they overlap. The pending selection is
// cleared.
func (m *Mutator) Select(sels []cursor.Selection[int]) {
	if len(sels) == 0 {
		return
	}
	sels = slices.Clone(sels)
	n := m.buffer.Len()
	for i := range sels {
		s := &sels[i]
		empty := s.Start == s.End
		s.Start = m.buffer.ClipOffset(min(max(s.Start, 0), n), rope.Left)
		s.End = m.buffer.ClipOffset(min(max(s.End, 0), n), rope.Right)
		if empty {
			s.End = s.Start
		}
		if s.End < s.Start {
			s.Start, s.End = s.End, s.Start
		}
	}
	sels = mergeSorted(sels)

	disjoint := make([]Selection, len(sels))
	for i, s := range sels {
		disjoint[i] = toAnchors(m.buffer, s)
	}
	m.c.disjoint = disjoint
	m.c.pending = nil
	m.c.isExtending = false
}

// SelectIn is Select over selections in dimension d.
func SelectIn[P comparable](m *Mutator, d Dimension[P], sels []cursor.Selection[P]) {
	offsets := make([]cursor.Selection[int], len(sels))
	for i, s := range sels {
		offsets[i] = cursor.Map(s, d.ToOffset)
	}
	m.Select(offsets)
}

// SelectRanges replaces all selections with new selections over ranges.
// A range whose start is after its end yields a reversed selection.
func (m *Mutator) SelectRanges(ranges []buffer.Range) {
	sels := make([]cursor.Selection[int], len(ranges))
	for i, r := range ranges {
		sels[i] = cursor.NewSelection(m.c.newID(), r.Start, r.End, cursor.CompareInts)
	}
	m.Select(sels)
}

// SelectAnchors replaces all selections with sels.
func (m *Mutator) SelectAnchors(sels []Selection) {
	SelectIn(m, Offsets{m.buffer}, resolve(Offsets{m.buffer}, sels))
}

// SelectAnchorRanges replaces all selections with new selections over
// anchor ranges.
func (m *Mutator) SelectAnchorRanges(ranges []AnchorRange) {
	out := make([]buffer.Range, len(ranges))
	for i, r := range ranges {
		out[i] = buffer.Range{Start: m.buffer.ResolveAnchor(r.Start), End: m.buffer.ResolveAnchor(r.End)}
	}
	m.SelectRanges(out)
}

// SelectDisplayRanges replaces all selections with new selections over
// display ranges.
func (m *Mutator) SelectDisplayRanges(ranges []DisplayRange) {
	out := make([]buffer.Range, len(ranges))
	for i, r := range ranges {
		out[i] = buffer.Range{
			Start: m.display.DisplayPointToOffset(r.Start, rope.Left),
			End:   m.display.DisplayPointToOffset(r.End, rope.Left),
		}
	}
	m.SelectRanges(out)
}

// SelectAll replaces all selections with one covering the whole buffer.
func (m *Mutator) SelectAll() {
	m.SelectRanges([]buffer.Range{{Start: 0, End: m.buffer.Len()}})
}

// MoveWith applies f to every selection in display coordinates.
func (m *Mutator) MoveWith(f func(*display.Snapshot, *cursor.Selection[display.DisplayPoint])) {
	d := DisplayPoints{m.display}
	sels := All(m.c, d)
	changed := false
	for i := range sels {
		before := sels[i]
		f(m.display, &sels[i])
		if sels[i] != before {
			changed = true
		}
	}
	if changed {
		SelectIn(m, d, sels)
	}
}

// MoveOffsetsWith applies f to every selection in buffer offsets.
func (m *Mutator) MoveOffsetsWith(f func(*buffer.Snapshot, *cursor.Selection[int])) {
	sels := m.All()
	changed := false
	for i := range sels {
		before := sels[i]
		f(m.buffer, &sels[i])
		if sels[i] != before {
			changed = true
		}
	}
	if changed {
		m.Select(sels)
	}
}

// MoveFunc computes a new position and goal from a head position.
type MoveFunc func(m *display.Snapshot, head display.DisplayPoint, goal cursor.Goal) (display.DisplayPoint, cursor.Goal)

// MoveHeadsWith moves the head of every selection with f, extending it.
func (m *Mutator) MoveHeadsWith(f MoveFunc) {
	m.MoveWith(func(d *display.Snapshot, s *cursor.Selection[display.DisplayPoint]) {
		head, goal := f(d, s.Head(), s.Goal)
		s.SetHead(head, goal, display.DisplayPoint.Compare)
	})
}

// MoveCursorsWith collapses every selection to the position f computes
// from its head.
func (m *Mutator) MoveCursorsWith(f MoveFunc) {
	m.MoveWith(func(d *display.Snapshot, s *cursor.Selection[display.DisplayPoint]) {
		head, goal := f(d, s.Head(), s.Goal)
		s.CollapseTo(head, goal)
	})
}

// Refresh re-anchors every selection against the current snapshot and
// merges disjoint selections that edits have made overlap.
func (m *Mutator) Refresh() {
	pending, extending := m.c.pending, m.c.isExtending
	if len(m.c.disjoint) > 0 {
		m.Select(resolve(Offsets{m.buffer}, m.c.disjoint))
	}
	if pending != nil {
		sel := resolve(Offsets{m.buffer}, []Selection{pending.Selection})[0]
		m.c.pending = &PendingSelection{Selection: toAnchors(m.buffer, sel), Mode: pending.Mode}
		m.c.isExtending = extending
	}
}
