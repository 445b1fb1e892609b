package selections

import (
	"slices"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/cursor"
)

// Selection is a selection whose endpoints are buffer anchors.
type Selection = cursor.Selection[buffer.Anchor]

// PendingSelection is a selection that is still being extended, for
// example by a mouse drag.
type PendingSelection struct {
	Selection Selection
	Mode      cursor.SelectMode
}

// Collection holds the selections of an editor as anchors, so they follow
// the text as the buffer changes.
//
// The collection always contains at least one selection. Disjoint
// selections are sorted by start and never overlap; the pending selection
// may overlap them and absorbs the ones it overlaps when materialized.
type Collection struct {
	nextID   uint64
	disjoint []Selection
	pending  *PendingSelection

	// selectMode is the mode of the most recent pending selection.
	selectMode cursor.SelectMode
	// isExtending is set while the pending selection's head is being
	// dragged.
	isExtending bool
}

// NewCollection creates a collection with a cursor at the start of the
// buffer.
func NewCollection() *Collection {
	return &Collection{
		nextID: 1,
		pending: &PendingSelection{
			Selection: cursor.NewCursor(0, buffer.AnchorMin),
		},
	}
}

func (c *Collection) newID() uint64 {
	id := c.nextID
	c.nextID++
	return id
}

// Disjoint returns a copy of the committed selections.
func (c *Collection) Disjoint() []Selection {
	return slices.Clone(c.disjoint)
}

// Pending returns the pending selection, if any.
func (c *Collection) Pending() (PendingSelection, bool) {
	if c.pending == nil {
		return PendingSelection{}, false
	}
	return *c.pending, true
}

// SelectMode returns the mode of the most recent pending selection.
func (c *Collection) SelectMode() cursor.SelectMode {
	return c.selectMode
}

// IsExtending reports whether the pending selection is being extended.
func (c *Collection) IsExtending() bool {
	return c.isExtending
}

// NewestAnchor returns the pending selection, or else the disjoint
// selection with the highest id.
func (c *Collection) NewestAnchor() Selection {
	if c.pending != nil {
		return c.pending.Selection
	}
	newest := c.disjoint[0]
	for _, s := range c.disjoint[1:] {
		if s.ID >= newest.ID {
			newest = s
		}
	}
	return newest
}

// OldestAnchor returns the disjoint selection with the lowest id, or the
// pending selection when there are no disjoint selections.
func (c *Collection) OldestAnchor() Selection {
	if len(c.disjoint) == 0 {
		return c.pending.Selection
	}
	oldest := c.disjoint[0]
	for _, s := range c.disjoint[1:] {
		if s.ID < oldest.ID {
			oldest = s
		}
	}
	return oldest
}

// Count returns the number of selections after merging the pending
// selection into the disjoint ones it overlaps.
func (c *Collection) Count(s *buffer.Snapshot) int {
	return len(All(c, Offsets{s}))
}

// All materializes every selection in dimension d, in start order. A
// pending selection absorbs the disjoint selections it overlaps.
func All[P comparable](c *Collection, d Dimension[P]) []cursor.Selection[P] {
	disjoint := resolve(d, c.disjoint)
	if c.pending == nil {
		return disjoint
	}
	pending := resolve(d, []Selection{c.pending.Selection})[0]

	out := make([]cursor.Selection[P], 0, len(disjoint)+1)
	i := 0
	for ; i < len(disjoint); i++ {
		next := disjoint[i]
		if d.Compare(next.End, pending.Start) < 0 {
			out = append(out, next)
			continue
		}
		if d.Compare(pending.Start, next.End) <= 0 && d.Compare(pending.End, next.Start) >= 0 {
			if d.Compare(next.Start, pending.Start) < 0 {
				pending.Start = next.Start
			}
			if d.Compare(next.End, pending.End) > 0 {
				pending.End = next.End
			}
			continue
		}
		break
	}
	out = append(out, pending)
	return append(out, disjoint[i:]...)
}

// Newest materializes the newest selection in dimension d.
func Newest[P comparable](c *Collection, d Dimension[P]) cursor.Selection[P] {
	return resolve(d, []Selection{c.NewestAnchor()})[0]
}

// Oldest materializes the oldest selection in dimension d.
func Oldest[P comparable](c *Collection, d Dimension[P]) cursor.Selection[P] {
	return resolve(d, []Selection{c.OldestAnchor()})[0]
}

// resolve converts anchor selections to dimension d, resolving all
// anchors against the snapshot in one pass.
func resolve[P comparable](d Dimension[P], sels []Selection) []cursor.Selection[P] {
	anchors := make([]buffer.Anchor, 0, 2*len(sels))
	for _, s := range sels {
		anchors = append(anchors, s.Start, s.End)
	}
	offsets := d.Buffer().ResolveAnchors(anchors)

	out := make([]cursor.Selection[P], len(sels))
	for i, s := range sels {
		start, end := offsets[2*i], offsets[2*i+1]
		if end < start {
			start, end = end, start
		}
		out[i] = cursor.Selection[P]{
			ID:       s.ID,
			Start:    d.FromOffset(start),
			End:      d.FromOffset(end),
			Reversed: s.Reversed,
			Goal:     s.Goal,
		}
	}
	return out
}

// ChangeWith applies f to a mutable view of the collection and reports
// whether any selection changed.
func (c *Collection) ChangeWith(m *display.Snapshot, f func(*Mutator)) bool {
	s := m.Buffer()
	before := All(c, Offsets{s})

	f(&Mutator{c: c, display: m, buffer: s})

	if len(c.disjoint) == 0 && c.pending == nil {
		newest := before[len(before)-1]
		for _, sel := range before {
			if sel.ID > newest.ID {
				newest = sel
			}
		}
		c.disjoint = []Selection{toAnchors(s, newest)}
	}
	return !sameSelections(before, All(c, Offsets{s}))
}

func sameSelections(a, b []cursor.Selection[int]) bool {
	return slices.EqualFunc(a, b, func(x, y cursor.Selection[int]) bool {
		return x.Start == y.Start && x.End == y.End && x.Reversed == y.Reversed && x.Goal == y.Goal
	})
}

// toAnchors anchors an offset selection. The start stays after text
// inserted at it; the end of a cursor does too, while the end of a
// non-empty selection stays before it.
func toAnchors(s *buffer.Snapshot, sel cursor.Selection[int]) Selection {
	endBias := buffer.Left
	if sel.Start == sel.End {
		endBias = buffer.Right
	}
	return Selection{
		ID:       sel.ID,
		Start:    s.AnchorAfter(sel.Start),
		End:      s.AnchorAt(sel.End, endBias),
		Reversed: sel.Reversed,
		Goal:     sel.Goal,
	}
}

// ShouldMerge reports whether selections a and b should be combined.
// They merge when they overlap, share a start, or one is a cursor on a
// boundary of the other. When sorted is set, a is known to start no later
// than b.
func ShouldMerge(aStart, aEnd, bStart, bEnd int, sorted bool) bool {
	overlapping := bStart < aEnd
	if !sorted {
		overlapping = aStart < bEnd && bStart < aEnd
	}
	aCursor := aStart == aEnd
	bCursor := bStart == bEnd
	return overlapping ||
		aStart == bStart ||
		(aCursor && (aStart == bStart || aStart == bEnd)) ||
		(bCursor && (bStart == aStart || bStart == aEnd))
}

// mergeSorted sorts sels by start and merges the ones ShouldMerge
// accepts. The earlier selection keeps its id and direction.
func mergeSorted(sels []cursor.Selection[int]) []cursor.Selection[int] {
	slices.SortStableFunc(sels, func(a, b cursor.Selection[int]) int {
		return a.Start - b.Start
	})
	out := sels[:0]
	for _, s := range sels {
		if n := len(out); n > 0 && ShouldMerge(out[n-1].Start, out[n-1].End, s.Start, s.End, true) {
			out[n-1].End = max(out[n-1].End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}
