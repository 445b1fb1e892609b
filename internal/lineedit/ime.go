package lineedit

import (
	"github.com/zakuhq/zaku/internal/engine/buffer"
)

// Input methods address text in UTF-16 code units. Ranges passed to and
// returned from the methods in this file are UTF-16 ranges; everything
// else in the model uses UTF-8 byte offsets.

func (m *Model) offsetFromUTF16(units int) int {
	s := m.buffer.Snapshot()
	total := s.OffsetToOffsetUTF16(s.Len())
	return s.OffsetUTF16ToOffset(min(max(units, 0), total))
}

func (m *Model) offsetToUTF16(offset int) int {
	return m.buffer.Snapshot().OffsetToOffsetUTF16(offset)
}

func (m *Model) rangeFromUTF16(r buffer.Range) buffer.Range {
	return m.clampRange(buffer.Range{Start: m.offsetFromUTF16(r.Start), End: m.offsetFromUTF16(r.End)})
}

func (m *Model) rangeToUTF16(r buffer.Range) buffer.Range {
	return buffer.Range{Start: m.offsetToUTF16(r.Start), End: m.offsetToUTF16(r.End)}
}

// offsetFromUTF16In maps a UTF-16 offset into text to a byte offset,
// clamping to the length of text.
func offsetFromUTF16In(text string, units int) int {
	count := 0
	for i, r := range text {
		if count >= units {
			return i
		}
		count++
		if r >= 0x10000 {
			count++
		}
	}
	return len(text)
}

// SelectedTextRangeUTF16 returns the selection and whether it is reversed.
func (m *Model) SelectedTextRangeUTF16() (buffer.Range, bool) {
	return m.rangeToUTF16(m.selected), m.reversed
}

// MarkedTextRangeUTF16 returns the marked range, if any.
func (m *Model) MarkedTextRangeUTF16() (buffer.Range, bool) {
	if !m.hasMarked {
		return buffer.Range{}, false
	}
	return m.rangeToUTF16(m.marked), true
}

// TextForRangeUTF16 returns the text in r and the range it actually
// covers after clamping.
func (m *Model) TextForRangeUTF16(r buffer.Range) (string, buffer.Range) {
	r = m.rangeFromUTF16(r)
	return m.buffer.Snapshot().TextForRange(r.Start, r.End), m.rangeToUTF16(r)
}

// UnmarkText ends the composition and keeps the composed text.
func (m *Model) UnmarkText() {
	m.endComposition()
}

// Composing reports whether an input method composition is in progress.
func (m *Model) Composing() bool {
	return m.hasMarked
}

func (m *Model) endComposition() {
	m.hasMarked = false
	m.hasComposition = false
}

// target returns the byte range an input method edit replaces: r when
// given, otherwise the marked range, otherwise the selection.
func (m *Model) target(r *buffer.Range) buffer.Range {
	switch {
	case r != nil:
		return m.rangeFromUTF16(*r)
	case m.hasMarked:
		return m.clampRange(m.marked)
	default:
		return m.clampRange(m.selected)
	}
}

// ReplaceTextInRange commits text in place of r, the marked range or the
// selection, and ends any composition.
func (m *Model) ReplaceTextInRange(r *buffer.Range, text string) {
	m.replaceAndCollapse(m.target(r), text)
	m.endComposition()
}

// ReplaceAndMarkTextInRange inserts composed text in place of r, the
// marked range or the selection, and marks it. selected, relative to the
// inserted text, becomes the new selection; by default the cursor goes
// after the text. All edits of one composition undo as a single step.
func (m *Model) ReplaceAndMarkTextInRange(r *buffer.Range, text string, selected *buffer.Range) {
	target := m.target(r)
	text = sanitize(text)

	composing := m.hasComposition
	if !composing {
		m.buffer.FinalizeLastTransaction()
	}

	sel := buffer.Range{Start: target.Start + len(text), End: target.Start + len(text)}
	if selected != nil {
		sel = buffer.Range{
			Start: target.Start + offsetFromUTF16In(text, selected.Start),
			End:   target.Start + offsetFromUTF16In(text, selected.End),
		}
	}
	var marked *buffer.Range
	if text != "" {
		marked = &buffer.Range{Start: target.Start, End: target.Start + len(text)}
	}

	if m.replace(target, text, sel, marked) {
		if !composing {
			m.composition, m.hasComposition = m.buffer.LastTransaction()
		}
	} else {
		m.selected = m.clampRange(sel)
		m.reversed = false
		m.hasMarked = marked != nil
		if marked != nil {
			m.marked = *marked
		}
	}
	if marked == nil {
		m.endComposition()
	}
}

// BoundsForRangeUTF16 returns the screen rectangle covering r in the last
// layout, placed within bounds.
func (m *Model) BoundsForRangeUTF16(r buffer.Range, bounds Bounds) (Bounds, bool) {
	if m.lastLayout == nil {
		return Bounds{}, false
	}
	r = m.rangeFromUTF16(r)
	startX := m.lastLayout.XForIndex(m.displayIndex(r.Start))
	endX := m.lastLayout.XForIndex(m.displayIndex(r.End))
	return Bounds{
		X:      bounds.X + startX - m.scrollX,
		Y:      bounds.Y,
		Width:  endX - startX,
		Height: bounds.Height,
	}, true
}

// CharacterIndexForPoint returns the UTF-16 offset of the character under
// (x, y), or false when the point is outside the text.
func (m *Model) CharacterIndexForPoint(x, y float64) (int, bool) {
	if m.lastLayout == nil || !m.hasBounds {
		return 0, false
	}
	b := m.lastBounds
	if y < b.Y || y >= b.Y+b.Height {
		return 0, false
	}
	index, ok := m.lastLayout.IndexForX(x - b.X + m.scrollX)
	if !ok {
		return 0, false
	}
	return m.offsetToUTF16(m.offsetForDisplayIndex(index)), true
}
