package lineedit

import (
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/movement"
)

// clampRange clips r to the buffer and to char boundaries.
func (m *Model) clampRange(r buffer.Range) buffer.Range {
	s := m.buffer.Snapshot()
	n := s.Len()
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	empty := r.Start == r.End
	r.Start = s.ClipOffset(min(max(r.Start, 0), n), buffer.Left)
	if empty {
		r.End = r.Start
	} else {
		r.End = s.ClipOffset(min(max(r.End, 0), n), buffer.Right)
	}
	return r
}

// ReplaceRange replaces the text in r with text and puts the cursor after
// the inserted text. Line breaks are removed from text. The change is
// recorded for undo together with the selection around it, and ends any
// composition in progress.
func (m *Model) ReplaceRange(r buffer.Range, text string) {
	m.interruptComposition()
	m.replaceAndCollapse(r, text)
}

func (m *Model) replaceAndCollapse(r buffer.Range, text string) {
	text = sanitize(text)
	r = m.clampRange(r)
	end := r.Start + len(text)
	m.replace(r, text, buffer.Range{Start: end, End: end}, nil)
}

// ReplaceRangeWithSelection replaces the text in r and sets an explicit
// selection and marked range afterwards. Both are byte ranges into the
// new text; a nil marked range clears it.
func (m *Model) ReplaceRangeWithSelection(r buffer.Range, text string, selected buffer.Range, marked *buffer.Range) {
	m.interruptComposition()
	text = sanitize(text)
	r = m.clampRange(r)
	m.replace(r, text, selected, marked)
}

// interruptComposition ends a composition before an edit that did not
// come from the input method, so the edit gets its own undo step.
func (m *Model) interruptComposition() {
	if m.hasComposition {
		m.buffer.FinalizeLastTransaction()
	}
	m.endComposition()
}

// replace performs an edit and reports whether the text changed.
func (m *Model) replace(r buffer.Range, text string, selected buffer.Range, marked *buffer.Range) bool {
	if m.buffer.Snapshot().TextForRange(r.Start, r.End) == text {
		return false
	}
	before := m.selectionState()

	id, ok := m.buffer.Transact(func() {
		m.buffer.Replace(r.Start, r.End, text)
	})

	m.selected = m.clampRange(selected)
	m.reversed = false
	m.hasMarked = false
	if marked != nil {
		m.marked = m.clampRange(*marked)
		m.hasMarked = true
	}

	if ok {
		if m.hasComposition && id != m.composition {
			m.buffer.GroupUntilTransaction(m.composition)
			id = m.composition
		}
		m.record(id, before, m.selectionState())
	}
	m.emit(EventBufferEdited)
	return true
}

// record stores the selection around transaction id. When the transaction
// was grouped into an earlier one, the earlier before state is kept.
func (m *Model) record(id buffer.TransactionID, before, after selectionState) {
	entry, ok := m.history[id]
	if !ok {
		entry.before = before
	}
	entry.after = after
	m.history[id] = entry
}

func (m *Model) selectionState() selectionState {
	return selectionState{selected: m.selected, reversed: m.reversed}
}

func (m *Model) restore(st selectionState) {
	m.selected = m.clampRange(st.selected)
	m.reversed = st.reversed && m.selected.Start != m.selected.End
}

// Undo reverts the last transaction and restores the selection from
// before it. It does nothing when there is nothing to undo.
func (m *Model) Undo() {
	m.endComposition()
	id, err := m.buffer.Undo()
	if err != nil {
		return
	}
	if entry, ok := m.history[id]; ok {
		m.restore(entry.before)
	} else {
		m.restore(m.selectionState())
	}
	m.emit(EventBufferEdited)
}

// Redo reapplies the last undone transaction and restores the selection
// from after it. It does nothing when there is nothing to redo.
func (m *Model) Redo() {
	m.endComposition()
	id, err := m.buffer.Redo()
	if err != nil {
		return
	}
	if entry, ok := m.history[id]; ok {
		m.restore(entry.after)
	} else {
		m.restore(m.selectionState())
	}
	m.emit(EventBufferEdited)
}

// Backspace deletes the selection, or the grapheme before the cursor.
func (m *Model) Backspace() {
	if m.selected.Start == m.selected.End {
		m.selectTo(movement.PreviousGraphemeOffset(m.buffer.Snapshot(), m.CursorOffset()))
	}
	m.ReplaceRange(m.selected, "")
}

// Delete deletes the selection, or the grapheme after the cursor.
func (m *Model) Delete() {
	if m.selected.Start == m.selected.End {
		m.selectTo(movement.NextGraphemeOffset(m.buffer.Snapshot(), m.CursorOffset()))
	}
	m.ReplaceRange(m.selected, "")
}

// deleteTo deletes from the cursor to target unless the selection is
// non-empty, in which case the selection is deleted.
func (m *Model) deleteTo(target func(cursor int) int) {
	if m.selected.Start == m.selected.End {
		m.selectTo(target(m.CursorOffset()))
	}
	m.ReplaceRange(m.selected, "")
}
