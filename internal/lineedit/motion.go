package lineedit

import (
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/movement"
)

// selectionWillChange ends the current undo group and any composition
// before the cursor moves.
func (m *Model) selectionWillChange() {
	m.endComposition()
	m.buffer.FinalizeLastTransaction()
}

func (m *Model) clampOffset(offset int, bias buffer.Bias) int {
	s := m.buffer.Snapshot()
	return s.ClipOffset(min(max(offset, 0), s.Len()), bias)
}

// MoveTo collapses the selection to offset.
func (m *Model) MoveTo(offset int) {
	m.selectionWillChange()
	m.moveTo(offset)
}

func (m *Model) moveTo(offset int) {
	offset = m.clampOffset(offset, buffer.Left)
	m.selected = buffer.Range{Start: offset, End: offset}
	m.reversed = false
}

// SelectTo moves the selection head to offset, keeping the tail.
func (m *Model) SelectTo(offset int) {
	m.selectionWillChange()
	m.selectTo(offset)
}

func (m *Model) selectTo(offset int) {
	offset = m.clampOffset(offset, buffer.Left)
	if m.reversed {
		m.selected.Start = offset
	} else {
		m.selected.End = offset
	}
	if m.selected.End < m.selected.Start {
		m.selected.Start, m.selected.End = m.selected.End, m.selected.Start
		m.reversed = !m.reversed
	}
}

// SelectAll selects the whole text.
func (m *Model) SelectAll() {
	m.MoveTo(0)
	m.SelectTo(m.buffer.Len())
}

// Left collapses a selection to its start, or moves the cursor one
// grapheme left.
func (m *Model) Left() {
	if m.selected.Start != m.selected.End {
		m.MoveTo(m.selected.Start)
		return
	}
	m.MoveTo(movement.PreviousGraphemeOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// Right collapses a selection to its end, or moves the cursor one grapheme
// right.
func (m *Model) Right() {
	if m.selected.Start != m.selected.End {
		m.MoveTo(m.selected.End)
		return
	}
	m.MoveTo(movement.NextGraphemeOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// SelectLeft extends the selection one grapheme left.
func (m *Model) SelectLeft() {
	m.SelectTo(movement.PreviousGraphemeOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// SelectRight extends the selection one grapheme right.
func (m *Model) SelectRight() {
	m.SelectTo(movement.NextGraphemeOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

func (m *Model) lineBeginning(stopAtIndent bool) int {
	return movement.IndentedLineBeginningOffset(m.buffer.Snapshot(), m.CursorOffset(), stopAtIndent)
}

// MoveToBeginningOfLine moves the cursor to the start of the text. With
// stopAtIndent it moves to the first non-whitespace character instead,
// alternating between the two on repeated use.
func (m *Model) MoveToBeginningOfLine(stopAtIndent bool) {
	m.MoveTo(m.lineBeginning(stopAtIndent))
}

// SelectToBeginningOfLine extends the selection like MoveToBeginningOfLine.
func (m *Model) SelectToBeginningOfLine(stopAtIndent bool) {
	m.SelectTo(m.lineBeginning(stopAtIndent))
}

// MoveToEndOfLine moves the cursor to the end of the text.
func (m *Model) MoveToEndOfLine() {
	m.MoveTo(m.buffer.Len())
}

// SelectToEndOfLine extends the selection to the end of the text.
func (m *Model) SelectToEndOfLine() {
	m.SelectTo(m.buffer.Len())
}

// PreviousWordStart moves the cursor to the start of the previous word.
func (m *Model) PreviousWordStart() {
	m.MoveTo(movement.PreviousWordStartOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// NextWordEnd moves the cursor to the end of the next word.
func (m *Model) NextWordEnd() {
	m.MoveTo(movement.NextWordEndOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// PreviousSubwordStart moves the cursor to the start of the previous
// subword.
func (m *Model) PreviousSubwordStart() {
	m.MoveTo(movement.PreviousSubwordStartOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// NextSubwordEnd moves the cursor to the end of the next subword.
func (m *Model) NextSubwordEnd() {
	m.MoveTo(movement.NextSubwordEndOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// SelectToPreviousWordStart extends the selection to the previous word
// start.
func (m *Model) SelectToPreviousWordStart() {
	m.SelectTo(movement.PreviousWordStartOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// SelectToNextWordEnd extends the selection to the next word end.
func (m *Model) SelectToNextWordEnd() {
	m.SelectTo(movement.NextWordEndOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// SelectToPreviousSubwordStart extends the selection to the previous
// subword start.
func (m *Model) SelectToPreviousSubwordStart() {
	m.SelectTo(movement.PreviousSubwordStartOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// SelectToNextSubwordEnd extends the selection to the next subword end.
func (m *Model) SelectToNextSubwordEnd() {
	m.SelectTo(movement.NextSubwordEndOffset(m.buffer.Snapshot(), m.CursorOffset()))
}

// DeleteToBeginningOfLine deletes from the cursor to the start of the
// text, or to the indent when stopAtIndent is set.
func (m *Model) DeleteToBeginningOfLine(stopAtIndent bool) {
	m.deleteTo(func(int) int { return m.lineBeginning(stopAtIndent) })
}

// DeleteToEndOfLine deletes from the cursor to the end of the text.
func (m *Model) DeleteToEndOfLine() {
	m.deleteTo(func(int) int { return m.buffer.Len() })
}

// wordDeletion returns a deletion target function that moves with next
// and then keeps whitespace runs out of the deleted span.
func (m *Model) wordDeletion(next func(*buffer.Snapshot, int) int, ignoreBrackets bool) func(int) int {
	return func(cursor int) int {
		s := m.buffer.Snapshot()
		return movement.AdjustGreedyDeletionOffset(s, cursor, next(s, cursor), ignoreBrackets)
	}
}

// DeleteToPreviousWordStart deletes back to the previous word start.
// Without ignoreNewlines the deletion also stops at line breaks, which a
// single-line model never contains.
func (m *Model) DeleteToPreviousWordStart(ignoreNewlines, ignoreBrackets bool) {
	next := movement.PreviousWordStartOrNewlineOffset
	if ignoreNewlines {
		next = movement.PreviousWordStartOffset
	}
	m.deleteTo(m.wordDeletion(next, ignoreBrackets))
}

// DeleteToNextWordEnd deletes forward to the next word end.
func (m *Model) DeleteToNextWordEnd(ignoreNewlines, ignoreBrackets bool) {
	next := movement.NextWordEndOrNewlineOffset
	if ignoreNewlines {
		next = movement.NextWordEndOffset
	}
	m.deleteTo(m.wordDeletion(next, ignoreBrackets))
}

// DeleteToPreviousSubwordStart deletes back to the previous subword start.
func (m *Model) DeleteToPreviousSubwordStart(ignoreNewlines, ignoreBrackets bool) {
	m.deleteTo(m.wordDeletion(movement.PreviousSubwordStartOffset, ignoreBrackets))
}

// DeleteToNextSubwordEnd deletes forward to the next subword end.
func (m *Model) DeleteToNextSubwordEnd(ignoreNewlines, ignoreBrackets bool) {
	m.deleteTo(m.wordDeletion(movement.NextSubwordEndOffset, ignoreBrackets))
}
