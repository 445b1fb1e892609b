package lineedit

import (
	"github.com/zakuhq/zaku/internal/action"
	"github.com/zakuhq/zaku/internal/movement"
	"github.com/zakuhq/zaku/internal/renderer/viewport"
	"github.com/zakuhq/zaku/internal/shaping"
)

// Layout shapes the display text for bounds and scrolls horizontally so
// the cursor stays visible. Hosts call it once per frame before drawing.
func (m *Model) Layout(bounds Bounds) *shaping.LineLayout {
	layout := m.details.Shaper.ShapeLine(m.DisplayText(), m.details.FontSize)
	m.lastLayout = layout
	m.lastBounds = bounds
	m.hasBounds = true

	em := layout.EmAdvance
	left := layout.XForIndex(m.displayIndex(m.CursorOffset()))
	m.scrollX = viewport.RevealX(m.scrollX, bounds.Width, left, left+em, 0)
	maxX := max(layout.Width+em-bounds.Width, 0)
	m.scrollX = min(max(m.scrollX, 0), maxX)
	return layout
}

// ScrollX returns the horizontal scroll offset in pixels.
func (m *Model) ScrollX() float64 {
	return m.scrollX
}

// CursorX returns the cursor position in pixels relative to the left edge
// of the visible text, or false before the first Layout.
func (m *Model) CursorX() (float64, bool) {
	if m.lastLayout == nil {
		return 0, false
	}
	return m.lastLayout.XForIndex(m.displayIndex(m.CursorOffset())) - m.scrollX, true
}

// offsetForX returns the buffer offset closest to the window x position.
func (m *Model) offsetForX(x float64) int {
	index := m.lastLayout.ClosestIndexForX(x - m.lastBounds.X + m.scrollX)
	return m.offsetForDisplayIndex(index)
}

// MouseDown starts a selection at (x, y). A shift click extends the
// selection, a double click selects a word and a triple click selects
// everything. It reports whether the point was inside the last layout.
func (m *Model) MouseDown(x, y float64, shift bool, clickCount int) bool {
	if m.lastLayout == nil || !m.lastBounds.Contains(x, y) {
		return false
	}
	offset := m.offsetForX(x)
	switch {
	case shift:
		m.SelectTo(offset)
	case clickCount == 2:
		s := m.buffer.Snapshot()
		end := movement.NextWordEndOffset(s, offset)
		m.MoveTo(movement.PreviousWordStartOffset(s, end))
		m.SelectTo(end)
	case clickCount >= 3:
		m.SelectAll()
	default:
		m.MoveTo(offset)
	}
	m.isSelecting = true
	return true
}

// MouseMove extends a selection started by MouseDown.
func (m *Model) MouseMove(x, y float64) {
	if !m.isSelecting || m.lastLayout == nil {
		return
	}
	m.SelectTo(m.offsetForX(x))
}

// MouseUp ends a mouse selection.
func (m *Model) MouseUp() {
	m.isSelecting = false
}

// Focus gives the model focus.
func (m *Model) Focus() {
	if m.focused {
		return
	}
	m.focused = true
	m.emit(EventFocused)
}

// Blur removes focus and commits any composition in progress.
func (m *Model) Blur() {
	if !m.focused {
		return
	}
	m.endComposition()
	m.isSelecting = false
	m.focused = false
	m.emit(EventBlurred)
}

// Copy writes the selected text to the clipboard.
func (m *Model) Copy() {
	if m.selected.Start == m.selected.End {
		return
	}
	m.reportError(m.clipboard.Write(m.SelectedText()))
}

// Cut copies the selection and deletes it.
func (m *Model) Cut() {
	if m.selected.Start == m.selected.End {
		return
	}
	m.Copy()
	m.ReplaceRange(m.selected, "")
}

// Paste replaces the selection with the clipboard text.
func (m *Model) Paste() {
	text, err := m.clipboard.Read()
	if err != nil {
		m.reportError(err)
		return
	}
	m.ReplaceRange(m.selected, text)
}

// HandleInput replaces the marked range, or the selection, with text.
func (m *Model) HandleInput(text string) {
	m.ReplaceTextInRange(nil, text)
}

// Dispatch performs a and reports whether the model handles it. Vertical
// motion moves to either end of the text; actions that need more than one
// line are ignored.
func (m *Model) Dispatch(a action.Action) bool {
	switch a := a.(type) {
	case action.HandleInput:
		m.HandleInput(a.Text)
	case action.MoveToBeginningOfLine:
		m.MoveToBeginningOfLine(a.StopAtIndent)
	case action.SelectToBeginningOfLine:
		m.SelectToBeginningOfLine(a.StopAtIndent)
	case action.DeleteToBeginningOfLine:
		m.DeleteToBeginningOfLine(a.StopAtIndent)
	case action.MoveToEndOfLine:
		m.MoveToEndOfLine()
	case action.SelectToEndOfLine:
		m.SelectToEndOfLine()
	case action.DeleteToPreviousWordStart:
		m.DeleteToPreviousWordStart(a.IgnoreNewlines, a.IgnoreBrackets)
	case action.DeleteToNextWordEnd:
		m.DeleteToNextWordEnd(a.IgnoreNewlines, a.IgnoreBrackets)
	case action.DeleteToPreviousSubwordStart:
		m.DeleteToPreviousSubwordStart(a.IgnoreNewlines, a.IgnoreBrackets)
	case action.DeleteToNextSubwordEnd:
		m.DeleteToNextSubwordEnd(a.IgnoreNewlines, a.IgnoreBrackets)
	case action.Simple:
		return m.dispatchSimple(a)
	default:
		return false
	}
	return true
}

func (m *Model) dispatchSimple(a action.Simple) bool {
	switch a {
	case action.Backspace:
		m.Backspace()
	case action.Delete:
		m.Delete()
	case action.DeleteToEndOfLine:
		m.DeleteToEndOfLine()
	case action.Copy:
		m.Copy()
	case action.Cut:
		m.Cut()
	case action.Paste:
		m.Paste()
	case action.Undo:
		m.Undo()
	case action.Redo:
		m.Redo()
	case action.MoveLeft:
		m.Left()
	case action.MoveRight:
		m.Right()
	case action.SelectLeft:
		m.SelectLeft()
	case action.SelectRight:
		m.SelectRight()
	case action.MoveUp, action.MoveToBeginning:
		m.MoveTo(0)
	case action.MoveDown, action.MoveToEnd:
		m.MoveTo(m.buffer.Len())
	case action.SelectUp, action.SelectToBeginning:
		m.SelectTo(0)
	case action.SelectDown, action.SelectToEnd:
		m.SelectTo(m.buffer.Len())
	case action.SelectAll:
		m.SelectAll()
	case action.MoveToPreviousWordStart:
		m.PreviousWordStart()
	case action.MoveToNextWordEnd:
		m.NextWordEnd()
	case action.MoveToPreviousSubwordStart:
		m.PreviousSubwordStart()
	case action.MoveToNextSubwordEnd:
		m.NextSubwordEnd()
	case action.SelectToPreviousWordStart:
		m.SelectToPreviousWordStart()
	case action.SelectToNextWordEnd:
		m.SelectToNextWordEnd()
	case action.SelectToPreviousSubwordStart:
		m.SelectToPreviousSubwordStart()
	case action.SelectToNextSubwordEnd:
		m.SelectToNextSubwordEnd()
	default:
		return false
	}
	return true
}
