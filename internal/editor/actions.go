package editor

import (
	"strings"

	"github.com/zakuhq/zaku/internal/action"
	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/cursor"
	"github.com/zakuhq/zaku/internal/movement"
	"github.com/zakuhq/zaku/internal/renderer/viewport"
	"github.com/zakuhq/zaku/internal/selections"
)

// Dispatch performs a, then carries out any autoscroll it requested. It
// reports whether the editor handles a.
func (e *Editor) Dispatch(a action.Action) bool {
	if !e.dispatch(a) {
		return false
	}
	e.Autoscroll()
	return true
}

func (e *Editor) dispatch(a action.Action) bool {
	switch a := a.(type) {
	case action.HandleInput:
		e.Insert(a.Text)
	case action.MoveToBeginningOfLine:
		e.moveCursors(func(d *display.Snapshot, head display.DisplayPoint, _ cursor.Goal) (display.DisplayPoint, cursor.Goal) {
			return movement.IndentedLineBeginning(d, head, a.StopAtSoftWraps, a.StopAtIndent), cursor.NoGoal()
		})
	case action.SelectToBeginningOfLine:
		e.moveHeads(func(d *display.Snapshot, head display.DisplayPoint, _ cursor.Goal) (display.DisplayPoint, cursor.Goal) {
			return movement.IndentedLineBeginning(d, head, a.StopAtSoftWraps, a.StopAtIndent), cursor.NoGoal()
		})
	case action.DeleteToBeginningOfLine:
		e.deleteWith(func(d *display.Snapshot, head display.DisplayPoint) display.DisplayPoint {
			return movement.IndentedLineBeginning(d, head, false, a.StopAtIndent)
		})
	case action.MoveToEndOfLine:
		e.moveCursors(func(d *display.Snapshot, head display.DisplayPoint, _ cursor.Goal) (display.DisplayPoint, cursor.Goal) {
			return movement.LineEnd(d, head, a.StopAtSoftWraps), cursor.NoGoal()
		})
	case action.SelectToEndOfLine:
		e.moveHeads(func(d *display.Snapshot, head display.DisplayPoint, _ cursor.Goal) (display.DisplayPoint, cursor.Goal) {
			return movement.LineEnd(d, head, a.StopAtSoftWraps), cursor.NoGoal()
		})
	case action.DeleteToPreviousWordStart:
		next := movement.PreviousWordStartOrNewline
		if a.IgnoreNewlines {
			next = movement.PreviousWordStart
		}
		e.deleteWord(next, a.IgnoreBrackets)
	case action.DeleteToNextWordEnd:
		next := movement.NextWordEndOrNewline
		if a.IgnoreNewlines {
			next = movement.NextWordEnd
		}
		e.deleteWord(next, a.IgnoreBrackets)
	case action.DeleteToPreviousSubwordStart:
		e.deleteWord(movement.PreviousSubwordStart, a.IgnoreBrackets)
	case action.DeleteToNextSubwordEnd:
		e.deleteWord(movement.NextSubwordEnd, a.IgnoreBrackets)
	case action.Simple:
		return e.dispatchSimple(a)
	default:
		return false
	}
	return true
}

func (e *Editor) dispatchSimple(a action.Simple) bool {
	switch a {
	case action.Backspace:
		e.deleteWith(movement.Left)
	case action.Delete:
		e.deleteWith(movement.Right)
	case action.DeleteToEndOfLine:
		e.deleteWith(func(d *display.Snapshot, head display.DisplayPoint) display.DisplayPoint {
			return movement.LineEnd(d, head, false)
		})
	case action.Newline:
		e.Newline()
	case action.Tab:
		e.Insert("\t")
	case action.Copy:
		e.Copy()
	case action.Cut:
		e.Cut()
	case action.Paste:
		e.Paste()
	case action.Undo:
		e.Undo()
	case action.Redo:
		e.Redo()

	case action.MoveLeft:
		e.moveSelections(func(d *display.Snapshot, s *cursor.Selection[display.DisplayPoint]) {
			p := s.Start
			if s.IsEmpty() {
				p = movement.Left(d, s.Start)
			}
			s.CollapseTo(p, cursor.NoGoal())
		})
	case action.MoveRight:
		e.moveSelections(func(d *display.Snapshot, s *cursor.Selection[display.DisplayPoint]) {
			p := s.End
			if s.IsEmpty() {
				p = movement.Right(d, s.End)
			}
			s.CollapseTo(p, cursor.NoGoal())
		})
	case action.MoveUp:
		e.moveSelections(func(d *display.Snapshot, s *cursor.Selection[display.DisplayPoint]) {
			if !s.IsEmpty() {
				s.Goal = cursor.NoGoal()
			}
			p, goal := movement.Up(d, s.Start, s.Goal, false, e.details)
			s.CollapseTo(p, goal)
		})
	case action.MoveDown:
		e.moveSelections(func(d *display.Snapshot, s *cursor.Selection[display.DisplayPoint]) {
			if !s.IsEmpty() {
				s.Goal = cursor.NoGoal()
			}
			p, goal := movement.Down(d, s.End, s.Goal, false, e.details)
			s.CollapseTo(p, goal)
		})
	case action.SelectLeft:
		e.moveHeads(withoutGoal(movement.Left))
	case action.SelectRight:
		e.moveHeads(withoutGoal(movement.Right))
	case action.SelectUp:
		e.moveHeads(func(d *display.Snapshot, head display.DisplayPoint, goal cursor.Goal) (display.DisplayPoint, cursor.Goal) {
			return movement.Up(d, head, goal, false, e.details)
		})
	case action.SelectDown:
		e.moveHeads(func(d *display.Snapshot, head display.DisplayPoint, goal cursor.Goal) (display.DisplayPoint, cursor.Goal) {
			return movement.Down(d, head, goal, false, e.details)
		})

	case action.MoveToPreviousWordStart:
		e.moveCursors(withoutGoal(movement.PreviousWordStart))
	case action.MoveToNextWordEnd:
		e.moveCursors(withoutGoal(movement.NextWordEnd))
	case action.MoveToPreviousSubwordStart:
		e.moveCursors(withoutGoal(movement.PreviousSubwordStart))
	case action.MoveToNextSubwordEnd:
		e.moveCursors(withoutGoal(movement.NextSubwordEnd))
	case action.SelectToPreviousWordStart:
		e.moveHeads(withoutGoal(movement.PreviousWordStart))
	case action.SelectToNextWordEnd:
		e.moveHeads(withoutGoal(movement.NextWordEnd))
	case action.SelectToPreviousSubwordStart:
		e.moveHeads(withoutGoal(movement.PreviousSubwordStart))
	case action.SelectToNextSubwordEnd:
		e.moveHeads(withoutGoal(movement.NextSubwordEnd))

	case action.MoveToBeginning:
		e.SelectRanges([]buffer.Range{{}})
	case action.MoveToEnd:
		n := e.buffer.Len()
		e.SelectRanges([]buffer.Range{{Start: n, End: n}})
	case action.SelectToBeginning:
		e.selectNewestTo(0)
	case action.SelectToEnd:
		e.selectNewestTo(e.buffer.Len())
	case action.SelectAll:
		e.changeSelections(func(m *selections.Mutator) { m.SelectAll() })

	case action.PageUp:
		e.movePage(-1)
	case action.PageDown:
		e.movePage(1)
	case action.ScrollLineUp:
		e.scrollBy(-1)
	case action.ScrollLineDown:
		e.scrollBy(1)
	case action.ScrollCursorTop:
		e.scroll.RequestAutoscroll(viewport.Top())
	case action.ScrollCursorCenter:
		e.scroll.RequestAutoscroll(viewport.Center())
	case action.ScrollCursorBottom:
		e.scroll.RequestAutoscroll(viewport.Bottom())
	case action.ScrollCursorCenterTopBottom:
		e.scroll.RequestAutoscroll(viewport.Next())
	default:
		return false
	}
	return true
}

func withoutGoal(f func(*display.Snapshot, display.DisplayPoint) display.DisplayPoint) selections.MoveFunc {
	return func(d *display.Snapshot, head display.DisplayPoint, _ cursor.Goal) (display.DisplayPoint, cursor.Goal) {
		return f(d, head), cursor.NoGoal()
	}
}

func (e *Editor) moveSelections(f func(*display.Snapshot, *cursor.Selection[display.DisplayPoint])) {
	e.changeSelections(func(m *selections.Mutator) { m.MoveWith(f) })
}

func (e *Editor) moveCursors(f selections.MoveFunc) {
	e.changeSelections(func(m *selections.Mutator) { m.MoveCursorsWith(f) })
}

func (e *Editor) moveHeads(f selections.MoveFunc) {
	e.changeSelections(func(m *selections.Mutator) { m.MoveHeadsWith(f) })
}

// selectNewestTo replaces the selections with the newest one, its head
// moved to offset.
func (e *Editor) selectNewestTo(offset int) {
	e.changeSelections(func(m *selections.Mutator) {
		newest := selections.Newest(e.selections, selections.Offsets{Snapshot: m.Buffer()})
		newest.SetHead(offset, cursor.NoGoal(), cursor.CompareInts)
		m.Select([]cursor.Selection[int]{newest})
	})
}

// movePage scrolls by one page and moves the cursors by the rows of a
// page, keeping one row of context.
func (e *Editor) movePage(direction int) {
	rows := uint32(max(int(e.scroll.VisibleLines())-1, 1))
	if e.scroll.ScrollPages(e.Snapshot(), float64(direction)) {
		e.emit(EventScrolled)
	}
	e.moveSelections(func(d *display.Snapshot, s *cursor.Selection[display.DisplayPoint]) {
		if !s.IsEmpty() {
			s.Goal = cursor.NoGoal()
		}
		var p display.DisplayPoint
		var goal cursor.Goal
		if direction < 0 {
			p, goal = movement.UpByRows(d, s.Start, rows, s.Goal, false, e.details)
		} else {
			p, goal = movement.DownByRows(d, s.End, rows, s.Goal, false, e.details)
		}
		s.CollapseTo(p, goal)
	})
}

func (e *Editor) scrollBy(rows float64) {
	if e.scroll.ScrollBy(e.Snapshot(), rows) {
		e.emit(EventScrolled)
	}
}

// Insert replaces every selection with text.
func (e *Editor) Insert(text string) bool {
	return e.replaceSelections(func(int, cursor.Selection[int]) string { return text })
}

// Newline breaks the line at every selection, carrying the indent of the
// line over to the new one.
func (e *Editor) Newline() bool {
	s := e.buffer.Snapshot()
	return e.replaceSelections(func(_ int, sel cursor.Selection[int]) string {
		p := s.OffsetToPoint(sel.Start)
		indent := min(movement.IndentLen(s.LineText(p.Row)), p.Column)
		return "\n" + s.LineText(p.Row)[:indent]
	})
}

// replaceSelections replaces the text of every selection with the text
// returned for it and leaves a cursor after each insertion.
func (e *Editor) replaceSelections(text func(i int, sel cursor.Selection[int]) string) bool {
	return e.replaceSelectionsSince(e.anchors(), text)
}

// replaceSelectionsSince is replaceSelections journaling before as the
// selections to restore on undo.
func (e *Editor) replaceSelectionsSince(before []selections.Selection, text func(i int, sel cursor.Selection[int]) string) bool {
	sels := e.Selections()
	edits := make([]buffer.Edit, len(sels))
	cursors := make([]buffer.Range, len(sels))
	delta := 0
	for i, sel := range sels {
		t := text(i, sel)
		edits[i] = buffer.NewReplace(sel.Start, sel.End, t)
		end := sel.Start + delta + len(t)
		cursors[i] = buffer.Range{Start: end, End: end}
		delta += len(t) - (sel.End - sel.Start)
	}
	return e.transact(before, func() {
		e.buffer.Edit(edits...)
	}, func(m *selections.Mutator) {
		m.SelectRanges(cursors)
	})
}

// deleteWith extends every empty selection to the position target returns
// for its head, then deletes all selections. Undo restores the selections
// from before the extension.
func (e *Editor) deleteWith(target func(*display.Snapshot, display.DisplayPoint) display.DisplayPoint) {
	before := e.anchors()
	e.selections.ChangeWith(e.Snapshot(), func(m *selections.Mutator) {
		m.MoveWith(func(d *display.Snapshot, s *cursor.Selection[display.DisplayPoint]) {
			if s.IsEmpty() {
				s.SetHead(target(d, s.Head()), cursor.NoGoal(), display.DisplayPoint.Compare)
			}
		})
	})
	e.replaceSelectionsSince(before, func(int, cursor.Selection[int]) string { return "" })
}

func (e *Editor) deleteWord(next func(*display.Snapshot, display.DisplayPoint) display.DisplayPoint, ignoreBrackets bool) {
	e.deleteWith(func(d *display.Snapshot, head display.DisplayPoint) display.DisplayPoint {
		return movement.AdjustGreedyDeletion(d, head, next(d, head), ignoreBrackets)
	})
}

// selectedTexts returns the text of every non-empty selection.
func (e *Editor) selectedTexts() []string {
	s := e.buffer.Snapshot()
	var texts []string
	for _, sel := range e.Selections() {
		if !sel.IsEmpty() {
			texts = append(texts, s.TextForRange(sel.Start, sel.End))
		}
	}
	return texts
}

// Copy writes the selected text to the clipboard, one line per selection.
// It does nothing when every selection is empty.
func (e *Editor) Copy() {
	texts := e.selectedTexts()
	if len(texts) == 0 {
		return
	}
	e.reportError(e.clipboard.Write(strings.Join(texts, "\n")))
}

// Cut copies the selected text and deletes it.
func (e *Editor) Cut() {
	if len(e.selectedTexts()) == 0 {
		return
	}
	e.Copy()
	e.Insert("")
}

// Paste inserts the clipboard text at every selection. When the text has
// one line per selection, each selection receives its own line.
func (e *Editor) Paste() {
	text, err := e.clipboard.Read()
	if err != nil {
		e.reportError(err)
		return
	}
	lines := strings.Split(text, "\n")
	if n := len(e.Selections()); n > 1 && len(lines) == n {
		e.replaceSelections(func(i int, _ cursor.Selection[int]) string { return lines[i] })
		return
	}
	e.Insert(text)
}
