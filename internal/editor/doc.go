// Package editor implements the multi-line editor view.
//
// An Editor ties together the pieces below it: a display map that expands
// tabs over the buffer, a selection collection that keeps any number of
// selections as anchors, and a scroll manager that keeps the newest cursor
// in view. Actions from the action package are the only way the host
// changes an editor:
//
//	ed := editor.New(buffer.NewBufferFromString(text))
//	ed.Resize(width, height, lineHeight)
//	ed.Dispatch(action.MoveDown)
//	ed.Dispatch(action.HandleInput{Text: "x"})
//
// Every dispatch runs to completion: edits are applied, selections are
// updated, and only then is the pending autoscroll request evaluated.
//
// # Undo
//
// The editor records the selections before and after every transaction in
// a journal keyed by transaction id. Undo and Redo restore the text through
// the buffer and the selections from the journal, so both return to the
// state the user saw.
//
// An Editor is not safe for concurrent use; hosts drive it from one
// goroutine.
package editor
