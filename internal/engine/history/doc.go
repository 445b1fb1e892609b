// Package history provides the undo/redo transaction stacks of a buffer.
//
// A Transaction groups the log indices of the changes applied while it was
// open. Transactions nest; only the outermost Start/End pair produces an
// undo entry, and a transaction that recorded no changes is discarded.
//
// # Grouping
//
// A transaction that starts within the group interval of the previous
// transaction's last edit is merged into it, so rapid typing undoes as one
// step. Finalize prevents the most recent transaction from absorbing later
// ones; GroupUntil merges every transaction after a given one into it, which
// input methods use to fold a composition into a single undo step.
//
//	h := history.New(history.WithGroupInterval(300 * time.Millisecond))
//	h.Start(now)
//	h.Record(changeIndex)
//	id, ok := h.End(now)
//
// # Undo and Redo
//
// PopUndo and PopRedo hand the caller a transaction to invert; the caller
// applies the inverse changes, rewrites the transaction's change indices,
// and pushes it onto the opposite stack.
package history
