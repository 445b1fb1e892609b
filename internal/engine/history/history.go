package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultGroupInterval is the default window within which consecutive
// transactions merge.
const DefaultGroupInterval = 300 * time.Millisecond

// DefaultMaxEntries bounds the undo stack.
const DefaultMaxEntries = 1000

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Transaction
	redoStack []*Transaction

	current *Transaction
	depth   int
	nextID  TransactionID

	groupInterval time.Duration
	maxEntries    int
}

// Option configures a History.
type Option func(*History)

// WithGroupInterval sets the window within which transactions merge.
func WithGroupInterval(d time.Duration) Option {
	return func(h *History) {
		h.groupInterval = d
	}
}

// WithMaxEntries bounds the number of undo entries kept.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// New creates a new history manager.
func New(opts ...Option) *History {
	h := &History{
		groupInterval: DefaultGroupInterval,
		maxEntries:    DefaultMaxEntries,
		nextID:        1,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetGroupInterval changes the grouping window.
func (h *History) SetGroupInterval(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.groupInterval = d
}

// GroupInterval returns the grouping window.
func (h *History) GroupInterval() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.groupInterval
}

// Start opens a transaction. Nested calls join the outermost transaction;
// ok is true only when a new transaction was opened.
func (h *History) Start(now time.Time) (id TransactionID, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.depth++
	if h.depth > 1 {
		return h.current.ID, false
	}
	h.current = &Transaction{ID: h.nextID, FirstEditAt: now, LastEditAt: now}
	h.nextID++
	return h.current.ID, true
}

// InTransaction reports whether a transaction is open.
func (h *History) InTransaction() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth > 0
}

// Record adds a change index to the open transaction.
// It is a no-op when no transaction is open.
func (h *History) Record(change int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != nil {
		h.current.Changes = append(h.current.Changes, change)
	}
}

// End closes a transaction. When the outermost transaction closes with at
// least one change it is pushed onto the undo stack, possibly merging into
// its predecessor; the returned id is that of the resulting undo entry.
func (h *History) End(now time.Time) (TransactionID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		return 0, false
	}
	h.depth--
	if h.depth > 0 {
		return 0, false
	}

	tx := h.current
	h.current = nil
	if len(tx.Changes) == 0 {
		return 0, false
	}

	tx.LastEditAt = now
	h.redoStack = nil
	h.undoStack = append(h.undoStack, tx)
	id := h.groupLocked()

	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
	return id, true
}

// groupLocked merges the trailing transactions that fall within the group
// interval of each other and returns the id of the last entry.
func (h *History) groupLocked() TransactionID {
	n := len(h.undoStack)
	count := 0
	entry := h.undoStack[n-1]
	for i := n - 2; i >= 0; i-- {
		prev := h.undoStack[i]
		if prev.Finalized || entry.FirstEditAt.Sub(prev.LastEditAt) > h.groupInterval {
			break
		}
		entry = prev
		count++
	}
	return h.groupTrailingLocked(count)
}

// groupTrailingLocked merges the last n entries into the one before them.
func (h *History) groupTrailingLocked(n int) TransactionID {
	keep := len(h.undoStack) - n
	if keep <= 0 {
		return 0
	}
	target := h.undoStack[keep-1]
	for _, tx := range h.undoStack[keep:] {
		target.Changes = append(target.Changes, tx.Changes...)
		target.LastEditAt = tx.LastEditAt
	}
	h.undoStack = h.undoStack[:keep]
	return target.ID
}

// Finalize prevents the most recent transaction from merging with later
// ones. It returns the id of that transaction.
func (h *History) Finalize() (TransactionID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return 0, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	last.Finalized = true
	return last.ID, true
}

// GroupUntil merges every transaction pushed after id into id. Merging
// stops at a finalized transaction.
func (h *History) GroupUntil(id TransactionID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	for i := len(h.undoStack) - 1; i >= 0; i-- {
		tx := h.undoStack[i]
		if tx.ID == id {
			h.groupTrailingLocked(count)
			return
		}
		if tx.Finalized {
			return
		}
		count++
	}
}

// LastTransaction returns the id of the most recent undo entry.
func (h *History) LastTransaction() (TransactionID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return 0, false
	}
	return h.undoStack[len(h.undoStack)-1].ID, true
}

// PopUndo removes and returns the most recent undo entry.
func (h *History) PopUndo() (*Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	tx := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	return tx, nil
}

// PopRedo removes and returns the most recently undone entry.
func (h *History) PopRedo() (*Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	tx := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	return tx, nil
}

// PushUndo pushes a redone transaction back onto the undo stack without
// grouping it.
func (h *History) PushUndo(tx *Transaction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	tx.Finalized = true
	h.undoStack = append(h.undoStack, tx)
}

// PushRedo pushes an undone transaction onto the redo stack.
func (h *History) PushRedo(tx *Transaction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redoStack = append(h.redoStack, tx)
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
