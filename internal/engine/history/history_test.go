package history

import (
	"errors"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

// commit records a single-change transaction spanning [start, end] ms.
func commit(h *History, change, start, end int) (TransactionID, bool) {
	h.Start(at(start))
	h.Record(change)
	return h.End(at(end))
}

func TestStartEndNesting(t *testing.T) {
	h := New()
	outer, ok := h.Start(at(0))
	if !ok {
		t.Fatal("outermost Start should open a transaction")
	}
	inner, ok := h.Start(at(1))
	if ok || inner != outer {
		t.Errorf("nested Start = (%v, %v), want (%v, false)", inner, ok, outer)
	}
	h.Record(0)
	if _, ok := h.End(at(2)); ok {
		t.Error("inner End should not produce an entry")
	}
	if !h.InTransaction() {
		t.Error("outer transaction should still be open")
	}
	id, ok := h.End(at(3))
	if !ok || id != outer {
		t.Errorf("End() = (%v, %v), want (%v, true)", id, ok, outer)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want 1", h.UndoCount())
	}
}

func TestEmptyTransactionDiscarded(t *testing.T) {
	h := New()
	h.Start(at(0))
	if _, ok := h.End(at(1)); ok {
		t.Error("empty transaction should be discarded")
	}
	if h.CanUndo() {
		t.Error("nothing should be undoable")
	}
	if _, ok := h.End(at(2)); ok {
		t.Error("End without Start should be a no-op")
	}
}

func TestGrouping(t *testing.T) {
	h := New(WithGroupInterval(300 * time.Millisecond))
	first, _ := commit(h, 0, 0, 10)
	second, _ := commit(h, 1, 100, 110)
	if second != first {
		t.Errorf("transaction within interval got id %v, want %v", second, first)
	}
	third, _ := commit(h, 2, 1000, 1010)
	if third == first {
		t.Error("transaction past the interval should not merge")
	}
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount() = %d, want 2", h.UndoCount())
	}

	tx, err := h.PopUndo()
	if err != nil {
		t.Fatal(err)
	}
	if tx.ID != third || len(tx.Changes) != 1 {
		t.Errorf("PopUndo() = %+v", tx)
	}
	tx, _ = h.PopUndo()
	if len(tx.Changes) != 2 || tx.Changes[0] != 0 || tx.Changes[1] != 1 {
		t.Errorf("merged changes = %v, want [0 1]", tx.Changes)
	}
}

func TestFinalizePreventsGrouping(t *testing.T) {
	h := New()
	first, _ := commit(h, 0, 0, 10)
	if id, ok := h.Finalize(); !ok || id != first {
		t.Errorf("Finalize() = (%v, %v)", id, ok)
	}
	second, _ := commit(h, 1, 20, 30)
	if second == first {
		t.Error("finalized transaction absorbed a later one")
	}
}

func TestGroupUntil(t *testing.T) {
	h := New(WithGroupInterval(0))
	base, _ := commit(h, 0, 0, 0)
	h.Finalize()
	ime, _ := commit(h, 1, 1000, 1000)
	commit(h, 2, 2000, 2000)
	commit(h, 3, 3000, 3000)
	if h.UndoCount() != 4 {
		t.Fatalf("UndoCount() = %d, want 4", h.UndoCount())
	}

	h.GroupUntil(ime)
	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount() after GroupUntil = %d, want 2", h.UndoCount())
	}
	if last, _ := h.LastTransaction(); last != ime {
		t.Errorf("LastTransaction() = %v, want %v", last, ime)
	}

	// Grouping never crosses a finalized transaction.
	h.Finalize()
	commit(h, 4, 9000, 9000)
	h.GroupUntil(base)
	if h.UndoCount() != 3 {
		t.Errorf("GroupUntil crossed a finalized transaction")
	}
}

func TestUndoRedoStacks(t *testing.T) {
	h := New()
	if _, err := h.PopUndo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("PopUndo() error = %v, want ErrNothingToUndo", err)
	}
	if _, err := h.PopRedo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("PopRedo() error = %v, want ErrNothingToRedo", err)
	}

	commit(h, 0, 0, 0)
	tx, _ := h.PopUndo()
	h.PushRedo(tx)
	if !h.CanRedo() || h.CanUndo() {
		t.Error("transaction should have moved to the redo stack")
	}

	tx, _ = h.PopRedo()
	h.PushUndo(tx)
	if h.RedoCount() != 0 || h.UndoCount() != 1 {
		t.Error("transaction should have moved back to the undo stack")
	}

	h.PushRedo(&Transaction{ID: 99})
	commit(h, 1, 5000, 5000)
	if h.CanRedo() {
		t.Error("a new transaction should clear the redo stack")
	}
}

func TestMaxEntries(t *testing.T) {
	h := New(WithMaxEntries(2), WithGroupInterval(0))
	commit(h, 0, 0, 0)
	commit(h, 1, 10, 10)
	commit(h, 2, 20, 20)
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount() = %d, want 2", h.UndoCount())
	}
}
