package history

import (
	"fmt"
	"time"
)

// TransactionID identifies an undo entry.
type TransactionID uint64

// String returns a human-readable representation of the id.
func (id TransactionID) String() string {
	return fmt.Sprintf("tx%d", uint64(id))
}

// Transaction is a group of changes that undo and redo treat as one step.
type Transaction struct {
	ID TransactionID

	// Changes holds change-log indices in application order.
	Changes []int

	FirstEditAt time.Time
	LastEditAt  time.Time

	// Finalized transactions never absorb later ones.
	Finalized bool
}
