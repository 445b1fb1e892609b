package buffer

import (
	"sync"

	"github.com/zakuhq/zaku/internal/engine/tracking"
)

// Subscription accumulates buffer edits between calls to Consume.
type Subscription struct {
	mu    sync.Mutex
	patch tracking.Patch
}

func (s *Subscription) push(c tracking.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patch.Push(c)
}

// Consume returns the composed edits since the previous call and resets
// the subscription. Old ranges are in the coordinates of the text at the
// previous call; new ranges are in the current coordinates.
func (s *Subscription) Consume() []tracking.Edit {
	s.mu.Lock()
	defer s.mu.Unlock()
	edits := s.patch.Edits()
	s.patch.Clear()
	return edits
}
