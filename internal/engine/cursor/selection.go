package cursor

import "fmt"

// Selection is a range of text between two positions of type P.
// Start is never after End; Reversed records that the head is at Start.
// When Start == End the selection is a cursor.
type Selection[P comparable] struct {
	ID       uint64
	Start    P
	End      P
	Reversed bool
	Goal     Goal
}

// NewCursor creates an empty selection at p.
func NewCursor[P comparable](id uint64, p P) Selection[P] {
	return Selection[P]{ID: id, Start: p, End: p}
}

// NewSelection creates a selection from tail to head, ordering the
// endpoints with cmp.
func NewSelection[P comparable](id uint64, tail, head P, cmp func(a, b P) int) Selection[P] {
	if cmp(head, tail) < 0 {
		return Selection[P]{ID: id, Start: head, End: tail, Reversed: true}
	}
	return Selection[P]{ID: id, Start: tail, End: head}
}

// IsEmpty returns true if the selection is a cursor.
func (s Selection[P]) IsEmpty() bool {
	return s.Start == s.End
}

// Head returns the end that moves when the selection is extended.
func (s Selection[P]) Head() P {
	if s.Reversed {
		return s.Start
	}
	return s.End
}

// Tail returns the end that stays put when the selection is extended.
func (s Selection[P]) Tail() P {
	if s.Reversed {
		return s.End
	}
	return s.Start
}

// SetHead moves the head to head, flipping the selection when the head
// crosses the tail.
func (s *Selection[P]) SetHead(head P, goal Goal, cmp func(a, b P) int) {
	if cmp(head, s.Tail()) < 0 {
		if !s.Reversed {
			s.End = s.Start
			s.Reversed = true
		}
		s.Start = head
	} else {
		if s.Reversed {
			s.Start = s.End
			s.Reversed = false
		}
		s.End = head
	}
	s.Goal = goal
}

// SetTail moves the tail to tail, flipping the selection when the tail
// crosses the head.
func (s *Selection[P]) SetTail(tail P, cmp func(a, b P) int) {
	head := s.Head()
	if cmp(tail, head) <= 0 {
		s.Start, s.End, s.Reversed = tail, head, false
	} else {
		s.Start, s.End, s.Reversed = head, tail, true
	}
}

// CollapseTo turns the selection into a cursor at p.
func (s *Selection[P]) CollapseTo(p P, goal Goal) {
	s.Start = p
	s.End = p
	s.Reversed = false
	s.Goal = goal
}

// String returns a human-readable representation of the selection.
func (s Selection[P]) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor#%d(%v)", s.ID, s.Start)
	}
	dir := "→"
	if s.Reversed {
		dir = "←"
	}
	return fmt.Sprintf("Selection#%d(%v%s%v)", s.ID, s.Start, dir, s.End)
}

// Map converts a selection to another position type.
func Map[P, Q comparable](s Selection[P], f func(P) Q) Selection[Q] {
	return Selection[Q]{
		ID:       s.ID,
		Start:    f(s.Start),
		End:      f(s.End),
		Reversed: s.Reversed,
		Goal:     s.Goal,
	}
}

// CompareInts orders int positions.
func CompareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
