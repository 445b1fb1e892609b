package tracking

import "fmt"

// NoInverse marks a change that does not undo another change.
const NoInverse = -1

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the length of the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Change represents a single replacement applied to the buffer.
type Change struct {
	// Start is the byte offset of the replaced range in the old text.
	Start int

	// OldText is the text that was removed (empty for inserts).
	OldText string

	// NewText is the text that was added (empty for deletes).
	NewText string

	// Inverts is the log index of the change this one undoes, or NoInverse.
	Inverts int
}

// OldRange returns the affected range in the text before the change.
func (c Change) OldRange() Range {
	return Range{Start: c.Start, End: c.Start + len(c.OldText)}
}

// NewRange returns the affected range in the text after the change.
func (c Change) NewRange() Range {
	return Range{Start: c.Start, End: c.Start + len(c.NewText)}
}

// Delta returns the change in length caused by this change.
func (c Change) Delta() int {
	return len(c.NewText) - len(c.OldText)
}

// Invert returns the change that undoes c, which was recorded at index.
func (c Change) Invert(index int) Change {
	return Change{
		Start:   c.Start,
		OldText: c.NewText,
		NewText: c.OldText,
		Inverts: index,
	}
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	return fmt.Sprintf("Change(%v %q→%q)", c.OldRange(), c.OldText, c.NewText)
}
