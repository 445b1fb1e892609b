package tracking

// Edit maps a range of old text to the range of new text replacing it.
type Edit struct {
	Old Range
	New Range
}

// Delta returns the change in length caused by the edit.
func (e Edit) Delta() int {
	return e.New.Len() - e.Old.Len()
}

// Patch is a sorted list of disjoint edits. Old ranges are in the
// coordinates of the text before the first pushed change; New ranges are in
// the coordinates after the last one.
type Patch struct {
	edits []Edit
}

// Edits returns the composed edits.
func (p *Patch) Edits() []Edit {
	return p.edits
}

// IsEmpty returns true if no edits have been pushed.
func (p *Patch) IsEmpty() bool {
	return len(p.edits) == 0
}

// Clear removes all edits.
func (p *Patch) Clear() {
	p.edits = nil
}

// Push composes a change, expressed in the patch's new coordinates, onto
// the patch. Edits overlapping or touching the change are merged with it.
func (p *Patch) Push(c Change) {
	old := c.OldRange()
	delta := c.Delta()

	first := 0
	deltaBefore := 0
	for first < len(p.edits) && p.edits[first].New.End < old.Start {
		deltaBefore += p.edits[first].Delta()
		first++
	}
	last := first
	deltaAfter := deltaBefore
	for last < len(p.edits) && p.edits[last].New.Start <= old.End {
		deltaAfter += p.edits[last].Delta()
		last++
	}

	newStart, newEnd := old.Start, old.End
	if last > first {
		newStart = min(newStart, p.edits[first].New.Start)
		newEnd = max(newEnd, p.edits[last-1].New.End)
	}
	merged := Edit{
		Old: Range{Start: newStart - deltaBefore, End: newEnd - deltaAfter},
		New: Range{Start: newStart, End: newEnd + delta},
	}

	tail := p.edits[last:]
	edits := make([]Edit, 0, first+1+len(tail))
	edits = append(edits, p.edits[:first]...)
	if !(merged.Old.IsEmpty() && merged.New.IsEmpty()) {
		edits = append(edits, merged)
	}
	for _, e := range tail {
		e.New.Start += delta
		e.New.End += delta
		edits = append(edits, e)
	}
	p.edits = edits
}
