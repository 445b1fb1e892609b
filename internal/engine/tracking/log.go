package tracking

import "github.com/zakuhq/zaku/internal/engine/rope"

// Log is the append-only change history of a buffer.
// Its length is the buffer version.
type Log struct {
	changes []Change
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append records a change and returns its index.
func (l *Log) Append(c Change) int {
	l.changes = append(l.changes, c)
	return len(l.changes) - 1
}

// Version returns the number of recorded changes.
func (l *Log) Version() int {
	return len(l.changes)
}

// Change returns the change recorded at index.
func (l *Log) Change(index int) Change {
	return l.changes[index]
}

// View returns an immutable view of the changes recorded so far.
// Later appends never modify a view.
func (l *Log) View() View {
	return View{changes: l.changes[:len(l.changes):len(l.changes)]}
}

// View is an immutable prefix of a Log.
type View struct {
	changes []Change
}

// Version returns the number of changes in the view.
func (v View) Version() int {
	return len(v.changes)
}

// Since returns the changes recorded after version.
func (v View) Since(version int) []Change {
	version = min(max(version, 0), len(v.changes))
	return v.changes[version:]
}

// tombstone remembers where a position sat inside the text replaced by the
// change at index.
type tombstone struct {
	change int
	rel    int
}

// Resolve maps a byte offset captured at version to the corresponding
// offset at the view's version.
//
// Positions inside or at the end of a replaced range collapse to the end of
// the new text, as do positions at the start of the range with Right bias.
// Such positions are buried; when a later change inverts the burying change,
// the position is restored to its original distance from the range start.
func (v View) Resolve(offset, version int, bias rope.Bias) int {
	var buried []tombstone
	for i := max(version, 0); i < len(v.changes); i++ {
		c := v.changes[i]
		if n := len(buried); n > 0 && c.Inverts != NoInverse && buried[n-1].change == c.Inverts {
			offset = c.Start + min(buried[n-1].rel, len(c.NewText))
			buried = buried[:n-1]
			continue
		}

		start, end := c.Start, c.Start+len(c.OldText)
		switch {
		case offset < start:
		case offset > end:
			offset += c.Delta()
		case offset == start && bias == rope.Left:
		default:
			buried = append(buried, tombstone{change: i, rel: offset - start})
			offset = start + len(c.NewText)
		}
	}
	return offset
}

// Patch returns the composed edits between version and the view's version.
func (v View) Patch(version int) Patch {
	var p Patch
	for _, c := range v.Since(version) {
		p.Push(c)
	}
	return p
}
