// Package movement implements cursor motion over display and buffer
// snapshots.
//
// All functions are pure: they take a snapshot and a position and return
// a new position, clipped to a valid char boundary. Display-level
// functions (Left, Right, Up, Down, word motion) work in tab-expanded
// coordinates; the *Offset variants work directly on buffer offsets and
// are used by single-line editors that have no display map.
//
// Word motion classifies chars with the snapshot's CharClassifier and
// finds boundaries with FindPrecedingBoundaryOffset and
// FindBoundaryOffset:
//
//	offset := movement.PreviousWordStartOffset(snap, cursor)
//	offset = movement.AdjustGreedyDeletionOffset(snap, cursor, offset, false)
package movement
