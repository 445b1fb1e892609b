// Package selections manages the set of selections of an editor.
//
// Selections are stored as buffer anchors, never as offsets, so they
// survive edits without being updated: each query resolves them against
// the snapshot at hand. Dimension picks the coordinate space they are
// materialized in (Offsets, Points, or DisplayPoints).
//
// All changes go through Collection.ChangeWith, which hands out a Mutator
// and reports whether the visible selections changed:
//
//	changed := sels.ChangeWith(displaySnap, func(m *selections.Mutator) {
//		m.MoveCursorsWith(func(d *display.Snapshot, head display.DisplayPoint, goal cursor.Goal) (display.DisplayPoint, cursor.Goal) {
//			return movement.Right(d, head), cursor.NoGoal()
//		})
//	})
//
// The collection is never empty. Committed (disjoint) selections are kept
// sorted and non-overlapping; overlapping selections are merged according
// to ShouldMerge.
package selections
