// Package cursor provides the selection value types shared by the editor
// layers.
//
// A Selection is generic over its position type, so the same value can
// hold byte offsets, buffer points, display points, or buffer anchors:
//
//	sel := cursor.NewCursor(1, 10)                          // cursor at offset 10
//	sel.SetHead(20, cursor.NoGoal(), cursor.CompareInts)    // select 10..20
//	sel.SetHead(5, cursor.NoGoal(), cursor.CompareInts)     // reversed, 5..10
//
// Start is never after End. Reversed records that the head is at Start, so
// the direction the user extended the selection in is preserved.
//
// Goal remembers the horizontal position vertical motion aims for, so a
// cursor moving through a short line returns to its column on the next
// long one.
//
// Selections are immutable values apart from the pointer-receiver
// setters; they are safe to copy and share.
package cursor
