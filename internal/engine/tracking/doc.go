// Package tracking records buffer changes so positions survive edits.
//
// Every edit applied to a buffer is appended to a Log as a Change. A
// position captured at some log version is resolved against a later
// version by replaying the changes in between. Changes produced by undo and
// redo name the change they invert; positions swallowed by a change are
// remembered and restored exactly when that change is inverted.
//
// # Core Components
//
//   - [Change]: a single replacement with its old and new text
//   - [Log]: the append-only change history of one buffer
//   - [View]: an immutable prefix of a Log, held by snapshots
//   - [Patch]: a composed set of edits describing old → new coordinates
//
// # Usage
//
//	log := tracking.NewLog()
//	v0 := log.View()
//	log.Append(tracking.Change{Start: 0, NewText: "hi ", Inverts: tracking.NoInverse})
//	pos := log.View().Resolve(5, v0.Version(), rope.Right) // 8
//
// # Thread Safety
//
// A Log must be appended from a single goroutine. Views are immutable and
// can be freely shared across goroutines.
package tracking
