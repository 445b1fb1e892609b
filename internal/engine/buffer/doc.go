// Package buffer provides a thread-safe text buffer built on top of the rope
// data structure. It is the primary interface for text manipulation in the
// editor engine.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Multi-range edits applied as one step
//   - Transactions with time-based grouping, undo and redo
//   - Anchors that follow the text they were created in, across edits and
//     across undo and redo
//   - Subscriptions that accumulate composed edits for derived views
//   - Immutable snapshots for concurrent readers
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	snap := buf.Snapshot()
//	anchor := snap.AnchorBefore(7)
//
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.Snapshot().ResolveAnchor(anchor)  // 7
//
//	buf.Undo()  // "Hello, World!"
//
// Position Types:
//
//   - int offsets: raw byte positions in the buffer
//   - Point: row and column, 0-indexed, column in bytes
//   - PointUTF16: row and column with the column in UTF-16 code units, for
//     hosts whose input subsystems speak UTF-16
//
// Text inside the buffer always uses "\n" line endings. The line ending
// detected on load is applied again when the buffer is written out.
package buffer
