// Package display maps buffer text to the coordinates it is drawn in.
//
// The tab map expands each tab to the next tab stop, measured in chars, up
// to a maximum expansion column; past that column a tab renders as a single
// space so that pathological lines stay cheap. TabSnapshot converts between
// buffer points and tab points in both directions and iterates display
// text with tabs replaced by spaces.
//
// Snapshot combines a buffer snapshot with a tab snapshot and exposes the
// display-row API used by movement, selections, and rendering. Map keeps a
// snapshot in step with a live buffer by replaying the buffer's edits
// through TabMap.Sync.
//
// There is no soft wrap: display rows are buffer rows.
package display
