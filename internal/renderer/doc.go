// Package renderer draws the editor onto a character-cell backend.
//
// A frame has three areas stacked top to bottom:
//
//	┌─────────────────────────────────────────┐
//	│ gutter │ editor text                    │
//	│        │                                │
//	├─────────────────────────────────────────┤
//	│ status line                             │
//	├─────────────────────────────────────────┤
//	│ line input                              │
//	└─────────────────────────────────────────┘
//
// The renderer reads everything it draws from the editor and the line
// input: visible rows come from the editor's scroll manager, cell
// positions from shaped display rows. It never changes either model.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(renderer.Frame{Editor: ed, Input: input})
package renderer
