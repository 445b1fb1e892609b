package renderer

import (
	"fmt"
	"math"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/cursor"
	"github.com/zakuhq/zaku/internal/renderer/backend"
	"github.com/zakuhq/zaku/internal/renderer/viewport"
)

// EditorView is the editor state the renderer draws.
type EditorView interface {
	Snapshot() *display.Snapshot
	LayoutDetails() display.LayoutDetails
	Scroll() *viewport.Manager
	ScrollPosition() viewport.Position
	DisplaySelections() []cursor.Selection[display.DisplayPoint]
	NewestCursor() display.DisplayPoint
}

// minGutterDigits is the narrowest line number column.
const minGutterDigits = 3

// gutterWidth returns the width of the line number column for snap,
// including the separator.
func gutterWidth(snap *display.Snapshot) int {
	digits := 1
	for n := uint32(snap.MaxPoint().Row) + 1; n >= 10; n /= 10 {
		digits++
	}
	return max(digits, minGutterDigits) + 1
}

// selectionStyle returns the style of the cell at p.
func selectionStyle(sels []cursor.Selection[display.DisplayPoint], p display.DisplayPoint) backend.Style {
	for _, s := range sels {
		if s.Start.Compare(p) <= 0 && p.Compare(s.End) < 0 {
			return backend.StyleSelection
		}
	}
	return backend.StyleDefault
}

// selectsNewline reports whether a selection covers the end of row.
func selectsNewline(sels []cursor.Selection[display.DisplayPoint], row display.DisplayRow, rowLen uint32) bool {
	end := display.NewDisplayPoint(row, rowLen)
	for _, s := range sels {
		if s.Start.Compare(end) <= 0 && s.End.Row > row {
			return true
		}
	}
	return false
}

// drawEditor draws the visible rows of v and returns the screen position
// of the newest cursor, or false when it is scrolled out of view.
func (r *Renderer) drawEditor(lay Layout, v EditorView) (int, int, bool) {
	snap := v.Snapshot()
	details := v.LayoutDetails()
	em := details.EmAdvance()
	pos := v.ScrollPosition()
	top := math.Floor(pos.Y)
	scroll := cellOf(pos.X, em)
	sels := v.DisplaySelections()

	start, end := v.Scroll().VisibleRows(snap)
	for row := start; row < end; row++ {
		y := lay.Text.Y + int(float64(row)-top)
		if y < lay.Text.Y || y >= lay.Text.Y+lay.Text.Height {
			continue
		}
		if r.opts.ShowLineNumbers {
			num := fmt.Sprintf("%*d ", lay.Gutter.Width-1, uint32(row)+1)
			r.drawString(lay.Gutter, lay.Gutter.X, y, num, backend.StylePlaceholder)
		}

		l := snap.LayoutRow(row, details)
		r.drawLayout(lay.Text, y, l, scroll, func(index int) backend.Style {
			return selectionStyle(sels, display.NewDisplayPoint(row, uint32(index)))
		})
		if selectsNewline(sels, row, snap.LineLen(row)) {
			if x := cellOf(l.Width, em) - scroll; x >= 0 && x < lay.Text.Width {
				r.backend.SetContent(lay.Text.X+x, y, ' ', backend.StyleSelection)
			}
		}
	}

	// Rows past the end of the buffer.
	if r.opts.ShowLineNumbers {
		for y := lay.Text.Y + int(float64(end)-top); y < lay.Text.Y+lay.Text.Height; y++ {
			if y >= lay.Text.Y {
				r.drawString(lay.Gutter, lay.Gutter.X, y, "~", backend.StylePlaceholder)
			}
		}
	}

	head := v.NewestCursor()
	x := lay.Text.X + cellOf(snap.XForDisplayPoint(head, details), em) - scroll
	y := lay.Text.Y + int(float64(head.Row)-top)
	if !lay.Text.Contains(x, y) {
		return 0, 0, false
	}
	return x, y, true
}
