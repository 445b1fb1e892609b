package renderer

import (
	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/lineedit"
	"github.com/zakuhq/zaku/internal/renderer/backend"
	"github.com/zakuhq/zaku/internal/shaping"
)

// InputView is the line input state the renderer draws.
type InputView interface {
	Layout(bounds lineedit.Bounds) *shaping.LineLayout
	LayoutDetails() display.LayoutDetails
	ScrollX() float64
	CursorX() (float64, bool)
	ShowsPlaceholder() bool
	Placeholder() string
	SelectedRange() (buffer.Range, bool)
	MarkedRange() (buffer.Range, bool)
	DisplayRange(r buffer.Range) buffer.Range
}

// InputBounds returns the pixel bounds of the input area, as the line
// input expects them for layout and mouse handling.
func InputBounds(area Rect, details display.LayoutDetails) lineedit.Bounds {
	em := details.EmAdvance()
	return lineedit.Bounds{
		X:      float64(area.X) * em,
		Y:      float64(area.Y),
		Width:  float64(area.Width) * em,
		Height: float64(area.Height),
	}
}

// drawInput lays out and draws in and returns the screen column of its
// cursor.
func (r *Renderer) drawInput(area Rect, in InputView) int {
	details := in.LayoutDetails()
	l := in.Layout(InputBounds(area, details))
	if in.ShowsPlaceholder() {
		ph := details.Shaper.ShapeLine(in.Placeholder(), details.FontSize)
		r.drawLayout(area, area.Y, ph, 0, func(int) backend.Style {
			return backend.StylePlaceholder
		})
		return area.X
	}

	sel, _ := in.SelectedRange()
	sel = in.DisplayRange(sel)
	marked, hasMarked := in.MarkedRange()
	if hasMarked {
		marked = in.DisplayRange(marked)
	}
	scroll := cellOf(in.ScrollX(), l.EmAdvance)
	r.drawLayout(area, area.Y, l, scroll, func(index int) backend.Style {
		switch {
		case hasMarked && index >= marked.Start && index < marked.End:
			return backend.StyleMarked
		case index >= sel.Start && index < sel.End:
			return backend.StyleSelection
		default:
			return backend.StyleDefault
		}
	})

	x, _ := in.CursorX()
	return area.X + cellOf(x, l.EmAdvance)
}
