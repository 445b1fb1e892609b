package renderer

import (
	"math"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/zakuhq/zaku/internal/renderer/backend"
	"github.com/zakuhq/zaku/internal/shaping"
)

// cellOf converts a pixel position to a cell column.
func cellOf(x, em float64) int {
	if em <= 0 {
		em = 1
	}
	return int(math.Round(x / em))
}

// drawLayout draws a shaped line on row y of area, skipping the first
// scroll cells. style picks the style of the cluster at a byte index.
func (r *Renderer) drawLayout(area Rect, y int, l *shaping.LineLayout, scroll int, style func(index int) backend.Style) {
	for i, g := range l.Glyphs {
		end := len(l.Text)
		if i+1 < len(l.Glyphs) {
			end = l.Glyphs[i+1].Index
		}
		col := cellOf(g.X, l.EmAdvance) - scroll
		if col < 0 {
			continue
		}
		if col+g.Cells > area.Width {
			break
		}
		ch, _ := utf8.DecodeRuneInString(l.Text[g.Index:end])
		if ch == '\t' {
			ch = ' '
		}
		r.backend.SetContent(area.X+col, y, ch, style(g.Index))
	}
}

// drawString draws s from column x of row y, clipped to area, and returns
// the column after the last cell drawn.
func (r *Renderer) drawString(area Rect, x, y int, s string, style backend.Style) int {
	for _, ch := range s {
		w := max(runewidth.RuneWidth(ch), 1)
		if x+w > area.X+area.Width {
			break
		}
		r.backend.SetContent(x, y, ch, style)
		x += w
	}
	return x
}

// fill paints every cell of area with a space in style.
func (r *Renderer) fill(area Rect, style backend.Style) {
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			r.backend.SetContent(x, y, ' ', style)
		}
	}
}
