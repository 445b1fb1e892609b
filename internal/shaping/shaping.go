// Package shaping lays out single lines of text on a monospace cell grid.
//
// A line is split into grapheme clusters; each cluster occupies one or more
// cells depending on its display width. Layouts answer the two questions
// the editor asks of shaped text: where does a byte index start, and which
// byte index lies under a pixel position.
package shaping

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultAdvance is the width of one cell as a fraction of the font size.
const DefaultAdvance = 0.6

// Shaper turns a line of text into a LineLayout.
type Shaper interface {
	ShapeLine(text string, fontSize float64) *LineLayout
}

// Monospace shapes text on a fixed-width grid.
type Monospace struct {
	// Advance is the cell width as a fraction of the font size.
	// Zero means DefaultAdvance.
	Advance float64

	// AmbiguousWide renders East Asian ambiguous-width characters in two
	// cells.
	AmbiguousWide bool
}

// EmAdvance returns the width of one cell at fontSize.
func (m Monospace) EmAdvance(fontSize float64) float64 {
	advance := m.Advance
	if advance <= 0 {
		advance = DefaultAdvance
	}
	return advance * fontSize
}

// ShapeLine lays out text. Text must not contain newlines.
func (m Monospace) ShapeLine(text string, fontSize float64) *LineLayout {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = m.AmbiguousWide
	em := m.EmAdvance(fontSize)

	l := &LineLayout{Text: text, FontSize: fontSize, EmAdvance: em}
	x := 0.0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		cells := clusterCells(cond, g.Str())
		l.Glyphs = append(l.Glyphs, Glyph{Index: from, X: x, Cells: cells})
		x += float64(cells) * em
	}
	l.Width = x
	return l
}

// clusterCells returns the number of cells a grapheme cluster occupies.
// Every cluster takes at least one cell so that the cursor can land on it.
func clusterCells(cond *runewidth.Condition, cluster string) int {
	w := cond.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 1)
}

// Glyph is one positioned grapheme cluster.
type Glyph struct {
	// Index is the byte offset of the cluster in the line.
	Index int
	// X is the left edge in pixels.
	X float64
	// Cells is the number of grid cells the cluster covers.
	Cells int
}

// LineLayout is a shaped line.
type LineLayout struct {
	Text      string
	FontSize  float64
	EmAdvance float64
	Width     float64
	Glyphs    []Glyph
}

// Len returns the byte length of the line.
func (l *LineLayout) Len() int {
	return len(l.Text)
}

// XForIndex returns the x position of the cluster starting at or after
// byte index. Indices past the last cluster map to the line width.
func (l *LineLayout) XForIndex(index int) float64 {
	for _, g := range l.Glyphs {
		if g.Index >= index {
			return g.X
		}
	}
	return l.Width
}

// IndexForX returns the byte index of the cluster under x, and false when
// x is outside the line.
func (l *LineLayout) IndexForX(x float64) (int, bool) {
	if x < 0 || x >= l.Width {
		return 0, false
	}
	for i := len(l.Glyphs) - 1; i >= 0; i-- {
		if l.Glyphs[i].X <= x {
			return l.Glyphs[i].Index, true
		}
	}
	return 0, false
}

// ClosestIndexForX returns the cluster boundary nearest to x.
func (l *LineLayout) ClosestIndexForX(x float64) int {
	if x <= 0 || len(l.Glyphs) == 0 {
		return 0
	}
	for i, g := range l.Glyphs {
		right := l.Width
		if i+1 < len(l.Glyphs) {
			right = l.Glyphs[i+1].X
		}
		if x < right {
			if x-g.X < right-x {
				return g.Index
			}
			if i+1 < len(l.Glyphs) {
				return l.Glyphs[i+1].Index
			}
			return len(l.Text)
		}
	}
	return len(l.Text)
}

// CellForIndex returns the grid column at which the cluster containing
// byte index starts.
func (l *LineLayout) CellForIndex(index int) int {
	if l.EmAdvance <= 0 {
		return 0
	}
	return int(l.XForIndex(index)/l.EmAdvance + 0.5)
}
