package display

import "github.com/zakuhq/zaku/internal/shaping"

// LayoutDetails carries what is needed to shape display rows.
type LayoutDetails struct {
	Shaper   shaping.Shaper
	FontSize float64
}

// DefaultLayoutDetails shapes rows on a terminal grid where one cell is one
// pixel wide.
func DefaultLayoutDetails() LayoutDetails {
	return LayoutDetails{Shaper: shaping.Monospace{Advance: 1}, FontSize: 1}
}

// LayoutRow shapes the display text of row.
func (s *Snapshot) LayoutRow(row DisplayRow, details LayoutDetails) *shaping.LineLayout {
	return details.Shaper.ShapeLine(s.LineText(row), details.FontSize)
}

// XForDisplayPoint returns the x position of p in its shaped row.
func (s *Snapshot) XForDisplayPoint(p DisplayPoint, details LayoutDetails) float64 {
	return s.LayoutRow(p.Row, details).XForIndex(int(p.Column))
}

// DisplayColumnForX returns the display column in row closest to x.
func (s *Snapshot) DisplayColumnForX(row DisplayRow, x float64, details LayoutDetails) uint32 {
	return uint32(s.LayoutRow(row, details).ClosestIndexForX(x))
}

// EmAdvance returns the width of one cell.
func (d LayoutDetails) EmAdvance() float64 {
	return d.Shaper.ShapeLine("", d.FontSize).EmAdvance
}
