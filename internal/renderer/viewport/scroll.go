package viewport

import (
	"fmt"
	"math"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/rope"
)

// Position is a scroll position. Y is measured in display rows and may be
// fractional; X is measured in pixels.
type Position struct {
	X float64
	Y float64
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// ScrollAnchor pins the scroll position to the text. The top of the
// viewport sits Offset.Y rows below the display row containing Anchor, so
// edits above the viewport do not move the visible text.
type ScrollAnchor struct {
	Anchor buffer.Anchor
	Offset Position
}

// NewScrollAnchor returns an anchor at the start of the buffer.
func NewScrollAnchor() ScrollAnchor {
	return ScrollAnchor{Anchor: buffer.AnchorMin}
}

// Position resolves the anchor against m.
func (a ScrollAnchor) Position(m *display.Snapshot) Position {
	row := m.AnchorToDisplayPoint(a.Anchor).Row
	return Position{X: a.Offset.X, Y: float64(row) + a.Offset.Y}
}

// anchorFor anchors p. p must already be clamped.
func anchorFor(m *display.Snapshot, p Position) ScrollAnchor {
	maxRow := float64(m.MaxPoint().Row)
	row := math.Min(math.Floor(p.Y), maxRow)
	if row <= 0 {
		return ScrollAnchor{Anchor: buffer.AnchorMin, Offset: p}
	}
	anchor := m.DisplayPointToAnchor(display.NewDisplayPoint(display.DisplayRow(row), 0), rope.Left)
	return ScrollAnchor{
		Anchor: anchor,
		Offset: Position{X: p.X, Y: p.Y - row},
	}
}

// ScrollBeyondLastLine controls how far past the last line the view may
// scroll.
type ScrollBeyondLastLine uint8

const (
	// ScrollBeyondOnePage lets the last line reach the top of the viewport.
	ScrollBeyondOnePage ScrollBeyondLastLine = iota
	// ScrollBeyondOff keeps the last line at the bottom of the viewport.
	ScrollBeyondOff
	// ScrollBeyondVerticalMargin allows the vertical scroll margin below
	// the last line.
	ScrollBeyondVerticalMargin
)

var scrollBeyondNames = map[ScrollBeyondLastLine]string{
	ScrollBeyondOnePage:        "one_page",
	ScrollBeyondOff:            "off",
	ScrollBeyondVerticalMargin: "vertical_scroll_margin",
}

func (s ScrollBeyondLastLine) String() string {
	if name, ok := scrollBeyondNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseScrollBeyondLastLine parses a policy name as written in settings.
func ParseScrollBeyondLastLine(name string) (ScrollBeyondLastLine, error) {
	for policy, n := range scrollBeyondNames {
		if n == name {
			return policy, nil
		}
	}
	return ScrollBeyondOnePage, fmt.Errorf("unknown scroll_beyond_last_line %q", name)
}
