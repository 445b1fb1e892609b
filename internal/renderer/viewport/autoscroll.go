package viewport

import "github.com/zakuhq/zaku/internal/engine/buffer"

// Strategy selects where an autoscroll places its target.
type Strategy uint8

const (
	// StrategyFit scrolls the least amount needed to show every selection,
	// keeping the vertical scroll margin.
	StrategyFit Strategy = iota
	// StrategyNewest is StrategyFit for the newest selection only.
	StrategyNewest
	// StrategyCenter centers the target.
	StrategyCenter
	// StrategyFocused centers the target when it lies outside the margin.
	StrategyFocused
	// StrategyTop puts the target on the first visible row.
	StrategyTop
	// StrategyBottom puts the target on the last visible row.
	StrategyBottom
	// StrategyTopRelative puts the target N rows below the top.
	StrategyTopRelative
	// StrategyBottomRelative puts the target N rows above the bottom.
	StrategyBottomRelative
	// StrategyNext cycles Center, Top and Bottom when repeated on an
	// unchanged target.
	StrategyNext
)

var strategyNames = [...]string{
	StrategyFit:            "fit",
	StrategyNewest:         "newest",
	StrategyCenter:         "center",
	StrategyFocused:        "focused",
	StrategyTop:            "top",
	StrategyBottom:         "bottom",
	StrategyTopRelative:    "top_relative",
	StrategyBottomRelative: "bottom_relative",
	StrategyNext:           "next",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return "unknown"
}

func (s Strategy) next() Strategy {
	switch s {
	case StrategyCenter:
		return StrategyTop
	case StrategyTop:
		return StrategyBottom
	default:
		return StrategyCenter
	}
}

// Autoscroll is a request to bring a target into view.
type Autoscroll struct {
	Strategy Strategy
	// Rows is the distance used by the relative strategies.
	Rows float64

	anchor    buffer.Anchor
	hasAnchor bool
}

// Fit reveals all selections.
func Fit() Autoscroll { return Autoscroll{Strategy: StrategyFit} }

// Newest reveals the newest selection.
func Newest() Autoscroll { return Autoscroll{Strategy: StrategyNewest} }

// Center centers the newest selection.
func Center() Autoscroll { return Autoscroll{Strategy: StrategyCenter} }

// Focused centers the newest selection within the scroll margin.
func Focused() Autoscroll { return Autoscroll{Strategy: StrategyFocused} }

// Top scrolls the newest selection to the top.
func Top() Autoscroll { return Autoscroll{Strategy: StrategyTop} }

// Bottom scrolls the newest selection to the bottom.
func Bottom() Autoscroll { return Autoscroll{Strategy: StrategyBottom} }

// TopRelative scrolls the newest selection to n rows below the top.
func TopRelative(n float64) Autoscroll {
	return Autoscroll{Strategy: StrategyTopRelative, Rows: n}
}

// BottomRelative scrolls the newest selection to n rows above the bottom.
func BottomRelative(n float64) Autoscroll {
	return Autoscroll{Strategy: StrategyBottomRelative, Rows: n}
}

// Next cycles between Center, Top and Bottom.
func Next() Autoscroll { return Autoscroll{Strategy: StrategyNext} }

// For returns a copy of a that reveals anchor instead of the selections.
func (a Autoscroll) For(anchor buffer.Anchor) Autoscroll {
	a.anchor = anchor
	a.hasAnchor = true
	return a
}

// Anchor returns the explicit target of the request, if any.
func (a Autoscroll) Anchor() (buffer.Anchor, bool) {
	return a.anchor, a.hasAnchor
}
