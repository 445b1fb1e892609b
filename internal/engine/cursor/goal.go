package cursor

import "fmt"

// GoalKind identifies what a Goal remembers.
type GoalKind uint8

const (
	// GoalNone means no horizontal position is remembered.
	GoalNone GoalKind = iota
	// GoalHorizontalPosition remembers a single x position.
	GoalHorizontalPosition
	// GoalHorizontalRange remembers an x range for column selections.
	GoalHorizontalRange
)

// Goal is the horizontal position a selection tries to return to during
// vertical motion. Positions are in pixels.
type Goal struct {
	Kind  GoalKind
	X     float64
	Start float64
	End   float64
}

// NoGoal returns the empty goal.
func NoGoal() Goal {
	return Goal{}
}

// HorizontalPosition returns a goal at x.
func HorizontalPosition(x float64) Goal {
	return Goal{Kind: GoalHorizontalPosition, X: x}
}

// HorizontalRange returns a goal spanning [start, end].
func HorizontalRange(start, end float64) Goal {
	return Goal{Kind: GoalHorizontalRange, Start: start, End: end}
}

// TargetX returns the x position vertical motion should aim for, and false
// when no position is remembered.
func (g Goal) TargetX() (float64, bool) {
	switch g.Kind {
	case GoalHorizontalPosition:
		return g.X, true
	case GoalHorizontalRange:
		return g.End, true
	}
	return 0, false
}

// String returns a human-readable representation of the goal.
func (g Goal) String() string {
	switch g.Kind {
	case GoalHorizontalPosition:
		return fmt.Sprintf("HorizontalPosition(%g)", g.X)
	case GoalHorizontalRange:
		return fmt.Sprintf("HorizontalRange(%g..%g)", g.Start, g.End)
	}
	return "None"
}

// SelectMode is the granularity at which a pending selection grows.
type SelectMode uint8

const (
	SelectCharacter SelectMode = iota
	SelectWord
	SelectLine
	SelectAll
)

// String returns the mode name.
func (m SelectMode) String() string {
	switch m {
	case SelectWord:
		return "word"
	case SelectLine:
		return "line"
	case SelectAll:
		return "all"
	}
	return "character"
}
