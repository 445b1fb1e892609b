package selections

import (
	"cmp"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/rope"
)

// Dimension is a coordinate space selections can be materialized in.
type Dimension[P comparable] interface {
	// Buffer returns the snapshot anchors are resolved against.
	Buffer() *buffer.Snapshot
	// FromOffset converts a buffer offset to a position.
	FromOffset(offset int) P
	// ToOffset converts a position to a buffer offset.
	ToOffset(p P) int
	// Compare orders positions.
	Compare(a, b P) int
}

// Offsets materializes selections as buffer byte offsets.
type Offsets struct {
	Snapshot *buffer.Snapshot
}

func (d Offsets) Buffer() *buffer.Snapshot { return d.Snapshot }
func (d Offsets) FromOffset(offset int) int { return offset }
func (d Offsets) ToOffset(p int) int { return p }
func (d Offsets) Compare(a, b int) int { return cmp.Compare(a, b) }

// Points materializes selections as buffer points.
type Points struct {
	Snapshot *buffer.Snapshot
}

func (d Points) Buffer() *buffer.Snapshot { return d.Snapshot }
func (d Points) FromOffset(offset int) rope.Point { return d.Snapshot.OffsetToPoint(offset) }
func (d Points) ToOffset(p rope.Point) int { return d.Snapshot.PointToOffset(p) }
func (d Points) Compare(a, b rope.Point) int { return a.Compare(b) }

// DisplayPoints materializes selections as display points.
type DisplayPoints struct {
	Snapshot *display.Snapshot
}

func (d DisplayPoints) Buffer() *buffer.Snapshot { return d.Snapshot.Buffer() }

func (d DisplayPoints) FromOffset(offset int) display.DisplayPoint {
	return d.Snapshot.OffsetToDisplayPoint(offset, rope.Left)
}

func (d DisplayPoints) ToOffset(p display.DisplayPoint) int {
	return d.Snapshot.DisplayPointToOffset(p, rope.Left)
}

func (d DisplayPoints) Compare(a, b display.DisplayPoint) int { return a.Compare(b) }
