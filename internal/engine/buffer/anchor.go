package buffer

import "fmt"

type anchorEdge uint8

const (
	edgeNone anchorEdge = iota
	edgeMin
	edgeMax
)

// Anchor is a position that stays attached to the surrounding text as the
// buffer is edited. Anchors are plain values; resolving one against any
// later snapshot of the same buffer yields its current offset.
type Anchor struct {
	offset  int
	version int
	bias    Bias
	edge    anchorEdge
}

var (
	// AnchorMin always resolves to the start of the buffer.
	AnchorMin = Anchor{edge: edgeMin, bias: Left}

	// AnchorMax always resolves to the end of the buffer.
	AnchorMax = Anchor{edge: edgeMax, bias: Right}
)

// Bias returns the side of an insertion at the anchor's position that the
// anchor stays on.
func (a Anchor) Bias() Bias {
	return a.bias
}

// IsMin returns true if a is AnchorMin.
func (a Anchor) IsMin() bool {
	return a.edge == edgeMin
}

// IsMax returns true if a is AnchorMax.
func (a Anchor) IsMax() bool {
	return a.edge == edgeMax
}

// Cmp orders two anchors by their resolved offsets in s, then by bias.
func (a Anchor) Cmp(other Anchor, s *Snapshot) int {
	ao, bo := s.ResolveAnchor(a), s.ResolveAnchor(other)
	switch {
	case ao < bo:
		return -1
	case ao > bo:
		return 1
	case a.bias < other.bias:
		return -1
	case a.bias > other.bias:
		return 1
	}
	return 0
}

// BiasLeft returns an anchor at the same position with Left bias.
func (a Anchor) BiasLeft(s *Snapshot) Anchor {
	if a.bias == Left {
		return a
	}
	return s.AnchorBefore(s.ResolveAnchor(a))
}

// BiasRight returns an anchor at the same position with Right bias.
func (a Anchor) BiasRight(s *Snapshot) Anchor {
	if a.bias == Right {
		return a
	}
	return s.AnchorAfter(s.ResolveAnchor(a))
}

// String returns a human-readable representation of the anchor.
func (a Anchor) String() string {
	switch a.edge {
	case edgeMin:
		return "Anchor(min)"
	case edgeMax:
		return "Anchor(max)"
	}
	return fmt.Sprintf("Anchor(%d@v%d %v)", a.offset, a.version, a.bias)
}
