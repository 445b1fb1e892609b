// Package viewport keeps the visible region of an editor in sync with its
// selections.
//
// A Manager holds the scroll position as a ScrollAnchor, so the visible text
// stays put while the buffer is edited above it, and a pending Autoscroll
// request. After every dispatch the editor calls Autoscroll, which moves the
// viewport according to the request's Strategy and clamps the result to the
// scrollable range.
package viewport

import (
	"math"
	"sync"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/cursor"
)

// DefaultVerticalScrollMargin is the number of rows kept between the cursor
// and the edges of the viewport.
const DefaultVerticalScrollMargin = 3

// Option configures a Manager.
type Option func(*Manager)

// WithVerticalScrollMargin sets the vertical scroll margin in rows.
func WithVerticalScrollMargin(rows float64) Option {
	return func(v *Manager) {
		v.verticalMargin = max(rows, 0)
	}
}

// WithHorizontalScrollMargin sets the horizontal scroll margin in ems.
func WithHorizontalScrollMargin(ems float64) Option {
	return func(v *Manager) {
		v.horizontalMargin = max(ems, 0)
	}
}

// WithScrollBeyondLastLine sets how far past the last line the view may
// scroll.
func WithScrollBeyondLastLine(policy ScrollBeyondLastLine) Option {
	return func(v *Manager) {
		v.beyondLastLine = policy
	}
}

// WithAutoHeight marks the editor as sized to its content. Autoscroll then
// keeps no margin around the target.
func WithAutoHeight() Option {
	return func(v *Manager) {
		v.autoHeight = true
	}
}

type lastAutoscroll struct {
	y           float64
	top, bottom float64
	strategy    Strategy
}

// Manager owns the scroll position of an editor.
type Manager struct {
	mu sync.RWMutex

	anchor  ScrollAnchor
	request *Autoscroll
	last    *lastAutoscroll

	// Size in pixels
	width      float64
	height     float64
	lineHeight float64

	verticalMargin   float64
	horizontalMargin float64
	beyondLastLine   ScrollBeyondLastLine
	autoHeight       bool
}

// NewManager creates a manager scrolled to the top of the buffer.
func NewManager(opts ...Option) *Manager {
	v := &Manager{
		anchor:         NewScrollAnchor(),
		lineHeight:     1,
		verticalMargin: DefaultVerticalScrollMargin,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetVerticalScrollMargin updates the vertical scroll margin.
func (v *Manager) SetVerticalScrollMargin(rows float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.verticalMargin = max(rows, 0)
}

// SetHorizontalScrollMargin updates the horizontal scroll margin.
func (v *Manager) SetHorizontalScrollMargin(ems float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.horizontalMargin = max(ems, 0)
}

// SetScrollBeyondLastLine updates the overscroll policy.
func (v *Manager) SetScrollBeyondLastLine(policy ScrollBeyondLastLine) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.beyondLastLine = policy
}

// Resize sets the viewport size in pixels and the height of one row.
// A non-positive line height is treated as 1.
func (v *Manager) Resize(width, height, lineHeight float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if lineHeight <= 0 {
		lineHeight = 1
	}
	v.width = max(width, 0)
	v.height = max(height, 0)
	v.lineHeight = lineHeight
}

// Width returns the viewport width in pixels.
func (v *Manager) Width() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// VisibleLines returns the number of rows that fit in the viewport. The
// result may be fractional.
func (v *Manager) VisibleLines() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visibleLines()
}

func (v *Manager) visibleLines() float64 {
	return v.height / v.lineHeight
}

// Anchor returns the scroll anchor.
func (v *Manager) Anchor() ScrollAnchor {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.anchor
}

// SetAnchor replaces the scroll anchor without clamping.
func (v *Manager) SetAnchor(a ScrollAnchor) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.anchor = a
}

// Position returns the scroll position resolved against m.
func (v *Manager) Position(m *display.Snapshot) Position {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.anchor.Position(m)
}

// SetPosition scrolls to p, clamped to the scrollable range.
// Returns true if the position changed.
func (v *Manager) SetPosition(m *display.Snapshot, p Position) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.setPosition(m, p)
}

func (v *Manager) setPosition(m *display.Snapshot, p Position) bool {
	before := v.anchor.Position(m)
	p.Y = clamp(p.Y, 0, v.maxScrollTop(m))
	p.X = max(p.X, 0)
	v.anchor = anchorFor(m, p)
	return p != before
}

// ScrollBy scrolls vertically by rows.
func (v *Manager) ScrollBy(m *display.Snapshot, rows float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	p := v.anchor.Position(m)
	p.Y += rows
	return v.setPosition(m, p)
}

// ScrollHorizontallyBy scrolls horizontally by dx pixels.
func (v *Manager) ScrollHorizontallyBy(m *display.Snapshot, dx float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	p := v.anchor.Position(m)
	p.X += dx
	return v.setPosition(m, p)
}

// ScrollPages scrolls by a number of viewport heights.
func (v *Manager) ScrollPages(m *display.Snapshot, pages float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	p := v.anchor.Position(m)
	p.Y += pages * v.visibleLines()
	return v.setPosition(m, p)
}

// VisibleRows returns the rows at least partly visible, as [start, end).
func (v *Manager) VisibleRows(m *display.Snapshot) (start, end display.DisplayRow) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	y := v.anchor.Position(m).Y
	last := float64(m.MaxPoint().Row) + 1
	return display.DisplayRow(math.Floor(y)), display.DisplayRow(min(math.Ceil(y+v.visibleLines()), last))
}

// MaxScrollTop returns the largest allowed vertical position.
func (v *Manager) MaxScrollTop(m *display.Snapshot) float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.maxScrollTop(m)
}

func (v *Manager) maxScrollTop(m *display.Snapshot) float64 {
	maxRow := float64(m.MaxPoint().Row)
	switch v.beyondLastLine {
	case ScrollBeyondOff:
		return max(maxRow+1-v.visibleLines(), 0)
	case ScrollBeyondVerticalMargin:
		return max(maxRow+1+v.verticalMargin-v.visibleLines(), 0)
	default:
		return maxRow
	}
}

// RequestAutoscroll records a request to be carried out by the next call
// to Autoscroll. A later request replaces an earlier one.
func (v *Manager) RequestAutoscroll(a Autoscroll) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.request = &a
}

// PendingAutoscroll returns the recorded request, if any.
func (v *Manager) PendingAutoscroll() (Autoscroll, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.request == nil {
		return Autoscroll{}, false
	}
	return *v.request, true
}

// Autoscroll carries out the pending request against the given selections,
// which must be sorted by start and non-empty. It returns true if the
// scroll position changed.
func (v *Manager) Autoscroll(m *display.Snapshot, sels []cursor.Selection[display.DisplayPoint], newest cursor.Selection[display.DisplayPoint], details display.LayoutDetails) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.request == nil || len(sels) == 0 {
		return false
	}
	req := *v.request
	v.request = nil

	vertical := v.autoscrollVertically(m, sels, newest, req)
	horizontal := v.autoscrollHorizontally(m, sels, details)
	return vertical || horizontal
}

// AutoscrollVertically carries out a vertical autoscroll immediately,
// without touching the horizontal position or the pending request.
func (v *Manager) AutoscrollVertically(m *display.Snapshot, sels []cursor.Selection[display.DisplayPoint], newest cursor.Selection[display.DisplayPoint], req Autoscroll) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(sels) == 0 {
		return false
	}
	return v.autoscrollVertically(m, sels, newest, req)
}

// AutoscrollHorizontally reveals the heads of sels on visible rows.
func (v *Manager) AutoscrollHorizontally(m *display.Snapshot, sels []cursor.Selection[display.DisplayPoint], details display.LayoutDetails) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.autoscrollHorizontally(m, sels, details)
}

func (v *Manager) autoscrollVertically(m *display.Snapshot, sels []cursor.Selection[display.DisplayPoint], newest cursor.Selection[display.DisplayPoint], req Autoscroll) bool {
	visible := v.visibleLines()
	if visible <= 0 {
		return false
	}
	pos := v.anchor.Position(m)

	var top, bottom float64
	if anchor, ok := req.Anchor(); ok {
		top = float64(m.AnchorToDisplayPoint(anchor).Row)
		bottom = top + 1
	} else {
		top, bottom = math.Inf(1), math.Inf(-1)
		for _, s := range sels {
			row := float64(s.Head().Row)
			top = min(top, row)
			bottom = max(bottom, row+1)
		}
		if req.Strategy != StrategyFit || bottom-top > visible {
			top = float64(newest.Head().Row)
			bottom = top + 1
		}
	}

	margin := 0.0
	if !v.autoHeight {
		margin = max((visible-1)/2, 0)
	}

	strategy := req.Strategy
	if strategy == StrategyNext {
		last := v.last
		if last != nil && last.top == top && last.bottom == bottom && nearlyEqual(last.y, pos.Y) {
			strategy = last.strategy.next()
		} else {
			strategy = StrategyCenter
		}
	}

	y := pos.Y
	switch strategy {
	case StrategyFit, StrategyNewest:
		margin = min(margin, v.verticalMargin)
		targetTop := max(top-margin, 0)
		targetBottom := bottom + margin
		up := targetTop < y
		down := targetBottom >= y+visible
		if up && !down {
			y = targetTop
		} else if down && !up {
			y = targetBottom - visible
		}
	case StrategyCenter:
		y = top - margin
	case StrategyFocused:
		y = top - min(margin, v.verticalMargin)
	case StrategyTop:
		y = top
	case StrategyBottom:
		y = bottom - visible
	case StrategyTopRelative:
		y = top - req.Rows
	case StrategyBottomRelative:
		y = bottom + req.Rows - visible
	}
	y = clamp(y, 0, v.maxScrollTop(m))

	v.last = &lastAutoscroll{y: y, top: top, bottom: bottom, strategy: strategy}
	if nearlyEqual(y, pos.Y) {
		return false
	}
	return v.setPosition(m, Position{X: pos.X, Y: y})
}

func (v *Manager) autoscrollHorizontally(m *display.Snapshot, sels []cursor.Selection[display.DisplayPoint], details display.LayoutDetails) bool {
	width := v.width
	if width <= 0 {
		return false
	}
	em := details.EmAdvance()
	pos := v.anchor.Position(m)
	startRow := math.Floor(pos.Y)
	endRow := math.Ceil(pos.Y + v.visibleLines())

	left, right := math.Inf(1), math.Inf(-1)
	for _, s := range sels {
		head := s.Head()
		if row := float64(head.Row); row < startRow || row >= endRow {
			continue
		}
		from, to := head, head
		if s.Start.Row == head.Row {
			from = s.Start
		}
		if s.End.Row == head.Row {
			to = s.End
		}
		left = min(left, m.XForDisplayPoint(from, details))
		right = max(right, m.XForDisplayPoint(to, details)+em)
	}
	if math.IsInf(left, 1) {
		return false
	}
	x := RevealX(pos.X, width, left, right, v.horizontalMargin*em)
	if nearlyEqual(x, pos.X) {
		return false
	}
	longest := m.LayoutRow(m.LongestRow(), details).Width + em
	x = clamp(x, 0, max(longest-width, right-width, 0))
	if nearlyEqual(x, pos.X) {
		return false
	}
	return v.setPosition(m, Position{X: x, Y: pos.Y})
}

// RevealX returns the horizontal scroll offset that brings [left, right)
// into a view of the given width currently scrolled to x, keeping up to
// margin pixels of context on either side. A span wider than the view
// leaves x unchanged.
func RevealX(x, width, left, right, margin float64) float64 {
	if right-left > width {
		return x
	}
	margin = min(margin, (width-(right-left))/2)
	left = max(left-margin, 0)
	right += margin
	switch {
	case left < x:
		return left
	case right > x+width:
		return right - width
	}
	return x
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
