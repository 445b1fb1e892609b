package viewport

import (
	"strings"
	"testing"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/cursor"
)

func lines(n int) string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = "line"
	}
	return strings.Join(rows, "\n")
}

func cursorAt(row display.DisplayRow, col uint32) cursor.Selection[display.DisplayPoint] {
	return cursor.NewCursor(0, display.NewDisplayPoint(row, col))
}

func autoscrollTo(v *Manager, m *display.Snapshot, a Autoscroll, sel cursor.Selection[display.DisplayPoint]) bool {
	v.RequestAutoscroll(a)
	return v.Autoscroll(m, []cursor.Selection[display.DisplayPoint]{sel}, sel, display.DefaultLayoutDetails())
}

func TestMaxScrollTop(t *testing.T) {
	m := display.NewSnapshot(buffer.NewBufferFromString(lines(10)).Snapshot(), 4)
	tests := []struct {
		policy ScrollBeyondLastLine
		want   float64
	}{
		{ScrollBeyondOnePage, 9},
		{ScrollBeyondOff, 4},
		{ScrollBeyondVerticalMargin, 6},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			v := NewManager(WithVerticalScrollMargin(2), WithScrollBeyondLastLine(tt.policy))
			v.Resize(80, 6, 1)
			if got := v.MaxScrollTop(m); got != tt.want {
				t.Errorf("MaxScrollTop() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFitKeepsVerticalMargin(t *testing.T) {
	m := display.NewSnapshot(buffer.NewBufferFromString(lines(10)).Snapshot(), 4)
	v := NewManager(WithVerticalScrollMargin(2), WithScrollBeyondLastLine(ScrollBeyondVerticalMargin))
	v.Resize(80, 6, 1)

	row := display.DisplayRow(0)
	step := func(delta int, times int) {
		for range times {
			row = display.DisplayRow(int(row) + delta)
			autoscrollTo(v, m, Fit(), cursorAt(row, 0))
		}
	}

	step(1, 6)
	if got := v.Position(m).Y; got != 3 {
		t.Fatalf("after 6 moves down y = %v, want 3", got)
	}
	step(1, 3)
	if got := v.Position(m).Y; got != 6 {
		t.Fatalf("after 9 moves down y = %v, want 6", got)
	}
	step(-1, 6)
	if row != 3 {
		t.Fatalf("row = %d, want 3", row)
	}
	if got := v.Position(m).Y; got != 1 {
		t.Fatalf("after 6 moves up y = %v, want 1", got)
	}
}

func TestAutoscrollIsIdempotent(t *testing.T) {
	m := display.NewSnapshot(buffer.NewBufferFromString(lines(30)).Snapshot(), 4)
	for _, a := range []Autoscroll{Fit(), Newest(), Center(), Focused(), Top(), Bottom(), TopRelative(2), BottomRelative(2)} {
		t.Run(a.Strategy.String(), func(t *testing.T) {
			v := NewManager()
			v.Resize(80, 8, 1)
			autoscrollTo(v, m, a, cursorAt(20, 2))
			before := v.Position(m)
			if autoscrollTo(v, m, a, cursorAt(20, 2)) {
				t.Errorf("second autoscroll changed position from %v to %v", before, v.Position(m))
			}
		})
	}
}

func TestStrategies(t *testing.T) {
	m := display.NewSnapshot(buffer.NewBufferFromString(lines(20)).Snapshot(), 4)
	tests := []struct {
		name string
		a    Autoscroll
		opts []Option
		want float64
	}{
		{"center", Center(), nil, 7.5},
		{"center auto height", Center(), []Option{WithAutoHeight()}, 10},
		{"focused", Focused(), []Option{WithVerticalScrollMargin(1)}, 9},
		{"top", Top(), nil, 10},
		{"bottom", Bottom(), nil, 5},
		{"top relative", TopRelative(3), nil, 7},
		{"bottom relative", BottomRelative(3), nil, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewManager(tt.opts...)
			v.Resize(80, 6, 1)
			autoscrollTo(v, m, tt.a, cursorAt(10, 0))
			if got := v.Position(m).Y; got != tt.want {
				t.Errorf("y = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrategyClamps(t *testing.T) {
	m := display.NewSnapshot(buffer.NewBufferFromString(lines(20)).Snapshot(), 4)
	v := NewManager(WithScrollBeyondLastLine(ScrollBeyondOff))
	v.Resize(80, 6, 1)

	autoscrollTo(v, m, Center(), cursorAt(1, 0))
	if got := v.Position(m).Y; got != 0 {
		t.Errorf("center near top: y = %v, want 0", got)
	}
	autoscrollTo(v, m, Top(), cursorAt(19, 0))
	if got := v.Position(m).Y; got != 14 {
		t.Errorf("top near bottom: y = %v, want 14", got)
	}
}

func TestNextCycles(t *testing.T) {
	m := display.NewSnapshot(buffer.NewBufferFromString(lines(20)).Snapshot(), 4)
	v := NewManager()
	v.Resize(80, 6, 1)

	want := []float64{2.5, 5, 0, 2.5}
	for i, w := range want {
		autoscrollTo(v, m, Next(), cursorAt(5, 0))
		if got := v.Position(m).Y; got != w {
			t.Fatalf("call %d: y = %v, want %v", i+1, got, w)
		}
	}

	// Moving the target restarts the cycle.
	autoscrollTo(v, m, Next(), cursorAt(8, 0))
	if got := v.Position(m).Y; got != 5.5 {
		t.Errorf("after moving target y = %v, want 5.5", got)
	}
}

func TestExplicitAnchor(t *testing.T) {
	buf := buffer.NewBufferFromString(lines(20))
	m := display.NewSnapshot(buf.Snapshot(), 4)
	v := NewManager()
	v.Resize(80, 6, 1)

	target := m.DisplayPointToAnchor(display.NewDisplayPoint(15, 0), buffer.Left)
	autoscrollTo(v, m, Top().For(target), cursorAt(0, 0))
	if got := v.Position(m).Y; got != 15 {
		t.Errorf("y = %v, want 15", got)
	}
}

func TestScrollAnchorFollowsEdits(t *testing.T) {
	buf := buffer.NewBufferFromString(lines(10))
	v := NewManager()
	v.Resize(80, 4, 1)
	v.SetPosition(display.NewSnapshot(buf.Snapshot(), 4), Position{Y: 3})

	buf.Insert(0, "new\n")
	m := display.NewSnapshot(buf.Snapshot(), 4)
	if got := v.Position(m).Y; got != 4 {
		t.Errorf("y after inserting a line above = %v, want 4", got)
	}

	buf.Insert(buf.Snapshot().Len(), "\ntail")
	m = display.NewSnapshot(buf.Snapshot(), 4)
	if got := v.Position(m).Y; got != 4 {
		t.Errorf("y after appending below = %v, want 4", got)
	}
}

func TestScrollBy(t *testing.T) {
	m := display.NewSnapshot(buffer.NewBufferFromString(lines(10)).Snapshot(), 4)
	v := NewManager(WithScrollBeyondLastLine(ScrollBeyondOff))
	v.Resize(80, 4, 1)

	if !v.ScrollBy(m, 2) {
		t.Error("ScrollBy(2) = false")
	}
	if v.ScrollBy(m, -10); v.Position(m).Y != 0 {
		t.Errorf("y = %v, want 0", v.Position(m).Y)
	}
	v.ScrollPages(m, 5)
	if got := v.Position(m).Y; got != 6 {
		t.Errorf("y after paging = %v, want 6", got)
	}
	start, end := v.VisibleRows(m)
	if start != 6 || end != 10 {
		t.Errorf("VisibleRows() = [%d, %d), want [6, 10)", start, end)
	}
}

func TestAutoscrollHorizontally(t *testing.T) {
	m := display.NewSnapshot(buffer.NewBufferFromString(strings.Repeat("x", 40)).Snapshot(), 4)
	v := NewManager()
	v.Resize(10, 4, 1)

	autoscrollTo(v, m, Fit(), cursorAt(0, 15))
	if got := v.Position(m).X; got != 6 {
		t.Errorf("x after revealing column 15 = %v, want 6", got)
	}
	autoscrollTo(v, m, Fit(), cursorAt(0, 12))
	if got := v.Position(m).X; got != 6 {
		t.Errorf("x with cursor in view = %v, want 6", got)
	}
	autoscrollTo(v, m, Fit(), cursorAt(0, 3))
	if got := v.Position(m).X; got != 3 {
		t.Errorf("x after revealing column 3 = %v, want 3", got)
	}

	wide := cursor.NewSelection(0, display.NewDisplayPoint(0, 0), display.NewDisplayPoint(0, 30), display.DisplayPoint.Compare)
	if autoscrollTo(v, m, Fit(), wide) {
		t.Error("selection wider than the viewport scrolled")
	}
}

func TestRevealX(t *testing.T) {
	tests := []struct {
		name                 string
		x, left, right, marg float64
		want                 float64
	}{
		{"in view", 5, 8, 9, 0, 5},
		{"right of view", 0, 15, 16, 0, 6},
		{"left of view", 6, 3, 4, 0, 3},
		{"margin on the right", 0, 15, 16, 2, 8},
		{"margin on the left", 6, 3, 4, 2, 1},
		{"margin stops at zero", 6, 1, 2, 2, 0},
		{"margin limited by the slack", 0, 15, 23, 4, 14},
		{"wider than the view", 4, 0, 30, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RevealX(tt.x, 10, tt.left, tt.right, tt.marg); got != tt.want {
				t.Errorf("RevealX() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseScrollBeyondLastLine(t *testing.T) {
	for _, policy := range []ScrollBeyondLastLine{ScrollBeyondOnePage, ScrollBeyondOff, ScrollBeyondVerticalMargin} {
		got, err := ParseScrollBeyondLastLine(policy.String())
		if err != nil || got != policy {
			t.Errorf("ParseScrollBeyondLastLine(%q) = %v, %v", policy.String(), got, err)
		}
	}
	if _, err := ParseScrollBeyondLastLine("sometimes"); err == nil {
		t.Error("ParseScrollBeyondLastLine(\"sometimes\") succeeded")
	}
}
