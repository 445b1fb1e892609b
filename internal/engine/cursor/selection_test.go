package cursor

import "testing"

func TestNewSelection(t *testing.T) {
	tests := []struct {
		name         string
		tail, head   int
		wantStart    int
		wantEnd      int
		wantReversed bool
	}{
		{"forward", 3, 8, 3, 8, false},
		{"backward", 8, 3, 3, 8, true},
		{"cursor", 5, 5, 5, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(1, tt.tail, tt.head, CompareInts)
			if s.Start != tt.wantStart || s.End != tt.wantEnd || s.Reversed != tt.wantReversed {
				t.Errorf("NewSelection(%d, %d) = %v", tt.tail, tt.head, s)
			}
			if s.Head() != tt.head {
				t.Errorf("Head() = %d, want %d", s.Head(), tt.head)
			}
			if s.Tail() != tt.tail {
				t.Errorf("Tail() = %d, want %d", s.Tail(), tt.tail)
			}
		})
	}
}

func TestSetHead(t *testing.T) {
	s := NewCursor(1, 10)

	s.SetHead(20, HorizontalPosition(4), CompareInts)
	if s.Start != 10 || s.End != 20 || s.Reversed {
		t.Errorf("after SetHead(20) = %v", s)
	}
	if x, ok := s.Goal.TargetX(); !ok || x != 4 {
		t.Errorf("Goal = %v, want HorizontalPosition(4)", s.Goal)
	}

	s.SetHead(5, NoGoal(), CompareInts)
	if s.Start != 5 || s.End != 10 || !s.Reversed {
		t.Errorf("after SetHead(5) = %v, want 5..10 reversed", s)
	}

	s.SetHead(12, NoGoal(), CompareInts)
	if s.Start != 10 || s.End != 12 || s.Reversed {
		t.Errorf("after SetHead(12) = %v, want 10..12", s)
	}
	if s.Tail() != 10 {
		t.Errorf("Tail() = %d, want 10", s.Tail())
	}
}

func TestSetTail(t *testing.T) {
	s := NewSelection(1, 4, 9, CompareInts)
	s.SetTail(12, CompareInts)
	if s.Start != 9 || s.End != 12 || !s.Reversed {
		t.Errorf("after SetTail(12) = %v, want 9..12 reversed", s)
	}
	if s.Head() != 9 {
		t.Errorf("Head() = %d, want 9", s.Head())
	}
}

func TestCollapseTo(t *testing.T) {
	s := NewSelection(7, 9, 2, CompareInts)
	s.CollapseTo(4, HorizontalPosition(1))
	if !s.IsEmpty() || s.Start != 4 || s.Reversed {
		t.Errorf("CollapseTo(4) = %v", s)
	}
	if s.ID != 7 {
		t.Errorf("ID = %d, want 7", s.ID)
	}
}

func TestMap(t *testing.T) {
	s := NewSelection(3, 4, 2, CompareInts)
	s.Goal = HorizontalRange(1, 2)
	m := Map(s, func(p int) string { return string(rune('a' + p)) })
	if m.Start != "c" || m.End != "e" || !m.Reversed || m.ID != 3 || m.Goal != s.Goal {
		t.Errorf("Map() = %v", m)
	}
}

func TestGoal(t *testing.T) {
	if _, ok := NoGoal().TargetX(); ok {
		t.Error("NoGoal().TargetX() ok = true")
	}
	if x, _ := HorizontalRange(3, 7).TargetX(); x != 7 {
		t.Errorf("HorizontalRange(3, 7).TargetX() = %g, want 7", x)
	}
	if got := HorizontalPosition(2.5).String(); got != "HorizontalPosition(2.5)" {
		t.Errorf("String() = %q", got)
	}
}
