package movement

import (
	"strings"
	"testing"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/cursor"
)

// marked parses text containing '|' markers and returns the unmarked
// snapshot with the marker offsets.
func marked(t *testing.T, text string, opts ...buffer.Option) (*buffer.Snapshot, []int) {
	t.Helper()
	var offsets []int
	var sb strings.Builder
	for _, c := range text {
		if c == '|' {
			offsets = append(offsets, sb.Len())
			continue
		}
		sb.WriteRune(c)
	}
	return buffer.NewBufferFromString(sb.String(), opts...).Snapshot(), offsets
}

func displaySnapshot(text string, tabSize int) *display.Snapshot {
	return display.NewSnapshot(buffer.NewBufferFromString(text).Snapshot(), tabSize)
}

func TestGraphemeBoundaries(t *testing.T) {
	s := "a\u00e9\U0001F1EF\U0001F1F5x"
	tests := []struct {
		i, prev, next int
	}{
		{0, 0, 1},
		{1, 0, 3},
		{2, 1, 3},
		{3, 1, 11},
		{11, 3, 12},
		{12, 11, 12},
	}
	for _, tt := range tests {
		if got := PrevGraphemeBoundary(s, tt.i); got != tt.prev {
			t.Errorf("PrevGraphemeBoundary(%d) = %d, want %d", tt.i, got, tt.prev)
		}
		if got := NextGraphemeBoundary(s, tt.i); got != tt.next {
			t.Errorf("NextGraphemeBoundary(%d) = %d, want %d", tt.i, got, tt.next)
		}
	}
}

func TestWordMotion(t *testing.T) {
	// The first marker is the expected result and the second the start.
	backward := []struct {
		name string
		f    func(*buffer.Snapshot, int) int
		text string
	}{
		{"word start", PreviousWordStartOffset, "|lorem|"},
		{"word start after space", PreviousWordStartOffset, "lorem |ipsum|"},
		{"word start over trailing spaces", PreviousWordStartOffset, "lorem |ipsum  |"},
		{"word start stops at punctuation", PreviousWordStartOffset, "two.|three|"},
		{"word start steps over punctuation", PreviousWordStartOffset, "|two.|three"},
		{"word start stops after newline", PreviousWordStartOffset, "lorem\n|ipsum|"},
		{"word start crosses newline", PreviousWordStartOffset, "|lorem\n|ipsum"},
		{"word start or newline", PreviousWordStartOrNewlineOffset, "lorem|\n|ipsum"},
		{"subword camel case", PreviousSubwordStartOffset, "foo|Bar|"},
		{"subword snake case", PreviousSubwordStartOffset, "foo_|bar|"},
	}
	for _, tt := range backward {
		t.Run(tt.name, func(t *testing.T) {
			s, m := marked(t, tt.text)
			if got := tt.f(s, m[1]); got != m[0] {
				t.Errorf("from %d = %d, want %d", m[1], got, m[0])
			}
		})
	}

	// The first marker is the start and the second the expected result.
	forward := []struct {
		name string
		f    func(*buffer.Snapshot, int) int
		text string
	}{
		{"word end", NextWordEndOffset, "|lorem| ipsum"},
		{"word end over spaces", NextWordEndOffset, "lorem| ipsum|"},
		{"word end steps over punctuation", NextWordEndOffset, "|.three|"},
		{"word end stops at newline", NextWordEndOffset, "lorem| |\nipsum"},
		{"word end or newline", NextWordEndOrNewlineOffset, "lorem|\n|ipsum"},
		{"subword camel case", NextSubwordEndOffset, "|foo|Bar"},
		{"subword snake case", NextSubwordEndOffset, "|foo|_bar"},
		{"subword after underscore", NextSubwordEndOffset, "foo|_bar|"},
	}
	for _, tt := range forward {
		t.Run(tt.name, func(t *testing.T) {
			s, m := marked(t, tt.text)
			if got := tt.f(s, m[0]); got != m[1] {
				t.Errorf("from %d = %d, want %d", m[0], got, m[1])
			}
		})
	}
}

func TestSubwordKebabCase(t *testing.T) {
	s, m := marked(t, "|foo|-bar", buffer.WithWordChars("-"))
	if got := NextSubwordEndOffset(s, m[0]); got != m[1] {
		t.Errorf("NextSubwordEndOffset() = %d, want %d", got, m[1])
	}
	if got := NextWordEndOffset(s, m[0]); got != s.Len() {
		t.Errorf("NextWordEndOffset() = %d, want %d", got, s.Len())
	}
}

func TestFindBoundarySingleLine(t *testing.T) {
	s, _ := marked(t, "ab\ncd")
	never := func(rune, rune) bool { return false }
	if got := FindBoundaryOffset(s, 0, SingleLine, never); got != 2 {
		t.Errorf("FindBoundaryOffset(SingleLine) = %d, want 2", got)
	}
	if got := FindBoundaryOffset(s, 0, MultiLine, never); got != 5 {
		t.Errorf("FindBoundaryOffset(MultiLine) = %d, want 5", got)
	}
	if got := FindPrecedingBoundaryOffset(s, 5, SingleLine, never); got != 3 {
		t.Errorf("FindPrecedingBoundaryOffset(SingleLine) = %d, want 3", got)
	}
	p := FindPrecedingBoundaryPoint(s, s.OffsetToPoint(5), MultiLine, never)
	if p.Row != 0 || p.Column != 0 {
		t.Errorf("FindPrecedingBoundaryPoint(MultiLine) = %v, want 0:0", p)
	}
}

func TestLeftRight(t *testing.T) {
	m := displaySnapshot("a\tb\ne\u0301x", 4)
	dp := display.NewDisplayPoint

	right := []struct{ from, want display.DisplayPoint }{
		{dp(0, 0), dp(0, 1)},
		{dp(0, 1), dp(0, 4)},
		{dp(0, 5), dp(1, 0)},
		{dp(1, 0), dp(1, 3)},
		{dp(1, 4), dp(1, 4)},
	}
	for _, tt := range right {
		if got := Right(m, tt.from); got != tt.want {
			t.Errorf("Right(%v) = %v, want %v", tt.from, got, tt.want)
		}
	}

	left := []struct{ from, want display.DisplayPoint }{
		{dp(1, 3), dp(1, 0)},
		{dp(1, 0), dp(0, 5)},
		{dp(0, 4), dp(0, 1)},
		{dp(0, 0), dp(0, 0)},
	}
	for _, tt := range left {
		if got := Left(m, tt.from); got != tt.want {
			t.Errorf("Left(%v) = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestUpDown(t *testing.T) {
	m := displaySnapshot("abcdef\nab\nabcdef", 4)
	details := display.DefaultLayoutDetails()
	dp := display.NewDisplayPoint

	p, goal := Down(m, dp(0, 4), cursor.NoGoal(), false, details)
	if p != dp(1, 2) || goal != cursor.HorizontalPosition(4) {
		t.Fatalf("Down() = %v, %v", p, goal)
	}
	p, goal = Down(m, p, goal, false, details)
	if p != dp(2, 4) || goal != cursor.HorizontalPosition(4) {
		t.Fatalf("second Down() = %v, %v", p, goal)
	}

	if p, _ := Down(m, dp(2, 4), goal, false, details); p != dp(2, 6) {
		t.Errorf("Down() past end = %v, want 2:6", p)
	}
	if p, g := Down(m, dp(2, 4), goal, true, details); p != dp(2, 4) || g != goal {
		t.Errorf("Down() preserving column = %v, %v", p, g)
	}
	if p, _ := Up(m, dp(0, 3), cursor.NoGoal(), false, details); p != dp(0, 0) {
		t.Errorf("Up() past start = %v, want 0:0", p)
	}
	if p, g := Up(m, dp(0, 3), cursor.NoGoal(), true, details); p != dp(0, 3) || g != cursor.NoGoal() {
		t.Errorf("Up() preserving column = %v, %v", p, g)
	}

	p, goal = UpByRows(m, dp(2, 5), 2, cursor.HorizontalRange(1, 3), false, details)
	if p != dp(0, 3) || goal != cursor.HorizontalPosition(3) {
		t.Errorf("UpByRows(2) = %v, %v", p, goal)
	}
}

func TestLineBoundaries(t *testing.T) {
	m := displaySnapshot("\tfoo\nbar", 4)
	dp := display.NewDisplayPoint

	indented := []struct{ from, want display.DisplayPoint }{
		{dp(0, 6), dp(0, 4)},
		{dp(0, 4), dp(0, 0)},
		{dp(0, 0), dp(0, 4)},
		{dp(1, 2), dp(1, 0)},
	}
	for _, tt := range indented {
		if got := IndentedLineBeginning(m, tt.from, true, true); got != tt.want {
			t.Errorf("IndentedLineBeginning(%v) = %v, want %v", tt.from, got, tt.want)
		}
	}
	if got := IndentedLineBeginning(m, dp(0, 6), true, false); got != dp(0, 0) {
		t.Errorf("IndentedLineBeginning(stopAtIndent=false) = %v", got)
	}
	if got := LineEnd(m, dp(0, 1), true); got != dp(0, 7) {
		t.Errorf("LineEnd() = %v, want 0:7", got)
	}
	if got := EndOfDocument(m, dp(0, 0)); got != dp(1, 3) {
		t.Errorf("EndOfDocument() = %v, want 1:3", got)
	}
	if got := StartOfDocument(m, dp(1, 2)); got != dp(0, 0) {
		t.Errorf("StartOfDocument() = %v", got)
	}
}

func TestIndentedLineBeginningOffset(t *testing.T) {
	s := buffer.NewBufferFromString("   x").Snapshot()
	if got := IndentedLineBeginningOffset(s, 2, true); got != 0 {
		t.Errorf("from inside the indent = %d, want 0", got)
	}

	s = buffer.NewBufferFromString("    hello").Snapshot()
	offset := 5
	for i, want := range []int{4, 0, 4} {
		offset = IndentedLineBeginningOffset(s, offset, true)
		if offset != want {
			t.Fatalf("call %d = %d, want %d", i+1, offset, want)
		}
	}
	if got := IndentedLineBeginningOffset(s, 5, false); got != 0 {
		t.Errorf("stopAtIndent=false = %d, want 0", got)
	}
}

func TestGraphemeOffsets(t *testing.T) {
	s := buffer.NewBufferFromString("ab\ne\u0301x").Snapshot()
	tests := []struct {
		name string
		f    func(*buffer.Snapshot, int) int
		from int
		want int
	}{
		{"prev in line", PreviousGraphemeOffset, 6, 3},
		{"prev at line start", PreviousGraphemeOffset, 3, 2},
		{"prev at start", PreviousGraphemeOffset, 0, 0},
		{"next cluster", NextGraphemeOffset, 3, 6},
		{"next at line end", NextGraphemeOffset, 2, 3},
		{"next at end", NextGraphemeOffset, 7, 7},
	}
	for _, tt := range tests {
		if got := tt.f(s, tt.from); got != tt.want {
			t.Errorf("%s: from %d = %d, want %d", tt.name, tt.from, got, tt.want)
		}
	}
	if got := LineEndOffset(s, 4); got != 7 {
		t.Errorf("LineEndOffset() = %d, want 7", got)
	}
}

func TestAdjustGreedyDeletion(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		from, until int
		want        int
	}{
		{"backward keeps last run", "a    ", 5, 0, 1},
		{"forward keeps first run", "    a", 0, 5, 4},
		{"backward single spaces", "a b c", 5, 0, 0},
		{"forward single spaces", "a b c", 0, 5, 5},
		{"backward two runs", "a  b  c", 7, 0, 4},
		{"forward two runs", "a  b  c", 0, 7, 3},
		{"empty range", "abc", 2, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buffer.NewBufferFromString(tt.text).Snapshot()
			if got := AdjustGreedyDeletionOffset(s, tt.from, tt.until, false); got != tt.want {
				t.Errorf("AdjustGreedyDeletionOffset(%d, %d) = %d, want %d", tt.from, tt.until, got, tt.want)
			}
		})
	}

	m := displaySnapshot("x\ta    ", 4)
	got := AdjustGreedyDeletion(m, display.NewDisplayPoint(0, 9), display.NewDisplayPoint(0, 0), true)
	if want := display.NewDisplayPoint(0, 5); got != want {
		t.Errorf("AdjustGreedyDeletion() = %v, want %v", got, want)
	}
}
