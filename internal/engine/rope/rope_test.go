package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.String() != "" {
		t.Errorf("New rope String() should be empty, got %q", r.String())
	}
	if r.MaxPoint() != (Point{}) {
		t.Errorf("New rope MaxPoint() = %v, want (0:0)", r.MaxPoint())
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"short string", "hello"},
		{"with newline", "hello\nworld"},
		{"multiple newlines", "a\nb\nc\nd"},
		{"unicode", "hello 世界 🌍"},
		{"long string", strings.Repeat("abcdefghij", 100)},
		{"very long string", strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if r.Len() != len(tt.input) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.input))
			}
			if got, want := r.Summary(), ComputeSummary(tt.input); got != want {
				t.Errorf("Summary() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		start    int
		end      int
		text     string
		expected string
	}{
		{"insert at start", "world", 0, 0, "hello ", "hello world"},
		{"insert at end", "hello", 5, 5, " world", "hello world"},
		{"insert in middle", "helloworld", 5, 5, " ", "hello world"},
		{"insert into empty", "", 0, 0, "hello", "hello"},
		{"delete middle", "hello world", 5, 6, "", "helloworld"},
		{"replace all", "hello", 0, 5, "bye", "bye"},
		{"out of range end clamps", "hello", 3, 99, "p", "help"},
		{"unicode boundary", "世界", 3, 3, "!", "世!界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r2 := r.Replace(tt.start, tt.end, tt.text)
			if got := r2.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
			if r.String() != tt.initial {
				t.Errorf("original rope modified: %q", r.String())
			}
		})
	}
}

func TestReplaceLarge(t *testing.T) {
	text := strings.Repeat("line of text\n", 500)
	r := FromString(text)
	for i := 0; i < 200; i++ {
		off := (i * 37) % r.Len()
		off = r.ClipOffset(off, Left)
		r = r.Insert(off, "é")
		text = text[:off] + "é" + text[off:]
	}
	if r.String() != text {
		t.Fatal("rope diverged from string after repeated inserts")
	}
	if got, want := r.Summary(), ComputeSummary(text); got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}

func TestSummaryAdd(t *testing.T) {
	parts := []string{"ab\tc", "d\nlonger line", " here\n", "", "x\ny"}
	var sum TextSummary
	var all string
	for _, p := range parts {
		sum = sum.Add(ComputeSummary(p))
		all += p
	}
	if want := ComputeSummary(all); sum != want {
		t.Errorf("Add() = %+v, want %+v", sum, want)
	}
	if sum.LongestRow != 1 || sum.LongestRowChars != 16 {
		t.Errorf("longest row = %d (%d chars), want 1 (16 chars)", sum.LongestRow, sum.LongestRowChars)
	}
	if sum.Tabs != 1 {
		t.Errorf("Tabs = %d, want 1", sum.Tabs)
	}
}

func TestOffsetPointConversions(t *testing.T) {
	text := "abc\nα🏀z\n\nend"
	r := FromString(text)

	row, col := uint32(0), uint32(0)
	for i := 0; i <= len(text); i++ {
		if i == len(text) || utf8.RuneStart(text[i]) {
			p := r.OffsetToPoint(i)
			if p != (Point{Row: row, Column: col}) {
				t.Errorf("OffsetToPoint(%d) = %v, want (%d:%d)", i, p, row, col)
			}
			if got := r.PointToOffset(p); got != i {
				t.Errorf("PointToOffset(%v) = %d, want %d", p, got, i)
			}
		}
		if i < len(text) {
			if text[i] == '\n' {
				row++
				col = 0
			} else {
				col++
			}
		}
	}

	if got := r.PointToOffset(Point{Row: 0, Column: 99}); got != 3 {
		t.Errorf("PointToOffset past row end = %d, want 3", got)
	}
	if got := r.PointToOffset(Point{Row: 99}); got != len(text) {
		t.Errorf("PointToOffset past last row = %d, want %d", got, len(text))
	}
}

func TestUTF16Conversions(t *testing.T) {
	r := FromString("a🏀b\nαβ")

	tests := []struct {
		offset int
		utf16  int
	}{
		{0, 0}, {1, 1}, {5, 3}, {6, 4}, {7, 5}, {9, 6}, {11, 7},
	}
	for _, tt := range tests {
		if got := r.OffsetToOffsetUTF16(tt.offset); got != tt.utf16 {
			t.Errorf("OffsetToOffsetUTF16(%d) = %d, want %d", tt.offset, got, tt.utf16)
		}
		if got := r.OffsetUTF16ToOffset(tt.utf16); got != tt.offset {
			t.Errorf("OffsetUTF16ToOffset(%d) = %d, want %d", tt.utf16, got, tt.offset)
		}
	}

	// Inside the surrogate pair resolves to the start of the char.
	if got := r.OffsetUTF16ToOffset(2); got != 1 {
		t.Errorf("OffsetUTF16ToOffset(2) = %d, want 1", got)
	}

	p := r.PointToPointUTF16(Point{Row: 1, Column: 4})
	if p != (PointUTF16{Row: 1, Column: 2}) {
		t.Errorf("PointToPointUTF16 = %+v, want (1:2)", p)
	}
	if got := r.PointUTF16ToPoint(PointUTF16{Row: 0, Column: 3}); got != (Point{Row: 0, Column: 5}) {
		t.Errorf("PointUTF16ToPoint = %v, want (0:5)", got)
	}
	if got := r.MaxPointUTF16(); got != (PointUTF16{Row: 1, Column: 2}) {
		t.Errorf("MaxPointUTF16 = %+v, want (1:2)", got)
	}
}

func TestClip(t *testing.T) {
	r := FromString("aé🏀\nxy")

	tests := []struct {
		offset int
		bias   Bias
		want   int
	}{
		{-3, Left, 0},
		{2, Left, 1},
		{2, Right, 3},
		{4, Left, 3},
		{4, Right, 7},
		{7, Left, 7},
		{99, Right, r.Len()},
	}
	for _, tt := range tests {
		if got := r.ClipOffset(tt.offset, tt.bias); got != tt.want {
			t.Errorf("ClipOffset(%d, %v) = %d, want %d", tt.offset, tt.bias, got, tt.want)
		}
	}

	if got := r.ClipPoint(Point{Row: 0, Column: 5}, Left); got != (Point{Row: 0, Column: 3}) {
		t.Errorf("ClipPoint left = %v, want (0:3)", got)
	}
	if got := r.ClipPoint(Point{Row: 0, Column: 5}, Right); got != (Point{Row: 0, Column: 7}) {
		t.Errorf("ClipPoint right = %v, want (0:7)", got)
	}
	if got := r.ClipPoint(Point{Row: 1, Column: 40}, Left); got != (Point{Row: 1, Column: 2}) {
		t.Errorf("ClipPoint past row end = %v, want (1:2)", got)
	}
	if got := r.ClipPoint(Point{Row: 9}, Left); got != r.MaxPoint() {
		t.Errorf("ClipPoint past last row = %v, want %v", got, r.MaxPoint())
	}
	if got := r.LineLen(0); got != 7 {
		t.Errorf("LineLen(0) = %d, want 7", got)
	}
}

func TestChunksRange(t *testing.T) {
	text := strings.Repeat("0123456789αβγ\n", 120)
	r := FromString(text)

	ranges := [][2]int{{0, len(text)}, {5, 900}, {300, 301}, {1000, 1000}, {len(text) - 7, len(text)}}
	for _, rg := range ranges {
		var sb strings.Builder
		last := rg[0]
		it := r.Chunks(rg[0], rg[1])
		for it.Next() {
			if it.Offset() != last {
				t.Errorf("chunk offset = %d, want %d", it.Offset(), last)
			}
			sb.WriteString(it.Text())
			last += len(it.Text())
		}
		if got, want := sb.String(), text[rg[0]:rg[1]]; got != want {
			t.Errorf("Chunks(%d, %d) concatenation mismatch", rg[0], rg[1])
		}

		var parts []string
		rit := r.ReversedChunks(rg[0], rg[1])
		for rit.Next() {
			parts = append([]string{rit.Text()}, parts...)
		}
		if got, want := strings.Join(parts, ""), text[rg[0]:rg[1]]; got != want {
			t.Errorf("ReversedChunks(%d, %d) concatenation mismatch", rg[0], rg[1])
		}
	}
}

func TestChars(t *testing.T) {
	r := FromString("ab🏀\ncd")

	var forward []rune
	it := r.CharsAt(1)
	for it.Next() {
		forward = append(forward, it.Rune())
	}
	if string(forward) != "b🏀\ncd" {
		t.Errorf("CharsAt(1) = %q", string(forward))
	}

	var backward []rune
	var offsets []int
	rit := r.ReversedCharsAt(6)
	for rit.Next() {
		backward = append(backward, rit.Rune())
		offsets = append(offsets, rit.Offset())
	}
	if string(backward) != "🏀ba" {
		t.Errorf("ReversedCharsAt(6) = %q", string(backward))
	}
	if len(offsets) != 3 || offsets[0] != 2 || offsets[2] != 0 {
		t.Errorf("ReversedCharsAt offsets = %v", offsets)
	}
}

func TestTextSummaryForRange(t *testing.T) {
	text := "one\ntwo\tthree\nfour"
	r := FromString(text)
	if got, want := r.TextSummaryForRange(2, 15), ComputeSummary(text[2:15]); got != want {
		t.Errorf("TextSummaryForRange = %+v, want %+v", got, want)
	}
}
