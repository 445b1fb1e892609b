package buffer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zakuhq/zaku/internal/engine/tracking"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newClockedBuffer(text string) (*Buffer, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	return NewBufferFromString(text, WithClock(clock.Now)), clock
}

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if b.Text() != "" {
		t.Errorf("Text() = %q, want empty", b.Text())
	}
	if b.Version() != 0 {
		t.Errorf("Version() = %d, want 0", b.Version())
	}
}

func TestNewBufferFromStringNormalizesLineEndings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\nb", "a\nb"},
		{"a\r\n\r\nb\r", "a\n\nb\n"},
	}

	for _, tt := range tests {
		b := NewBufferFromString(tt.input)
		if got := b.Text(); got != tt.want {
			t.Errorf("NewBufferFromString(%q).Text() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReaderRoundTripKeepsLineEnding(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("one\r\ntwo\r\n"))
	if err != nil {
		t.Fatalf("NewBufferFromReader() error = %v", err)
	}
	if b.LineEnding() != LineEndingCRLF {
		t.Errorf("LineEnding() = %v, want %v", b.LineEnding(), LineEndingCRLF)
	}
	if b.Text() != "one\ntwo\n" {
		t.Errorf("Text() = %q", b.Text())
	}

	var out bytes.Buffer
	if _, err := b.WriteTo(&out); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if out.String() != "one\r\ntwo\r\n" {
		t.Errorf("WriteTo() wrote %q", out.String())
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb\n", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\rb\r", LineEndingCR},
		{"a\r\nb\nc\n", LineEndingLF},
	}

	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestEdit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		edits []Edit
		want  string
	}{
		{"insert", "hello", []Edit{NewInsert(5, " world")}, "hello world"},
		{"delete", "hello world", []Edit{NewDelete(5, 11)}, "hello"},
		{"replace", "hello world", []Edit{NewReplace(6, 11, "there")}, "hello there"},
		{
			"multiple ranges in old coordinates",
			"abcdef",
			[]Edit{NewReplace(1, 2, "X"), NewReplace(4, 5, "YY")},
			"aXcdYYf",
		},
		{
			"unsorted ranges",
			"abcdef",
			[]Edit{NewReplace(4, 5, "YY"), NewReplace(1, 2, "X")},
			"aXcdYYf",
		},
		{
			"overlapping ranges merge",
			"abcdef",
			[]Edit{NewReplace(1, 3, "X"), NewReplace(2, 4, "Y")},
			"aXYef",
		},
		{"reversed range", "abcdef", []Edit{NewDelete(4, 2)}, "abef"},
		{"out of range clamps", "abc", []Edit{NewInsert(99, "!")}, "abc!"},
		{"empty mid-char range is a no-op", "aé", []Edit{NewDelete(2, 2)}, "aé"},
		{"mid-char replace", "aéb", []Edit{NewReplace(2, 3, "e")}, "aeb"},
		{"mid-char insert keeps the char", "世界", []Edit{NewInsert(4, "y")}, "世y界"},
		{"mid-char insert at first char", "世界", []Edit{NewInsert(1, "x")}, "x世界"},
		{"inserted CRLF normalized", "ab", []Edit{NewInsert(1, "\r\n")}, "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.text)
			b.Edit(tt.edits...)
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditNoOpsDoNotBumpVersion(t *testing.T) {
	b := NewBufferFromString("abc")
	b.Edit()
	b.Insert(1, "")
	b.Replace(0, 1, "a")
	if b.Version() != 0 {
		t.Errorf("Version() = %d, want 0", b.Version())
	}
	if b.CanUndo() {
		t.Error("CanUndo() = true after no-op edits")
	}
}

func TestUndoRedo(t *testing.T) {
	b, clock := newClockedBuffer("abcdef")

	b.Edit(NewReplace(1, 2, "X"), NewReplace(4, 5, "YY"))
	first, _ := b.LastTransaction()
	clock.Advance(time.Second)
	b.Insert(0, ">")

	if b.Text() != ">aXcdYYf" {
		t.Fatalf("Text() = %q", b.Text())
	}

	if _, err := b.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if b.Text() != "aXcdYYf" {
		t.Errorf("after first undo Text() = %q", b.Text())
	}

	id, err := b.Undo()
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if id != first {
		t.Errorf("Undo() id = %v, want %v", id, first)
	}
	if b.Text() != "abcdef" {
		t.Errorf("after second undo Text() = %q", b.Text())
	}

	if _, err := b.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}

	id, err = b.Redo()
	if err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if id != first {
		t.Errorf("Redo() id = %v, want %v", id, first)
	}
	if b.Text() != "aXcdYYf" {
		t.Errorf("after redo Text() = %q", b.Text())
	}

	b.Redo()
	if b.Text() != ">aXcdYYf" {
		t.Errorf("after second redo Text() = %q", b.Text())
	}
	if _, err := b.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
}

func TestEditClearsRedo(t *testing.T) {
	b := NewBufferFromString("abc")
	b.Insert(3, "d")
	b.Undo()
	if !b.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}
	b.Insert(0, "x")
	if b.CanRedo() {
		t.Error("CanRedo() = true after a new edit")
	}
}

func TestTransactionGrouping(t *testing.T) {
	b, clock := newClockedBuffer("")

	b.Insert(0, "a")
	clock.Advance(100 * time.Millisecond)
	b.Insert(1, "b")
	clock.Advance(time.Second)
	b.Insert(2, "c")

	b.Undo()
	if b.Text() != "ab" {
		t.Errorf("after undo Text() = %q, want %q", b.Text(), "ab")
	}
	b.Undo()
	if b.Text() != "" {
		t.Errorf("after second undo Text() = %q, want empty", b.Text())
	}
}

func TestFinalizeLastTransaction(t *testing.T) {
	b, clock := newClockedBuffer("")

	b.Insert(0, "a")
	b.FinalizeLastTransaction()
	clock.Advance(10 * time.Millisecond)
	b.Insert(1, "b")

	b.Undo()
	if b.Text() != "a" {
		t.Errorf("after undo Text() = %q, want %q", b.Text(), "a")
	}
}

func TestGroupUntilTransaction(t *testing.T) {
	b, clock := newClockedBuffer("")

	b.Insert(0, "a")
	base, _ := b.FinalizeLastTransaction()
	for _, s := range []string{"b", "c"} {
		clock.Advance(time.Second)
		b.Insert(b.Len(), s)
	}

	b.GroupUntilTransaction(base)
	id, _ := b.Undo()
	if id != base {
		t.Errorf("Undo() id = %v, want %v", id, base)
	}
	if b.Text() != "" {
		t.Errorf("Text() = %q, want empty", b.Text())
	}
}

func TestTransact(t *testing.T) {
	b, _ := newClockedBuffer("abc")

	id, ok := b.Transact(func() {
		b.Insert(0, "1")
		b.Insert(4, "2")
	})
	if !ok {
		t.Fatal("Transact() ok = false")
	}
	if b.Text() != "1abc2" {
		t.Fatalf("Text() = %q", b.Text())
	}

	undone, _ := b.Undo()
	if undone != id {
		t.Errorf("Undo() id = %v, want %v", undone, id)
	}
	if b.Text() != "abc" {
		t.Errorf("Text() = %q, want %q", b.Text(), "abc")
	}

	if _, ok := b.Transact(func() {}); ok {
		t.Error("empty Transact() ok = true")
	}
}

func TestTransactClosesOnPanic(t *testing.T) {
	b := NewBufferFromString("abc")
	func() {
		defer func() { recover() }()
		b.Transact(func() {
			b.Insert(0, "x")
			panic("boom")
		})
	}()

	if b.Text() != "xabc" {
		t.Fatalf("Text() = %q", b.Text())
	}
	b.Undo()
	if b.Text() != "abc" {
		t.Errorf("Text() = %q after undo, want %q", b.Text(), "abc")
	}
}

func TestAnchors(t *testing.T) {
	b := NewBufferFromString("hello world")
	snap := b.Snapshot()

	before := snap.AnchorBefore(6)
	after := snap.AnchorAfter(6)
	inside := snap.AnchorAfter(8)
	end := snap.AnchorBefore(11)

	b.Insert(6, "big ")
	s := b.Snapshot()
	if got := s.ResolveAnchor(before); got != 6 {
		t.Errorf("before = %d, want 6", got)
	}
	if got := s.ResolveAnchor(after); got != 10 {
		t.Errorf("after = %d, want 10", got)
	}
	if got := s.ResolveAnchor(inside); got != 12 {
		t.Errorf("inside = %d, want 12", got)
	}

	b.Delete(10, 15)
	s = b.Snapshot()
	if got := s.ResolveAnchor(inside); got != 10 {
		t.Errorf("inside after delete = %d, want 10", got)
	}
	if got := s.ResolveAnchor(end); got != 10 {
		t.Errorf("end after delete = %d, want 10", got)
	}

	b.Undo()
	s = b.Snapshot()
	if s.Text() != "hello big world" {
		t.Fatalf("Text() = %q", s.Text())
	}
	if got := s.ResolveAnchor(inside); got != 12 {
		t.Errorf("inside after undo = %d, want 12", got)
	}
	if got := s.ResolveAnchor(end); got != 15 {
		t.Errorf("end after undo = %d, want 15", got)
	}
}

func TestAnchorEdges(t *testing.T) {
	b := NewBufferFromString("abc")
	snap := b.Snapshot()

	if a := snap.AnchorBefore(0); !a.IsMin() {
		t.Errorf("AnchorBefore(0) = %v, want min", a)
	}
	if a := snap.AnchorAfter(3); !a.IsMax() {
		t.Errorf("AnchorAfter(3) = %v, want max", a)
	}

	b.Insert(0, "x")
	b.Insert(4, "y")
	s := b.Snapshot()
	if got := s.ResolveAnchor(AnchorMin); got != 0 {
		t.Errorf("min = %d, want 0", got)
	}
	if got := s.ResolveAnchor(AnchorMax); got != 5 {
		t.Errorf("max = %d, want 5", got)
	}
}

func TestAnchorCmp(t *testing.T) {
	snap := NewBufferFromString("abcdef").Snapshot()
	a := snap.AnchorBefore(2)
	b := snap.AnchorAfter(2)
	c := snap.AnchorBefore(4)

	if a.Cmp(b, snap) >= 0 {
		t.Error("left-biased anchor should sort before right-biased anchor at the same offset")
	}
	if c.Cmp(b, snap) <= 0 {
		t.Error("anchor at 4 should sort after anchor at 2")
	}
	if a.Cmp(a, snap) != 0 {
		t.Error("anchor should compare equal to itself")
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	b := NewBufferFromString("abc")
	snap := b.Snapshot()
	b.Insert(3, "def")
	if snap.Text() != "abc" {
		t.Errorf("snapshot Text() = %q, want %q", snap.Text(), "abc")
	}
	if snap.Version() != 0 {
		t.Errorf("snapshot Version() = %d, want 0", snap.Version())
	}
}

func TestSubscription(t *testing.T) {
	b := NewBufferFromString("abc")
	sub := b.Subscribe()

	b.Insert(1, "X")
	b.Insert(3, "Y")

	got := sub.Consume()
	want := []tracking.Edit{
		{Old: Range{Start: 1, End: 1}, New: Range{Start: 1, End: 2}},
		{Old: Range{Start: 2, End: 2}, New: Range{Start: 3, End: 4}},
	}
	if len(got) != len(want) {
		t.Fatalf("Consume() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Consume()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if edits := sub.Consume(); len(edits) != 0 {
		t.Errorf("second Consume() = %v, want none", edits)
	}

	b.Unsubscribe(sub)
	b.Insert(0, "z")
	if edits := sub.Consume(); len(edits) != 0 {
		t.Errorf("Consume() after Unsubscribe = %v, want none", edits)
	}
}

func TestEditsSince(t *testing.T) {
	b := NewBufferFromString("abc")
	v := b.Version()
	b.Insert(0, "xx")
	b.Delete(2, 3)

	edits := b.Snapshot().EditsSince(v)
	if len(edits) != 1 {
		t.Fatalf("EditsSince() = %v, want one edit", edits)
	}
	want := tracking.Edit{Old: Range{Start: 0, End: 1}, New: Range{Start: 0, End: 2}}
	if edits[0] != want {
		t.Errorf("EditsSince()[0] = %v, want %v", edits[0], want)
	}
}

func TestSnapshotLines(t *testing.T) {
	snap := NewBufferFromString("one\ntwo\n\nfour").Snapshot()

	if snap.LineCount() != 4 {
		t.Errorf("LineCount() = %d, want 4", snap.LineCount())
	}
	lines := []string{"one", "two", "", "four"}
	for row, want := range lines {
		if got := snap.LineText(uint32(row)); got != want {
			t.Errorf("LineText(%d) = %q, want %q", row, got, want)
		}
	}
}

func TestCharClassifier(t *testing.T) {
	c := NewCharClassifier("-")
	tests := []struct {
		r    rune
		want CharKind
	}{
		{'a', CharWord},
		{'Z', CharWord},
		{'7', CharWord},
		{'_', CharWord},
		{'-', CharWord},
		{'é', CharWord},
		{' ', CharWhitespace},
		{'\t', CharWhitespace},
		{'\n', CharWhitespace},
		{'.', CharPunctuation},
		{'(', CharPunctuation},
	}

	for _, tt := range tests {
		if got := c.Kind(tt.r); got != tt.want {
			t.Errorf("Kind(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}

	if got := c.IgnorePunctuation(true).Kind('.'); got != CharWord {
		t.Errorf("IgnorePunctuation Kind('.') = %v, want word", got)
	}
}
