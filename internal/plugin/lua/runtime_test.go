package lua

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zakuhq/zaku/internal/action"
	"github.com/zakuhq/zaku/internal/editor"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/input/keymap"
)

type fakeHost struct {
	dispatched []action.Action
	text       string
	ranges     []buffer.Range
}

func (h *fakeHost) Dispatch(a action.Action) bool {
	h.dispatched = append(h.dispatched, a)
	return true
}

func (h *fakeHost) Text() string { return h.text }

func (h *fakeHost) SelectedRanges() []buffer.Range { return h.ranges }

func TestDispatch(t *testing.T) {
	h := &fakeHost{}
	r := New(h)
	defer r.Close()

	err := r.DoString(`
		assert(zaku.dispatch("MoveLeft") == true)
		zaku.dispatch("DeleteToPreviousWordStart", {ignore_newlines = true})
		zaku.insert("hi")
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	want := []action.Action{
		action.MoveLeft,
		action.DeleteToPreviousWordStart{IgnoreNewlines: true},
		action.HandleInput{Text: "hi"},
	}
	if len(h.dispatched) != len(want) {
		t.Fatalf("dispatched %v, want %v", h.dispatched, want)
	}
	for i := range want {
		if h.dispatched[i] != want[i] {
			t.Errorf("dispatched[%d] = %v, want %v", i, h.dispatched[i], want[i])
		}
	}
}

func TestDispatchErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"unknown action", `zaku.dispatch("Explode")`, "unknown action"},
		{"bad args", `zaku.dispatch("MoveLeft", {x = 1})`, "invalid action arguments"},
		{"args not a table", `zaku.dispatch("MoveLeft", 3)`, "table expected"},
		{"missing name", `zaku.dispatch()`, "string expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &fakeHost{}
			r := New(h)
			defer r.Close()

			err := r.DoString(tt.code)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("DoString(%q) error = %v, want it to mention %q", tt.code, err, tt.want)
			}
			if len(h.dispatched) != 0 {
				t.Errorf("dispatched %v after an error", h.dispatched)
			}
		})
	}
}

func TestTextAndSelections(t *testing.T) {
	h := &fakeHost{
		text:   "hello world",
		ranges: []buffer.Range{{Start: 0, End: 5}, {Start: 6, End: 6}},
	}
	var logged []string
	r := New(h, WithLogFunc(func(s string) { logged = append(logged, s) }))
	defer r.Close()

	err := r.DoString(`
		local sels = zaku.selections()
		zaku.log(zaku.text(), #sels, sels[1].start, sels[1]["end"], sels[2].start)
		print("done")
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	want := []string{"hello world 2 0 5 6", "done"}
	if len(logged) != len(want) {
		t.Fatalf("logged %q, want %q", logged, want)
	}
	for i := range want {
		if logged[i] != want[i] {
			t.Errorf("logged[%d] = %q, want %q", i, logged[i], want[i])
		}
	}
}

func TestBind(t *testing.T) {
	h := &fakeHost{}
	k := keymap.New()
	r := New(h, WithBinder(k))
	defer r.Close()

	if err := r.DoString(`zaku.bind("ctrl+d", function() zaku.dispatch("SelectAll") end)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	b, ok := k.Lookup(keymap.MustParseChord("ctrl+d"))
	if !ok || b.Func == nil {
		t.Fatalf("ctrl+d not bound to a function: %+v", b)
	}
	if b.Source != keymap.SourceScript {
		t.Errorf("Source = %q, want %q", b.Source, keymap.SourceScript)
	}
	if err := b.Func(); err != nil {
		t.Fatalf("bound function error = %v", err)
	}
	if len(h.dispatched) != 1 || h.dispatched[0] != action.SelectAll {
		t.Errorf("dispatched %v, want [SelectAll]", h.dispatched)
	}

	if err := r.DoString(`zaku.bind("ctrl+", function() end)`); err == nil {
		t.Error("binding an invalid chord succeeded")
	}
}

func TestBindWithoutBinder(t *testing.T) {
	r := New(&fakeHost{})
	defer r.Close()
	if err := r.DoString(`zaku.bind("ctrl+d", function() end)`); err == nil {
		t.Error("zaku.bind without a keymap succeeded")
	}
}

func TestSandbox(t *testing.T) {
	r := New(&fakeHost{})
	defer r.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "require"} {
		code := `assert(` + name + ` == nil, "` + name + ` is reachable")`
		if err := r.DoString(code); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if err := r.DoString(`assert(string.upper("a") == "A" and math.max(1, 2) == 2)`); err != nil {
		t.Errorf("safe libraries missing: %v", err)
	}
}

func TestTimeout(t *testing.T) {
	r := New(&fakeHost{}, WithTimeout(50*time.Millisecond))
	defer r.Close()

	err := r.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString(loop) error = %v, want ErrExecutionTimeout", err)
	}
	if err := r.DoString(`x = 1`); err != nil {
		t.Errorf("runtime unusable after a timeout: %v", err)
	}
}

func TestClosed(t *testing.T) {
	r := New(&fakeHost{})
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := r.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close = %v, want ErrStateClosed", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestDrivesEditor(t *testing.T) {
	ed := editor.New(buffer.NewBufferFromString("hello"))
	r := New(ed)
	defer r.Close()

	err := r.DoString(`
		zaku.dispatch("MoveToEnd")
		zaku.insert(" world")
		zaku.dispatch("MoveToBeginningOfLine", {stop_at_indent = false})
		zaku.dispatch("SelectToNextWordEnd")
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := ed.Text(); got != "hello world" {
		t.Errorf("Text() = %q, want %q", got, "hello world")
	}
	got := ed.SelectedRanges()
	if len(got) != 1 || got[0] != (buffer.Range{Start: 0, End: 5}) {
		t.Errorf("SelectedRanges() = %v, want [{0 5}]", got)
	}
}
