package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/zakuhq/zaku/internal/input/keymap"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want string
	}{
		{"rune", tcell.KeyRune, 'a', tcell.ModNone, "a"},
		{"upper rune", tcell.KeyRune, 'A', tcell.ModShift, "shift+a"},
		{"alt rune", tcell.KeyRune, 'b', tcell.ModAlt, "alt+b"},
		{"ctrl letter", tcell.KeyCtrlA, 0, tcell.ModCtrl, "ctrl+a"},
		{"ctrl z", tcell.KeyCtrlZ, 0, tcell.ModCtrl, "ctrl+z"},
		{"ctrl space", tcell.KeyCtrlSpace, 0, tcell.ModCtrl, "ctrl+space"},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, "enter"},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, "tab"},
		{"backtab", tcell.KeyBacktab, 0, tcell.ModNone, "shift+tab"},
		{"backspace", tcell.KeyBackspace2, 0, tcell.ModNone, "backspace"},
		{"alt backspace", tcell.KeyBackspace2, 0, tcell.ModAlt, "alt+backspace"},
		{"shift left", tcell.KeyLeft, 0, tcell.ModShift, "shift+left"},
		{"ctrl shift end", tcell.KeyEnd, 0, tcell.ModCtrl | tcell.ModShift, "ctrl+shift+end"},
		{"f5", tcell.KeyF5, 0, tcell.ModNone, "f5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertKey(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			want := keymap.MustParseChord(tt.want)
			if got != want {
				t.Errorf("convertKey() = %s, want %s", got, want)
			}
		})
	}
}

func TestConvertEventPaste(t *testing.T) {
	term := &Terminal{}

	if _, ok := term.convertEvent(tcell.NewEventPaste(true)); ok {
		t.Fatal("paste start produced an event")
	}
	for _, ev := range []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, '!', tcell.ModNone),
	} {
		if _, ok := term.convertEvent(ev); ok {
			t.Fatal("key inside a paste produced an event")
		}
	}
	ev, ok := term.convertEvent(tcell.NewEventPaste(false))
	if !ok || ev.Type != EventPaste {
		t.Fatalf("paste end = %+v, %v; want a paste event", ev, ok)
	}
	if ev.Text != "hi\n!" {
		t.Errorf("paste text = %q, want %q", ev.Text, "hi\n!")
	}

	ev, ok = term.convertEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if !ok || ev.Type != EventKey {
		t.Errorf("key after paste = %+v, %v; want a key event", ev, ok)
	}
}

func TestConvertEventOther(t *testing.T) {
	term := &Terminal{}

	ev, ok := term.convertEvent(tcell.NewEventResize(80, 24))
	if !ok || ev.Type != EventResize || ev.Width != 80 || ev.Height != 24 {
		t.Errorf("resize = %+v, %v", ev, ok)
	}

	ev, ok = term.convertEvent(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModShift))
	if !ok || ev.Type != EventMouse || ev.X != 3 || ev.Y != 4 || ev.Button != MouseLeft || ev.Mods != keymap.ModShift {
		t.Errorf("mouse = %+v, %v", ev, ok)
	}

	ev, ok = term.convertEvent(tcell.NewEventInterrupt("reload"))
	if !ok || ev.Type != EventInterrupt || ev.Data != "reload" {
		t.Errorf("interrupt = %+v, %v", ev, ok)
	}
}

func TestConvertMouseButton(t *testing.T) {
	tests := []struct {
		in   tcell.ButtonMask
		want MouseButton
	}{
		{tcell.Button1, MouseLeft},
		{tcell.Button2, MouseRight},
		{tcell.Button3, MouseMiddle},
		{tcell.WheelUp, MouseWheelUp},
		{tcell.WheelDown, MouseWheelDown},
		{tcell.ButtonNone, MouseNone},
	}
	for _, tt := range tests {
		if got := convertMouseButton(tt.in); got != tt.want {
			t.Errorf("convertMouseButton(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMemoryDrawing(t *testing.T) {
	m := NewMemory(5, 2)
	m.SetContent(0, 0, 'h', StyleDefault)
	m.SetContent(1, 0, 'i', StyleSelection)
	m.SetContent(9, 9, 'x', StyleDefault)

	if got := m.Line(0); got != "" {
		t.Errorf("Line(0) before Show = %q, want empty", got)
	}
	m.Show()
	if got := m.Line(0); got != "hi" {
		t.Errorf("Line(0) = %q, want %q", got, "hi")
	}
	if got := m.Cell(1, 0); got.Style != StyleSelection {
		t.Errorf("Cell(1, 0).Style = %v, want selection", got.Style)
	}

	m.ShowCursor(2, 1)
	if x, y, visible := m.Cursor(); x != 2 || y != 1 || !visible {
		t.Errorf("Cursor() = %d, %d, %v", x, y, visible)
	}
	m.HideCursor()
	if _, _, visible := m.Cursor(); visible {
		t.Error("cursor visible after HideCursor")
	}

	m.Clear()
	m.Show()
	if got := m.Line(0); got != "" {
		t.Errorf("Line(0) after Clear = %q, want empty", got)
	}
	if got := m.Shows(); got != 2 {
		t.Errorf("Shows() = %d, want 2", got)
	}
}

func TestMemoryEvents(t *testing.T) {
	m := NewMemory(10, 3)

	if err := m.Inject(Event{Type: EventResize, Width: 20, Height: 4}); err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if w, h := m.Size(); w != 20 || h != 4 {
		t.Errorf("Size() = %d, %d; want 20, 4", w, h)
	}
	if err := m.PostEvent(42); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}

	ev, ok := m.PollEvent()
	if !ok || ev.Type != EventResize {
		t.Errorf("first event = %+v, %v; want resize", ev, ok)
	}
	ev, ok = m.PollEvent()
	if !ok || ev.Type != EventInterrupt || ev.Data != 42 {
		t.Errorf("second event = %+v, %v; want interrupt 42", ev, ok)
	}

	m.Shutdown()
	if _, ok := m.PollEvent(); ok {
		t.Error("PollEvent() after Shutdown reported an event")
	}
	if err := m.Inject(Event{Type: EventKey}); err != ErrClosed {
		t.Errorf("Inject() after Shutdown = %v, want ErrClosed", err)
	}
}
