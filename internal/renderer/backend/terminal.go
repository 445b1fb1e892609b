package backend

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/zakuhq/zaku/internal/input/keymap"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// Bracketed paste arrives as key events between a start and an end
	// marker; they are collected here.
	pasting bool
	paste   strings.Builder
}

// NewTerminal creates a terminal backend for the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen creates a backend over screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.EnableFocus()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SetContent(x, y int, r rune, style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, r, nil, convertStyle(style))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

func (t *Terminal) PollEvent() (Event, bool) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{}, false
		}
		if out, ok := t.convertEvent(ev); ok {
			return out, true
		}
	}
}

func (t *Terminal) PostEvent(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

func convertStyle(s Style) tcell.Style {
	base := tcell.StyleDefault
	switch s {
	case StyleSelection:
		return base.Reverse(true)
	case StyleMarked:
		return base.Underline(true)
	case StylePlaceholder:
		return base.Dim(true)
	case StyleStatus:
		return base.Reverse(true).Bold(true)
	default:
		return base
	}
}

// convertEvent converts a tcell event. It reports false for events that
// produce nothing, such as keys inside a bracketed paste.
func (t *Terminal) convertEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if t.pasting {
			t.collectPaste(e)
			return Event{}, false
		}
		return Event{Type: EventKey, Chord: convertKey(e)}, true

	case *tcell.EventPaste:
		if e.Start() {
			t.pasting = true
			t.paste.Reset()
			return Event{}, false
		}
		t.pasting = false
		return Event{Type: EventPaste, Text: t.paste.String()}, true

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:   EventMouse,
			X:      x,
			Y:      y,
			Button: convertMouseButton(e.Buttons()),
			Mods:   convertMod(e.Modifiers()),
		}, true

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}, true

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}, true

	default:
		return Event{}, false
	}
}

func (t *Terminal) collectPaste(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		t.paste.WriteRune(e.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		t.paste.WriteByte('\n')
	case tcell.KeyTab:
		t.paste.WriteByte('\t')
	}
}

var tcellKeys = map[tcell.Key]keymap.Key{
	tcell.KeyEscape:     keymap.KeyEscape,
	tcell.KeyEnter:      keymap.KeyEnter,
	tcell.KeyTab:        keymap.KeyTab,
	tcell.KeyBacktab:    keymap.KeyTab,
	tcell.KeyBackspace:  keymap.KeyBackspace,
	tcell.KeyBackspace2: keymap.KeyBackspace,
	tcell.KeyDelete:     keymap.KeyDelete,
	tcell.KeyInsert:     keymap.KeyInsert,
	tcell.KeyHome:       keymap.KeyHome,
	tcell.KeyEnd:        keymap.KeyEnd,
	tcell.KeyPgUp:       keymap.KeyPageUp,
	tcell.KeyPgDn:       keymap.KeyPageDown,
	tcell.KeyUp:         keymap.KeyUp,
	tcell.KeyDown:       keymap.KeyDown,
	tcell.KeyLeft:       keymap.KeyLeft,
	tcell.KeyRight:      keymap.KeyRight,
	tcell.KeyF1:         keymap.KeyF1,
	tcell.KeyF2:         keymap.KeyF2,
	tcell.KeyF3:         keymap.KeyF3,
	tcell.KeyF4:         keymap.KeyF4,
	tcell.KeyF5:         keymap.KeyF5,
	tcell.KeyF6:         keymap.KeyF6,
	tcell.KeyF7:         keymap.KeyF7,
	tcell.KeyF8:         keymap.KeyF8,
	tcell.KeyF9:         keymap.KeyF9,
	tcell.KeyF10:        keymap.KeyF10,
	tcell.KeyF11:        keymap.KeyF11,
	tcell.KeyF12:        keymap.KeyF12,
}

// convertKey converts a tcell key event to a chord. Control letters, which
// tcell reports as their own keys, become ctrl plus the letter.
func convertKey(e *tcell.EventKey) keymap.Chord {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyRune {
		// Shift on a rune is already reflected in its case.
		return keymap.RuneChord(e.Rune(), mods&^keymap.ModShift)
	}
	if k == tcell.KeyBacktab {
		mods |= keymap.ModShift
	}
	if key, ok := tcellKeys[k]; ok {
		return keymap.KeyChord(key, mods)
	}
	if k == tcell.KeyCtrlSpace {
		return keymap.RuneChord(' ', mods|keymap.ModCtrl)
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return keymap.RuneChord(rune('a'+(k-tcell.KeyCtrlA)), mods|keymap.ModCtrl)
	}
	return keymap.KeyChord(keymap.KeyNone, mods)
}

func convertMod(m tcell.ModMask) keymap.Modifier {
	var result keymap.Modifier
	if m&tcell.ModShift != 0 {
		result |= keymap.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= keymap.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= keymap.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= keymap.ModMeta
	}
	return result
}

func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseRight
	case b&tcell.Button3 != 0:
		return MouseMiddle
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}
