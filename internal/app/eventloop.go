package app

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/zakuhq/zaku/internal/action"
	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/cursor"
	"github.com/zakuhq/zaku/internal/engine/rope"
	"github.com/zakuhq/zaku/internal/input/keymap"
	"github.com/zakuhq/zaku/internal/renderer"
	"github.com/zakuhq/zaku/internal/renderer/backend"
	"github.com/zakuhq/zaku/internal/renderer/viewport"
)

// Chords handled by the application before the keymap.
var (
	quitChord   = keymap.MustParseChord("ctrl+q")
	saveChord   = keymap.MustParseChord("ctrl+s")
	focusChord  = keymap.MustParseChord("escape")
	submitChord = keymap.MustParseChord("enter")
)

// multiClickInterval is the longest gap between clicks of a double click.
const multiClickInterval = 400 * time.Millisecond

type dragTarget uint8

const (
	dragNone dragTarget = iota
	dragInput
	dragEditor
)

// HandleEvent processes one backend event. It returns ErrQuit when the
// application should exit.
func (app *Application) HandleEvent(ev backend.Event) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyLocked(ev.Chord)
	case backend.EventMouse:
		app.handleMouseLocked(ev)
	case backend.EventPaste:
		app.dispatchLocked(action.HandleInput{Text: ev.Text})
	case backend.EventResize:
		app.handleResizeLocked(ev.Width, ev.Height)
	case backend.EventFocus:
		app.handleFocusLocked(ev.Focused)
	case backend.EventInterrupt:
		app.handleInterruptLocked(ev.Data)
	}
	return nil
}

func (app *Application) handleKeyLocked(c keymap.Chord) error {
	if c != quitChord {
		app.quitArmed = false
	}

	switch c {
	case quitChord:
		if app.doc.IsModified() && !app.quitArmed {
			app.quitArmed = true
			app.message = ErrUnsavedChanges.Error() + ", ctrl+q again to quit"
			return nil
		}
		return ErrQuit
	case saveChord:
		app.saveLocked()
		return nil
	case focusChord:
		app.setInputFocusLocked(!app.inputFocused)
		return nil
	}
	if app.inputFocused && c == submitChord {
		app.submitLocked()
		return nil
	}

	if b, ok := app.keymap.Lookup(c); ok {
		if b.Func != nil {
			if err := b.Func(); err != nil {
				app.logger.WithComponent("lua").Warn("%s: %v", c, err)
				app.message = "script error on " + c.String()
			}
			return nil
		}
		app.dispatchLocked(b.Action)
		return nil
	}
	if text, ok := chordText(c); ok {
		app.dispatchLocked(action.HandleInput{Text: text})
	}
	return nil
}

// chordText returns the text an unbound chord types.
func chordText(c keymap.Chord) (string, bool) {
	if c.Key != keymap.KeyRune || c.Mods&^keymap.ModShift != 0 {
		return "", false
	}
	r := c.Rune
	if c.Mods.Has(keymap.ModShift) {
		r = unicode.ToUpper(r)
	}
	return string(r), true
}

// dispatchLocked sends a to the focused model.
func (app *Application) dispatchLocked(a action.Action) {
	var handled bool
	if app.inputFocused {
		handled = app.input.Dispatch(a)
	} else {
		handled = app.doc.Editor.Dispatch(a)
	}
	if !handled {
		app.logger.Debug("%v not handled", a)
	}
}

func (app *Application) setInputFocusLocked(focused bool) {
	app.inputFocused = focused
	if focused {
		app.input.Focus()
	} else {
		app.input.Blur()
	}
}

// submitLocked runs the input line as Lua and clears it on success.
func (app *Application) submitLocked() {
	code := app.input.Text()
	if strings.TrimSpace(code) == "" {
		return
	}
	if err := app.scripts.DoString(code); err != nil {
		app.logger.WithComponent("lua").Warn("%v", err)
		msg, _, _ := strings.Cut(err.Error(), "\n")
		app.message = "lua: " + msg
		return
	}
	app.input.SetText("")
	app.message = ""
}

func (app *Application) saveLocked() {
	if err := app.doc.Save(); err != nil {
		app.logger.Error("%v", err)
		app.message = err.Error()
		return
	}
	app.logger.Info("saved %s", app.doc.Path)
	app.message = "saved"
}

func (app *Application) handleMouseLocked(ev backend.Event) {
	if app.renderer == nil {
		return
	}
	lay := app.renderer.Layout(app.frameLocked())
	ed := app.doc.Editor

	switch ev.Button {
	case backend.MouseWheelUp:
		ed.Dispatch(action.ScrollLineUp)
	case backend.MouseWheelDown:
		ed.Dispatch(action.ScrollLineDown)
	case backend.MouseLeft:
		app.handlePressLocked(lay, ev)
	case backend.MouseNone:
		switch app.drag {
		case dragInput:
			app.input.MouseUp()
		case dragEditor:
			ed.EndSelection()
		}
		app.drag = dragNone
	}
}

// handlePressLocked handles a left button press, or motion while it is
// held.
func (app *Application) handlePressLocked(lay renderer.Layout, ev backend.Event) {
	em := app.input.LayoutDetails().EmAdvance()
	x, y := float64(ev.X)*em, float64(ev.Y)

	switch app.drag {
	case dragInput:
		app.input.MouseMove(x, y)
		return
	case dragEditor:
		offset := app.editorOffsetLocked(lay, ev.X, ev.Y)
		app.revealIf(app.doc.Editor.ExtendSelection(offset))
		return
	}

	clicks := app.countClickLocked(ev.X, ev.Y)
	switch {
	case lay.Input.Contains(ev.X, ev.Y):
		app.setInputFocusLocked(true)
		if app.input.MouseDown(x, y, ev.Mods.Has(keymap.ModShift), clicks) {
			app.drag = dragInput
		}
	case lay.Text.Contains(ev.X, ev.Y):
		app.setInputFocusLocked(false)
		offset := app.editorOffsetLocked(lay, ev.X, ev.Y)
		app.revealIf(app.doc.Editor.BeginSelection(offset, cursor.SelectCharacter))
		app.drag = dragEditor
	}
}

// revealIf scrolls the editor to its selections when they changed.
func (app *Application) revealIf(changed bool) {
	if changed {
		app.doc.Editor.Autoscroll()
	}
}

// countClickLocked returns 1 for a single click, 2 for a double click and
// so on.
func (app *Application) countClickLocked(x, y int) int {
	now := time.Now()
	if x == app.lastClickX && y == app.lastClickY && now.Sub(app.lastClick) <= multiClickInterval {
		app.clickCount++
	} else {
		app.clickCount = 1
	}
	app.lastClick, app.lastClickX, app.lastClickY = now, x, y
	return app.clickCount
}

// editorOffsetLocked returns the buffer offset under the screen cell
// (x, y), clamped to the text.
func (app *Application) editorOffsetLocked(lay renderer.Layout, x, y int) int {
	ed := app.doc.Editor
	snap := ed.Snapshot()
	details := ed.LayoutDetails()
	pos := ed.ScrollPosition()

	row := float64(y-lay.Text.Y) + math.Floor(pos.Y)
	row = min(max(row, 0), float64(snap.MaxPoint().Row))
	dr := display.DisplayRow(row)
	px := max(float64(x-lay.Text.X), 0)*details.EmAdvance() + pos.X
	col := snap.DisplayColumnForX(dr, px, details)
	return snap.DisplayPointToOffset(display.NewDisplayPoint(dr, col), rope.Left)
}

func (app *Application) handleResizeLocked(width, height int) {
	if app.renderer == nil {
		return
	}
	app.renderer.Resize(width, height)
	app.layoutLocked()
	ed := app.doc.Editor
	ed.Scroll().RequestAutoscroll(viewport.Fit())
	ed.Autoscroll()
}

func (app *Application) handleFocusLocked(focused bool) {
	switch {
	case !focused:
		app.input.Blur()
	case app.inputFocused:
		app.input.Focus()
	}
}

func (app *Application) handleInterruptLocked(data any) {
	switch v := data.(type) {
	case settingsChanged:
		app.applySettingsLocked(v.settings)
	case reloadFailed:
		app.logger.Warn("config reload: %v", v.err)
		app.message = "config error, keeping previous settings"
	}
}
