// Package backend abstracts the terminal the renderer draws on.
package backend

import (
	"errors"

	"github.com/zakuhq/zaku/internal/input/keymap"
)

// ErrClosed is returned when posting to a backend that has shut down.
var ErrClosed = errors.New("backend closed")

// Style is the role of a cell; backends choose how each role looks.
type Style uint8

const (
	StyleDefault Style = iota
	StyleSelection
	StyleMarked
	StylePlaceholder
	StyleStatus
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocus
	EventInterrupt
)

// MouseButton identifies the button of a mouse event.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Event is a terminal event.
type Event struct {
	Type EventType

	// Key events
	Chord keymap.Chord

	// Mouse events
	X, Y   int
	Button MouseButton
	Mods   keymap.Modifier

	// Resize events
	Width, Height int

	// Focus events
	Focused bool

	// Paste events carry the pasted text.
	Text string

	// Interrupt events carry the value given to PostEvent.
	Data any
}

// Backend is a character-cell terminal.
type Backend interface {
	Init() error
	Shutdown()
	Size() (width, height int)
	SetContent(x, y int, r rune, style Style)
	Clear()
	Show()
	ShowCursor(x, y int)
	HideCursor()

	// PollEvent blocks until the next event. It reports false once the
	// backend has shut down.
	PollEvent() (Event, bool)

	// PostEvent queues an interrupt event carrying data, waking PollEvent.
	PostEvent(data any) error
}
