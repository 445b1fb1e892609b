// Package clipboard provides access to the system clipboard and an
// in-memory clipboard for tests and headless use.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when the clipboard holds no text or
// cannot be reached.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard reads and writes plain text.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// System is the clipboard of the operating system.
type System struct{}

// NewSystem returns the system clipboard, or an error if the platform has
// no clipboard utility.
func NewSystem() (System, error) {
	if clipboard.Unsupported {
		return System{}, ErrClipboardUnavailable
	}
	return System{}, nil
}

// Read returns the clipboard text.
func (System) Read() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w: %w", ErrClipboardUnavailable, err)
	}
	return text, nil
}

// Write replaces the clipboard text.
func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w: %w", ErrClipboardUnavailable, err)
	}
	return nil
}

// Memory is a process-local clipboard. The zero value is empty and ready
// to use.
type Memory struct {
	mu   sync.Mutex
	text string
	set  bool
}

// NewMemory returns a clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text, set: true}
}

// Read returns the last written text.
func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrClipboardUnavailable
	}
	return m.text, nil
}

// Write stores text.
func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.set = true
	return nil
}

// Fallback reads from and writes to Primary, switching to Secondary when
// Primary is unavailable.
type Fallback struct {
	Primary   Clipboard
	Secondary Clipboard
}

// Read returns the text of the first clipboard that has some.
func (f Fallback) Read() (string, error) {
	text, err := f.Primary.Read()
	if err == nil {
		return text, nil
	}
	return f.Secondary.Read()
}

// Write stores text in both clipboards and fails only if both fail.
func (f Fallback) Write(text string) error {
	errPrimary := f.Primary.Write(text)
	errSecondary := f.Secondary.Write(text)
	if errPrimary != nil && errSecondary != nil {
		return errPrimary
	}
	return nil
}
