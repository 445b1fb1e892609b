package clipboard

import (
	"errors"
	"testing"
)

type broken struct{}

func (broken) Read() (string, error) { return "", ErrClipboardUnavailable }
func (broken) Write(string) error { return ErrClipboardUnavailable }

func TestMemory(t *testing.T) {
	var m Memory
	if _, err := m.Read(); !errors.Is(err, ErrClipboardUnavailable) {
		t.Fatalf("Read() on empty clipboard error = %v, want ErrClipboardUnavailable", err)
	}
	if err := m.Write("héllo"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got, err := m.Read(); err != nil || got != "héllo" {
		t.Errorf("Read() = %q, %v, want %q", got, err, "héllo")
	}
	if err := m.Write(""); err != nil {
		t.Fatalf("Write(\"\") error = %v", err)
	}
	if got, err := m.Read(); err != nil || got != "" {
		t.Errorf("Read() after empty write = %q, %v", got, err)
	}
}

func TestFallback(t *testing.T) {
	mem := NewMemory("saved")
	f := Fallback{Primary: broken{}, Secondary: mem}

	if got, err := f.Read(); err != nil || got != "saved" {
		t.Errorf("Read() = %q, %v, want %q", got, err, "saved")
	}
	if err := f.Write("next"); err != nil {
		t.Errorf("Write() error = %v", err)
	}
	if got, _ := mem.Read(); got != "next" {
		t.Errorf("secondary holds %q, want %q", got, "next")
	}

	both := Fallback{Primary: broken{}, Secondary: broken{}}
	if err := both.Write("x"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("Write() with no clipboard error = %v", err)
	}
}
