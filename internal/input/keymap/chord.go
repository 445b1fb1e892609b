package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Key identifies a non-character key. Character keys use KeyRune with the
// character in Chord.Rune.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

var keyByName = func() map[string]Key {
	m := map[string]Key{
		"esc":    KeyEscape,
		"return": KeyEnter,
		"bs":     KeyBackspace,
		"del":    KeyDelete,
		"ins":    KeyInsert,
		"pgup":   KeyPageUp,
		"pgdn":   KeyPageDown,
	}
	for k, name := range keyNames {
		m[name] = k
	}
	return m
}()

// String returns the key name used in key specifications.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k == KeyRune {
		return "rune"
	}
	return "none"
}

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModMeta

	ModNone Modifier = 0
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

var modifierByName = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"a":       ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"super":   ModMeta,
	"m":       ModMeta,
}

// Chord is a key press together with its modifiers.
type Chord struct {
	Key  Key
	Rune rune
	Mods Modifier
}

// KeyChord returns the chord for a non-character key.
func KeyChord(k Key, mods Modifier) Chord {
	return Chord{Key: k, Mods: mods}
}

// RuneChord returns the chord for a character. Upper-case letters are
// stored lower-case with shift, so "A" and "shift+a" are the same chord.
func RuneChord(r rune, mods Modifier) Chord {
	if unicode.IsUpper(r) {
		r = unicode.ToLower(r)
		mods |= ModShift
	}
	return Chord{Key: KeyRune, Rune: r, Mods: mods}
}

// String returns the canonical specification, e.g. "ctrl+shift+left".
func (c Chord) String() string {
	var b strings.Builder
	for _, m := range []struct {
		mod  Modifier
		name string
	}{{ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModShift, "shift"}, {ModMeta, "meta"}} {
		if c.Mods.Has(m.mod) {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	switch {
	case c.Key == KeyRune && c.Rune == ' ':
		b.WriteString("space")
	case c.Key == KeyRune:
		b.WriteRune(c.Rune)
	default:
		b.WriteString(c.Key.String())
	}
	return b.String()
}

// ParseChord parses a key specification such as "ctrl+shift+left", "A",
// "alt+backspace" or "ctrl++". Names are case-insensitive.
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	keyPart := spec
	var modParts []string
	switch {
	case spec == "+":
	case strings.HasSuffix(spec, "++"):
		keyPart = "+"
		modParts = strings.Split(strings.TrimSuffix(spec, "++"), "+")
	case strings.Contains(spec, "+"):
		parts := strings.Split(spec, "+")
		keyPart = parts[len(parts)-1]
		modParts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range modParts {
		mod, ok := modifierByName[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods |= mod
	}

	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Chord{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	lower := strings.ToLower(keyPart)
	if lower == "space" {
		return RuneChord(' ', mods), nil
	}
	if k, ok := keyByName[lower]; ok {
		return KeyChord(k, mods), nil
	}
	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Chord{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, keyPart, spec)
	}
	return RuneChord(runes[0], mods), nil
}

// MustParseChord is ParseChord for specifications known to be valid.
func MustParseChord(spec string) Chord {
	c, err := ParseChord(spec)
	if err != nil {
		panic(err)
	}
	return c
}
