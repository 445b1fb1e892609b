package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/zakuhq/zaku/internal/action"
	"github.com/zakuhq/zaku/internal/config"
)

// Binding sources.
const (
	SourceDefault = "default"
	SourceUser    = "user"
	SourceScript  = "script"
)

// Binding maps a chord to an action or to a script function. Exactly one
// of Action and Func is set.
type Binding struct {
	Chord  Chord
	Action action.Action
	Func   func() error
	Source string
}

// Keymap maps chords to bindings. Later bindings for a chord replace
// earlier ones. It is safe for concurrent use.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[Chord]Binding
}

// New returns an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[Chord]Binding)}
}

// Bind binds keys to the action called name configured by args.
func (k *Keymap) Bind(keys, name string, args map[string]any, source string) error {
	c, err := ParseChord(keys)
	if err != nil {
		return err
	}
	a, err := action.Parse(name, args)
	if err != nil {
		return fmt.Errorf("binding %s: %w", keys, err)
	}
	k.set(Binding{Chord: c, Action: a, Source: source})
	return nil
}

// BindAction binds a chord to an action.
func (k *Keymap) BindAction(c Chord, a action.Action, source string) {
	k.set(Binding{Chord: c, Action: a, Source: source})
}

// BindFunc binds keys to fn.
func (k *Keymap) BindFunc(keys string, fn func() error, source string) error {
	c, err := ParseChord(keys)
	if err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("binding %s: nil function", keys)
	}
	k.set(Binding{Chord: c, Func: fn, Source: source})
	return nil
}

func (k *Keymap) set(b Binding) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[b.Chord] = b
}

// Unbind removes the binding for keys. It reports whether one existed.
func (k *Keymap) Unbind(keys string) (bool, error) {
	c, err := ParseChord(keys)
	if err != nil {
		return false, err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.bindings[c]
	delete(k.bindings, c)
	return ok, nil
}

// Lookup returns the binding for c.
func (k *Keymap) Lookup(c Chord) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	b, ok := k.bindings[c]
	return b, ok
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}

// Bindings returns every binding ordered by chord specification.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	k.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Chord.String() < out[j].Chord.String()
	})
	return out
}

// Replace discards every binding and installs bindings in order, so a
// later binding for a chord wins.
func (k *Keymap) Replace(bindings []Binding) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings = make(map[Chord]Binding, len(bindings))
	for _, b := range bindings {
		k.bindings[b.Chord] = b
	}
}

// Apply binds every entry from the settings file. Entries that fail to
// parse are skipped and reported together.
func (k *Keymap) Apply(bindings []config.KeyBinding) error {
	var errs []error
	for i, b := range bindings {
		if err := k.Bind(b.Keys, b.Action, b.Args, SourceUser); err != nil {
			errs = append(errs, fmt.Errorf("keymap[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
