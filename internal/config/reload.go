package config

import (
	"sync"
	"time"

	"github.com/zakuhq/zaku/internal/config/loader"
	"github.com/zakuhq/zaku/internal/config/watcher"
)

// Reloader reloads the settings file whenever it changes.
type Reloader struct {
	path    string
	env     *loader.EnvLoader
	watcher *watcher.Watcher

	mu      sync.Mutex
	current *Settings
}

// NewReloader watches path and calls onChange with the new settings after
// each successful reload. onError receives load and validation failures;
// the previous settings stay current.
func NewReloader(path string, current *Settings, debounce time.Duration, onChange func(*Settings), onError func(error)) (*Reloader, error) {
	w, err := watcher.New(watcher.WithDebounce(debounce), watcher.WithErrorHandler(onError))
	if err != nil {
		return nil, err
	}
	r := &Reloader{
		path:    path,
		env:     loader.NewEnvLoader(EnvPrefix),
		watcher: w,
		current: current,
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		s, err := r.Reload()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if onChange != nil {
			onChange(s)
		}
	})
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}
	return r, nil
}

// Reload loads the file now and makes the result current.
func (r *Reloader) Reload() (*Settings, error) {
	s, err := LoadWith(nil, r.path, r.env)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.current = s
	r.mu.Unlock()
	return s, nil
}

// Current returns the settings last loaded successfully.
func (r *Reloader) Current() *Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.watcher.Close()
}
