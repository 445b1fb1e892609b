package app

import (
	"time"

	"github.com/zakuhq/zaku/internal/config"
	"github.com/zakuhq/zaku/internal/input/keymap"
	"github.com/zakuhq/zaku/internal/renderer/viewport"
)

// reloadDebounce collapses the burst of writes an editor makes on save.
const reloadDebounce = 100 * time.Millisecond

// settingsChanged and reloadFailed travel from the watcher goroutine to
// the event loop as interrupt events.
type settingsChanged struct {
	settings *config.Settings
}

type reloadFailed struct {
	err error
}

// startReloader watches the configuration file. Must be called with mu
// held and a backend set.
func (app *Application) startReloader() {
	b := app.backend
	post := func(data any) {
		if err := b.PostEvent(data); err != nil {
			app.logger.Debug("dropped config event: %v", err)
		}
	}
	r, err := config.NewReloader(app.opts.ConfigPath, app.settings, reloadDebounce,
		func(s *config.Settings) { post(settingsChanged{settings: s}) },
		func(err error) { post(reloadFailed{err: err}) },
	)
	if err != nil {
		app.logger.Warn("watch %s: %v", app.opts.ConfigPath, err)
		return
	}
	app.reloader = r
	app.logger.Info("watching %s", app.opts.ConfigPath)
}

// applySettingsLocked makes s current. Command line flags still take
// precedence over the file.
func (app *Application) applySettingsLocked(s *config.Settings) {
	if err := app.applyFlags(s); err != nil {
		app.logger.Warn("config reload: %v", err)
		app.message = "config error, keeping previous settings"
		return
	}
	app.settings = s

	app.logger.SetLevel(ParseLogLevel(s.Log.Level))

	ed := app.doc.Editor
	ed.SetTabSize(s.Editor.TabSize)
	ed.SetMaxExpansionColumn(s.Editor.MaxExpansionColumn)
	ed.Buffer().SetGroupInterval(s.Editor.UndoGroupInterval.Duration)

	// Settings are validated, so the policy parses.
	policy, _ := viewport.ParseScrollBeyondLastLine(s.Editor.ScrollBeyondLastLine)
	scroll := ed.Scroll()
	scroll.SetVerticalScrollMargin(s.Editor.VerticalScrollMargin)
	scroll.SetHorizontalScrollMargin(s.Editor.HorizontalScrollMargin)
	scroll.SetScrollBeyondLastLine(policy)
	scroll.RequestAutoscroll(viewport.Fit())
	ed.Autoscroll()

	app.input.SetPlaceholder(s.Input.Placeholder)
	app.input.SetMasked(s.Input.Masked)
	app.input.Buffer().SetGroupInterval(s.Editor.UndoGroupInterval.Duration)

	app.reloadKeymapLocked(s.Keymap)

	app.logger.Info("config reloaded")
	app.message = "config reloaded"
}

// reloadKeymapLocked rebuilds the bindings from the defaults and user,
// keeping the bindings made by scripts. The keymap is updated in place
// since the script runtime holds it.
func (app *Application) reloadKeymapLocked(user []config.KeyBinding) {
	km := keymap.Default()
	if err := km.Apply(user); err != nil {
		app.logger.Warn("keymap: %v", err)
	}
	bindings := km.Bindings()
	for _, b := range app.keymap.Bindings() {
		if b.Source == keymap.SourceScript {
			bindings = append(bindings, b)
		}
	}
	app.keymap.Replace(bindings)
}
