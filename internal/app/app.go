// Package app wires the editor, the line input, key bindings, scripts and
// the renderer into a terminal application.
package app

import (
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zakuhq/zaku/internal/clipboard"
	"github.com/zakuhq/zaku/internal/config"
	"github.com/zakuhq/zaku/internal/editor"
	"github.com/zakuhq/zaku/internal/input/keymap"
	"github.com/zakuhq/zaku/internal/lineedit"
	"github.com/zakuhq/zaku/internal/plugin/lua"
	"github.com/zakuhq/zaku/internal/renderer"
	"github.com/zakuhq/zaku/internal/renderer/backend"
)

// Options configures the application. Non-zero fields override the
// settings file and environment.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// File is opened on startup; empty opens a scratch buffer.
	File string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// TabSize overrides editor.tab_size.
	TabSize int

	// Scripts are Lua files run after startup.
	Scripts []string

	// WatchConfig reloads the configuration file when it changes.
	WatchConfig bool

	// LogOutput replaces the log file. Used by tests.
	LogOutput io.Writer

	// Clipboard replaces the system clipboard. Used by tests.
	Clipboard clipboard.Clipboard
}

// Application is the central coordinator for all components.
type Application struct {
	mu sync.Mutex

	opts      Options
	settings  *config.Settings
	logger    *Logger
	logCloser io.Closer
	clipboard clipboard.Clipboard

	doc      *Document
	input    *lineedit.Model
	keymap   *keymap.Keymap
	scripts  *lua.Runtime
	reloader *config.Reloader

	backend  backend.Backend
	renderer *renderer.Renderer

	inputFocused bool
	quitArmed    bool
	message      string

	// Mouse state
	drag                   dragTarget
	lastClick              time.Time
	lastClickX, lastClickY int
	clickCount             int

	running      atomic.Bool
	shutdownOnce sync.Once
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Settings. A broken config file is not fatal.
	settings, loadErr := config.Load(app.opts.ConfigPath)
	if loadErr != nil {
		settings = config.Default()
	}
	if err := app.applyFlags(settings); err != nil {
		return &InitError{Component: "flags", Err: err}
	}
	app.settings = settings

	// 2. Logger
	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	if loadErr != nil {
		app.logger.Warn("config %s: %v", app.opts.ConfigPath, loadErr)
		app.message = "config error, using defaults"
	}

	// 3. Clipboard shared by the editor and the input
	app.clipboard = app.opts.Clipboard
	if app.clipboard == nil {
		app.clipboard = &clipboard.Memory{}
		if sys, err := clipboard.NewSystem(); err == nil {
			app.clipboard = clipboard.Fallback{Primary: sys, Secondary: app.clipboard}
		} else {
			app.logger.Info("system clipboard unavailable, using an in-process clipboard")
		}
	}

	// 4. Document
	edOpts := []editor.Option{
		editor.WithTabSize(settings.Editor.TabSize),
		editor.WithMaxExpansionColumn(settings.Editor.MaxExpansionColumn),
		editor.WithScrollOptions(settings.ScrollOptions()...),
		editor.WithClipboard(app.clipboard),
		editor.WithErrorHandler(app.reportError("editor")),
	}
	if app.opts.File != "" {
		doc, err := OpenDocument(app.opts.File, settings.BufferOptions(), edOpts...)
		if err != nil {
			return &InitError{Component: "document", Err: err}
		}
		app.doc = doc
	} else {
		app.doc = NewScratchDocument(settings.BufferOptions(), edOpts...)
	}

	// 5. Line input
	app.input = lineedit.New(
		lineedit.WithPlaceholder(settings.Input.Placeholder),
		lineedit.WithMasked(settings.Input.Masked),
		lineedit.WithClipboard(app.clipboard),
		lineedit.WithBufferOptions(settings.BufferOptions()...),
		lineedit.WithErrorHandler(app.reportError("input")),
	)

	// 6. Key bindings
	app.keymap = keymap.Default()
	if err := app.keymap.Apply(settings.Keymap); err != nil {
		app.logger.Warn("keymap: %v", err)
	}

	// 7. Scripts. Failures are logged and skipped.
	luaLog := app.logger.WithComponent("lua")
	app.scripts = lua.New(app.doc.Editor,
		lua.WithBinder(app.keymap),
		lua.WithLogFunc(func(s string) { luaLog.Info("%s", s) }),
	)
	for _, path := range app.opts.Scripts {
		if err := app.scripts.DoFile(path); err != nil {
			luaLog.Error("script %s: %v", path, err)
			app.message = "script error: " + path
			continue
		}
		luaLog.Debug("loaded %s", path)
	}

	app.logger.Info("started, document %s", app.doc.Name)
	return nil
}

// applyFlags applies the command line overrides to s and validates it.
func (app *Application) applyFlags(s *config.Settings) error {
	if app.opts.TabSize != 0 {
		if err := s.Set("editor.tab_size", strconv.Itoa(app.opts.TabSize)); err != nil {
			return err
		}
	}
	if app.opts.LogLevel != "" {
		if err := s.Set("log.level", app.opts.LogLevel); err != nil {
			return err
		}
	}
	return s.Validate()
}

func (app *Application) initLogger() error {
	out := app.opts.LogOutput
	if out == nil {
		// The terminal owns stdout and stderr.
		out = io.Discard
		if path := app.settings.Log.File; path != "" {
			f, err := OpenLogFile(path)
			if err != nil {
				return err
			}
			out = f
			app.logCloser = f
		}
	}
	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(app.settings.Log.Level),
		Output: out,
		Prefix: "zaku",
	})
	return nil
}

// reportError returns an error handler that logs failures of component.
func (app *Application) reportError(component string) func(error) {
	return func(err error) {
		app.logger.WithComponent(component).Warn("%v", err)
	}
}

// SetBackend initializes b and draws on it.
func (app *Application) SetBackend(b backend.Backend) error {
	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	app.renderer = renderer.New(b, renderer.DefaultOptions())
	app.layoutLocked()

	if app.opts.WatchConfig && app.opts.ConfigPath != "" {
		app.startReloader()
	}
	return nil
}

// layoutLocked sizes the editor to the text area.
func (app *Application) layoutLocked() {
	lay := app.renderer.Layout(app.frameLocked())
	em := app.doc.Editor.LayoutDetails().EmAdvance()
	app.doc.Editor.Resize(float64(lay.Text.Width)*em, float64(lay.Text.Height), 1)
}

func (app *Application) frameLocked() renderer.Frame {
	return renderer.Frame{
		Editor:       app.doc.Editor,
		Input:        app.input,
		Status:       app.statusLocked(),
		InputFocused: app.inputFocused,
	}
}

func (app *Application) statusLocked() string {
	s := app.doc.Name
	if app.doc.IsModified() {
		s += " [+]"
	}
	if app.message != "" {
		s += "  " + app.message
	}
	return s
}

// Run processes events until quit or shutdown. It returns ErrQuit when
// the user quits.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	app.render()
	for {
		ev, ok := b.PollEvent()
		if !ok {
			return nil
		}
		if err := app.HandleEvent(ev); err != nil {
			return err
		}
		app.render()
	}
}

func (app *Application) render() {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.renderer.MarkDirty()
	app.renderer.Render(app.frameLocked())
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.doc
}

// Input returns the line input.
func (app *Application) Input() *lineedit.Model {
	return app.input
}

// Settings returns the settings in effect.
func (app *Application) Settings() *config.Settings {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.settings
}

// Message returns the message shown in the status line.
func (app *Application) Message() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.message
}

// Shutdown releases every component. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		if app.reloader != nil {
			if err := app.reloader.Close(); err != nil {
				app.logger.Warn("config watcher: %v", err)
			}
		}
		if app.scripts != nil {
			_ = app.scripts.Close()
		}
		if app.backend != nil {
			app.backend.Shutdown()
		}
		if app.logger != nil {
			app.logger.Info("shutdown")
		}
		if app.logCloser != nil {
			_ = app.logCloser.Close()
		}
	})
}
