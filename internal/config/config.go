package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zakuhq/zaku/internal/config/loader"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/renderer/viewport"
)

// EnvPrefix prefixes environment variables that override settings.
const EnvPrefix = "ZAKU_"

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting holds a value outside its domain.
	ErrInvalidValue = errors.New("invalid setting value")

	// ErrUnknownSetting indicates a setting path that does not exist.
	ErrUnknownSetting = errors.New("unknown setting")
)

// ValidationError describes one invalid setting.
type ValidationError struct {
	Path    string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Unwrap makes every validation error match ErrInvalidValue.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidValue
}

// Duration is a time.Duration written as a string such as "300ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Settings is the complete set of user settings.
type Settings struct {
	Editor EditorSettings `toml:"editor" yaml:"editor"`
	Input  InputSettings  `toml:"input" yaml:"input"`
	Log    LogSettings    `toml:"log" yaml:"log"`
	Keymap []KeyBinding   `toml:"keymap" yaml:"keymap"`
}

// EditorSettings configures the multi-line editor.
type EditorSettings struct {
	TabSize                int      `toml:"tab_size" yaml:"tab_size"`
	MaxExpansionColumn     uint32   `toml:"max_expansion_column" yaml:"max_expansion_column"`
	VerticalScrollMargin   float64  `toml:"vertical_scroll_margin" yaml:"vertical_scroll_margin"`
	HorizontalScrollMargin float64  `toml:"horizontal_scroll_margin" yaml:"horizontal_scroll_margin"`
	ScrollBeyondLastLine   string   `toml:"scroll_beyond_last_line" yaml:"scroll_beyond_last_line"`
	UndoGroupInterval      Duration `toml:"undo_group_interval" yaml:"undo_group_interval"`
	WordChars              string   `toml:"word_chars" yaml:"word_chars"`
}

// InputSettings configures the single-line input.
type InputSettings struct {
	Masked      bool   `toml:"masked" yaml:"masked"`
	Placeholder string `toml:"placeholder" yaml:"placeholder"`
}

// LogSettings configures the host logger.
type LogSettings struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// KeyBinding binds a key chord to an action.
type KeyBinding struct {
	Keys   string         `toml:"keys" yaml:"keys"`
	Action string         `toml:"action" yaml:"action"`
	Args   map[string]any `toml:"args,omitempty" yaml:"args,omitempty"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Editor: EditorSettings{
			TabSize:                4,
			MaxExpansionColumn:     256,
			VerticalScrollMargin:   3,
			HorizontalScrollMargin: 5,
			ScrollBeyondLastLine:   viewport.ScrollBeyondOnePage.String(),
			UndoGroupInterval:      Duration{300 * time.Millisecond},
		},
		Input: InputSettings{
			Placeholder: "Type here…",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load resolves settings from the defaults, the file at path (skipped when
// path is empty or the file is missing) and the process environment, then
// validates them.
func Load(path string) (*Settings, error) {
	return LoadWith(nil, path, loader.NewEnvLoader(EnvPrefix))
}

// LoadWith is Load with an explicit file system and environment.
func LoadWith(fsys loader.FileSystem, path string, env *loader.EnvLoader) (*Settings, error) {
	s := Default()
	if path != "" {
		if _, err := loader.LoadFile(fsys, path, s); err != nil {
			return nil, err
		}
	}
	if env != nil {
		if err := s.ApplyEnv(env.Load()); err != nil {
			return nil, err
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyEnv sets every path in values. Paths that name no setting are
// skipped so that unrelated ZAKU_ variables do not break startup.
func (s *Settings) ApplyEnv(values map[string]string) error {
	var errs []error
	for path, value := range values {
		err := s.Set(path, value)
		if errors.Is(err, ErrUnknownSetting) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("environment %s%s: %w", EnvPrefix, envName(path), err))
		}
	}
	return errors.Join(errs...)
}

func envName(path string) string {
	return strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
}

// Set assigns the setting at path from its string form.
func (s *Settings) Set(path, value string) error {
	var err error
	switch path {
	case "editor.tab_size":
		s.Editor.TabSize, err = strconv.Atoi(value)
	case "editor.max_expansion_column":
		var v uint64
		v, err = strconv.ParseUint(value, 10, 32)
		s.Editor.MaxExpansionColumn = uint32(v)
	case "editor.vertical_scroll_margin":
		s.Editor.VerticalScrollMargin, err = strconv.ParseFloat(value, 64)
	case "editor.horizontal_scroll_margin":
		s.Editor.HorizontalScrollMargin, err = strconv.ParseFloat(value, 64)
	case "editor.scroll_beyond_last_line":
		s.Editor.ScrollBeyondLastLine = value
	case "editor.undo_group_interval":
		err = s.Editor.UndoGroupInterval.UnmarshalText([]byte(value))
	case "editor.word_chars":
		s.Editor.WordChars = value
	case "input.masked":
		s.Input.Masked, err = strconv.ParseBool(value)
	case "input.placeholder":
		s.Input.Placeholder = value
	case "log.level":
		s.Log.Level = strings.ToLower(value)
	case "log.file":
		s.Log.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	if err != nil {
		return &ValidationError{Path: path, Message: err.Error(), Value: value}
	}
	return nil
}

// Validate checks every setting and returns all problems found.
func (s *Settings) Validate() error {
	var errs []error
	add := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if s.Editor.TabSize < 1 || s.Editor.TabSize > 128 {
		add("editor.tab_size", "must be between 1 and 128", s.Editor.TabSize)
	}
	if s.Editor.VerticalScrollMargin < 0 {
		add("editor.vertical_scroll_margin", "must not be negative", s.Editor.VerticalScrollMargin)
	}
	if s.Editor.HorizontalScrollMargin < 0 {
		add("editor.horizontal_scroll_margin", "must not be negative", s.Editor.HorizontalScrollMargin)
	}
	if _, err := viewport.ParseScrollBeyondLastLine(s.Editor.ScrollBeyondLastLine); err != nil {
		add("editor.scroll_beyond_last_line", "must be one_page, off or vertical_scroll_margin", s.Editor.ScrollBeyondLastLine)
	}
	if s.Editor.UndoGroupInterval.Duration < 0 {
		add("editor.undo_group_interval", "must not be negative", s.Editor.UndoGroupInterval)
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		add("log.level", "must be debug, info, warn or error", s.Log.Level)
	}
	for i, b := range s.Keymap {
		if b.Keys == "" || b.Action == "" {
			add(fmt.Sprintf("keymap[%d]", i), "needs keys and action", b.Keys)
		}
	}
	return errors.Join(errs...)
}

// ScrollOptions converts the editor settings into scroll manager options.
// Settings must have been validated.
func (s *Settings) ScrollOptions() []viewport.Option {
	policy, _ := viewport.ParseScrollBeyondLastLine(s.Editor.ScrollBeyondLastLine)
	return []viewport.Option{
		viewport.WithVerticalScrollMargin(s.Editor.VerticalScrollMargin),
		viewport.WithHorizontalScrollMargin(s.Editor.HorizontalScrollMargin),
		viewport.WithScrollBeyondLastLine(policy),
	}
}

// BufferOptions converts the editor settings into buffer options.
func (s *Settings) BufferOptions() []buffer.Option {
	opts := []buffer.Option{buffer.WithGroupInterval(s.Editor.UndoGroupInterval.Duration)}
	if s.Editor.WordChars != "" {
		opts = append(opts, buffer.WithWordChars(s.Editor.WordChars))
	}
	return opts
}
