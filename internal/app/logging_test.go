package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewLogger_DefaultOutput(t *testing.T) {
	logger := NewLogger(LoggerConfig{})
	if logger.state.output == nil {
		t.Error("expected default output to be set")
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "test"})

	logger.Info("opened %s", "a.txt")

	line := buf.String()
	if !strings.Contains(line, "[INFO] test: opened a.txt") {
		t.Errorf("unexpected line %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	out := buf.String()
	for _, s := range []string{"debug", "info"} {
		if strings.Contains(out, "] "+s) {
			t.Errorf("%s should be filtered: %q", s, out)
		}
	}
	for _, s := range []string{"warn", "error"} {
		if !strings.Contains(out, "] "+s) {
			t.Errorf("%s should be written: %q", s, out)
		}
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf})

	logger.WithComponent("lua").WithFields(map[string]any{"line": 3, "chunk": "init"}).Info("failed")

	if !strings.Contains(buf.String(), "failed {chunk=init, component=lua, line=3}") {
		t.Errorf("fields not sorted or missing: %q", buf.String())
	}
}

func TestLogger_WithFieldDoesNotModifyParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf})
	_ = logger.WithField("key", "value")

	logger.Info("plain")
	if strings.Contains(buf.String(), "key=value") {
		t.Errorf("parent logger gained a field: %q", buf.String())
	}
}

func TestLogger_SharedState(t *testing.T) {
	var first, second bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &first})
	child := logger.WithComponent("editor")

	logger.SetLevel(LogLevelDebug)
	if child.Level() != LogLevelDebug {
		t.Errorf("child level = %v, expected DEBUG", child.Level())
	}

	logger.SetOutput(&second)
	child.Debug("moved")
	if first.Len() != 0 || !strings.Contains(second.String(), "moved") {
		t.Errorf("child did not follow SetOutput: first=%q second=%q", first.String(), second.String())
	}

	logger.Disable()
	second.Reset()
	child.Error("hidden")
	if second.Len() != 0 {
		t.Errorf("disabled logger wrote %q", second.String())
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("should not panic")
	NullLogger.WithComponent("x").Info("nor this")
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo {
		t.Errorf("Level = %v, expected INFO", cfg.Level)
	}
	if cfg.Prefix != "zaku" {
		t.Errorf("Prefix = %q, expected zaku", cfg.Prefix)
	}
	if cfg.Output == nil {
		t.Error("Output should be set")
	}
}

func TestOpenLogFile(t *testing.T) {
	path := t.TempDir() + "/zaku.log"
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	defer f.Close()

	logger := NewLogger(LoggerConfig{Output: f})
	logger.Info("hello")

	if _, err := OpenLogFile(t.TempDir() + "/missing/zaku.log"); err == nil {
		t.Error("expected error for missing directory")
	}
}
