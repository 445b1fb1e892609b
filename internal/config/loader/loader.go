// Package loader decodes configuration files and environment variables.
//
// Files are decoded straight into a caller-provided struct, so whatever the
// struct already holds acts as the default for keys the file omits. The
// format is chosen from the file extension.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a configuration file format.
type Format uint8

const (
	// FormatTOML is the default format.
	FormatTOML Format = iota
	// FormatYAML is used for .yaml and .yml files.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ErrUnsupportedFormat is returned for files whose extension is not a
// known configuration format.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// FormatFor returns the format of path based on its extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatTOML, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// FileSystem is the subset of file system operations the loader needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ParseError describes a file that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile decodes the file at path into v. A missing file is not an
// error; it reports false and leaves v untouched.
func LoadFile(fsys FileSystem, path string, v any) (bool, error) {
	if fsys == nil {
		fsys = OSFS{}
	}
	format, err := FormatFor(path)
	if err != nil {
		return false, err
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := Decode(format, path, data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Decode decodes data in the given format into v. source names the data in
// errors.
func Decode(format Format, source string, data []byte, v any) error {
	switch format {
	case FormatYAML:
		return decodeYAML(source, data, v)
	default:
		return decodeTOML(source, data, v)
	}
}
