package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/zakuhq/zaku/internal/editor"
	"github.com/zakuhq/zaku/internal/engine/buffer"
)

// Document is an open file with the editor showing it.
type Document struct {
	// Path is the file path (empty for scratch buffers).
	Path string

	// Name is the display name (file name or "[scratch]").
	Name string

	Editor *editor.Editor

	modified atomic.Bool
}

// OpenDocument reads path into a new editor. A missing file opens as an
// empty document that is created on save.
func OpenDocument(path string, bufOpts []buffer.Option, edOpts ...editor.Option) (*Document, error) {
	var buf *buffer.Buffer
	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		buf = buffer.NewBuffer(bufOpts...)
	case err != nil:
		return nil, &FileError{Op: "open", Path: path, Err: err}
	default:
		defer f.Close()
		buf, err = buffer.NewBufferFromReader(f, bufOpts...)
		if err != nil {
			return nil, &FileError{Op: "open", Path: path, Err: err}
		}
	}
	return newDocument(path, filepath.Base(path), editor.New(buf, edOpts...)), nil
}

// NewScratchDocument creates a new scratch (unsaved) document.
func NewScratchDocument(bufOpts []buffer.Option, edOpts ...editor.Option) *Document {
	return newDocument("", "[scratch]", editor.New(buffer.NewBuffer(bufOpts...), edOpts...))
}

func newDocument(path, name string, ed *editor.Editor) *Document {
	d := &Document{Path: path, Name: name, Editor: ed}
	ed.Subscribe(func(ev editor.Event) {
		if ev == editor.EventBufferEdited {
			d.modified.Store(true)
		}
	})
	return d
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified.Load()
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Save writes the document to its path with its original line endings.
func (d *Document) Save() error {
	if d.IsScratch() {
		return ErrNoFilePath
	}
	f, err := os.Create(d.Path)
	if err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if _, err := d.Editor.Buffer().WriteTo(f); err != nil {
		_ = f.Close()
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	d.modified.Store(false)
	return nil
}
