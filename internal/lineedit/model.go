// Package lineedit implements a single-line text input: the model behind
// URL bars, search fields and password boxes.
//
// A Model owns its buffer and keeps one selection as a byte range into the
// buffer text. Edits go through ReplaceRange, which strips line breaks and
// records the selection before and after each undo transaction, so Undo and
// Redo restore both text and selection. Host input methods talk to the
// model in UTF-16 ranges through the IME methods.
package lineedit

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/zakuhq/zaku/internal/clipboard"
	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/shaping"
)

// Event is emitted to subscribers when the model changes.
type Event uint8

const (
	// EventBufferEdited is emitted after every change of the text.
	EventBufferEdited Event = iota + 1
	// EventFocused is emitted when the model gains focus.
	EventFocused
	// EventBlurred is emitted when the model loses focus.
	EventBlurred
)

// String returns a string representation of the event.
func (e Event) String() string {
	switch e {
	case EventBufferEdited:
		return "buffer_edited"
	case EventFocused:
		return "focused"
	case EventBlurred:
		return "blurred"
	default:
		return "unknown"
	}
}

// FocusHandle identifies a focusable element.
type FocusHandle struct {
	id uuid.UUID
}

// NewFocusHandle returns a handle with a fresh identity.
func NewFocusHandle() FocusHandle {
	return FocusHandle{id: uuid.New()}
}

// ID returns the identity of the handle.
func (h FocusHandle) ID() uuid.UUID {
	return h.id
}

// String returns the handle identity.
func (h FocusHandle) String() string {
	return h.id.String()
}

// Bounds is a rectangle in pixels.
type Bounds struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether (x, y) lies inside b.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// selectionState is what undo and redo restore.
type selectionState struct {
	selected buffer.Range
	reversed bool
}

type historyEntry struct {
	before selectionState
	after  selectionState
}

// Option configures a Model.
type Option func(*Model)

// WithClipboard sets the clipboard used by Copy, Cut and Paste.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(m *Model) {
		m.clipboard = c
	}
}

// WithPlaceholder sets the text shown while the model is empty.
func WithPlaceholder(text string) Option {
	return func(m *Model) {
		m.placeholder = text
	}
}

// WithMasked hides the text behind asterisks.
func WithMasked(masked bool) Option {
	return func(m *Model) {
		m.masked = masked
	}
}

// WithLayoutDetails sets how the text is shaped.
func WithLayoutDetails(details display.LayoutDetails) Option {
	return func(m *Model) {
		m.details = details
	}
}

// WithBufferOptions configures the underlying buffer.
func WithBufferOptions(opts ...buffer.Option) Option {
	return func(m *Model) {
		m.bufferOpts = append(m.bufferOpts, opts...)
	}
}

// WithErrorHandler sets a function that receives errors the model
// otherwise ignores, such as clipboard failures.
func WithErrorHandler(fn func(error)) Option {
	return func(m *Model) {
		m.onError = fn
	}
}

// Model is a single-line editor.
type Model struct {
	buffer      *buffer.Buffer
	bufferOpts  []buffer.Option
	placeholder string
	focus       FocusHandle
	focused     bool
	masked      bool

	selected  buffer.Range
	reversed  bool
	marked    buffer.Range
	hasMarked bool

	history map[buffer.TransactionID]historyEntry
	// composition is the transaction an IME composition groups into.
	composition    buffer.TransactionID
	hasComposition bool

	clipboard clipboard.Clipboard
	onError   func(error)
	listeners []func(Event)

	// Layout caches, updated by Layout.
	details     display.LayoutDetails
	lastLayout  *shaping.LineLayout
	lastBounds  Bounds
	hasBounds   bool
	scrollX     float64
	isSelecting bool
}

// New creates an empty model.
func New(opts ...Option) *Model {
	m := &Model{
		focus:     NewFocusHandle(),
		history:   make(map[buffer.TransactionID]historyEntry),
		clipboard: &clipboard.Memory{},
		details:   display.DefaultLayoutDetails(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.buffer = buffer.NewBuffer(m.bufferOpts...)
	return m
}

// Subscribe registers fn to receive events.
func (m *Model) Subscribe(fn func(Event)) {
	m.listeners = append(m.listeners, fn)
}

func (m *Model) emit(e Event) {
	for _, fn := range m.listeners {
		fn(e)
	}
}

func (m *Model) reportError(err error) {
	if err != nil && m.onError != nil {
		m.onError(err)
	}
}

// Buffer returns the underlying buffer.
func (m *Model) Buffer() *buffer.Buffer {
	return m.buffer
}

// Snapshot returns a snapshot of the buffer.
func (m *Model) Snapshot() *buffer.Snapshot {
	return m.buffer.Snapshot()
}

// Text returns the buffer text.
func (m *Model) Text() string {
	return m.buffer.Text()
}

// SetText replaces the whole text and puts the cursor at its end.
func (m *Model) SetText(text string) {
	m.ReplaceRange(buffer.Range{Start: 0, End: m.buffer.Len()}, text)
}

// Placeholder returns the placeholder text.
func (m *Model) Placeholder() string {
	return m.placeholder
}

// SetPlaceholder replaces the placeholder text.
func (m *Model) SetPlaceholder(text string) {
	m.placeholder = text
}

// ShowsPlaceholder reports whether the placeholder should be rendered in
// place of the text.
func (m *Model) ShowsPlaceholder() bool {
	return m.buffer.Len() == 0 && m.placeholder != ""
}

// Masked reports whether the text is hidden.
func (m *Model) Masked() bool {
	return m.masked
}

// SetMasked hides or reveals the text.
func (m *Model) SetMasked(masked bool) {
	m.masked = masked
}

// FocusHandle returns the handle of the model.
func (m *Model) FocusHandle() FocusHandle {
	return m.focus
}

// Focused reports whether the model has focus.
func (m *Model) Focused() bool {
	return m.focused
}

// SelectedRange returns the selection as a byte range and whether it is
// reversed.
func (m *Model) SelectedRange() (buffer.Range, bool) {
	return m.selected, m.reversed
}

// MarkedRange returns the range being composed by an input method.
func (m *Model) MarkedRange() (buffer.Range, bool) {
	return m.marked, m.hasMarked
}

// CursorOffset returns the offset of the selection head.
func (m *Model) CursorOffset() int {
	if m.reversed {
		return m.selected.Start
	}
	return m.selected.End
}

// SelectedText returns the text of the selection.
func (m *Model) SelectedText() string {
	return m.buffer.Snapshot().TextForRange(m.selected.Start, m.selected.End)
}

// DisplayText returns the text as rendered: one asterisk per character
// when masked.
func (m *Model) DisplayText() string {
	text := m.buffer.Text()
	if m.masked {
		return strings.Repeat("*", utf8.RuneCountInString(text))
	}
	return text
}

// DisplayRange maps a buffer range to byte indices into DisplayText.
func (m *Model) DisplayRange(r buffer.Range) buffer.Range {
	return buffer.Range{Start: m.displayIndex(r.Start), End: m.displayIndex(r.End)}
}

// LayoutDetails returns how the text is shaped.
func (m *Model) LayoutDetails() display.LayoutDetails {
	return m.details
}

// displayIndex maps a buffer offset to a byte index into DisplayText.
func (m *Model) displayIndex(offset int) int {
	if !m.masked {
		return offset
	}
	offset = m.clampOffset(offset, buffer.Left)
	return utf8.RuneCountInString(m.buffer.Snapshot().TextForRange(0, offset))
}

// offsetForDisplayIndex maps a byte index into DisplayText to a buffer
// offset.
func (m *Model) offsetForDisplayIndex(index int) int {
	if !m.masked {
		return index
	}
	text := m.buffer.Text()
	for offset := range text {
		if index == 0 {
			return offset
		}
		index--
	}
	return len(text)
}

func sanitize(text string) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}
	return strings.NewReplacer("\r", "", "\n", "").Replace(text)
}
