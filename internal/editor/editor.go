package editor

import (
	"github.com/google/uuid"

	"github.com/zakuhq/zaku/internal/clipboard"
	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/cursor"
	"github.com/zakuhq/zaku/internal/renderer/viewport"
	"github.com/zakuhq/zaku/internal/selections"
)

// DefaultTabSize is the tab size of an editor created without WithTabSize.
const DefaultTabSize = 4

// Event is emitted to subscribers when the editor changes.
type Event uint8

const (
	// EventBufferEdited is emitted after the text changes.
	EventBufferEdited Event = iota + 1
	// EventSelectionsChanged is emitted after the selections move without
	// an edit.
	EventSelectionsChanged
	// EventScrolled is emitted after the scroll position changes.
	EventScrolled
)

// String returns a string representation of the event.
func (e Event) String() string {
	switch e {
	case EventBufferEdited:
		return "buffer_edited"
	case EventSelectionsChanged:
		return "selections_changed"
	case EventScrolled:
		return "scrolled"
	default:
		return "unknown"
	}
}

// journalEntry holds the selections around one undo transaction.
type journalEntry struct {
	before []selections.Selection
	after  []selections.Selection
}

// Option configures an Editor.
type Option func(*Editor)

// WithTabSize sets the tab size.
func WithTabSize(n int) Option {
	return func(e *Editor) {
		e.tabSize = n
	}
}

// WithMaxExpansionColumn sets the column past which tabs render as a
// single space.
func WithMaxExpansionColumn(column uint32) Option {
	return func(e *Editor) {
		e.maxExpansionColumn = column
	}
}

// WithLayoutDetails sets how display rows are shaped.
func WithLayoutDetails(details display.LayoutDetails) Option {
	return func(e *Editor) {
		e.details = details
	}
}

// WithClipboard sets the clipboard used by Copy, Cut and Paste.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(e *Editor) {
		e.clipboard = c
	}
}

// WithScrollOptions configures the scroll manager.
func WithScrollOptions(opts ...viewport.Option) Option {
	return func(e *Editor) {
		e.scrollOpts = append(e.scrollOpts, opts...)
	}
}

// WithErrorHandler sets a function that receives errors the editor
// otherwise ignores, such as clipboard failures.
func WithErrorHandler(fn func(error)) Option {
	return func(e *Editor) {
		e.onError = fn
	}
}

// Editor is a multi-line editor view over a buffer.
type Editor struct {
	id         uuid.UUID
	buffer     *buffer.Buffer
	display    *display.Map
	selections *selections.Collection
	scroll     *viewport.Manager
	journal    map[buffer.TransactionID]journalEntry

	tabSize            int
	maxExpansionColumn uint32
	details            display.LayoutDetails
	scrollOpts         []viewport.Option
	clipboard          clipboard.Clipboard
	onError            func(error)
	listeners          []func(Event)
}

// New creates an editor over buf with a cursor at the start.
func New(buf *buffer.Buffer, opts ...Option) *Editor {
	e := &Editor{
		id:         uuid.New(),
		buffer:     buf,
		selections: selections.NewCollection(),
		journal:    make(map[buffer.TransactionID]journalEntry),
		tabSize:    DefaultTabSize,
		details:    display.DefaultLayoutDetails(),
		clipboard:  &clipboard.Memory{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.display = display.NewMap(buf, e.tabSize)
	if e.maxExpansionColumn > 0 {
		e.display.SetMaxExpansionColumn(e.maxExpansionColumn)
	}
	e.scroll = viewport.NewManager(e.scrollOpts...)
	return e
}

// ID returns the identity of the editor, used as its focus handle.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// Subscribe registers fn to receive events.
func (e *Editor) Subscribe(fn func(Event)) {
	e.listeners = append(e.listeners, fn)
}

func (e *Editor) emit(ev Event) {
	for _, fn := range e.listeners {
		fn(ev)
	}
}

func (e *Editor) reportError(err error) {
	if err != nil && e.onError != nil {
		e.onError(err)
	}
}

// Buffer returns the underlying buffer.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buffer
}

// Text returns the buffer text.
func (e *Editor) Text() string {
	return e.buffer.Text()
}

// Snapshot syncs the display map and returns the current display snapshot.
func (e *Editor) Snapshot() *display.Snapshot {
	return e.display.Snapshot()
}

// LayoutDetails returns how display rows are shaped.
func (e *Editor) LayoutDetails() display.LayoutDetails {
	return e.details
}

// Scroll returns the scroll manager.
func (e *Editor) Scroll() *viewport.Manager {
	return e.scroll
}

// TabSize returns the tab size.
func (e *Editor) TabSize() int {
	return e.display.TabSize()
}

// SetTabSize changes the tab size; the display is rebuilt on next use.
func (e *Editor) SetTabSize(n int) {
	e.display.SetTabSize(n)
}

// SetMaxExpansionColumn changes the column past which tabs are not
// expanded.
func (e *Editor) SetMaxExpansionColumn(column uint32) {
	e.display.SetMaxExpansionColumn(column)
}

// Resize sets the viewport size in pixels and the height of one row.
func (e *Editor) Resize(width, height, lineHeight float64) {
	e.scroll.Resize(width, height, lineHeight)
}

// ScrollPosition returns the scroll position: x in pixels, y in rows.
func (e *Editor) ScrollPosition() viewport.Position {
	return e.scroll.Position(e.Snapshot())
}

// Selections returns the selections as byte offsets, sorted by start.
func (e *Editor) Selections() []cursor.Selection[int] {
	return selections.All(e.selections, selections.Offsets{Snapshot: e.buffer.Snapshot()})
}

// DisplaySelections returns the selections as display points.
func (e *Editor) DisplaySelections() []cursor.Selection[display.DisplayPoint] {
	return selections.All(e.selections, selections.DisplayPoints{Snapshot: e.Snapshot()})
}

// SelectedRanges returns the selections as byte ranges.
func (e *Editor) SelectedRanges() []buffer.Range {
	sels := e.Selections()
	out := make([]buffer.Range, len(sels))
	for i, s := range sels {
		out[i] = buffer.Range{Start: s.Start, End: s.End}
	}
	return out
}

// NewestCursor returns the head of the newest selection as a display
// point.
func (e *Editor) NewestCursor() display.DisplayPoint {
	return selections.Newest(e.selections, selections.DisplayPoints{Snapshot: e.Snapshot()}).Head()
}

// SelectRanges replaces the selections. A range whose start is after its
// end yields a reversed selection.
func (e *Editor) SelectRanges(ranges []buffer.Range) bool {
	return e.changeSelections(func(m *selections.Mutator) {
		m.SelectRanges(ranges)
	})
}

// BeginSelection replaces the selections with a pending cursor at offset,
// to be grown by ExtendSelection as the pointer moves.
func (e *Editor) BeginSelection(offset int, mode cursor.SelectMode) bool {
	return e.changeSelections(func(m *selections.Mutator) {
		m.ClearDisjoint()
		m.SetPendingRange(offset, offset, mode)
	})
}

// ExtendSelection moves the head of the pending selection to offset.
func (e *Editor) ExtendSelection(offset int) bool {
	return e.changeSelections(func(m *selections.Mutator) {
		m.ExtendPending(offset)
	})
}

// EndSelection commits the pending selection.
func (e *Editor) EndSelection() bool {
	return e.changeSelections(func(m *selections.Mutator) {
		m.CommitPending()
	})
}

// IsSelecting reports whether a pending selection is being extended.
func (e *Editor) IsSelecting() bool {
	return e.selections.IsExtending()
}

// changeSelections applies f and, if the selections changed, ends the
// current undo group and asks for the newest cursor to be revealed.
func (e *Editor) changeSelections(f func(*selections.Mutator)) bool {
	if !e.selections.ChangeWith(e.Snapshot(), f) {
		return false
	}
	e.buffer.FinalizeLastTransaction()
	e.scroll.RequestAutoscroll(viewport.Fit())
	e.emit(EventSelectionsChanged)
	return true
}

// anchors returns every selection, pending included, as anchors.
func (e *Editor) anchors() []selections.Selection {
	sels := e.selections.Disjoint()
	if p, ok := e.selections.Pending(); ok {
		sels = append(sels, p.Selection)
	}
	return sels
}

// transact applies edit in one transaction and then reselect, or a
// refresh of the anchors when reselect is nil. before and the selections
// afterwards are journaled under the transaction id.
func (e *Editor) transact(before []selections.Selection, edit func(), reselect func(*selections.Mutator)) bool {
	id, ok := e.buffer.Transact(edit)

	e.selections.ChangeWith(e.Snapshot(), func(m *selections.Mutator) {
		if reselect != nil {
			reselect(m)
			return
		}
		m.Refresh()
	})
	if !ok {
		return false
	}

	entry, exists := e.journal[id]
	if !exists {
		entry.before = before
	}
	entry.after = e.anchors()
	e.journal[id] = entry

	e.scroll.RequestAutoscroll(viewport.Fit())
	e.emit(EventBufferEdited)
	return true
}

// Undo reverts the last transaction and restores the selections from
// before it. It reports whether there was anything to undo.
func (e *Editor) Undo() bool {
	id, err := e.buffer.Undo()
	if err != nil {
		return false
	}
	e.restore(id, func(entry journalEntry) []selections.Selection { return entry.before })
	return true
}

// Redo reapplies the last undone transaction and restores the selections
// from after it.
func (e *Editor) Redo() bool {
	id, err := e.buffer.Redo()
	if err != nil {
		return false
	}
	e.restore(id, func(entry journalEntry) []selections.Selection { return entry.after })
	return true
}

func (e *Editor) restore(id buffer.TransactionID, pick func(journalEntry) []selections.Selection) {
	e.selections.ChangeWith(e.Snapshot(), func(m *selections.Mutator) {
		if entry, ok := e.journal[id]; ok && len(pick(entry)) > 0 {
			m.SelectAnchors(pick(entry))
			return
		}
		m.Refresh()
	})
	e.scroll.RequestAutoscroll(viewport.Fit())
	e.emit(EventBufferEdited)
}

// Autoscroll carries out the pending autoscroll request. Dispatch calls it
// after every action; hosts call it after changing the editor directly.
func (e *Editor) Autoscroll() bool {
	if _, ok := e.scroll.PendingAutoscroll(); !ok {
		return false
	}
	snap := e.Snapshot()
	d := selections.DisplayPoints{Snapshot: snap}
	sels := selections.All(e.selections, d)
	newest := selections.Newest(e.selections, d)
	if !e.scroll.Autoscroll(snap, sels, newest, e.details) {
		return false
	}
	e.emit(EventScrolled)
	return true
}
