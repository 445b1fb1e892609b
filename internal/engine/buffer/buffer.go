package buffer

import (
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zakuhq/zaku/internal/engine/history"
	"github.com/zakuhq/zaku/internal/engine/rope"
	"github.com/zakuhq/zaku/internal/engine/tracking"
)

// Errors returned by buffer operations.
var (
	ErrNothingToUndo = history.ErrNothingToUndo
	ErrNothingToRedo = history.ErrNothingToRedo
)

// Position and range types shared with the lower layers.
type (
	Point         = rope.Point
	PointUTF16    = rope.PointUTF16
	Bias          = rope.Bias
	Range         = tracking.Range
	TransactionID = history.TransactionID
)

const (
	Left  = rope.Left
	Right = rope.Right
)

// LineEnding specifies the line ending style used when text leaves the
// buffer. Text inside the buffer always uses "\n".
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is a mutable text buffer with an edit log, transactional undo and
// redo, and edit subscriptions. All methods are thread-safe.
type Buffer struct {
	mu            sync.RWMutex
	rope          rope.Rope
	log           *tracking.Log
	history       *history.History
	subscriptions []*Subscription
	lineEnding    LineEnding
	wordChars     string
	groupInterval time.Duration
	now           func() time.Time
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		rope:          rope.New(),
		log:           tracking.NewLog(),
		lineEnding:    LineEndingLF,
		groupInterval: history.DefaultGroupInterval,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.history = history.New(history.WithGroupInterval(b.groupInterval))
	return b
}

// NewBufferFromString creates a buffer with initial content.
// The initial content is not part of the undo history.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.rope = rope.FromString(normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader. The line ending
// style is detected from the content unless one was given as an option.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first: a CRLF pair may straddle a read boundary.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	opts = append([]Option{WithDetectedLineEnding(text)}, opts...)
	return NewBufferFromString(text, opts...), nil
}

// normalizeLineEndings converts CRLF and CR line endings to LF.
func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Len()
}

// Version returns the number of edits applied to the buffer, including
// undo and redo.
func (b *Buffer) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.log.Version()
}

// LineEnding returns the buffer's output line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// WriteTo writes the buffer content to w using the buffer's line ending.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.RLock()
	text := b.rope.String()
	le := b.lineEnding
	b.mu.RUnlock()

	if le != LineEndingLF {
		text = strings.ReplaceAll(text, "\n", le.Sequence())
	}
	n, err := io.WriteString(w, text)
	return int64(n), err
}

// Snapshot returns an immutable view of the current buffer state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

func (b *Buffer) snapshotLocked() *Snapshot {
	return &Snapshot{
		rope:      b.rope,
		view:      b.log.View(),
		wordChars: b.wordChars,
	}
}

// Write Operations

// Edit applies edits as a single step. All ranges are in the coordinates
// of the text before the call. Ranges are clipped to char boundaries, and
// overlapping or touching ranges are merged in order. When no transaction
// is open the edits form their own transaction.
func (b *Buffer) Edit(edits ...Edit) {
	if len(edits) == 0 {
		return
	}

	b.history.Start(b.now())
	defer func() { b.history.End(b.now()) }()

	b.mu.Lock()
	defer b.mu.Unlock()

	normalized := b.normalizeEditsLocked(edits)
	for i := len(normalized) - 1; i >= 0; i-- {
		e := normalized[i]
		change := tracking.Change{
			Start:   e.Range.Start,
			OldText: b.rope.Slice(e.Range.Start, e.Range.End),
			NewText: e.NewText,
			Inverts: tracking.NoInverse,
		}
		b.history.Record(b.applyLocked(change))
	}
}

// normalizeEditsLocked clips, sorts, and merges edits, dropping no-ops.
func (b *Buffer) normalizeEditsLocked(edits []Edit) []Edit {
	clipped := make([]Edit, 0, len(edits))
	for _, e := range edits {
		start, end := e.Range.Start, e.Range.End
		if start > end {
			start, end = end, start
		}
		empty := start == end
		start = b.rope.ClipOffset(start, Left)
		if empty {
			end = start
		} else {
			end = b.rope.ClipOffset(end, Right)
		}
		e = Edit{Range: Range{Start: start, End: end}, NewText: normalizeLineEndings(e.NewText)}
		clipped = append(clipped, e)
	}
	sort.SliceStable(clipped, func(i, j int) bool {
		return clipped[i].Range.Start < clipped[j].Range.Start
	})

	merged := clipped[:0]
	for _, e := range clipped {
		if n := len(merged); n > 0 && e.Range.Start <= merged[n-1].Range.End {
			last := &merged[n-1]
			last.Range.End = max(last.Range.End, e.Range.End)
			last.NewText += e.NewText
			continue
		}
		merged = append(merged, e)
	}

	out := merged[:0]
	for _, e := range merged {
		if e.IsNoOp() || b.rope.Slice(e.Range.Start, e.Range.End) == e.NewText {
			continue
		}
		out = append(out, e)
	}
	return out
}

// applyLocked replaces text in the rope, logs the change, and notifies
// subscribers. It returns the log index of the change.
func (b *Buffer) applyLocked(c tracking.Change) int {
	b.rope = b.rope.Replace(c.Start, c.Start+len(c.OldText), c.NewText)
	index := b.log.Append(c)
	for _, s := range b.subscriptions {
		s.push(c)
	}
	return index
}

// Insert inserts text at offset.
func (b *Buffer) Insert(offset int, text string) {
	b.Edit(NewInsert(offset, text))
}

// Delete removes text in [start, end).
func (b *Buffer) Delete(start, end int) {
	b.Edit(NewDelete(start, end))
}

// Replace replaces text in [start, end) with text.
func (b *Buffer) Replace(start, end int, text string) {
	b.Edit(NewReplace(start, end, text))
}

// SetText replaces the whole content of the buffer.
func (b *Buffer) SetText(text string) {
	b.Edit(NewReplace(0, b.Len(), text))
}

// Transactions

// StartTransaction opens a transaction at the current time.
func (b *Buffer) StartTransaction() (TransactionID, bool) {
	return b.StartTransactionAt(b.now())
}

// StartTransactionAt opens a transaction. Nested transactions join the
// outermost one; ok is true only when a new transaction was opened.
func (b *Buffer) StartTransactionAt(now time.Time) (TransactionID, bool) {
	return b.history.Start(now)
}

// EndTransaction closes a transaction at the current time.
func (b *Buffer) EndTransaction() (TransactionID, bool) {
	return b.EndTransactionAt(b.now())
}

// EndTransactionAt closes a transaction. When the outermost transaction
// closes with at least one edit, it returns the id of the undo entry that
// now holds those edits, which may be an earlier transaction it was
// grouped into.
func (b *Buffer) EndTransactionAt(now time.Time) (TransactionID, bool) {
	return b.history.End(now)
}

// Transact runs fn inside a transaction. The transaction is closed on
// every exit path, including a panic in fn.
func (b *Buffer) Transact(fn func()) (id TransactionID, ok bool) {
	b.StartTransaction()
	defer func() {
		id, ok = b.EndTransaction()
	}()
	fn()
	return
}

// FinalizeLastTransaction prevents the last transaction from being grouped
// with later ones.
func (b *Buffer) FinalizeLastTransaction() (TransactionID, bool) {
	return b.history.Finalize()
}

// GroupUntilTransaction merges every transaction after id into id.
func (b *Buffer) GroupUntilTransaction(id TransactionID) {
	b.history.GroupUntil(id)
}

// LastTransaction returns the id of the most recent undo entry.
func (b *Buffer) LastTransaction() (TransactionID, bool) {
	return b.history.LastTransaction()
}

// SetGroupInterval sets how close in time two transactions must be to be
// grouped into one undo step.
func (b *Buffer) SetGroupInterval(d time.Duration) {
	b.history.SetGroupInterval(d)
}

// CanUndo returns true if there is a transaction to undo.
func (b *Buffer) CanUndo() bool {
	return b.history.CanUndo()
}

// CanRedo returns true if there is a transaction to redo.
func (b *Buffer) CanRedo() bool {
	return b.history.CanRedo()
}

// Undo reverts the most recent transaction and returns its id.
func (b *Buffer) Undo() (TransactionID, error) {
	tx, err := b.history.PopUndo()
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	for i := len(tx.Changes) - 1; i >= 0; i-- {
		index := tx.Changes[i]
		tx.Changes[i] = b.applyLocked(b.log.Change(index).Invert(index))
	}
	b.mu.Unlock()

	b.history.PushRedo(tx)
	return tx.ID, nil
}

// Redo reapplies the most recently undone transaction and returns its id.
func (b *Buffer) Redo() (TransactionID, error) {
	tx, err := b.history.PopRedo()
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	for i, index := range tx.Changes {
		tx.Changes[i] = b.applyLocked(b.log.Change(index).Invert(index))
	}
	b.mu.Unlock()

	b.history.PushUndo(tx)
	return tx.ID, nil
}

// Subscriptions

// Subscribe returns a subscription that accumulates every later edit.
func (b *Buffer) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &Subscription{}
	b.subscriptions = append(b.subscriptions, s)
	return s
}

// Unsubscribe stops delivering edits to s.
func (b *Buffer) Unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subscriptions {
		if sub == s {
			b.subscriptions = append(b.subscriptions[:i], b.subscriptions[i+1:]...)
			return
		}
	}
}
