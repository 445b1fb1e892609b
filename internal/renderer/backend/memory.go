package backend

import (
	"strings"
	"sync"
)

// Cell is one character cell of a Memory backend.
type Cell struct {
	Rune  rune
	Style Style
}

// Memory is an in-memory Backend for tests and headless runs. Drawing
// goes to a back buffer that Show copies to the visible cells.
type Memory struct {
	mu            sync.Mutex
	width, height int
	back, front   []Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int

	events chan Event
	done   chan struct{}
	closed bool
}

// NewMemory creates a backend of the given size.
func NewMemory(width, height int) *Memory {
	m := &Memory{
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	m.resize(width, height)
	return m
}

func (m *Memory) resize(width, height int) {
	m.width, m.height = width, height
	m.back = make([]Cell, width*height)
	m.front = make([]Cell, width*height)
	for i := range m.back {
		m.back[i] = Cell{Rune: ' '}
		m.front[i] = Cell{Rune: ' '}
	}
}

func (m *Memory) Init() error { return nil }

// Shutdown makes PollEvent report false once queued events are drained.
func (m *Memory) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
}

func (m *Memory) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *Memory) SetContent(x, y int, r rune, style Style) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.back[y*m.width+x] = Cell{Rune: r, Style: style}
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.back {
		m.back[i] = Cell{Rune: ' '}
	}
}

func (m *Memory) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy(m.front, m.back)
	m.shows++
}

func (m *Memory) ShowCursor(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorX, m.cursorY, m.cursorVisible = x, y, true
}

func (m *Memory) HideCursor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorVisible = false
}

func (m *Memory) PollEvent() (Event, bool) {
	select {
	case ev := <-m.events:
		return ev, true
	default:
	}
	select {
	case ev := <-m.events:
		return ev, true
	case <-m.done:
		return Event{}, false
	}
}

func (m *Memory) PostEvent(data any) error {
	return m.Inject(Event{Type: EventInterrupt, Data: data})
}

// Inject queues ev as if the terminal had produced it. Resize events also
// resize the backend.
func (m *Memory) Inject(ev Event) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if ev.Type == EventResize {
		m.resize(ev.Width, ev.Height)
	}
	m.mu.Unlock()

	select {
	case m.events <- ev:
		return nil
	case <-m.done:
		return ErrClosed
	}
}

// Cell returns the visible cell at (x, y).
func (m *Memory) Cell(x, y int) Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return Cell{}
	}
	return m.front[y*m.width+x]
}

// Line returns the visible text of row y with trailing spaces removed.
func (m *Memory) Line(y int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if y < 0 || y >= m.height {
		return ""
	}
	var b strings.Builder
	for _, c := range m.front[y*m.width : (y+1)*m.width] {
		if c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Cursor returns the cursor position and whether it is shown.
func (m *Memory) Cursor() (x, y int, visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursorX, m.cursorY, m.cursorVisible
}

// Shows returns how many frames have been shown.
func (m *Memory) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}
