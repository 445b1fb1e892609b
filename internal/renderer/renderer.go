package renderer

import (
	"fmt"
	"sync"

	"github.com/zakuhq/zaku/internal/renderer/backend"
)

// Options configures the renderer.
type Options struct {
	ShowLineNumbers bool // Show line numbers in the gutter
	ShowStatusLine  bool // Show the status line above the input
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers: true,
		ShowStatusLine:  true,
	}
}

// Frame is what one render draws.
type Frame struct {
	Editor EditorView

	// Input is drawn on the last row. Nil hides it.
	Input InputView

	// Status is shown at the left of the status line.
	Status string

	// InputFocused places the cursor in the input instead of the editor.
	InputFocused bool
}

// Renderer draws frames onto a backend.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	width   int
	height  int

	frameCount  uint64
	needsRedraw bool
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	width, height := b.Size()
	return &Renderer{
		opts:        opts,
		backend:     b,
		width:       width,
		height:      height,
		needsRedraw: true,
	}
}

// Resize handles terminal resize events.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width = width
	r.height = height
	r.needsRedraw = true
}

// Size returns the current screen dimensions.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// MarkDirty marks the renderer as needing a redraw.
func (r *Renderer) MarkDirty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needsRedraw = true
}

// NeedsRedraw returns true if the renderer needs to redraw.
func (r *Renderer) NeedsRedraw() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.needsRedraw
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Layout returns the areas f would be drawn in.
func (r *Renderer) Layout(f Frame) Layout {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layout(f)
}

func (r *Renderer) layout(f Frame) Layout {
	var lay Layout
	rows := r.height
	if f.Input != nil && rows > 1 {
		rows--
		lay.Input = Rect{X: 0, Y: rows, Width: r.width, Height: 1}
	}
	if r.opts.ShowStatusLine && rows > 1 {
		rows--
		lay.Status = Rect{X: 0, Y: rows, Width: r.width, Height: 1}
	}

	gutter := 0
	if r.opts.ShowLineNumbers && f.Editor != nil {
		gutter = min(gutterWidth(f.Editor.Snapshot()), r.width)
	}
	lay.Gutter = Rect{X: 0, Y: 0, Width: gutter, Height: rows}
	lay.Text = Rect{X: gutter, Y: 0, Width: r.width - gutter, Height: rows}
	return lay
}

// Render draws f if anything changed since the last frame. It reports
// whether a frame was drawn.
func (r *Renderer) Render(f Frame) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.needsRedraw {
		return false
	}
	r.render(f)
	r.needsRedraw = false
	r.frameCount++
	return true
}

// render performs the actual rendering (must hold lock).
func (r *Renderer) render(f Frame) {
	r.backend.Clear()
	if f.Editor == nil {
		r.backend.HideCursor()
		r.backend.Show()
		return
	}

	lay := r.layout(f)
	cx, cy, visible := r.drawEditor(lay, f.Editor)
	if !lay.Status.Empty() {
		r.drawStatus(lay.Status, f)
	}
	if f.Input != nil && !lay.Input.Empty() {
		ix := r.drawInput(lay.Input, f.Input)
		if f.InputFocused {
			cx, cy, visible = ix, lay.Input.Y, lay.Input.Contains(ix, lay.Input.Y)
		}
	}

	if visible {
		r.backend.ShowCursor(cx, cy)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
}

// drawStatus draws the status message on the left and the cursor
// position on the right.
func (r *Renderer) drawStatus(area Rect, f Frame) {
	r.fill(area, backend.StyleStatus)

	head := f.Editor.NewestCursor()
	pos := fmt.Sprintf("%d:%d ", uint32(head.Row)+1, head.Column+1)
	right := area.X + max(area.Width-len(pos), 0)

	msgArea := Rect{X: area.X, Y: area.Y, Width: right - area.X, Height: 1}
	r.drawString(msgArea, area.X+1, area.Y, f.Status, backend.StyleStatus)
	r.drawString(area, right, area.Y, pos, backend.StyleStatus)
}
