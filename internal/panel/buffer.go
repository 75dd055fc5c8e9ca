package panel

import (
	"sync"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
)

// Buffer is a shadow pixel grid that remembers which pads changed since the
// last Flush. It is safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	px    [layout.Size][layout.Size]palette.RGB
	dirty [layout.Size][layout.Size]bool
}

// Set stages c at (x, y); it reports whether the pixel changed.
func (b *Buffer) Set(x, y int, c palette.RGB) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.px[y][x] == c {
		return false
	}
	b.px[y][x] = c
	b.dirty[y][x] = true
	return true
}

// Invalidate marks every pad dirty so the next Flush resends the grid.
func (b *Buffer) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := range b.dirty {
		for x := range b.dirty[y] {
			b.dirty[y][x] = true
		}
	}
}

// Flush calls fn for every dirty pad and clears the marks.
func (b *Buffer) Flush(fn func(x, y int, c palette.RGB)) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for y := range b.px {
		for x := range b.px[y] {
			if !b.dirty[y][x] {
				continue
			}
			b.dirty[y][x] = false
			fn(x, y, b.px[y][x])
			n++
		}
	}
	return n
}

// Snapshot copies the current grid, indexed [y][x].
func (b *Buffer) Snapshot() [layout.Size][layout.Size]palette.RGB {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.px
}

// Queue hands events from listener goroutines to the control loop.
type Queue struct{ ch chan Event }

func NewQueue(n int) *Queue { return &Queue{ch: make(chan Event, n)} }

// Push enqueues ev without blocking; it drops the event when full.
func (q *Queue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Press enqueues a rising then falling edge at (x, y).
func (q *Queue) Press(x, y int) bool {
	if !q.Push(Event{X: x, Y: y, Edge: Rising}) {
		return false
	}
	return q.Push(Event{X: x, Y: y, Edge: Falling})
}

func (q *Queue) Poll() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return Event{}, false
	}
}
