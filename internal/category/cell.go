package category

import (
	"context"
	"errors"
	"sync"
)

// ErrCellEmpty is returned by Wait when no fill has been started.
var ErrCellEmpty = errors.New("cell is empty")

// CellState is the lifecycle stage of a Cell.
type CellState int

const (
	CellEmpty CellState = iota
	CellPending
	CellResolved
)

func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellPending:
		return "pending"
	case CellResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Cell is a write-once replay cache. It moves Empty -> Pending -> Resolved
// and never goes back. Waiters during Pending share a single future.
type Cell[T any] struct {
	mu    sync.Mutex
	state CellState
	done  chan struct{}
	value T
}

// NewCell creates an empty cell.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{done: make(chan struct{})}
}

// Begin moves the cell from Empty to Pending. It returns true only for the
// caller that made the transition; that caller must eventually Resolve.
func (c *Cell[T]) Begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != CellEmpty {
		return false
	}
	c.state = CellPending
	return true
}

// Resolve stores the value and releases all waiters. Only the first call
// has any effect.
func (c *Cell[T]) Resolve(v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == CellResolved {
		return false
	}
	c.value = v
	c.state = CellResolved
	close(c.done)
	return true
}

// Get returns the value if the cell is resolved.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != CellResolved {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Wait blocks until the cell resolves or ctx ends.
func (c *Cell[T]) Wait(ctx context.Context) (T, error) {
	var zero T

	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if state == CellEmpty {
		return zero, ErrCellEmpty
	}

	select {
	case <-c.done:
		v, _ := c.Get()
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// State returns the current lifecycle stage.
func (c *Cell[T]) State() CellState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
