// Package pool provides fixed-capacity, doubling free-list pools used by the
// batching layer so that per-frame geometry never touches the allocator in
// steady state.
package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolFull is returned when an item is released while nothing is
	// outstanding. It always indicates a double release in the caller.
	ErrPoolFull = errors.New("pool: release with no outstanding items")

	// ErrDoubleRelease is returned when an item that is already on the free
	// list is released again.
	ErrDoubleRelease = errors.New("pool: item released twice")

	// ErrStackEmpty is returned by Pop and Peek on an empty stack.
	ErrStackEmpty = errors.New("stack is empty")
)

// ObjectPool is an arena of *T with a free-index stack. Items are allocated
// up front; when the free list runs dry the arena doubles and the new half is
// pushed onto the free list. Previously acquired items keep their identity.
type ObjectPool[T any] struct {
	items []*T
	free  []int
	live  []bool
	index map[*T]int
	newFn func() *T
}

// NewObjectPool creates a pool with capacity preallocated items. newFn may be
// nil, in which case items are zero values.
func NewObjectPool[T any](capacity int, newFn func() *T) (*ObjectPool[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("pool capacity must be positive, got %d", capacity)
	}
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	p := &ObjectPool[T]{
		items: make([]*T, 0, capacity),
		free:  make([]int, 0, capacity),
		live:  make([]bool, 0, capacity),
		index: make(map[*T]int, capacity),
		newFn: newFn,
	}
	p.grow(capacity)
	return p, nil
}

// Acquire removes one item from the free list, doubling the arena if the
// free list is empty.
func (p *ObjectPool[T]) Acquire() *T {
	if len(p.free) == 0 {
		p.grow(len(p.items))
	}
	last := len(p.free) - 1
	idx := p.free[last]
	p.free = p.free[:last]
	p.live[idx] = true
	return p.items[idx]
}

// Release returns item to the free list.
func (p *ObjectPool[T]) Release(item *T) error {
	if len(p.free) == len(p.items) {
		return ErrPoolFull
	}
	idx, ok := p.index[item]
	if !ok {
		return fmt.Errorf("pool: release of foreign item %p", item)
	}
	if !p.live[idx] {
		return ErrDoubleRelease
	}
	p.live[idx] = false
	p.free = append(p.free, idx)
	return nil
}

// Cap returns the number of items owned by the pool.
func (p *ObjectPool[T]) Cap() int {
	return len(p.items)
}

// Available returns the number of items on the free list.
func (p *ObjectPool[T]) Available() int {
	return len(p.free)
}

// InUse returns the number of acquired items.
func (p *ObjectPool[T]) InUse() int {
	return len(p.items) - len(p.free)
}

func (p *ObjectPool[T]) grow(n int) {
	start := len(p.items)
	if cap(p.items) < start+n {
		items := make([]*T, start, 2*(start+n))
		copy(items, p.items)
		p.items = items
	}
	for i := 0; i < n; i++ {
		item := p.newFn()
		p.items = append(p.items, item)
		p.live = append(p.live, false)
		p.index[item] = start + i
		// push in reverse so the lowest index is handed out first
		p.free = append(p.free, start+n-1-i)
	}
}
