package pool

import (
	"fmt"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
)

// CoordinatesStack is a LIFO buffer of points backed by an ObjectPool. The
// slot array doubles on overflow and keeps existing entries; popped points
// go back to the pool for the next frame.
type CoordinatesStack struct {
	pool  *ObjectPool[geometry.Coordinates]
	slots []*geometry.Coordinates
	size  int
}

// NewCoordinatesStack creates a stack with room for capacity points.
func NewCoordinatesStack(capacity int) (*CoordinatesStack, error) {
	p, err := NewObjectPool[geometry.Coordinates](capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("coordinates stack: %w", err)
	}
	return &CoordinatesStack{
		pool:  p,
		slots: make([]*geometry.Coordinates, capacity),
	}, nil
}

// Push adds a point to the top of the stack.
func (s *CoordinatesStack) Push(x, y float64) {
	if s.size == len(s.slots) {
		slots := make([]*geometry.Coordinates, 2*len(s.slots))
		copy(slots, s.slots)
		s.slots = slots
	}
	c := s.pool.Acquire()
	c.X, c.Y = x, y
	s.slots[s.size] = c
	s.size++
}

// Peek returns the top point without removing it.
func (s *CoordinatesStack) Peek() (geometry.Coordinates, error) {
	if s.size == 0 {
		return geometry.Coordinates{}, ErrStackEmpty
	}
	return *s.slots[s.size-1], nil
}

// Pop removes and returns the top point.
func (s *CoordinatesStack) Pop() (geometry.Coordinates, error) {
	if s.size == 0 {
		return geometry.Coordinates{}, ErrStackEmpty
	}
	s.size--
	c := s.slots[s.size]
	s.slots[s.size] = nil
	v := *c
	if err := s.pool.Release(c); err != nil {
		return geometry.Coordinates{}, err
	}
	return v, nil
}

// At returns the i-th point from the bottom of the stack.
func (s *CoordinatesStack) At(i int) geometry.Coordinates {
	return *s.slots[i]
}

// Len returns the number of points on the stack.
func (s *CoordinatesStack) Len() int {
	return s.size
}

// Cap returns the number of slots before the next doubling.
func (s *CoordinatesStack) Cap() int {
	return len(s.slots)
}

// Clear pops every point, returning them to the pool.
func (s *CoordinatesStack) Clear() error {
	for s.size > 0 {
		if _, err := s.Pop(); err != nil {
			return err
		}
	}
	return nil
}
