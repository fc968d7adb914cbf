package batch

import (
	"fmt"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/pool"
)

// Batches collects one frame of wall slices, floor grid points and map
// overlay lines. Rectangles come from a shared pool and go back to it once
// their group is painted; Clear empties groups without freeing their
// backing arrays.
type Batches struct {
	keys        *ColorKeyCache
	rects       *pool.ObjectPool[geometry.Rect]
	columnWidth float64

	groups [][]*geometry.Rect // indexed by ColorKey
	active []ColorKey         // non-empty groups, first-use order

	points *pool.CoordinatesStack

	lines      [geometry.NumColors][]geometry.LineSegment
	lineColors []geometry.Color
}

// NewBatches creates the batching layer with the given initial pool sizes.
func NewBatches(rectCapacity, pointCapacity int) (*Batches, error) {
	rects, err := pool.NewObjectPool[geometry.Rect](rectCapacity, nil)
	if err != nil {
		return nil, fmt.Errorf("rect pool: %w", err)
	}
	points, err := pool.NewCoordinatesStack(pointCapacity)
	if err != nil {
		return nil, fmt.Errorf("grid point stack: %w", err)
	}
	return &Batches{
		keys:        NewColorKeyCache(),
		rects:       rects,
		columnWidth: 1,
		points:      points,
	}, nil
}

// SetColumnWidth sets the on-screen width of one wall slice. It is 1 when
// the resolution matches the canvas width.
func (b *Batches) SetColumnWidth(w float64) {
	if w > 0 {
		b.columnWidth = w
	}
}

// Keys exposes the interning table.
func (b *Batches) Keys() *ColorKeyCache {
	return b.keys
}

// Clear starts a new frame. Rectangles that were never painted are returned
// to the pool and every group is emptied in place.
func (b *Batches) Clear() error {
	for _, k := range b.active {
		if err := b.releaseGroup(k); err != nil {
			return err
		}
	}
	b.active = b.active[:0]

	if err := b.points.Clear(); err != nil {
		return fmt.Errorf("clear grid points: %w", err)
	}

	for _, c := range b.lineColors {
		b.lines[c] = b.lines[c][:0]
	}
	b.lineColors = b.lineColors[:0]
	return nil
}

// AddWallSlice queues a one-pixel-wide column at brightness percent.
func (b *Batches) AddWallSlice(c geometry.Color, brightness float64, column int, top, height float64) {
	if c == geometry.None {
		return
	}
	k := b.keys.Key(c, brightness/100)
	for int(k) >= len(b.groups) {
		b.groups = append(b.groups, nil)
	}
	if len(b.groups[k]) == 0 {
		b.active = append(b.active, k)
	}

	r := b.rects.Acquire()
	r.X = float64(column) * b.columnWidth
	r.Y = top
	r.Width = b.columnWidth
	r.Height = height
	b.groups[k] = append(b.groups[k], r)
}

// AddGridPoint queues a floor grid dot.
func (b *Batches) AddGridPoint(x, y float64) {
	b.points.Push(x, y)
}

// AddMapLine queues one overlay line.
func (b *Batches) AddMapLine(c geometry.Color, segment geometry.LineSegment) {
	if len(b.lines[c]) == 0 {
		b.lineColors = append(b.lineColors, c)
	}
	b.lines[c] = append(b.lines[c], segment)
}

// Groups returns the number of non-empty wall slice groups.
func (b *Batches) Groups() int {
	return len(b.active)
}

// PendingRects returns the number of rectangles acquired and not yet painted.
func (b *Batches) PendingRects() int {
	return b.rects.InUse()
}

// GridPoints returns the number of queued grid dots.
func (b *Batches) GridPoints() int {
	return b.points.Len()
}

// EachRectGroup calls fn once per group with its color, its quantized
// brightness in percent and its rectangles, then releases the rectangles.
// The rects slice is only valid during the call.
func (b *Batches) EachRectGroup(fn func(c geometry.Color, brightness float64, rects []*geometry.Rect) error) error {
	for _, k := range b.active {
		group := b.groups[k]
		if len(group) == 0 {
			continue
		}
		if err := fn(b.keys.Color(k), b.keys.Intensity(k)*100, group); err != nil {
			return err
		}
		if err := b.releaseGroup(k); err != nil {
			return err
		}
	}
	return nil
}

// DrainGridPoints pops queued grid dots, most recent first, and stops at the
// first error from fn. Points left behind are dropped by the next Clear.
func (b *Batches) DrainGridPoints(fn func(p geometry.Coordinates) error) error {
	for b.points.Len() > 0 {
		p, err := b.points.Pop()
		if err != nil {
			return fmt.Errorf("drain grid points: %w", err)
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

// EachLineGroup calls fn once per overlay color.
func (b *Batches) EachLineGroup(fn func(c geometry.Color, lines []geometry.LineSegment)) {
	for _, c := range b.lineColors {
		fn(c, b.lines[c])
	}
}

func (b *Batches) releaseGroup(k ColorKey) error {
	group := b.groups[k]
	for i, r := range group {
		if err := b.rects.Release(r); err != nil {
			return fmt.Errorf("release wall slice: %w", err)
		}
		group[i] = nil
	}
	b.groups[k] = group[:0]
	return nil
}
