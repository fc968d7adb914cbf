// Package gg implements render.Surface on a gogpu/gg software canvas. It
// renders without a window, for snapshots and tests.
package gg

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render"
)

// Surface draws into an offscreen gg.Context.
type Surface struct {
	render.StateStack
	dc    *gg.Context
	depth int
}

// NewSurface creates a width x height canvas.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas dimensions: %dx%d", width, height)
	}
	s := &Surface{
		StateStack: render.NewStateStack(),
		dc:         gg.NewContext(width, height),
	}
	s.Reset()
	return s, nil
}

// Size returns the width and height of the canvas.
func (s *Surface) Size() (width, height int) {
	return s.dc.Width(), s.dc.Height()
}

// Reset clears to black and unwinds any saved transforms.
func (s *Surface) Reset() {
	for ; s.depth > 0; s.depth-- {
		s.dc.Pop()
	}
	s.dc.Identity()
	s.ResetState()
	s.dc.ClearWithColor(gg.Black)
}

// Save pushes the transform and the paint state.
func (s *Surface) Save() {
	s.StateStack.Save()
	s.dc.Push()
	s.depth++
}

// Restore pops what Save pushed.
func (s *Surface) Restore() {
	if s.depth == 0 {
		return
	}
	s.StateStack.Restore()
	s.dc.Pop()
	s.depth--
}

// Scale scales subsequent drawing uniformly.
func (s *Surface) Scale(factor float64) {
	s.StateStack.Scale(factor)
	s.dc.Scale(factor, factor)
}

// Rect fills one rectangle.
func (s *Surface) Rect(x, y, width, height float64) error {
	s.dc.SetColor(s.Current().Fill)
	s.dc.DrawRectangle(x, y, width, height)
	return s.dc.Fill()
}

// FillPath fills every rectangle as subpaths of a single path.
func (s *Surface) FillPath(rects []*geometry.Rect) error {
	if len(rects) == 0 {
		return nil
	}
	s.dc.SetColor(s.Current().Fill)
	for _, r := range rects {
		s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	}
	return s.dc.Fill()
}

// Line strokes one segment.
func (s *Surface) Line(segment geometry.LineSegment) error {
	st := s.Current()
	s.dc.SetColor(st.StrokeColor)
	s.dc.SetLineWidth(st.StrokeWidth)
	s.dc.DrawLine(segment.Start.X, segment.Start.Y, segment.End.X, segment.End.Y)
	return s.dc.Stroke()
}

// Image returns the rendered canvas.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the canvas to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", path, err)
	}
	return nil
}

// Close releases the canvas.
func (s *Surface) Close() error {
	return s.dc.Close()
}
