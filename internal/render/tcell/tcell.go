// Package tcell implements render.Surface on a terminal. The logical canvas
// is mapped onto the terminal's cell grid; fills become block characters
// shaded in true color.
package tcell

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render"
)

const (
	fillRune = '█'
	lineRune = '·'
)

var backgroundStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

// Surface draws a width x height canvas onto screen.
type Surface struct {
	render.StateStack
	screen tcell.Screen
	width  int
	height int
}

// NewSurface maps a canvas of the given size onto screen. The screen must
// already be initialized.
func NewSurface(screen tcell.Screen, width, height int) *Surface {
	screen.HideCursor()
	screen.SetStyle(backgroundStyle)
	return &Surface{
		StateStack: render.NewStateStack(),
		screen:     screen,
		width:      width,
		height:     height,
	}
}

// Size returns the logical canvas size.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Reset clears the terminal.
func (s *Surface) Reset() {
	s.ResetState()
	s.screen.Clear()
}

// Show flushes the frame to the terminal.
func (s *Surface) Show() {
	s.screen.Show()
}

// cellScale returns cells per canvas pixel along each axis.
func (s *Surface) cellScale() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols) / float64(s.width), float64(rows) / float64(s.height)
}

func style(c color.Color) tcell.Style {
	r, g, b, _ := c.RGBA()
	return tcell.StyleDefault.Background(tcell.ColorBlack).
		Foreground(tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8)))
}

// Rect fills the cells covered by a rectangle.
func (s *Surface) Rect(x, y, width, height float64) error {
	st := s.Current()
	s.fill(x, y, width, height, st.Scale, style(st.Fill))
	return nil
}

// FillPath fills the cells covered by every rectangle.
func (s *Surface) FillPath(rects []*geometry.Rect) error {
	st := s.Current()
	fs := style(st.Fill)
	for _, r := range rects {
		s.fill(r.X, r.Y, r.Width, r.Height, st.Scale, fs)
	}
	return nil
}

func (s *Surface) fill(x, y, width, height, k float64, st tcell.Style) {
	sx, sy := s.cellScale()
	cols, rows := s.screen.Size()

	x0 := clamp(int(math.Floor(x*k*sx)), 0, cols)
	x1 := clamp(int(math.Ceil((x+width)*k*sx)), 0, cols)
	y0 := clamp(int(math.Floor(y*k*sy)), 0, rows)
	y1 := clamp(int(math.Ceil((y+height)*k*sy)), 0, rows)

	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			s.screen.SetContent(cx, cy, fillRune, nil, st)
		}
	}
}

// Line plots a segment cell by cell with the stroke color.
func (s *Surface) Line(segment geometry.LineSegment) error {
	st := s.Current()
	sx, sy := s.cellScale()
	cols, rows := s.screen.Size()
	ls := style(st.StrokeColor)

	x0, y0 := segment.Start.X*st.Scale*sx, segment.Start.Y*st.Scale*sy
	x1, y1 := segment.End.X*st.Scale*sx, segment.End.Y*st.Scale*sy
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := int(x0 + (x1-x0)*t)
		cy := int(y0 + (y1-y0)*t)
		if cx < 0 || cx >= cols || cy < 0 || cy >= rows {
			continue
		}
		s.screen.SetContent(cx, cy, lineRune, nil, ls)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Listen polls terminal events and reports the game's keys to handle until
// the screen is finalized.
func (s *Surface) Listen(handle func(render.Key)) {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			if key, ok := translate(ev); ok {
				handle(key)
			}
		}
	}
}

// translate maps a terminal key event to a render.Key.
func translate(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return render.KeyEscape, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return render.KeyA, true
		case 'd', 'D':
			return render.KeyD, true
		case 'q', 'Q':
			return render.KeyEscape, true
		}
	}
	return 0, false
}
