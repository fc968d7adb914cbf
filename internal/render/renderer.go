package render

import (
	"image/color"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
)

// Surface is a retained-state 2D drawing surface. Fill and stroke settings
// and the scale persist until changed or until Restore pops them.
// This allows swapping drawing backends without changing the frame driver.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (width, height int)

	// Reset clears to black and drops every saved state.
	Reset()

	// State stack
	Save()
	Restore()
	Scale(factor float64)

	// Fill operations
	FillColor(c geometry.Color, brightness float64)
	Rect(x, y, width, height float64) error
	FillPath(rects []*geometry.Rect) error

	// Stroke operations
	Stroke(c geometry.Color)
	StrokeWeight(width float64)
	Line(segment geometry.LineSegment) error
}

// State is one entry of a Surface's save stack. Backends embed a StateStack
// to get Save/Restore/Scale and the current colors for free.
type State struct {
	Scale       float64
	Fill        color.RGBA
	StrokeColor color.RGBA
	StrokeWidth float64
}

// StateStack implements the state half of Surface.
type StateStack struct {
	current State
	saved   []State
}

// NewStateStack starts with identity scale, black fill and a 1px white stroke.
func NewStateStack() StateStack {
	return StateStack{current: defaultState()}
}

func defaultState() State {
	return State{
		Scale:       1,
		Fill:        color.RGBA{0, 0, 0, 255},
		StrokeColor: color.RGBA{255, 255, 255, 255},
		StrokeWidth: 1,
	}
}

// Current returns the active state.
func (s *StateStack) Current() State { return s.current }

// ResetState drops every saved state.
func (s *StateStack) ResetState() {
	s.current = defaultState()
	s.saved = s.saved[:0]
}

// Save pushes the active state.
func (s *StateStack) Save() {
	s.saved = append(s.saved, s.current)
}

// Restore pops the last saved state. An unbalanced Restore is ignored.
func (s *StateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// Scale multiplies the active scale.
func (s *StateStack) Scale(factor float64) {
	s.current.Scale *= factor
}

// FillColor sets the fill to c shaded by brightness percent.
func (s *StateStack) FillColor(c geometry.Color, brightness float64) {
	s.current.Fill = c.Shade(brightness)
}

// Stroke sets the stroke color.
func (s *StateStack) Stroke(c geometry.Color) {
	s.current.StrokeColor = c.RGBA()
}

// StrokeWeight sets the stroke width before scaling.
func (s *StateStack) StrokeWeight(width float64) {
	s.current.StrokeWidth = width
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update advances the game by one tick. A non-nil error stops the engine.
	Update() error

	// Draw paints the current frame.
	Draw(screen Surface)

	// Layout accepts the outside size and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)
	SetTPS(tps int)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}

// InputManager handles keyboard input.
type InputManager interface {
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads
const (
	KeyA Key = iota
	KeyD
	KeyLeft
	KeyRight
	KeyEscape
)
