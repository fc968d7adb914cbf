package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render"
)

// Surface implements render.Surface on an ebiten.Image.
type Surface struct {
	render.StateStack
	img *ebiten.Image

	// reused between FillPath calls
	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

// whiteSubImage is the source for FillPath triangles. It is the inner pixel
// of a 3x3 white image so sampling never reaches the edge.
var whiteSubImage *ebiten.Image

func fillSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(img.Bounds().Inset(1)).(*ebiten.Image)
	}
	return whiteSubImage
}

// NewSurface wraps img.
func NewSurface(img *ebiten.Image) *Surface {
	return &Surface{
		StateStack: render.NewStateStack(),
		img:        img,
	}
}

// Target swaps the image drawn to. The frame's screen image changes every
// Draw call.
func (s *Surface) Target(img *ebiten.Image) {
	s.img = img
}

// Size returns the width and height of the image.
func (s *Surface) Size() (width, height int) {
	return s.img.Bounds().Dx(), s.img.Bounds().Dy()
}

// Reset clears the image to black.
func (s *Surface) Reset() {
	s.ResetState()
	s.img.Fill(color.Black)
}

// Rect fills a rectangle with the current fill color.
func (s *Surface) Rect(x, y, width, height float64) error {
	st := s.Current()
	k := st.Scale
	vector.FillRect(s.img, float32(x*k), float32(y*k), float32(width*k), float32(height*k), st.Fill, false)
	return nil
}

// FillPath fills every rectangle as one path with a single triangle batch.
func (s *Surface) FillPath(rects []*geometry.Rect) error {
	if len(rects) == 0 {
		return nil
	}
	st := s.Current()
	k := float32(st.Scale)

	s.appendRects(rects, k)

	cr := float32(st.Fill.R) / 255
	cg := float32(st.Fill.G) / 255
	cb := float32(st.Fill.B) / 255
	ca := float32(st.Fill.A) / 255
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = cr
		s.vertices[i].ColorG = cg
		s.vertices[i].ColorB = cb
		s.vertices[i].ColorA = ca
	}

	opts := &ebiten.DrawTrianglesOptions{
		AntiAlias: false,
	}
	s.img.DrawTriangles(s.vertices, s.indices, fillSource(), opts)
	return nil
}

// appendRects rebuilds the reused path from rects and tessellates it into
// s.vertices and s.indices.
func (s *Surface) appendRects(rects []*geometry.Rect, k float32) {
	s.path.Reset()
	for _, r := range rects {
		x0, y0 := float32(r.X)*k, float32(r.Y)*k
		x1, y1 := float32(r.X+r.Width)*k, float32(r.Y+r.Height)*k
		s.path.MoveTo(x0, y0)
		s.path.LineTo(x1, y0)
		s.path.LineTo(x1, y1)
		s.path.LineTo(x0, y1)
		s.path.Close()
	}
	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
}

// Line strokes a segment with the current stroke color and width.
func (s *Surface) Line(segment geometry.LineSegment) error {
	st := s.Current()
	k := st.Scale
	vector.StrokeLine(s.img,
		float32(segment.Start.X*k), float32(segment.Start.Y*k),
		float32(segment.End.X*k), float32(segment.End.Y*k),
		float32(st.StrokeWidth*k), st.StrokeColor, true)
	return nil
}

// InputManager implements the InputManager interface using Ebiten.
type InputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &InputManager{}
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	return inpututil.IsKeyJustPressed(keyToEbitenKey(key))
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) ebiten.Key {
	switch key {
	case render.KeyA:
		return ebiten.KeyA
	case render.KeyD:
		return ebiten.KeyD
	case render.KeyLeft:
		return ebiten.KeyArrowLeft
	case render.KeyRight:
		return ebiten.KeyArrowRight
	case render.KeyEscape:
		return ebiten.KeyEscape
	default:
		return 0
	}
}

// Engine implements the Engine interface using Ebiten.
type Engine struct {
	debug bool
}

// NewEngine creates a new Ebiten-based game engine. With debug set the
// window shows the measured TPS and FPS in its top-left corner.
func NewEngine(debug bool) render.Engine {
	return &Engine{debug: debug}
}

// SetWindowSize sets the window size in pixels.
func (e *Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *Engine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// SetTPS sets the number of Update calls per second.
func (e *Engine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// RunGame runs the game loop with the provided game. The screen is not
// cleared between frames; the game repaints it fully on every Draw.
func (e *Engine) RunGame(game render.Game) error {
	ebiten.SetScreenClearedEveryFrame(false)
	return ebiten.RunGame(&gameAdapter{game: game, debug: e.debug})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game    render.Game
	surface *Surface
	debug   bool
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	return a.game.Update()
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	if a.surface == nil {
		a.surface = NewSurface(screen)
	} else {
		a.surface.Target(screen)
	}
	a.game.Draw(a.surface)

	if a.debug {
		vector.FillRect(screen, 0, 0, debugWidth, debugHeight, color.Black, false)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

const (
	debugWidth  = 120
	debugHeight = 16
)

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
