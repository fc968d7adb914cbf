package tcell

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(20, 10)
	t.Cleanup(screen.Fini)
	return screen
}

func TestFillPathMapsCanvasToCells(t *testing.T) {
	screen := newScreen(t)
	s := NewSurface(screen, 40, 20)
	s.Reset()

	s.FillColor(geometry.Red, 100)
	if err := s.FillPath([]*geometry.Rect{{X: 0, Y: 0, Width: 4, Height: 4}}); err != nil {
		t.Fatalf("FillPath: %v", err)
	}
	s.Show()

	mainc, _, style, _ := screen.GetContent(1, 1)
	if mainc != fillRune {
		t.Fatalf("cell (1,1) = %q, want %q", mainc, fillRune)
	}
	fg, _, _ := style.Decompose()
	if want := tcell.NewRGBColor(230, 41, 55); fg != want {
		t.Errorf("foreground = %v, want %v", fg, want)
	}

	if mainc, _, _, _ := screen.GetContent(3, 3); mainc == fillRune {
		t.Error("cell (3,3) filled outside the rect")
	}
}

func TestLineIsScaled(t *testing.T) {
	screen := newScreen(t)
	s := NewSurface(screen, 40, 20)
	s.Reset()

	s.Stroke(geometry.White)
	s.Save()
	s.Scale(0.5)
	if err := s.Line(geometry.LineSegment{
		Start: geometry.Coordinates{X: 0, Y: 0},
		End:   geometry.Coordinates{X: 20, Y: 0},
	}); err != nil {
		t.Fatalf("Line: %v", err)
	}
	s.Restore()
	s.Show()

	if mainc, _, _, _ := screen.GetContent(4, 0); mainc != lineRune {
		t.Errorf("cell (4,0) = %q, want line", mainc)
	}
	if mainc, _, _, _ := screen.GetContent(8, 0); mainc == lineRune {
		t.Error("line drawn past its scaled end")
	}
}

func TestTranslateKeys(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want render.Key
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), render.KeyLeft},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), render.KeyRight},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), render.KeyEscape},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), render.KeyA},
		{tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone), render.KeyD},
	}
	for _, c := range cases {
		got, ok := translate(c.ev)
		if !ok || got != c.want {
			t.Errorf("translate(%v) = %v, %v; want %v", c.ev.Name(), got, ok, c.want)
		}
	}
	if _, ok := translate(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); ok {
		t.Error("x translated to a game key")
	}
}
