package gg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
)

func isRed(r, g, b uint32) bool {
	return r>>8 > 200 && g>>8 < 80 && b>>8 < 80
}

func isBlack(r, g, b uint32) bool {
	return r>>8 < 10 && g>>8 < 10 && b>>8 < 10
}

func TestFillPathPaintsRects(t *testing.T) {
	s, err := NewSurface(40, 40)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	defer s.Close()

	s.FillColor(geometry.Red, 100)
	rects := []*geometry.Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 20, Y: 20, Width: 10, Height: 10},
	}
	if err := s.FillPath(rects); err != nil {
		t.Fatalf("FillPath: %v", err)
	}

	img := s.Image()
	if r, g, b, _ := img.At(5, 5).RGBA(); !isRed(r, g, b) {
		t.Errorf("pixel (5,5) = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(25, 25).RGBA(); !isRed(r, g, b) {
		t.Errorf("pixel (25,25) = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(15, 15).RGBA(); !isBlack(r, g, b) {
		t.Errorf("pixel (15,15) = %d,%d,%d, want black", r>>8, g>>8, b>>8)
	}
}

func TestScaleIsRestored(t *testing.T) {
	s, err := NewSurface(40, 40)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	defer s.Close()

	s.FillColor(geometry.Red, 100)
	s.Save()
	s.Scale(0.5)
	if err := s.Rect(20, 20, 10, 10); err != nil {
		t.Fatalf("Rect: %v", err)
	}
	s.Restore()

	img := s.Image()
	if r, g, b, _ := img.At(12, 12).RGBA(); !isRed(r, g, b) {
		t.Errorf("scaled rect missing at (12,12): %d,%d,%d", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(25, 25).RGBA(); !isBlack(r, g, b) {
		t.Errorf("unscaled rect drawn at (25,25): %d,%d,%d", r>>8, g>>8, b>>8)
	}

	s.Reset()
	if r, g, b, _ := s.Image().At(12, 12).RGBA(); !isBlack(r, g, b) {
		t.Errorf("reset did not clear: %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestSavePNG(t *testing.T) {
	s, err := NewSurface(8, 8)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	defer s.Close()

	s.Stroke(geometry.White)
	if err := s.Line(geometry.LineSegment{End: geometry.Coordinates{X: 8, Y: 8}}); err != nil {
		t.Fatalf("Line: %v", err)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("snapshot not written: %v", err)
	}
}

func TestNewSurfaceRejectsEmptyCanvas(t *testing.T) {
	if _, err := NewSurface(0, 10); err == nil {
		t.Fatal("expected error")
	}
}
