package geometry

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	if got := NormalizeAngle(TwoPi); got != 0 {
		t.Errorf("Expected NormalizeAngle(2π) == 0, got %v", got)
	}

	for _, theta := range []float64{-7.5, -math.Pi, -0.1, 0, 0.3, math.Pi, 4.2, 13.9} {
		a := NormalizeAngle(theta)
		b := NormalizeAngle(theta + TwoPi)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("NormalizeAngle(%v)=%v but NormalizeAngle(%v+2π)=%v", theta, a, theta, b)
		}
		if a < 0 || a >= TwoPi {
			t.Errorf("NormalizeAngle(%v)=%v outside [0, 2π)", theta, a)
		}
	}
}

func TestBoundedMathRounding(t *testing.T) {
	m, err := NewBoundedMath(4, 100)
	if err != nil {
		t.Fatalf("NewBoundedMath failed: %v", err)
	}

	if got := m.Cos(0); got != 1 {
		t.Errorf("Expected cos(0) = 1, got %v", got)
	}
	if got := m.Sqrt(2); got != 1.4142 {
		t.Errorf("Expected sqrt(2) rounded to 1.4142, got %v", got)
	}
	if got := m.Sin(math.Pi / 6); math.Abs(got-0.5) > 0.00005 {
		t.Errorf("Expected sin(π/6) ≈ 0.5, got %v", got)
	}
}

func TestBoundedMathMemoizes(t *testing.T) {
	m, err := NewBoundedMath(6, 100)
	if err != nil {
		t.Fatalf("NewBoundedMath failed: %v", err)
	}

	m.Cos(1.2345671)
	m.Cos(1.2345669) // same key after rounding
	stats := m.Stats()
	if stats.Misses != 1 || stats.Hits != 1 {
		t.Errorf("Expected 1 miss and 1 hit, got %+v", stats)
	}
}

func TestBoundedMathEvictsWhenFull(t *testing.T) {
	m, err := NewBoundedMath(2, 3)
	if err != nil {
		t.Fatalf("NewBoundedMath failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		m.Sqrt(float64(i))
	}
	if entries := m.Stats().Entries; entries > 3 {
		t.Errorf("Expected at most 3 cached entries, got %d", entries)
	}
}

func TestNewBoundedMathRejectsBadConfig(t *testing.T) {
	if _, err := NewBoundedMath(-1, 10); err == nil {
		t.Error("Expected error for negative precision")
	}
	if _, err := NewBoundedMath(4, 0); err == nil {
		t.Error("Expected error for zero cache size")
	}
}

func TestColorText(t *testing.T) {
	var wall struct {
		Color Color `json:"color"`
	}
	if err := json.Unmarshal([]byte(`{"color":"Orange"}`), &wall); err != nil {
		t.Fatalf("Failed to parse color: %v", err)
	}
	if wall.Color != Orange {
		t.Errorf("Expected orange, got %v", wall.Color)
	}

	if _, err := ParseColor("chartreuse"); err == nil {
		t.Error("Expected error for unknown color")
	}

	if got := Red.Shade(50); got.R != 115 || got.A != 255 {
		t.Errorf("Expected half-intensity red, got %+v", got)
	}
}
