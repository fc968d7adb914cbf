package batch

import (
	"errors"
	"testing"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
)

func TestColorKeyQuantizesNearbyIntensities(t *testing.T) {
	kc := NewColorKeyCache()

	a := kc.Key(geometry.Red, 0.501)
	b := kc.Key(geometry.Red, 0.499)
	if a != b {
		t.Fatalf("keys for 0.501 and 0.499 differ: %d vs %d", a, b)
	}
	if kc.Intensity(a) != 0.5 {
		t.Errorf("intensity = %v, want 0.5", kc.Intensity(a))
	}
	if kc.Len() != 1 {
		t.Errorf("interned %d keys, want 1", kc.Len())
	}
}

func TestColorKeyDistinguishesLevelsAndColors(t *testing.T) {
	kc := NewColorKeyCache()

	half := kc.Key(geometry.Red, 0.5)
	lower := kc.Key(geometry.Red, 0.2)
	blue := kc.Key(geometry.Blue, 0.5)

	if half == lower {
		t.Error("different levels share a key")
	}
	if half == blue {
		t.Error("different colors share a key")
	}
	if kc.Color(blue) != geometry.Blue {
		t.Errorf("Color(blue) = %v", kc.Color(blue))
	}
}

func TestQuantizeClamps(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-1, 1},
		{0, 1},
		{0.5, 8},
		{1, Levels},
		{3, Levels},
	}
	for _, c := range cases {
		if got := Quantize(c.in); got != c.want {
			t.Errorf("Quantize(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestGroupCountBoundedByPaletteAndLevels(t *testing.T) {
	b, err := NewBatches(64, 16)
	if err != nil {
		t.Fatalf("NewBatches: %v", err)
	}

	const resolution = 2000
	colors := []geometry.Color{geometry.Red, geometry.Green}
	for col := 0; col < resolution; col++ {
		brightness := 100 * float64(col) / resolution
		b.AddWallSlice(colors[col%2], brightness, col, 10, 20)
	}

	if got, max := b.Groups(), len(colors)*Levels; got > max {
		t.Fatalf("%d groups, want at most %d", got, max)
	}
	if b.PendingRects() != resolution {
		t.Fatalf("pending rects = %d, want %d", b.PendingRects(), resolution)
	}

	fills := 0
	total := 0
	err = b.EachRectGroup(func(c geometry.Color, brightness float64, rects []*geometry.Rect) error {
		fills++
		total += len(rects)
		return nil
	})
	if err != nil {
		t.Fatalf("EachRectGroup: %v", err)
	}
	if fills != b.Groups() {
		t.Errorf("%d fills for %d groups", fills, b.Groups())
	}
	if total != resolution {
		t.Errorf("painted %d rects, want %d", total, resolution)
	}
	if b.PendingRects() != 0 {
		t.Errorf("pending rects after paint = %d, want 0", b.PendingRects())
	}
}

func TestWallSliceGeometry(t *testing.T) {
	b, err := NewBatches(4, 4)
	if err != nil {
		t.Fatalf("NewBatches: %v", err)
	}
	b.AddWallSlice(geometry.Cyan, 75, 12, 30, 40)

	var got geometry.Rect
	var level float64
	err = b.EachRectGroup(func(c geometry.Color, brightness float64, rects []*geometry.Rect) error {
		if c != geometry.Cyan {
			t.Errorf("color = %v, want cyan", c)
		}
		level = brightness
		got = *rects[0]
		return nil
	})
	if err != nil {
		t.Fatalf("EachRectGroup: %v", err)
	}
	want := geometry.Rect{X: 12, Y: 30, Width: 1, Height: 40}
	if got != want {
		t.Errorf("rect = %+v, want %+v", got, want)
	}
	if level != 75 {
		t.Errorf("brightness = %v, want 75", level)
	}
}

func TestNoneColorIsSkipped(t *testing.T) {
	b, _ := NewBatches(4, 4)
	b.AddWallSlice(geometry.None, 100, 0, 0, 10)
	if b.Groups() != 0 || b.PendingRects() != 0 {
		t.Errorf("None slice was queued: groups=%d pending=%d", b.Groups(), b.PendingRects())
	}
}

func TestClearReturnsUnpaintedRects(t *testing.T) {
	b, _ := NewBatches(2, 2)
	for i := 0; i < 10; i++ {
		b.AddWallSlice(geometry.Yellow, 50, i, 0, 5)
	}
	b.AddGridPoint(1, 2)
	b.AddMapLine(geometry.White, geometry.LineSegment{End: geometry.Coordinates{X: 5}})

	if err := b.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if b.PendingRects() != 0 {
		t.Errorf("pending rects = %d, want 0", b.PendingRects())
	}
	if b.Groups() != 0 {
		t.Errorf("groups = %d, want 0", b.Groups())
	}
	if b.GridPoints() != 0 {
		t.Errorf("grid points = %d, want 0", b.GridPoints())
	}
	calls := 0
	b.EachLineGroup(func(geometry.Color, []geometry.LineSegment) { calls++ })
	if calls != 0 {
		t.Errorf("line groups after clear = %d, want 0", calls)
	}

	// a second frame reuses the same keys
	b.AddWallSlice(geometry.Yellow, 50, 0, 0, 5)
	if b.Groups() != 1 {
		t.Errorf("groups in second frame = %d, want 1", b.Groups())
	}
	if b.Keys().Len() != 1 {
		t.Errorf("interned keys = %d, want 1", b.Keys().Len())
	}
}

func TestDrainGridPointsIsLIFO(t *testing.T) {
	b, _ := NewBatches(2, 1)
	b.AddGridPoint(2, 6)
	b.AddGridPoint(5, 3)

	var got []geometry.Coordinates
	if err := b.DrainGridPoints(func(p geometry.Coordinates) error {
		got = append(got, p)
		return nil
	}); err != nil {
		t.Fatalf("DrainGridPoints: %v", err)
	}
	want := []geometry.Coordinates{{X: 5, Y: 3}, {X: 2, Y: 6}}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDrainGridPointsStopsOnError(t *testing.T) {
	b, _ := NewBatches(2, 4)
	b.AddGridPoint(1, 1)
	b.AddGridPoint(2, 2)
	b.AddGridPoint(3, 3)

	boom := errors.New("boom")
	calls := 0
	err := b.DrainGridPoints(func(p geometry.Coordinates) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("DrainGridPoints() = %v, want boom", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times after failing, want 1", calls)
	}
	if b.GridPoints() != 2 {
		t.Errorf("%d points left, want 2", b.GridPoints())
	}

	if err := b.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if b.GridPoints() != 0 {
		t.Errorf("%d points left after Clear", b.GridPoints())
	}
}

func TestLineGroupsByColor(t *testing.T) {
	b, _ := NewBatches(2, 2)
	seg := geometry.LineSegment{End: geometry.Coordinates{X: 1, Y: 1}}
	b.AddMapLine(geometry.Red, seg)
	b.AddMapLine(geometry.Blue, seg)
	b.AddMapLine(geometry.Red, seg)

	counts := map[geometry.Color]int{}
	b.EachLineGroup(func(c geometry.Color, lines []geometry.LineSegment) {
		counts[c] += len(lines)
	})
	if counts[geometry.Red] != 2 || counts[geometry.Blue] != 1 {
		t.Errorf("line counts = %v", counts)
	}
}

func TestColumnWidthScalesSlices(t *testing.T) {
	b, _ := NewBatches(2, 2)
	b.SetColumnWidth(2.5)
	b.AddWallSlice(geometry.Red, 100, 4, 0, 10)

	_ = b.EachRectGroup(func(_ geometry.Color, _ float64, rects []*geometry.Rect) error {
		if rects[0].X != 10 || rects[0].Width != 2.5 {
			t.Errorf("rect = %+v, want X=10 Width=2.5", *rects[0])
		}
		return nil
	})
}
