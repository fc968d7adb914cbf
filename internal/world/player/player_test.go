package player

import (
	"math"
	"testing"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/raycast"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/settings"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/world/arena"
)

func newArena(t *testing.T, size float64) *arena.Arena {
	t.Helper()
	m, err := geometry.NewBoundedMath(geometry.DefaultPrecision, geometry.DefaultMaxEntries)
	if err != nil {
		t.Fatalf("NewBoundedMath: %v", err)
	}
	level := &arena.Level{
		Name:      "box",
		Width:     size,
		Height:    size,
		CellSize:  size / 4,
		WallColor: geometry.Blue,
		GridColor: geometry.Gray,
	}
	a, err := arena.New(level, raycast.NewEngine(m))
	if err != nil {
		t.Fatalf("arena.New: %v", err)
	}
	return a
}

func config(speed float64, turnFrames int) settings.PlayerConfig {
	return settings.PlayerConfig{Speed: speed, TurnFrames: turnFrames, TrailColor: geometry.Cyan}
}

func near(a, b geometry.Coordinates) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func stepN(t *testing.T, p *Player, a *arena.Arena, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if p.Step(a) {
			t.Fatalf("unexpected crash at %+v", p.Position())
		}
	}
}

func TestNewOpensDrawingSegment(t *testing.T) {
	p := New(geometry.Coordinates{X: 5, Y: 5}, 0, config(1, 1))
	trail := p.Trail()
	if len(trail) != 1 {
		t.Fatalf("trail has %d segments, want 1", len(trail))
	}
	if trail[0].State != geometry.Drawing {
		t.Errorf("head state = %v, want Drawing", trail[0].State)
	}
	if trail[0].Segment.Start != trail[0].Segment.End {
		t.Errorf("head is not degenerate: %+v", trail[0].Segment)
	}
}

func TestStepExtendsHead(t *testing.T) {
	a := newArena(t, 100)
	p := New(geometry.Coordinates{X: 10, Y: 10}, 0, config(2, 1))
	stepN(t, p, a, 3)

	want := geometry.Coordinates{X: 16, Y: 10}
	if !near(p.Position(), want) {
		t.Fatalf("position = %+v, want %+v", p.Position(), want)
	}
	head := p.Trail()[len(p.Trail())-1]
	if !near(head.Segment.End, want) || head.State != geometry.Drawing {
		t.Errorf("head = %+v", head)
	}
}

func TestTurnInterpolatesHeading(t *testing.T) {
	a := newArena(t, 100)
	p := New(geometry.Coordinates{X: 10, Y: 10}, 0, config(1, 4))

	p.Turn(Right)
	stepN(t, p, a, 2)
	if math.Abs(p.Heading()-math.Pi/4) > 1e-9 {
		t.Errorf("heading mid-turn = %v, want π/4", p.Heading())
	}
	if len(p.Trail()) != 1 {
		t.Errorf("trail closed before the turn completed")
	}

	stepN(t, p, a, 2)
	if math.Abs(p.Heading()-math.Pi/2) > 1e-9 {
		t.Errorf("heading after turn = %v, want π/2", p.Heading())
	}
	trail := p.Trail()
	if len(trail) != 2 {
		t.Fatalf("trail has %d segments, want 2", len(trail))
	}
	if trail[0].State != geometry.Closed || trail[1].State != geometry.Drawing {
		t.Errorf("states = %v, %v", trail[0].State, trail[1].State)
	}
	corner := geometry.Coordinates{X: 14, Y: 10}
	if !near(trail[0].Segment.End, corner) || !near(trail[1].Segment.Start, corner) {
		t.Errorf("segments do not meet at %+v: %+v", corner, trail)
	}

	// travel now follows the new heading
	stepN(t, p, a, 1)
	if !near(p.Position(), geometry.Coordinates{X: 14, Y: 11}) {
		t.Errorf("position = %+v, want (14, 11)", p.Position())
	}
}

func TestLeftTurnDecreasesHeading(t *testing.T) {
	a := newArena(t, 100)
	p := New(geometry.Coordinates{X: 50, Y: 50}, 0, config(1, 4))
	p.Turn(Left)
	stepN(t, p, a, 1)

	want := 2*math.Pi - math.Pi/8
	if math.Abs(p.Heading()-want) > 1e-9 {
		t.Errorf("heading = %v, want %v", p.Heading(), want)
	}
}

func TestTurnDuringTurnIsQueued(t *testing.T) {
	a := newArena(t, 100)
	p := New(geometry.Coordinates{X: 50, Y: 50}, 0, config(1, 2))
	p.Turn(Right)
	p.Turn(Right)

	stepN(t, p, a, 2)
	if !p.Turning() {
		t.Fatal("queued turn did not start")
	}
	stepN(t, p, a, 2)
	if p.Turning() {
		t.Error("still turning after both turns")
	}
	if math.Abs(p.Heading()-math.Pi) > 1e-9 {
		t.Errorf("heading = %v, want π", p.Heading())
	}
	if len(p.Trail()) != 3 {
		t.Errorf("trail has %d segments, want 3", len(p.Trail()))
	}
}

func TestCrashIntoBoundary(t *testing.T) {
	a := newArena(t, 100)
	p := New(geometry.Coordinates{X: 90, Y: 50}, 0, config(5, 1))

	stepN(t, p, a, 1)
	if !p.Step(a) {
		t.Fatalf("no crash at %+v", p.Position())
	}
	if p.Alive() {
		t.Error("player alive after crash")
	}
	if !near(p.Position(), geometry.Coordinates{X: 95, Y: 50}) {
		t.Errorf("position = %+v, want (95, 50)", p.Position())
	}
	if p.Step(a) {
		t.Error("dead player crashed again")
	}
}

func TestCrashIntoOwnTrail(t *testing.T) {
	a := newArena(t, 200)
	p := New(geometry.Coordinates{X: 50, Y: 50}, 0, config(10, 1))

	stepN(t, p, a, 3)
	p.Turn(Right)
	stepN(t, p, a, 4) // (90, 50) corner, then down to (90, 80)
	p.Turn(Right)
	stepN(t, p, a, 3) // (90, 90) corner, then back to (70, 90)
	p.Turn(Right)
	stepN(t, p, a, 4) // (60, 90) corner, then up to (60, 60)

	if !near(p.Position(), geometry.Coordinates{X: 60, Y: 60}) {
		t.Fatalf("position = %+v, want (60, 60)", p.Position())
	}
	if !p.Step(a) {
		t.Fatal("expected to crash into the first trail segment")
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("LEFT"); err != nil || d != Left {
		t.Errorf("ParseDirection(LEFT) = %v, %v", d, err)
	}
	if d, err := ParseDirection("right"); err != nil || d != Right {
		t.Errorf("ParseDirection(right) = %v, %v", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for up")
	}
}

func TestViewAfterTurnDoesNotHitOwnCorner(t *testing.T) {
	a := newArena(t, 200)
	p := New(geometry.Coordinates{X: 100, Y: 100}, 0, config(1, 1))
	a.Attach(p)

	stepN(t, p, a, 1)
	p.Turn(Right)
	stepN(t, p, a, 1)
	if p.Turning() || len(p.Trail()) != 2 {
		t.Fatalf("turn did not complete: turning=%v, %d segments", p.Turning(), len(p.Trail()))
	}

	for i := 0; i < 64; i++ {
		angle := float64(i) * 2 * math.Pi / 64
		slice := a.CastRay(angle, 1000)
		if slice.Color == geometry.Cyan && slice.Distance <= raycast.JunctionEpsilon {
			t.Errorf("ray at %v hit the trail at distance %v", angle, slice.Distance)
		}
	}
}
