// Package player moves the snake: a constant-speed head that leaves a trail
// of line segments and turns in quarter steps. The view heading sweeps
// across a turn over several frames while the trail stays axis-aligned.
package player

import (
	"fmt"
	"math"
	"strings"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/raycast"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/settings"
)

// Direction is a turn request.
type Direction int

const (
	Left Direction = iota
	Right
)

// String returns "left" or "right".
func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// ParseDirection parses "left" or "right" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown direction %q", s)
}

// delta is the heading change for d. Screen columns run from low to high
// angle, so a left turn decreases the heading.
func (d Direction) delta() float64 {
	if d == Left {
		return -math.Pi / 2
	}
	return math.Pi / 2
}

const (
	// collisionMargin extends each step's probe so a wall exactly one step
	// away is caught before the head lands on it.
	collisionMargin = 1e-3
	// junctionEpsilon skips the hit at distance zero where the previous
	// segment meets the head.
	junctionEpsilon = raycast.JunctionEpsilon
)

// Obstacles is what the player collides with.
type Obstacles interface {
	Probe(origin geometry.Coordinates, angle float64, trail []geometry.TrailSegment, minDistance, maxDistance float64) (raycast.Intersection, geometry.Color)
}

type turnState struct {
	active  bool
	from    float64
	to      float64
	frame   int
	pending []Direction
}

// Player is the snake's head and trail.
type Player struct {
	position   geometry.Coordinates
	heading    float64 // view heading, may lag the travel direction mid-turn
	travel     float64 // direction of the open trail segment
	speed      float64
	turnFrames int
	trailColor geometry.Color
	trail      []geometry.TrailSegment
	turn       turnState
	alive      bool
}

// New places a player at spawn facing heading (radians).
func New(spawn geometry.Coordinates, heading float64, cfg settings.PlayerConfig) *Player {
	heading = geometry.NormalizeAngle(heading)
	p := &Player{
		position:   spawn,
		heading:    heading,
		travel:     heading,
		speed:      cfg.Speed,
		turnFrames: cfg.TurnFrames,
		trailColor: cfg.TrailColor,
		alive:      true,
	}
	if p.turnFrames < 1 {
		p.turnFrames = 1
	}
	p.openSegment()
	return p
}

// Position returns the head position.
func (p *Player) Position() geometry.Coordinates { return p.position }

// Heading returns the view heading in [0, 2π).
func (p *Player) Heading() float64 { return geometry.NormalizeAngle(p.heading) }

// Trail returns every trail segment; the last one is the open head.
func (p *Player) Trail() []geometry.TrailSegment { return p.trail }

// TrailColor returns the color shared by all trail segments.
func (p *Player) TrailColor() geometry.Color { return p.trailColor }

// Alive reports whether the player has not crashed.
func (p *Player) Alive() bool { return p.alive }

// Turning reports whether a turn is in progress.
func (p *Player) Turning() bool { return p.turn.active }

// Turn requests a quarter turn. A turn requested mid-turn starts when the
// current one completes.
func (p *Player) Turn(d Direction) {
	if !p.alive {
		return
	}
	if p.turn.active {
		p.turn.pending = append(p.turn.pending, d)
		return
	}
	p.startTurn(d)
}

func (p *Player) startTurn(d Direction) {
	p.turn.active = true
	p.turn.from = p.travel
	p.turn.to = p.travel + d.delta()
	p.turn.frame = 0
}

// Step advances one frame. It returns true when the move would hit a wall
// or a closed trail segment; the player then stays put and is dead.
func (p *Player) Step(o Obstacles) bool {
	if !p.alive {
		return false
	}

	hit, _ := o.Probe(p.position, p.travel, p.trail, junctionEpsilon, p.speed+collisionMargin)
	if hit.Valid {
		p.alive = false
		return true
	}

	p.position.X += p.speed * math.Cos(p.travel)
	p.position.Y += p.speed * math.Sin(p.travel)
	p.trail[len(p.trail)-1].Segment.End = p.position

	if p.turn.active {
		p.advanceTurn()
	}
	return false
}

func (p *Player) advanceTurn() {
	p.turn.frame++
	t := float64(p.turn.frame) / float64(p.turnFrames)
	p.heading = p.turn.from + (p.turn.to-p.turn.from)*t
	if p.turn.frame < p.turnFrames {
		return
	}

	p.travel = geometry.NormalizeAngle(p.turn.to)
	p.heading = p.travel
	p.trail[len(p.trail)-1].State = geometry.Closed
	p.openSegment()
	p.turn.active = false

	if len(p.turn.pending) > 0 {
		next := p.turn.pending[0]
		p.turn.pending = p.turn.pending[1:]
		p.startTurn(next)
	}
}

func (p *Player) openSegment() {
	p.trail = append(p.trail, geometry.TrailSegment{
		Segment: geometry.LineSegment{Start: p.position, End: p.position},
		State:   geometry.Drawing,
	})
}
