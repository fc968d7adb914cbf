// Package game is the frame driver. Each frame it advances the player,
// casts one ray per column, projects and batches the results, and paints
// the batches onto a render.Surface.
package game

import (
	"fmt"
	"log"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/raycast"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render/batch"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/settings"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/world/arena"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/world/player"
)

// Sounds receives gameplay audio cues.
type Sounds interface {
	PlayEngine()
	PlayTurn()
	PlayCrash()
}

type silent struct{}

func (silent) PlayEngine() {}
func (silent) PlayTurn()   {}
func (silent) PlayCrash()  {}

// Game holds all game state and logic.
type Game struct {
	Settings *settings.Config
	Level    *arena.Level
	Arena    *arena.Arena
	Player   *player.Player
	Sounds   Sounds

	math    *geometry.BoundedMath
	caster  *raycast.Raycaster
	batches *batch.Batches
	angles  []float64

	over bool

	// Debug
	FrameCount int
}

// New builds a game for level. sounds may be nil.
func New(cfg *settings.Config, level *arena.Level, sounds Sounds) (*Game, error) {
	if sounds == nil {
		sounds = silent{}
	}
	g := &Game{Level: level, Sounds: sounds}
	if err := g.Setup(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Setup (re)builds every render-side component from cfg and puts the
// player back at the spawn point.
func (g *Game) Setup(cfg *settings.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := geometry.NewBoundedMath(cfg.Performance.MathPrecision, cfg.Performance.MathCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create math cache: %w", err)
	}
	caster, err := raycast.NewRaycaster(cfg.Raycast(), m)
	if err != nil {
		return fmt.Errorf("failed to create raycaster: %w", err)
	}
	a, err := arena.New(g.Level, raycast.NewEngine(m))
	if err != nil {
		return fmt.Errorf("failed to build arena %q: %w", g.Level.Name, err)
	}
	batches, err := batch.NewBatches(cfg.Performance.RectPoolSize, cfg.Performance.PointPoolSize)
	if err != nil {
		return fmt.Errorf("failed to create batches: %w", err)
	}
	batches.SetColumnWidth(cfg.ColumnWidth())

	spawn := g.Level.Spawn
	p := player.New(geometry.Coordinates{X: spawn.X, Y: spawn.Y}, geometry.DegreesToRadians(spawn.Heading), cfg.Player)
	a.Attach(p)

	g.Settings = cfg
	g.math = m
	g.caster = caster
	g.Arena = a
	g.Player = p
	g.batches = batches
	g.angles = make([]float64, cfg.Display.Resolution)
	g.over = false
	g.FrameCount = 0

	log.Printf("Game ready: level %q, %d rays, %dx%d canvas",
		g.Level.Name, cfg.Display.Resolution, cfg.Display.CanvasWidth, cfg.Display.CanvasHeight)
	g.Sounds.PlayEngine()
	return nil
}

// Over reports whether the player has crashed.
func (g *Game) Over() bool {
	return g.over
}

// Turn forwards a turn request to the player.
func (g *Game) Turn(d player.Direction) {
	if g.over {
		return
	}
	g.Player.Turn(d)
	g.Sounds.PlayTurn()
}

// Step advances the player one frame. It returns true on the frame the
// player crashes.
func (g *Game) Step() bool {
	if g.over {
		return false
	}
	if g.Player.Step(g.Arena) {
		g.over = true
		g.Sounds.PlayCrash()
		pos := g.Player.Position()
		log.Printf("Crash at (%.1f, %.1f) after %d trail segments", pos.X, pos.Y, len(g.Player.Trail()))
		return true
	}
	return false
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Settings.Display.CanvasWidth, g.Settings.Display.CanvasHeight
}

// MathStats exposes the math cache counters.
func (g *Game) MathStats() geometry.MathStats {
	return g.math.Stats()
}
