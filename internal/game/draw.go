package game

import (
	"fmt"
	"log"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render"
)

const (
	gridDotBrightness = 70
	gridDotSize       = 2
	overlayStroke     = 2
	playerMarkerSize  = 8
)

// Compute casts every column and fills the frame's batches.
func (g *Game) Compute() error {
	if err := g.batches.Clear(); err != nil {
		return err
	}

	heading := g.Player.Heading()
	if err := g.caster.FillFan(heading, g.angles); err != nil {
		return err
	}

	maxDistance := g.Settings.Camera.MaxDistance
	fade := g.Settings.Lighting.FadeDistance
	columnWidth := g.Settings.ColumnWidth()

	for i, angle := range g.angles {
		slice := g.Arena.CastRay(angle, maxDistance)

		if slice.Valid {
			d := g.caster.RemoveFisheye(slice.Distance, angle, heading)
			top, bottom, err := g.caster.ProjectSlice(d)
			if err != nil {
				return fmt.Errorf("column %d: %w", i, err)
			}
			g.batches.AddWallSlice(slice.Color, g.caster.BrightnessFor(d), i, top, bottom-top)
		}

		x := (float64(i) + 0.5) * columnWidth
		for _, hit := range slice.GridHits {
			if hit >= fade {
				continue
			}
			d := g.caster.RemoveFisheye(hit, angle, heading)
			g.batches.AddGridPoint(x, g.caster.FloorY(d))
		}
	}

	if g.Settings.Overlay.Enabled {
		g.queueOverlay()
	}
	return nil
}

// queueOverlay adds the 2D map lines in world coordinates; Paint scales
// them down.
func (g *Game) queueOverlay() {
	for _, w := range g.Arena.Boundary() {
		g.batches.AddMapLine(w.Color, w.Segment)
	}
	for _, w := range g.Arena.Interior() {
		g.batches.AddMapLine(w.Color, w.Segment)
	}
	for _, line := range g.Arena.Grid() {
		g.batches.AddMapLine(g.Arena.GridColor(), line)
	}
	for _, seg := range g.Player.Trail() {
		g.batches.AddMapLine(g.Player.TrailColor(), seg.Segment)
	}
}

// Paint draws the batched frame: one fill per wall group, then the grid
// dots, then the overlay.
func (g *Game) Paint(screen render.Surface) error {
	g.FrameCount++
	if g.FrameCount <= 5 {
		log.Printf("DEBUG Frame %d: %d wall groups, %d grid dots", g.FrameCount, g.batches.Groups(), g.batches.GridPoints())
	}

	screen.Reset()

	err := g.batches.EachRectGroup(func(c geometry.Color, brightness float64, rects []*geometry.Rect) error {
		screen.FillColor(c, brightness)
		return screen.FillPath(rects)
	})
	if err != nil {
		return fmt.Errorf("failed to paint walls: %w", err)
	}

	screen.FillColor(g.Arena.GridColor(), gridDotBrightness)
	err = g.batches.DrainGridPoints(func(p geometry.Coordinates) error {
		return screen.Rect(p.X-gridDotSize/2, p.Y-gridDotSize/2, gridDotSize, gridDotSize)
	})
	if err != nil {
		return fmt.Errorf("failed to paint grid: %w", err)
	}

	if g.Settings.Overlay.Enabled {
		if err := g.paintOverlay(screen); err != nil {
			return fmt.Errorf("failed to paint overlay: %w", err)
		}
	}
	return nil
}

func (g *Game) paintOverlay(screen render.Surface) error {
	screen.Save()
	defer screen.Restore()

	screen.Scale(g.Settings.Overlay.MapScale)
	screen.StrokeWeight(overlayStroke)

	var first error
	g.batches.EachLineGroup(func(c geometry.Color, lines []geometry.LineSegment) {
		screen.Stroke(c)
		for _, line := range lines {
			if err := screen.Line(line); err != nil && first == nil {
				first = err
			}
		}
	})
	if first != nil {
		return first
	}

	pos := g.Player.Position()
	screen.FillColor(geometry.White, 100)
	return screen.Rect(pos.X-playerMarkerSize/2, pos.Y-playerMarkerSize/2, playerMarkerSize, playerMarkerSize)
}
