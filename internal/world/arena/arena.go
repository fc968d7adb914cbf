// Package arena is the map provider: the walls that bound the play field,
// the interior walls from a level file, the floor grid, and ray casting
// against all of them plus the player's trail.
package arena

import (
	"fmt"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/raycast"
)

// Viewer is the trail owner the arena casts from.
type Viewer interface {
	Position() geometry.Coordinates
	Trail() []geometry.TrailSegment
	TrailColor() geometry.Color
}

// Slice is what one column's ray sees. GridHits is scratch memory owned by
// the arena and is overwritten by the next CastRay.
type Slice struct {
	Valid        bool
	Distance     float64
	Color        geometry.Color
	Intersection geometry.Coordinates
	GridHits     []float64
}

// Arena holds the static geometry of one level.
type Arena struct {
	name      string
	width     float64
	height    float64
	spawn     Spawn
	gridColor geometry.Color

	grid   []geometry.LineSegment
	scene  raycast.Scene
	engine *raycast.Engine
	viewer Viewer

	gridHits []float64
}

// New builds an arena from a validated level.
func New(level *Level, engine *raycast.Engine) (*Arena, error) {
	if level.Width <= 0 || level.Height <= 0 {
		return nil, fmt.Errorf("invalid arena dimensions: %vx%v", level.Width, level.Height)
	}
	if level.CellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size: %v", level.CellSize)
	}

	a := &Arena{
		name:      level.Name,
		width:     level.Width,
		height:    level.Height,
		spawn:     level.Spawn,
		gridColor: level.GridColor,
		engine:    engine,
	}

	w, h, c := level.Width, level.Height, level.WallColor
	a.scene.Boundary = []geometry.Wall{
		geometry.NewWall(0, 0, w, 0, c),
		geometry.NewWall(w, 0, w, h, c),
		geometry.NewWall(w, h, 0, h, c),
		geometry.NewWall(0, h, 0, 0, c),
	}

	a.scene.Interior = make([]geometry.Wall, 0, len(level.Walls))
	for _, wd := range level.Walls {
		a.scene.Interior = append(a.scene.Interior, geometry.NewWall(wd.X1, wd.Y1, wd.X2, wd.Y2, wd.Color))
	}

	a.grid = buildGrid(w, h, level.CellSize)
	a.gridHits = make([]float64, 0, len(a.grid))
	return a, nil
}

// buildGrid returns the interior grid lines; lines on the boundary are
// omitted since the boundary walls already cover them.
func buildGrid(width, height, cell float64) []geometry.LineSegment {
	var lines []geometry.LineSegment
	for i := 1; float64(i)*cell < width; i++ {
		x := float64(i) * cell
		lines = append(lines, geometry.LineSegment{
			Start: geometry.Coordinates{X: x, Y: 0},
			End:   geometry.Coordinates{X: x, Y: height},
		})
	}
	for i := 1; float64(i)*cell < height; i++ {
		y := float64(i) * cell
		lines = append(lines, geometry.LineSegment{
			Start: geometry.Coordinates{X: 0, Y: y},
			End:   geometry.Coordinates{X: width, Y: y},
		})
	}
	return lines
}

// Attach sets the viewer whose position rays start from and whose trail
// occludes them.
func (a *Arena) Attach(v Viewer) {
	a.viewer = v
}

// CastRay casts from the attached viewer along angle.
func (a *Arena) CastRay(angle, maxDistance float64) Slice {
	origin := a.viewer.Position()
	a.scene.Trail = a.viewer.Trail()
	a.scene.TrailColor = a.viewer.TrailColor()

	hit, c := a.engine.CastNearest(origin, angle, &a.scene, maxDistance)
	a.gridHits = a.engine.CollectCrossings(origin, angle, a.grid, hit.Distance, a.gridHits[:0])

	return Slice{
		Valid:        hit.Valid,
		Distance:     hit.Distance,
		Color:        c,
		Intersection: hit.Point,
		GridHits:     a.gridHits,
	}
}

// Probe returns the nearest obstacle from origin along angle beyond
// minDistance, including the given trail's closed segments.
func (a *Arena) Probe(origin geometry.Coordinates, angle float64, trail []geometry.TrailSegment, minDistance, maxDistance float64) (raycast.Intersection, geometry.Color) {
	a.scene.Trail = trail
	return a.engine.CastNearestBeyond(origin, angle, &a.scene, minDistance, maxDistance)
}

// Name returns the level name.
func (a *Arena) Name() string { return a.name }

// Size returns the arena width and height.
func (a *Arena) Size() (width, height float64) { return a.width, a.height }

// Spawn returns the player's start position and heading.
func (a *Arena) Spawn() Spawn { return a.spawn }

// Boundary returns the four outer walls.
func (a *Arena) Boundary() []geometry.Wall { return a.scene.Boundary }

// Interior returns the level's walls.
func (a *Arena) Interior() []geometry.Wall { return a.scene.Interior }

// Grid returns the interior floor grid lines.
func (a *Arena) Grid() []geometry.LineSegment { return a.grid }

// GridColor returns the color of the floor grid.
func (a *Arena) GridColor() geometry.Color { return a.gridColor }
