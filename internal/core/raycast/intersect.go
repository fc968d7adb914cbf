// Package raycast implements the per-column ray/segment intersection engine
// and the projection math that turns wall distances into screen slices.
package raycast

import (
	"math"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
)

// ParallelEpsilon is the determinant magnitude below which a ray and a
// segment are treated as parallel.
const ParallelEpsilon = 1e-5

// JunctionEpsilon is the distance within which a hit on the closed segment
// feeding the trail head counts as the viewer touching its own corner.
const JunctionEpsilon = 1e-6

// Intersection is the result of testing one ray against one segment.
// Point and Distance are meaningless when Valid is false.
type Intersection struct {
	Valid    bool
	Point    geometry.Coordinates
	Distance float64
}

// Scene is everything a ray can hit, in the order it is visited.
type Scene struct {
	Boundary   []geometry.Wall
	Interior   []geometry.Wall
	Trail      []geometry.TrailSegment
	TrailColor geometry.Color
}

// Engine casts rays against line segments. It shares a BoundedMath cache
// with the projection code; like the cache it is owned by the render loop.
type Engine struct {
	math *geometry.BoundedMath
}

// NewEngine creates an engine backed by m.
func NewEngine(m *geometry.BoundedMath) *Engine {
	return &Engine{math: m}
}

// Intersect tests the half-line starting at origin in direction angle
// against segment.
func (e *Engine) Intersect(origin geometry.Coordinates, angle float64, segment geometry.LineSegment) Intersection {
	return e.intersect(origin, e.math.Cos(angle), e.math.Sin(angle), segment)
}

// CastNearest returns the closest hit within maxDistance across the
// boundary walls, the interior walls and the closed trail segments, with the
// color of the wall that was hit. The open trail head is skipped: the viewer
// sits on its End and would always hit it at distance zero.
//
// With no hit the intersection is invalid, its Distance is maxDistance and
// the color is None.
func (e *Engine) CastNearest(origin geometry.Coordinates, angle float64, scene *Scene, maxDistance float64) (Intersection, geometry.Color) {
	return e.CastNearestBeyond(origin, angle, scene, -1, maxDistance)
}

// CastNearestBeyond is CastNearest ignoring hits at or closer than
// minDistance. Collision probes use it to step off the junction between the
// last closed trail segment and the new head.
func (e *Engine) CastNearestBeyond(origin geometry.Coordinates, angle float64, scene *Scene, minDistance, maxDistance float64) (Intersection, geometry.Color) {
	dx, dy := e.math.Cos(angle), e.math.Sin(angle)

	nearest := Intersection{Distance: maxDistance}
	nearestColor := geometry.None

	consider := func(hit Intersection, c geometry.Color) {
		if !hit.Valid || hit.Distance <= minDistance || hit.Distance >= nearest.Distance {
			return
		}
		nearest = hit
		nearestColor = c
	}

	for i := range scene.Boundary {
		consider(e.intersect(origin, dx, dy, scene.Boundary[i].Segment), scene.Boundary[i].Color)
	}
	for i := range scene.Interior {
		consider(e.intersect(origin, dx, dy, scene.Interior[i].Segment), scene.Interior[i].Color)
	}
	junction, hasHead := trailJunction(scene.Trail)
	for i := range scene.Trail {
		seg := &scene.Trail[i]
		if seg.State == geometry.Drawing {
			continue
		}
		hit := e.intersect(origin, dx, dy, seg.Segment)
		if hasHead && hit.Distance <= JunctionEpsilon && nearPoint(seg.Segment.End, junction) {
			continue
		}
		consider(hit, scene.TrailColor)
	}

	return nearest, nearestColor
}

// trailJunction returns the Start of the open head, where the last closed
// segment ends.
func trailJunction(trail []geometry.TrailSegment) (geometry.Coordinates, bool) {
	for i := len(trail) - 1; i >= 0; i-- {
		if trail[i].State == geometry.Drawing {
			return trail[i].Segment.Start, true
		}
	}
	return geometry.Coordinates{}, false
}

func nearPoint(a, b geometry.Coordinates) bool {
	return math.Abs(a.X-b.X) <= JunctionEpsilon && math.Abs(a.Y-b.Y) <= JunctionEpsilon
}

// CollectCrossings appends to dst the distance of every grid line crossed
// strictly before limit and returns the extended slice.
func (e *Engine) CollectCrossings(origin geometry.Coordinates, angle float64, grid []geometry.LineSegment, limit float64, dst []float64) []float64 {
	dx, dy := e.math.Cos(angle), e.math.Sin(angle)
	for i := range grid {
		hit := e.intersect(origin, dx, dy, grid[i])
		if hit.Valid && hit.Distance < limit {
			dst = append(dst, hit.Distance)
		}
	}
	return dst
}

// intersect solves the 2x2 system for the line through origin and
// origin+(dx,dy) against the wall line (x3,y3)-(x4,y4).
func (e *Engine) intersect(origin geometry.Coordinates, dx, dy float64, segment geometry.LineSegment) Intersection {
	x1, y1 := origin.X, origin.Y
	x2, y2 := origin.X+dx, origin.Y+dy
	x3, y3 := segment.Start.X, segment.Start.Y
	x4, y4 := segment.End.X, segment.End.Y

	denominator := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denominator) < ParallelEpsilon {
		return Intersection{}
	}

	rayT := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denominator
	wallU := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / denominator

	if wallU < 0 || wallU > 1 || rayT < 0 {
		return Intersection{}
	}

	point := geometry.Coordinates{X: x1 + rayT*dx, Y: y1 + rayT*dy}
	ox := point.X - x1
	oy := point.Y - y1
	return Intersection{
		Valid:    true,
		Point:    point,
		Distance: e.math.Sqrt(ox*ox + oy*oy),
	}
}
