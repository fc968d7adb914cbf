// Package geometry holds the 2D value types shared by the raycaster, the
// batching layer and the world model, plus the memoizing math helpers used
// on the per-column hot path.
package geometry

// Coordinates represents a 2D point in world or screen space
type Coordinates struct {
	X, Y float64
}

// LineSegment is an ordered pair of points. Intersection treats it as
// undirected; the trail relies on End being the growing end.
type LineSegment struct {
	Start, End Coordinates
}

// Wall is a colored, immutable line segment that occludes rays
type Wall struct {
	Segment LineSegment
	Color   Color
}

// Rect is an axis-aligned rectangle. Wall slices use X as the screen column
// and a Width of 1.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewWall builds a wall between two points.
func NewWall(x1, y1, x2, y2 float64, c Color) Wall {
	return Wall{
		Segment: LineSegment{Start: Coordinates{X: x1, Y: y1}, End: Coordinates{X: x2, Y: y2}},
		Color:   c,
	}
}

// Length returns the Euclidean length of the segment.
func (s LineSegment) Length() float64 {
	return Distance(s.Start, s.End)
}

// Scaled returns the segment with both endpoints multiplied by factor.
func (s LineSegment) Scaled(factor float64) LineSegment {
	return LineSegment{
		Start: Coordinates{X: s.Start.X * factor, Y: s.Start.Y * factor},
		End:   Coordinates{X: s.End.X * factor, Y: s.End.Y * factor},
	}
}

// SegmentState tags a trail segment as still growing or finished.
type SegmentState uint8

const (
	// Closed segments are fixed and collide like walls.
	Closed SegmentState = iota
	// Drawing is the open head of a trail; its End follows the player.
	Drawing
)

// TrailSegment is one edge of a player trail.
type TrailSegment struct {
	Segment LineSegment
	State   SegmentState
}
