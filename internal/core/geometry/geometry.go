package geometry

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2.0 * math.Pi

// NormalizeAngle wraps an angle into [0, 2π).
func NormalizeAngle(angle float64) float64 {
	normalized := math.Mod(angle, TwoPi)
	if normalized < 0 {
		normalized += TwoPi
	}
	// math.Mod of a value just below a negative multiple of 2π can round up to 2π
	if normalized >= TwoPi {
		normalized = 0
	}
	return normalized
}

// DegreesToRadians converts degrees to radians
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Coordinates) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
