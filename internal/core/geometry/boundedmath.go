package geometry

import (
	"fmt"
	"math"
)

// Default memoization bounds used when settings do not override them.
const (
	DefaultPrecision  = 8
	DefaultMaxEntries = 1 << 16
	maxPrecision      = 15
)

// BoundedMath memoizes cos, sin and sqrt. Inputs are rounded to a fixed
// number of decimal places before lookup and results are rounded the same
// way, so callers must tolerate half a unit of error in the last retained
// place. Repeated view angles (the column fan is identical whenever the
// heading repeats) skip the transcendental call entirely.
//
// Each table is emptied when it reaches maxEntries. BoundedMath is not safe
// for concurrent use; it belongs to the render loop.
type BoundedMath struct {
	scale      float64
	maxEntries int

	cos  map[float64]float64
	sin  map[float64]float64
	sqrt map[float64]float64

	hits   uint64
	misses uint64
}

// MathStats reports cache effectiveness.
type MathStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// NewBoundedMath creates a cache rounding to precision decimal places.
func NewBoundedMath(precision, maxEntries int) (*BoundedMath, error) {
	if precision < 0 || precision > maxPrecision {
		return nil, fmt.Errorf("math precision must be in [0, %d], got %d", maxPrecision, precision)
	}
	if maxEntries <= 0 {
		return nil, fmt.Errorf("math cache size must be positive, got %d", maxEntries)
	}
	return &BoundedMath{
		scale:      math.Pow(10, float64(precision)),
		maxEntries: maxEntries,
		cos:        make(map[float64]float64),
		sin:        make(map[float64]float64),
		sqrt:       make(map[float64]float64),
	}, nil
}

// Cos returns the memoized, rounded cosine of angle.
func (m *BoundedMath) Cos(angle float64) float64 {
	return m.lookup(m.cos, angle, math.Cos)
}

// Sin returns the memoized, rounded sine of angle.
func (m *BoundedMath) Sin(angle float64) float64 {
	return m.lookup(m.sin, angle, math.Sin)
}

// Sqrt returns the memoized, rounded square root of x.
func (m *BoundedMath) Sqrt(x float64) float64 {
	return m.lookup(m.sqrt, x, math.Sqrt)
}

// Round rounds x to the configured precision.
func (m *BoundedMath) Round(x float64) float64 {
	return math.Round(x*m.scale) / m.scale
}

// Stats returns hit/miss counters and the number of cached entries.
func (m *BoundedMath) Stats() MathStats {
	return MathStats{
		Hits:    m.hits,
		Misses:  m.misses,
		Entries: len(m.cos) + len(m.sin) + len(m.sqrt),
	}
}

func (m *BoundedMath) lookup(table map[float64]float64, x float64, fn func(float64) float64) float64 {
	key := m.Round(x)
	if v, ok := table[key]; ok {
		m.hits++
		return v
	}
	m.misses++
	if len(table) >= m.maxEntries {
		clear(table)
	}
	v := m.Round(fn(key))
	table[key] = v
	return v
}
