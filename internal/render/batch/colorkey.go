// Package batch groups per-frame draw primitives by (color, brightness) so
// the drawing surface receives one fill per group instead of one per column.
package batch

import (
	"math"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
)

// Levels is the number of brightness levels a ColorKey can carry. Together
// with the palette size it bounds the number of fills per frame.
const Levels = 16

// ColorKey is an interned (color, quantized intensity) handle. Two keys are
// equal exactly when their color and quantized level are equal, so a key can
// index a dense slice of groups.
type ColorKey int32

type keyEntry struct {
	color geometry.Color
	level int
}

// ColorKeyCache interns (color, level) pairs into ColorKeys. Lookup is by
// color first, then by level.
type ColorKeyCache struct {
	table   [geometry.NumColors][Levels + 1]ColorKey // stores key+1, 0 = unassigned
	entries []keyEntry
}

// NewColorKeyCache creates an empty cache.
func NewColorKeyCache() *ColorKeyCache {
	return &ColorKeyCache{
		entries: make([]keyEntry, 0, geometry.NumColors*Levels),
	}
}

// Quantize maps an intensity in [0, 1] to the nearest of the levels 1..16.
func Quantize(intensity float64) int {
	level := int(math.Round(intensity * Levels))
	if level < 1 {
		return 1
	}
	if level > Levels {
		return Levels
	}
	return level
}

// Key returns the interned key for c at intensity (0-1).
func (kc *ColorKeyCache) Key(c geometry.Color, intensity float64) ColorKey {
	if int(c) >= geometry.NumColors {
		c = geometry.None
	}
	level := Quantize(intensity)
	if stored := kc.table[c][level]; stored != 0 {
		return stored - 1
	}
	key := ColorKey(len(kc.entries))
	kc.entries = append(kc.entries, keyEntry{color: c, level: level})
	kc.table[c][level] = key + 1
	return key
}

// Color returns the palette color of k.
func (kc *ColorKeyCache) Color(k ColorKey) geometry.Color {
	return kc.entries[k].color
}

// Intensity returns the quantized intensity of k in [0, 1].
func (kc *ColorKeyCache) Intensity(k ColorKey) float64 {
	return float64(kc.entries[k].level) / Levels
}

// Len returns the number of keys interned so far.
func (kc *ColorKeyCache) Len() int {
	return len(kc.entries)
}
