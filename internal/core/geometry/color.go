package geometry

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is a palette tag. Walls, trails and grid lines carry a Color rather
// than an RGBA value so the batching layer can intern (color, intensity)
// pairs into a small table.
type Color uint8

const (
	None Color = iota
	Red
	Green
	Blue
	Yellow
	Cyan
	Magenta
	Orange
	Purple
	White
	Gray
	numColors
)

// NumColors is the size of the palette, including None.
const NumColors = int(numColors)

var colorNames = [numColors]string{
	None:    "none",
	Red:     "red",
	Green:   "green",
	Blue:    "blue",
	Yellow:  "yellow",
	Cyan:    "cyan",
	Magenta: "magenta",
	Orange:  "orange",
	Purple:  "purple",
	White:   "white",
	Gray:    "gray",
}

var colorValues = [numColors]color.RGBA{
	None:    {0, 0, 0, 0},
	Red:     {230, 41, 55, 255},
	Green:   {0, 228, 48, 255},
	Blue:    {0, 121, 241, 255},
	Yellow:  {253, 249, 0, 255},
	Cyan:    {0, 255, 255, 255},
	Magenta: {255, 0, 255, 255},
	Orange:  {255, 161, 0, 255},
	Purple:  {200, 122, 255, 255},
	White:   {255, 255, 255, 255},
	Gray:    {130, 130, 130, 255},
}

// String returns the lower-case palette name.
func (c Color) String() string {
	if c >= numColors {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// RGBA returns the full-intensity value of the palette entry.
func (c Color) RGBA() color.RGBA {
	if c >= numColors {
		return colorValues[None]
	}
	return colorValues[c]
}

// Shade returns the palette color scaled by percent (0-100). Alpha is kept.
func (c Color) Shade(percent float64) color.RGBA {
	base := c.RGBA()
	if percent <= 0 {
		return color.RGBA{0, 0, 0, base.A}
	}
	if percent >= 100 {
		return base
	}
	f := percent / 100
	return color.RGBA{
		R: uint8(float64(base.R) * f),
		G: uint8(float64(base.G) * f),
		B: uint8(float64(base.B) * f),
		A: base.A,
	}
}

// ParseColor looks up a palette entry by name (case-insensitive).
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return None, fmt.Errorf("unknown color %q", name)
}

// MarshalText implements encoding.TextMarshaler so colors read naturally in
// level and settings files.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
