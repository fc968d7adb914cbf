package raycast

import (
	"errors"
	"fmt"
	"math"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
)

var (
	// ErrInvalidConfig wraps every projection setup fault.
	ErrInvalidConfig = errors.New("invalid raycaster config")

	// ErrNegativeDistance is returned when a slice is projected from a
	// negative distance.
	ErrNegativeDistance = errors.New("negative projection distance")
)

// fisheyeLimit is the field of view at and beyond which fisheye correction
// is skipped; the distortion is negligible there and the cosine term
// becomes unstable near the edges of the fan.
const fisheyeLimit = math.Pi / 2

// Config describes the camera and screen the raycaster projects onto.
type Config struct {
	Resolution   int
	FieldOfView  float64 // horizontal, radians
	ScreenWidth  float64
	ScreenHeight float64
	HorizonY     float64
	WallHeight   float64
	CameraHeight float64
	MaxDistance  float64

	// Brightness bounds in percent.
	BrightnessFloor   float64
	BrightnessCeiling float64
}

// Validate reports the first setup fault in c.
func (c Config) Validate() error {
	switch {
	case c.Resolution <= 0:
		return fmt.Errorf("%w: resolution must be positive, got %d", ErrInvalidConfig, c.Resolution)
	case !(c.FieldOfView > 0 && c.FieldOfView < math.Pi):
		return fmt.Errorf("%w: field of view must be in (0, π), got %v", ErrInvalidConfig, c.FieldOfView)
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: invalid screen dimensions: %vx%v", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	case c.MaxDistance <= 0:
		return fmt.Errorf("%w: max distance must be positive, got %v", ErrInvalidConfig, c.MaxDistance)
	case c.BrightnessCeiling <= 0 || c.BrightnessCeiling > 100:
		return fmt.Errorf("%w: brightness ceiling must be in (0, 100], got %v", ErrInvalidConfig, c.BrightnessCeiling)
	case c.BrightnessFloor < 0 || c.BrightnessFloor > c.BrightnessCeiling:
		return fmt.Errorf("%w: brightness floor must be in [0, %v], got %v", ErrInvalidConfig, c.BrightnessCeiling, c.BrightnessFloor)
	}
	return nil
}

// Raycaster generates the column angle fan and projects wall distances into
// screen-space slices.
type Raycaster struct {
	cfg         Config
	math        *geometry.BoundedMath
	focalLength float64
	step        float64
}

// NewRaycaster validates cfg and derives the focal length.
func NewRaycaster(cfg Config, m *geometry.BoundedMath) (*Raycaster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	verticalFOV := 2 * math.Atan(math.Tan(cfg.FieldOfView/2)*cfg.ScreenHeight/cfg.ScreenWidth)
	return &Raycaster{
		cfg:         cfg,
		math:        m,
		focalLength: cfg.ScreenWidth / (2 * math.Tan(verticalFOV/2)),
		step:        cfg.FieldOfView / float64(cfg.Resolution),
	}, nil
}

// Resolution returns the number of columns in the fan.
func (r *Raycaster) Resolution() int {
	return r.cfg.Resolution
}

// FocalLength returns the derived focal length in pixels.
func (r *Raycaster) FocalLength() float64 {
	return r.focalLength
}

// GenerateFan returns a fresh slice of column angles, left to right.
func (r *Raycaster) GenerateFan(viewerAngle float64) []float64 {
	angles := make([]float64, r.cfg.Resolution)
	r.fill(viewerAngle, angles)
	return angles
}

// FillFan writes the column angles into dst, which must hold exactly one
// entry per column.
func (r *Raycaster) FillFan(viewerAngle float64, dst []float64) error {
	if len(dst) != r.cfg.Resolution {
		return fmt.Errorf("fan buffer holds %d angles, resolution is %d", len(dst), r.cfg.Resolution)
	}
	r.fill(viewerAngle, dst)
	return nil
}

func (r *Raycaster) fill(viewerAngle float64, dst []float64) {
	start := viewerAngle - r.cfg.FieldOfView/2
	for i := range dst {
		dst[i] = geometry.NormalizeAngle(start + float64(i)*r.step)
	}
}

// RemoveFisheye scales distance by the cosine of the column's offset from
// the view center. Wide fields of view are returned unchanged.
func (r *Raycaster) RemoveFisheye(distance, columnAngle, viewerAngle float64) float64 {
	if r.cfg.FieldOfView >= fisheyeLimit {
		return distance
	}
	return distance * r.math.Cos(columnAngle-viewerAngle)
}

// ProjectSlice returns the screen Y of the top and bottom of a wall seen at
// distance. A zero distance fills the screen.
func (r *Raycaster) ProjectSlice(distance float64) (top, bottom float64, err error) {
	if distance < 0 {
		return 0, 0, fmt.Errorf("%w: %v", ErrNegativeDistance, distance)
	}
	if distance == 0 {
		return 0, r.cfg.ScreenHeight, nil
	}
	scale := r.focalLength / distance
	top = r.cfg.HorizonY - (r.cfg.WallHeight-r.cfg.CameraHeight)*scale
	bottom = r.cfg.HorizonY - (0-r.cfg.CameraHeight)*scale
	return top, bottom, nil
}

// FloorY returns the screen Y where the floor at distance meets the view.
func (r *Raycaster) FloorY(distance float64) float64 {
	if distance <= 0 {
		return r.cfg.ScreenHeight
	}
	return r.cfg.HorizonY + r.cfg.CameraHeight*r.focalLength/distance
}

// BrightnessFor returns the light level in percent for a wall at distance:
// a linear falloff from the ceiling at zero, clamped to the floor, and zero
// at or past the max distance.
func (r *Raycaster) BrightnessFor(distance float64) float64 {
	if distance >= r.cfg.MaxDistance {
		return 0
	}
	if distance <= 0 {
		return r.cfg.BrightnessCeiling
	}
	brightness := r.cfg.BrightnessCeiling * (1 - distance/r.cfg.MaxDistance)
	if brightness < r.cfg.BrightnessFloor {
		brightness = r.cfg.BrightnessFloor
	}
	return brightness
}
