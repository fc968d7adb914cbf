// Package settings provides the tunable parameters of the renderer and the
// game. They are loaded from a JSON file so a build can be retuned without
// recompiling.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/raycast"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid settings")

// Config holds every setting
type Config struct {
	Display     DisplayConfig     `json:"display"`
	Camera      CameraConfig      `json:"camera"`
	Lighting    LightingConfig    `json:"lighting"`
	Arena       ArenaConfig       `json:"arena"`
	Player      PlayerConfig      `json:"player"`
	Overlay     OverlayConfig     `json:"overlay"`
	Performance PerformanceConfig `json:"performance"`
}

// DisplayConfig defines the canvas and the ray fan
type DisplayConfig struct {
	CanvasWidth  int     `json:"canvas_width"`
	CanvasHeight int     `json:"canvas_height"`
	Resolution   int     `json:"resolution"`    // rays per frame
	FieldOfView  float64 `json:"field_of_view"` // horizontal, radians
	HorizonY     float64 `json:"horizon_y"`
	FrameRate    int     `json:"frame_rate"`
}

// CameraConfig defines the viewer's eye and the world's wall height
type CameraConfig struct {
	CameraHeight float64 `json:"camera_height"`
	WallHeight   float64 `json:"wall_height"`
	MaxDistance  float64 `json:"max_distance"`
}

// LightingConfig defines distance falloff
type LightingConfig struct {
	BrightnessFloor   float64 `json:"brightness_floor"`   // percent
	BrightnessCeiling float64 `json:"brightness_ceiling"` // percent
	FadeDistance      float64 `json:"fade_distance"`      // grid dots past this are not drawn
}

// ArenaConfig defines the default arena when no level file is given
type ArenaConfig struct {
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	GridCellSize float64        `json:"grid_cell_size"`
	WallColor    geometry.Color `json:"wall_color"`
	GridColor    geometry.Color `json:"grid_color"`
}

// PlayerConfig defines movement and the trail
type PlayerConfig struct {
	Speed      float64        `json:"speed"`       // world units per frame
	TurnFrames int            `json:"turn_frames"` // frames to complete a 90° turn
	TrailColor geometry.Color `json:"trail_color"`
}

// OverlayConfig defines the 2D map drawn over the 3D view
type OverlayConfig struct {
	Enabled  bool    `json:"enabled"`
	MapScale float64 `json:"map_scale"`
}

// PerformanceConfig sizes the caches and pools
type PerformanceConfig struct {
	MathPrecision int `json:"math_precision"`
	MathCacheSize int `json:"math_cache_size"`
	RectPoolSize  int `json:"rect_pool_size"`
	PointPoolSize int `json:"point_pool_size"`
}

// DefaultConfig returns settings for a 640x360 canvas with one ray per column
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			CanvasWidth:  640,
			CanvasHeight: 360,
			Resolution:   640,
			FieldOfView:  math.Pi / 3,
			HorizonY:     180,
			FrameRate:    60,
		},
		Camera: CameraConfig{
			CameraHeight: 10,
			WallHeight:   20,
			MaxDistance:  800,
		},
		Lighting: LightingConfig{
			BrightnessFloor:   15,
			BrightnessCeiling: 100,
			FadeDistance:      300,
		},
		Arena: ArenaConfig{
			Width:        400,
			Height:       400,
			GridCellSize: 40,
			WallColor:    geometry.Blue,
			GridColor:    geometry.Gray,
		},
		Player: PlayerConfig{
			Speed:      2,
			TurnFrames: 8,
			TrailColor: geometry.Cyan,
		},
		Overlay: OverlayConfig{
			Enabled:  true,
			MapScale: 0.25,
		},
		Performance: PerformanceConfig{
			MathPrecision: geometry.DefaultPrecision,
			MathCacheSize: geometry.DefaultMaxEntries,
			RectPoolSize:  1024,
			PointPoolSize: 4096,
		},
	}
}

// LoadConfig loads settings from a JSON file. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports the first setup fault.
func (c *Config) Validate() error {
	if err := c.Raycast().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	switch {
	case c.Display.Resolution > c.Display.CanvasWidth:
		return fmt.Errorf("%w: resolution %d exceeds canvas width %d", ErrInvalid, c.Display.Resolution, c.Display.CanvasWidth)
	case c.Display.FrameRate <= 0:
		return fmt.Errorf("%w: frame rate must be positive, got %d", ErrInvalid, c.Display.FrameRate)
	case c.Camera.CameraHeight < 0 || c.Camera.CameraHeight > c.Camera.WallHeight:
		return fmt.Errorf("%w: camera height must be in [0, wall height], got %v", ErrInvalid, c.Camera.CameraHeight)
	case c.Lighting.FadeDistance <= 0:
		return fmt.Errorf("%w: fade distance must be positive, got %v", ErrInvalid, c.Lighting.FadeDistance)
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: invalid arena dimensions: %vx%v", ErrInvalid, c.Arena.Width, c.Arena.Height)
	case c.Arena.GridCellSize <= 0:
		return fmt.Errorf("%w: grid cell size must be positive, got %v", ErrInvalid, c.Arena.GridCellSize)
	case c.Player.Speed <= 0:
		return fmt.Errorf("%w: player speed must be positive, got %v", ErrInvalid, c.Player.Speed)
	case c.Player.TurnFrames < 1:
		return fmt.Errorf("%w: turn frames must be at least 1, got %d", ErrInvalid, c.Player.TurnFrames)
	case c.Player.TrailColor == geometry.None:
		return fmt.Errorf("%w: trail color must not be none", ErrInvalid)
	case c.Overlay.MapScale <= 0:
		return fmt.Errorf("%w: map scale must be positive, got %v", ErrInvalid, c.Overlay.MapScale)
	case c.Performance.MathPrecision < 0 || c.Performance.MathCacheSize <= 0:
		return fmt.Errorf("%w: invalid math cache: precision %d, size %d", ErrInvalid, c.Performance.MathPrecision, c.Performance.MathCacheSize)
	case c.Performance.RectPoolSize <= 0 || c.Performance.PointPoolSize <= 0:
		return fmt.Errorf("%w: pool sizes must be positive", ErrInvalid)
	}
	return nil
}

// Raycast returns the projection parameters.
func (c *Config) Raycast() raycast.Config {
	return raycast.Config{
		Resolution:        c.Display.Resolution,
		FieldOfView:       c.Display.FieldOfView,
		ScreenWidth:       float64(c.Display.CanvasWidth),
		ScreenHeight:      float64(c.Display.CanvasHeight),
		HorizonY:          c.Display.HorizonY,
		WallHeight:        c.Camera.WallHeight,
		CameraHeight:      c.Camera.CameraHeight,
		MaxDistance:       c.Camera.MaxDistance,
		BrightnessFloor:   c.Lighting.BrightnessFloor,
		BrightnessCeiling: c.Lighting.BrightnessCeiling,
	}
}

// ColumnWidth returns the on-screen width of one ray's slice.
func (c *Config) ColumnWidth() float64 {
	return float64(c.Display.CanvasWidth) / float64(c.Display.Resolution)
}
