package arena

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/core/geometry"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/settings"
)

// Spawn defines the player's start position and heading
type Spawn struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"` // degrees, 0 = +X, counter-clockwise
}

// WallData is one interior wall as stored in a level file
type WallData struct {
	X1    float64        `json:"x1"`
	Y1    float64        `json:"y1"`
	X2    float64        `json:"x2"`
	Y2    float64        `json:"y2"`
	Color geometry.Color `json:"color"`
}

// Level represents a loaded level file
type Level struct {
	Name      string         `json:"name"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	CellSize  float64        `json:"cell_size"`
	WallColor geometry.Color `json:"wall_color"` // boundary, and interior walls without a color
	GridColor geometry.Color `json:"grid_color"`
	Spawn     Spawn          `json:"spawn"`
	Walls     []WallData     `json:"walls"`
}

// DefaultLevel returns an empty arena sized from settings with the player
// in the lower-left quadrant heading along +X.
func DefaultLevel(cfg settings.ArenaConfig) *Level {
	return &Level{
		Name:      "open",
		Width:     cfg.Width,
		Height:    cfg.Height,
		CellSize:  cfg.GridCellSize,
		WallColor: cfg.WallColor,
		GridColor: cfg.GridColor,
		Spawn: Spawn{
			X: cfg.Width / 4,
			Y: cfg.Height / 4,
		},
	}
}

// LoadLevel loads a level from a JSON file
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}

	var level Level
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level file %s: %w", path, err)
	}

	if err := validateLevel(&level); err != nil {
		return nil, fmt.Errorf("invalid level data in %s: %w", path, err)
	}

	return &level, nil
}

// validateLevel checks that the level is usable and fills in default colors
func validateLevel(level *Level) error {
	if level.Width <= 0 || level.Height <= 0 {
		return fmt.Errorf("invalid level dimensions: %vx%v", level.Width, level.Height)
	}

	if level.CellSize <= 0 {
		return fmt.Errorf("invalid cell size: %v", level.CellSize)
	}

	if !level.contains(level.Spawn.X, level.Spawn.Y) {
		return fmt.Errorf("spawn (%v, %v) is outside the arena", level.Spawn.X, level.Spawn.Y)
	}

	if level.WallColor == geometry.None {
		level.WallColor = geometry.Blue
	}
	if level.GridColor == geometry.None {
		level.GridColor = geometry.Gray
	}

	for i := range level.Walls {
		w := &level.Walls[i]
		if w.X1 == w.X2 && w.Y1 == w.Y2 {
			return fmt.Errorf("wall %d has zero length", i)
		}
		if !level.contains(w.X1, w.Y1) || !level.contains(w.X2, w.Y2) {
			return fmt.Errorf("wall %d extends outside the arena", i)
		}
		if w.Color == geometry.None {
			w.Color = level.WallColor
		}
	}

	return nil
}

func (l *Level) contains(x, y float64) bool {
	return x >= 0 && x <= l.Width && y >= 0 && y <= l.Height
}
