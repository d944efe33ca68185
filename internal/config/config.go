// Package config loads the YAML patrol configuration and tracks how the
// enemy fleet grows as a patrol goes on.
package config

import (
	"errors"
	"fmt"
)

// SeaWarConfig holds every tunable of a patrol.
type SeaWarConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Fleet      FleetConfig      `yaml:"fleet"`
	Player     PlayerConfig     `yaml:"player"`
	Pace       PaceConfig       `yaml:"pace"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig sets the size of the sea.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Cells returns the number of cells on the grid.
func (g GridConfig) Cells() int {
	return g.Width * g.Height
}

// FleetConfig sets how many of each entity are placed at setup.
type FleetConfig struct {
	Islands  int `yaml:"islands"`
	Mines    int `yaml:"mines"`
	Ships    int `yaml:"ships"`
	Monsters int `yaml:"monsters"`
	HQs      int `yaml:"hqs"`
}

// Total returns the number of fleet entities, the player excluded.
func (f FleetConfig) Total() int {
	return f.Islands + f.Mines + f.Ships + f.Monsters + f.HQs
}

// PlayerConfig sets the submarine's capabilities.
type PlayerConfig struct {
	Torpedoes      int `yaml:"torpedoes"`
	TorpedoRange   int `yaml:"torpedo_range"`
	MaxNavDistance int `yaml:"max_nav_distance"` // Cells per navigation order
	SonarRange     int `yaml:"sonar_range"`
}

// PaceConfig sets the platform pacing.
type PaceConfig struct {
	EnemyEveryTicks int `yaml:"enemy_every_ticks"` // Watch mode: ticks between enemy phases
}

// DifficultyConfig defines how the enemy fleet is reinforced over a patrol.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how the level rises.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "turns", "score" or "none"
	MaxAt int    `yaml:"max_at"` // Turns or score at which the level reaches 1.0
}

// ScalingConfig defines the reinforcements sent at level 1.0.
type ScalingConfig struct {
	ExtraShips    int `yaml:"extra_ships"`
	ExtraMonsters int `yaml:"extra_monsters"`
}

// Validate reports every problem with the config at once.
func (c SeaWarConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config: "+format, args...))
		}
	}

	check(c.Grid.Width > 0 && c.Grid.Height > 0, "grid must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	check(c.Fleet.Islands >= 0 && c.Fleet.Mines >= 0 && c.Fleet.Ships >= 0 &&
		c.Fleet.Monsters >= 0 && c.Fleet.HQs >= 0, "fleet counts must not be negative: %+v", c.Fleet)
	if c.Grid.Width > 0 && c.Grid.Height > 0 {
		check(c.Fleet.Total()+1 <= c.Grid.Cells(), "fleet of %d and the player do not fit on a %dx%d grid",
			c.Fleet.Total(), c.Grid.Width, c.Grid.Height)
	}
	check(c.Player.Torpedoes >= 0, "torpedoes must not be negative, got %d", c.Player.Torpedoes)
	check(c.Player.TorpedoRange > 0, "torpedo_range must be positive, got %d", c.Player.TorpedoRange)
	check(c.Player.MaxNavDistance > 0, "max_nav_distance must be positive, got %d", c.Player.MaxNavDistance)
	check(c.Player.SonarRange >= 0, "sonar_range must not be negative, got %d", c.Player.SonarRange)
	check(c.Pace.EnemyEveryTicks > 0, "enemy_every_ticks must be positive, got %d", c.Pace.EnemyEveryTicks)

	switch c.Difficulty.Progression.Type {
	case "", "none", "turns", "score":
	default:
		check(false, "unknown progression type %q", c.Difficulty.Progression.Type)
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplySeaWarPreset adjusts cfg for a difficulty preset.
func ApplySeaWarPreset(cfg *SeaWarConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.Torpedoes += cfg.Player.Torpedoes / 2
		cfg.Player.SonarRange++
	case DifficultyHard:
		cfg.Player.Torpedoes -= cfg.Player.Torpedoes / 3
		cfg.Fleet.Mines += cfg.Fleet.Mines / 2
	}
}
