package config

import (
	_ "embed"
)

//go:embed defaults/seawar.yaml
var defaultSeaWarYAML []byte

// DefaultSeaWarConfig returns the built-in patrol configuration. It matches
// the embedded defaults/seawar.yaml.
func DefaultSeaWarConfig() SeaWarConfig {
	return SeaWarConfig{
		Grid: GridConfig{Width: 20, Height: 20},
		Fleet: FleetConfig{
			Islands:  14,
			Mines:    10,
			Ships:    8,
			Monsters: 3,
			HQs:      1,
		},
		Player: PlayerConfig{
			Torpedoes:      12,
			TorpedoRange:   6,
			MaxNavDistance: 3,
			SonarRange:     5,
		},
		Pace: PaceConfig{EnemyEveryTicks: 15},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "turns",
				MaxAt: 150,
			},
			Scaling: ScalingConfig{
				ExtraShips:    6,
				ExtraMonsters: 3,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSeaWarYAML
}
