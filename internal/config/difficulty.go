package config

import "math"

// DifficultyManager turns patrol progress into a level and a reinforcement
// count.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether the level rises during a patrol.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none" && d.cfg.Progression.Type != ""
}

// Level returns the difficulty level in [0, 1] after the given number of
// turns at the given score.
func (d *DifficultyManager) Level(score, turns int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))

	var progress float64
	switch d.cfg.Progression.Type {
	case "turns":
		progress = float64(turns) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Reinforcements is the number of extra enemies due at a level.
type Reinforcements struct {
	Ships    int
	Monsters int
}

// Extra returns how many reinforcements the fleet should have received by
// now. It never decreases as score and turns grow.
func (d *DifficultyManager) Extra(score, turns int) Reinforcements {
	level := d.Level(score, turns)
	return Reinforcements{
		Ships:    int(level * float64(d.cfg.Scaling.ExtraShips)),
		Monsters: int(level * float64(d.cfg.Scaling.ExtraMonsters)),
	}
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
