package seawar

import (
	"testing"

	"github.com/vovakirdan/seawar/internal/config"
	"github.com/vovakirdan/seawar/internal/core"
	"github.com/vovakirdan/seawar/internal/sim"
)

func testConfig() config.SeaWarConfig {
	cfg := config.DefaultSeaWarConfig()
	cfg.Grid = config.GridConfig{Width: 8, Height: 8}
	cfg.Fleet = config.FleetConfig{Islands: 4, Mines: 3, Ships: 3, Monsters: 1, HQs: 1}
	cfg.Player = config.PlayerConfig{Torpedoes: 3, TorpedoRange: 5, MaxNavDistance: 3, SonarRange: 3}
	cfg.Pace.EnemyEveryTicks = 3
	cfg.Difficulty.Enabled = false
	return cfg
}

// startOn resets g and swaps the generated sea for a hand-made one. IDs of
// hand-made entities start at 100 so reinforcements never collide with them.
func startOn(t *testing.T, g *Game, entities ...sim.Entity) {
	t.Helper()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	g.entities = entities
	p, ok := playerOf(entities)
	if !ok {
		t.Fatal("board has no player")
	}
	g.playerID = p.ID
}

func at(id sim.EntityID, kind sim.Kind, x, y int) sim.Entity {
	return sim.NewEntity(id, kind, sim.P(x, y))
}

func heading(id sim.EntityID, kind sim.Kind, x, y, dx, dy int) sim.Entity {
	return at(id, kind, x, y).WithIntent(sim.Intent{DX: dx, DY: dy})
}

var (
	north = sim.Intent{DX: 0, DY: -1}
	east  = sim.Intent{DX: 1, DY: 0}
	south = sim.Intent{DX: 0, DY: 1}
)
