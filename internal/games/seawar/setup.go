package seawar

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/seawar/internal/config"
	"github.com/vovakirdan/seawar/internal/sim"
)

// placement order; the player always gets the first ID.
var placementOrder = []sim.Kind{
	sim.KindPlayer,
	sim.KindHQ,
	sim.KindIsland,
	sim.KindMine,
	sim.KindShip,
	sim.KindMonster,
}

func fleetCount(f config.FleetConfig, k sim.Kind) int {
	switch k {
	case sim.KindPlayer:
		return 1
	case sim.KindHQ:
		return f.HQs
	case sim.KindIsland:
		return f.Islands
	case sim.KindMine:
		return f.Mines
	case sim.KindShip:
		return f.Ships
	case sim.KindMonster:
		return f.Monsters
	}
	return 0
}

// Setup scatters the player and the fleet over distinct random cells.
// Ships and monsters start with a random intent.
func Setup(fleet config.FleetConfig, grid sim.Grid, rnd *rand.Rand, ids *sim.IDSource) ([]sim.Entity, error) {
	total := 1 + fleet.Total()
	if total > grid.Cells() {
		return nil, fmt.Errorf("seawar: %d entities do not fit on a %dx%d grid", total, grid.Width, grid.Height)
	}

	cells := rnd.Perm(grid.Cells())
	dirs := sim.NewRandomDirections(rnd)

	entities := make([]sim.Entity, 0, total)
	for _, kind := range placementOrder {
		for n := fleetCount(fleet, kind); n > 0; n-- {
			c := cells[len(entities)]
			e := sim.NewEntity(ids.Next(), kind, sim.P(c%grid.Width, c/grid.Width))
			if kind.IsMover() {
				e = e.WithIntent(dirs.Reroll())
			}
			entities = append(entities, e)
		}
	}
	return entities, nil
}

// Spawn adds one mover of the given kind on a free edge cell, falling back
// to any free cell. Cells next to the player are avoided. It reports false
// when the sea is full.
func Spawn(entities []sim.Entity, kind sim.Kind, grid sim.Grid, rnd *rand.Rand, ids *sim.IDSource) ([]sim.Entity, bool) {
	var near []sim.Position
	if player, ok := playerOf(entities); ok {
		near = grid.Neighbors(player.Pos)
	}

	var edge, inner []sim.Position
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := sim.P(x, y)
			if sim.IsOccupied(entities, p) || slices.Contains(near, p) {
				continue
			}
			if x == 0 || y == 0 || x == grid.Width-1 || y == grid.Height-1 {
				edge = append(edge, p)
			} else {
				inner = append(inner, p)
			}
		}
	}

	free := edge
	if len(free) == 0 {
		free = inner
	}
	if len(free) == 0 {
		return entities, false
	}

	e := sim.NewEntity(ids.Next(), kind, free[rnd.Intn(len(free))])
	if kind.IsMover() {
		e = e.WithIntent(sim.NewRandomDirections(rnd).Reroll())
	}
	return append(entities, e), true
}

func playerOf(entities []sim.Entity) (sim.Entity, bool) {
	for _, e := range entities {
		if e.Alive && e.Kind == sim.KindPlayer {
			return e, true
		}
	}
	return sim.Entity{}, false
}
