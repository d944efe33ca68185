package seawar

import (
	"fmt"

	"github.com/vovakirdan/seawar/internal/sim"
)

// NavResult describes how far a navigation order got.
type NavResult struct {
	Steps int
	Final sim.Position

	// Wall is set when the grid edge stopped the order early.
	Wall bool

	// BlockedBy is the entity the player stopped in front of, if any.
	BlockedBy *sim.Entity

	// Destroyed is set when the player ran into a mine or a monster.
	Destroyed bool
	Killer    *sim.Entity

	// Casualties lists every entity removed by the order, the player
	// included.
	Casualties []sim.Entity
}

// Navigate moves the entity id up to distance cells along dir, one cell at a
// time. Islands, ships and HQs stop it in the cell before them; the edge of
// the grid stops it at the edge. Entering a mine destroys both the player
// and the mine; entering a monster destroys the player.
//
// The input slice is not modified.
func Navigate(entities []sim.Entity, id sim.EntityID, dir sim.Intent, distance int, grid sim.Grid) (NavResult, []sim.Entity, error) {
	if !dir.Valid() {
		return NavResult{}, nil, fmt.Errorf("seawar: invalid heading %s", dir)
	}
	if distance < 1 {
		return NavResult{}, nil, fmt.Errorf("seawar: navigation distance must be positive, got %d", distance)
	}
	self, ok := sim.Find(entities, id)
	if !ok || !self.Alive {
		return NavResult{}, nil, fmt.Errorf("seawar: no live entity #%d to navigate", id)
	}

	out := sim.CloneAll(entities)
	res := NavResult{Final: self.Pos}
	pos := self.Pos

	for res.Steps < distance {
		next := pos.Add(dir)
		if !grid.Contains(next) {
			res.Wall = true
			break
		}

		if other, occupied := sim.OccupantAt(out, next); occupied && other.ID != id {
			switch other.Kind {
			case sim.KindMine:
				res.Destroyed = true
				res.Killer = &other
				out = remove(out, other.ID, &res.Casualties)
			case sim.KindMonster:
				res.Destroyed = true
				res.Killer = &other
			default:
				res.BlockedBy = &other
			}
			break
		}

		pos = next
		res.Steps++
	}

	if res.Destroyed {
		out = remove(out, id, &res.Casualties)
		res.Final = pos
		return res, out, nil
	}

	for i := range out {
		if out[i].ID == id {
			out[i].Pos = pos
		}
	}
	res.Final = pos
	return res, out, nil
}

// remove drops the entity id from entities, recording it as destroyed.
func remove(entities []sim.Entity, id sim.EntityID, casualties *[]sim.Entity) []sim.Entity {
	out := entities[:0]
	for _, e := range entities {
		if e.ID == id {
			e.Alive = false
			*casualties = append(*casualties, e)
			continue
		}
		out = append(out, e)
	}
	return out
}
