package seawar

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/vovakirdan/seawar/internal/sim"
)

// Shot is the outcome of one torpedo.
type Shot struct {
	Path      []sim.Position // Cells the torpedo crossed, impact cell included
	Target    *sim.Entity    // First entity on the path
	Destroyed bool           // Target was sunk
}

// Hit reports whether the torpedo struck anything.
func (s Shot) Hit() bool {
	return s.Target != nil
}

// sinkable reports whether a torpedo destroys entities of kind k. Islands
// absorb torpedoes and HQs are friendly.
func sinkable(k sim.Kind) bool {
	return k == sim.KindShip || k == sim.KindMonster || k == sim.KindMine
}

// Fire launches a torpedo from the entity id along dir. It travels up to
// rng cells and stops at the first entity or the grid edge. The input slice
// is not modified.
func Fire(entities []sim.Entity, id sim.EntityID, dir sim.Intent, rng int, grid sim.Grid) (Shot, []sim.Entity, error) {
	if !dir.Valid() {
		return Shot{}, nil, fmt.Errorf("seawar: invalid firing heading %s", dir)
	}
	self, ok := sim.Find(entities, id)
	if !ok || !self.Alive {
		return Shot{}, nil, fmt.Errorf("seawar: no live entity #%d to fire from", id)
	}

	out := sim.CloneAll(entities)
	var shot Shot

	pos := self.Pos
	for i := 0; i < rng; i++ {
		pos = pos.Add(dir)
		if !grid.Contains(pos) {
			break
		}
		shot.Path = append(shot.Path, pos)

		target, hit := sim.OccupantAt(out, pos)
		if !hit {
			continue
		}
		shot.Target = &target
		if sinkable(target.Kind) {
			shot.Destroyed = true
			var sunk []sim.Entity
			out = remove(out, target.ID, &sunk)
			shot.Target = &sunk[0]
		}
		break
	}
	return shot, out, nil
}

// Contact is one sonar return.
type Contact struct {
	Entity   sim.Entity
	Distance float64
}

// SonarReport lists the contacts around a position, nearest first.
type SonarReport struct {
	From     sim.Position
	Contacts []Contact
}

// Alongside returns the contacts in the cells touching From.
func (r SonarReport) Alongside() []Contact {
	var out []Contact
	for _, c := range r.Contacts {
		if c.Entity.Pos.Adjacent(r.From) {
			out = append(out, c)
		}
	}
	return out
}

// Nearest returns the closest contact.
func (r SonarReport) Nearest() (Contact, bool) {
	if len(r.Contacts) == 0 {
		return Contact{}, false
	}
	return r.Contacts[0], true
}

// Count returns how many contacts are of kind k.
func (r SonarReport) Count(k sim.Kind) int {
	n := 0
	for _, c := range r.Contacts {
		if c.Entity.Kind == k {
			n++
		}
	}
	return n
}

// Sonar returns every live entity other than the one at from that lies
// within rng cells on both axes. Ties in distance keep ID order.
func Sonar(entities []sim.Entity, from sim.Position, rng int) SonarReport {
	report := SonarReport{From: from}
	for _, e := range entities {
		if !e.Alive || e.Pos == from || !e.Pos.WithinRange(from, rng) {
			continue
		}
		report.Contacts = append(report.Contacts, Contact{Entity: e, Distance: from.Distance(e.Pos)})
	}
	slices.SortStableFunc(report.Contacts, func(a, b Contact) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Entity.ID, b.Entity.ID)
	})
	return report
}
