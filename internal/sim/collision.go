package sim

// OccupantAt returns the first alive entity in the collection standing on p.
// Callers pass one working collection at a time; the resolver queries its
// settled and pending sets separately.
func OccupantAt(entities []Entity, p Position) (Entity, bool) {
	for _, e := range entities {
		if e.Alive && e.Pos == p {
			return e, true
		}
	}
	return Entity{}, false
}

// IsOccupied reports whether any alive entity in the collection stands on p.
func IsOccupied(entities []Entity, p Position) bool {
	_, ok := OccupantAt(entities, p)
	return ok
}

// OccupantsAt counts the alive entities standing on p. Once a tick's
// invariants hold this is never more than one.
func OccupantsAt(entities []Entity, p Position) int {
	n := 0
	for _, e := range entities {
		if e.Alive && e.Pos == p {
			n++
		}
	}
	return n
}

// Overlaps returns every cell held by more than one alive entity.
func Overlaps(entities []Entity) []Position {
	seen := make(map[Position]int, len(entities))
	var out []Position
	for _, e := range entities {
		if !e.Alive {
			continue
		}
		seen[e.Pos]++
		if seen[e.Pos] == 2 {
			out = append(out, e.Pos)
		}
	}
	return out
}
