package sim

// DirectionPolicy picks a new intent for a mover that has to change course.
type DirectionPolicy interface {
	Reroll() Intent
}

// RandomDirections draws dx and dy independently and uniformly from
// {-1, 0, 1}, rejecting the zero vector.
type RandomDirections struct {
	Rnd Random
}

// NewRandomDirections creates a policy backed by rnd.
func NewRandomDirections(rnd Random) RandomDirections {
	return RandomDirections{Rnd: rnd}
}

// Reroll implements DirectionPolicy.
func (p RandomDirections) Reroll() Intent {
	for {
		in := Intent{DX: p.Rnd.Intn(3) - 1, DY: p.Rnd.Intn(3) - 1}
		if in.Valid() {
			return in
		}
	}
}

// PolicyFunc adapts a function to DirectionPolicy.
type PolicyFunc func() Intent

// Reroll implements DirectionPolicy.
func (f PolicyFunc) Reroll() Intent {
	return f()
}
