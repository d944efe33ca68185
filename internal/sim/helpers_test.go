package sim

// scriptedRandom replays fixed draws. When a script runs out it keeps
// returning zero.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (s *scriptedRandom) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedRandom) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// fixedPolicy always steers the same way.
func fixedPolicy(dx, dy int) DirectionPolicy {
	return PolicyFunc(func() Intent { return Intent{DX: dx, DY: dy} })
}

func mover(id EntityID, kind Kind, x, y, dx, dy int) Entity {
	return NewEntity(id, kind, P(x, y)).WithIntent(Intent{DX: dx, DY: dy})
}

func static(id EntityID, kind Kind, x, y int) Entity {
	return NewEntity(id, kind, P(x, y))
}
