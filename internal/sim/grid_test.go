package sim

import (
	"math"
	"testing"
)

func TestGridContains(t *testing.T) {
	g := DefaultGrid()

	tests := []struct {
		name     string
		p        Position
		expected bool
	}{
		{"origin", P(0, 0), true},
		{"far corner", P(19, 19), true},
		{"right edge (exclusive)", P(20, 5), false},
		{"bottom edge (exclusive)", P(5, 20), false},
		{"negative x", P(-1, 0), false},
		{"negative y", P(0, -1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestPositionDistance(t *testing.T) {
	d := P(0, 0).Distance(P(3, 4))
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance() = %f, expected 5", d)
	}
	if P(2, 2).Distance(P(2, 2)) != 0 {
		t.Error("Distance to self should be 0")
	}
}

func TestPositionWithinRange(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Position
		r        int
		expected bool
	}{
		{"same cell", P(5, 5), P(5, 5), 0, true},
		{"diagonal corner of box", P(5, 5), P(7, 7), 2, true},
		{"just outside box", P(5, 5), P(8, 5), 2, false},
		{"box, not circle", P(0, 0), P(3, 3), 3, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.WithinRange(tc.b, tc.r); got != tc.expected {
				t.Errorf("WithinRange(%v, %v, %d) = %v, expected %v", tc.a, tc.b, tc.r, got, tc.expected)
			}
			if got := tc.b.WithinRange(tc.a, tc.r); got != tc.expected {
				t.Errorf("WithinRange (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPositionAdjacent(t *testing.T) {
	if P(1, 1).Adjacent(P(1, 1)) {
		t.Error("a cell is not adjacent to itself")
	}
	if !P(1, 1).Adjacent(P(2, 2)) {
		t.Error("diagonal neighbour should be adjacent")
	}
	if P(1, 1).Adjacent(P(3, 1)) {
		t.Error("cells two apart should not be adjacent")
	}
}

func TestGridNeighbors(t *testing.T) {
	g := NewGrid(3, 3)

	if n := len(g.Neighbors(P(1, 1))); n != 8 {
		t.Errorf("centre has %d neighbours, expected 8", n)
	}
	if n := len(g.Neighbors(P(0, 0))); n != 3 {
		t.Errorf("corner has %d neighbours, expected 3", n)
	}
	if n := len(g.Neighbors(P(1, 0))); n != 5 {
		t.Errorf("edge has %d neighbours, expected 5", n)
	}
}

func TestIntentValid(t *testing.T) {
	tests := []struct {
		in       Intent
		expected bool
	}{
		{Intent{1, 0}, true},
		{Intent{-1, -1}, true},
		{Intent{0, 1}, true},
		{Intent{0, 0}, false},
		{Intent{2, 0}, false},
		{Intent{0, -2}, false},
	}

	for _, tc := range tests {
		if got := tc.in.Valid(); got != tc.expected {
			t.Errorf("%v.Valid() = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) failed: %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, expected %v", k.String(), got, k)
		}
	}

	if _, err := ParseKind("submarine"); err == nil {
		t.Error("ParseKind should reject unknown names")
	}
}

func TestIDSource(t *testing.T) {
	var ids IDSource
	a, b := ids.Next(), ids.Next()
	if a == 0 || b == 0 {
		t.Error("IDSource should never hand out zero")
	}
	if a == b {
		t.Errorf("IDSource returned %d twice", a)
	}
}

func TestEntityCloneIsDeep(t *testing.T) {
	e := mover(1, KindShip, 0, 0, 1, 0)
	c := e.Clone()
	c.Intent.DX = -1

	if e.Intent.DX != 1 {
		t.Error("mutating a clone's intent changed the original")
	}
}
