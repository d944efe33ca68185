package sim

import (
	"errors"
	"testing"
)

func TestDecideTable(t *testing.T) {
	tests := []struct {
		mover, obstacle Kind
		draw            float64
		expected        Verdict
	}{
		{KindShip, KindIsland, 0, MoverChangesDirection},
		{KindShip, KindShip, 0, MoverChangesDirection},
		{KindShip, KindPlayer, 0, CrasheeDestroyed},
		{KindShip, KindHQ, 0, CrasheeDestroyed},
		{KindShip, KindMine, 0.69, MoverChangesDirection},
		{KindShip, KindMine, 0.70, MoverDestroyed},
		{KindShip, KindMonster, 0, MoverDestroyed},
		{KindMonster, KindIsland, 0, MoverChangesDirection},
		{KindMonster, KindPlayer, 0, CrasheeDestroyed},
		{KindMonster, KindHQ, 0, CrasheeDestroyed},
		{KindMonster, KindShip, 0, CrasheeDestroyed},
		{KindMonster, KindMine, 0, MoverDestroyed},
		{KindMonster, KindMonster, 0.79, MoverChangesDirection},
		{KindMonster, KindMonster, 0.80, MoverDestroyed},
	}

	for _, tc := range tests {
		t.Run(tc.mover.String()+"->"+tc.obstacle.String(), func(t *testing.T) {
			rnd := &scriptedRandom{floats: []float64{tc.draw}}
			got, err := Decide(tc.mover, tc.obstacle, rnd)
			if err != nil {
				t.Fatalf("Decide() failed: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Decide(%v, %v) with draw %.2f = %v, expected %v",
					tc.mover, tc.obstacle, tc.draw, got, tc.expected)
			}
		})
	}
}

func TestDecideIsTotalForMovers(t *testing.T) {
	for _, m := range []Kind{KindShip, KindMonster} {
		for _, o := range Kinds {
			v, err := Decide(m, o, &scriptedRandom{})
			if err != nil {
				t.Errorf("Decide(%v, %v) returned error: %v", m, o, err)
			}
			if v == 0 {
				t.Errorf("Decide(%v, %v) returned no verdict", m, o)
			}
		}
	}
}

func TestDecideRejectsStaticMovers(t *testing.T) {
	for _, m := range []Kind{KindPlayer, KindIsland, KindMine, KindHQ} {
		_, err := Decide(m, KindShip, &scriptedRandom{})
		if !errors.Is(err, ErrInvariant) {
			t.Errorf("Decide(%v, ship) error = %v, expected ErrInvariant", m, err)
		}

		var iv *InvariantViolation
		if !errors.As(err, &iv) {
			t.Fatalf("expected *InvariantViolation, got %T", err)
		}
		if iv.Op != "outcome" {
			t.Errorf("Op = %q, expected \"outcome\"", iv.Op)
		}
	}
}

func TestDecideRejectsUnknownObstacle(t *testing.T) {
	_, err := Decide(KindShip, Kind(42), &scriptedRandom{})
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for unknown obstacle, got %v", err)
	}
}

func TestDecideDrawsOnlyForRandomPairs(t *testing.T) {
	rnd := &scriptedRandom{floats: []float64{0.1, 0.2}}

	if _, err := Decide(KindShip, KindIsland, rnd); err != nil {
		t.Fatal(err)
	}
	if len(rnd.floats) != 2 {
		t.Errorf("fixed pair consumed a draw, %d left", len(rnd.floats))
	}

	if _, err := Decide(KindShip, KindMine, rnd); err != nil {
		t.Fatal(err)
	}
	if len(rnd.floats) != 1 {
		t.Errorf("ship vs mine should consume exactly one draw, %d left", len(rnd.floats))
	}
}
