package sim_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/seawar/internal/sim"
)

// randomBoard scatters up to n entities over a small grid so collisions are
// frequent. At most one player is placed.
func randomBoard(rnd *rand.Rand, grid sim.Grid, n int) []sim.Entity {
	var ids sim.IDSource
	dirs := sim.NewRandomDirections(rnd)
	taken := make(map[sim.Position]bool)
	hasPlayer := false

	entities := make([]sim.Entity, 0, n)
	for len(entities) < n {
		p := sim.P(rnd.Intn(grid.Width), rnd.Intn(grid.Height))
		if taken[p] {
			continue
		}
		taken[p] = true

		kind := sim.Kinds[rnd.Intn(len(sim.Kinds))]
		if kind == sim.KindPlayer {
			if hasPlayer {
				kind = sim.KindShip
			}
			hasPlayer = true
		}

		e := sim.NewEntity(ids.Next(), kind, p)
		if kind.IsMover() {
			e = e.WithIntent(dirs.Reroll())
		}
		entities = append(entities, e)
	}
	return entities
}

func countMovers(entities []sim.Entity) int {
	n := 0
	for _, e := range entities {
		if e.IsMover() {
			n++
		}
	}
	return n
}

func TestResolveProperties(t *testing.T) {
	grid := sim.NewGrid(8, 8)

	for seed := int64(1); seed <= 300; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		board := randomBoard(rnd, grid, 10+rnd.Intn(30))
		r := sim.NewResolver(grid, rnd)

		res, err := r.Resolve(board)
		if err != nil {
			t.Fatalf("seed %d: Resolve() failed: %v", seed, err)
		}

		// Conservation
		if len(res.Entities)+len(res.Destroyed) != len(board) {
			t.Errorf("seed %d: %d in, %d out, %d destroyed",
				seed, len(board), len(res.Entities), len(res.Destroyed))
		}
		casualties := 0
		for _, ev := range res.Events {
			if ev.Kind == sim.EventRammed || ev.Kind == sim.EventDestroyed {
				casualties++
			}
		}
		if casualties != len(res.Destroyed) {
			t.Errorf("seed %d: %d casualty events, %d destroyed", seed, casualties, len(res.Destroyed))
		}

		// No overlap
		if cells := sim.Overlaps(res.Entities); len(cells) > 0 {
			t.Errorf("seed %d: overlapping cells %v", seed, cells)
		}

		// Termination bound
		if movers := countMovers(board); res.Passes > movers {
			t.Errorf("seed %d: %d passes for %d movers", seed, res.Passes, movers)
		}

		for _, before := range board {
			after, ok := sim.Find(res.Entities, before.ID)
			if !ok {
				continue
			}
			if !before.IsMover() && (after.Pos != before.Pos || after.Kind != before.Kind || after.Intent != nil) {
				t.Errorf("seed %d: static %v changed to %v", seed, before, after)
			}
			if before.IsMover() {
				if after.Intent == nil || !after.Intent.Valid() {
					t.Errorf("seed %d: mover %v left without a valid intent", seed, after)
				}
				if !after.Pos.WithinRange(before.Pos, 1) {
					t.Errorf("seed %d: %v jumped from %v", seed, after, before.Pos)
				}
			}
			if !grid.Contains(after.Pos) {
				t.Errorf("seed %d: %v left the grid", seed, after)
			}
		}

		gameEnding := false
		for _, d := range res.Destroyed {
			if sim.EndsGame(d.Kind) {
				gameEnding = true
			}
		}
		if gameEnding != res.GameEnding {
			t.Errorf("seed %d: GameEnding = %v, destroyed %v", seed, res.GameEnding, res.Destroyed)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	grid := sim.DefaultGrid()

	run := func(seed int64) []sim.TickResult {
		rnd := rand.New(rand.NewSource(seed))
		board := randomBoard(rnd, grid, 40)
		r := sim.NewResolver(grid, rnd)

		var results []sim.TickResult
		for tick := 0; tick < 25; tick++ {
			res, err := r.Resolve(board)
			if err != nil {
				t.Fatalf("seed %d tick %d: Resolve() failed: %v", seed, tick, err)
			}
			results = append(results, res)
			board = res.Entities
		}
		return results
	}

	for _, seed := range []int64{1, 42, 12345} {
		a, b := run(seed), run(seed)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("seed %d: two runs diverged", seed)
		}
	}
}

func TestResolveRepeatedTicksKeepInvariants(t *testing.T) {
	grid := sim.NewGrid(10, 10)
	rnd := rand.New(rand.NewSource(99))
	board := randomBoard(rnd, grid, 45)
	r := sim.NewResolver(grid, rnd)

	for tick := 0; tick < 100; tick++ {
		res, err := r.Resolve(board)
		if err != nil {
			t.Fatalf("tick %d: Resolve() failed: %v", tick, err)
		}
		if cells := sim.Overlaps(res.Entities); len(cells) > 0 {
			t.Fatalf("tick %d: overlapping cells %v", tick, cells)
		}
		if len(res.Entities) > len(board) {
			t.Fatalf("tick %d: resolver created entities", tick)
		}
		board = res.Entities
	}
}
