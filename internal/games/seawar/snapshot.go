package seawar

import "github.com/vovakirdan/seawar/internal/sim"

// Status is the coarse state of a game.
type Status string

const (
	StatusPatrolling Status = "patrolling"
	StatusPaused     Status = "paused"
	StatusVictory    Status = "victory"
	StatusLost       Status = "lost"
	StatusFault      Status = "fault"
)

// Snapshot captures the game state for determinism tests and replays.
type Snapshot struct {
	Tick      uint64
	Turn      int
	Mode      Mode
	Score     int
	Torpedoes int
	Stats     Stats
	Player    sim.Position
	Afloat    bool
	Ships     int
	Monsters  int
	Mines     int
	Entities  int
	Board     string
	Status    Status
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	status := StatusPatrolling
	switch {
	case g.fault != nil:
		status = StatusFault
	case g.victory:
		status = StatusVictory
	case g.gameOver:
		status = StatusLost
	case g.paused:
		status = StatusPaused
	}

	p, afloat := g.Player()
	return Snapshot{
		Tick:      g.tick,
		Turn:      g.turn,
		Mode:      g.mode,
		Score:     g.score,
		Torpedoes: g.torpedoes,
		Stats:     g.stats,
		Player:    p.Pos,
		Afloat:    afloat,
		Ships:     sim.CountKind(g.entities, sim.KindShip),
		Monsters:  sim.CountKind(g.entities, sim.KindMonster),
		Mines:     sim.CountKind(g.entities, sim.KindMine),
		Entities:  len(g.entities),
		Board:     RenderText(g.entities, g.grid),
		Status:    status,
	}
}
