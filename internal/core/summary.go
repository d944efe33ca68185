package core

// PatrolSummary is the end-of-game report a game hands to the platform
// for the patrol log.
type PatrolSummary struct {
	Seed           int64
	Turns          int
	Score          int
	ShipsSunk      int
	MonstersSunk   int
	MinesCleared   int
	TorpedoesFired int
	Victory        bool
	EndReason      string
}
