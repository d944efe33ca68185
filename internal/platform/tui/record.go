package tui

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/seawar/internal/registry"
	"github.com/vovakirdan/seawar/internal/storage"
)

// RecordGame stores the outcome of a finished game: the score table entry
// and, for games that report one, the patrol log record. A zero score is
// not entered in the score table.
func RecordGame(store storage.Store, g registry.Game) error {
	if store == nil {
		return nil
	}

	var errs []error
	if state := g.State(); state.Score > 0 {
		if _, err := store.SaveScore(g.ID(), state.Score); err != nil {
			errs = append(errs, fmt.Errorf("save score: %w", err))
		}
	}

	if s, ok := g.(registry.Summarizer); ok {
		sum := s.Summary()
		rec := storage.PatrolRecord{
			GameID:       g.ID(),
			Seed:         sum.Seed,
			Turns:        sum.Turns,
			Score:        sum.Score,
			ShipsSunk:    sum.ShipsSunk,
			MonstersSunk: sum.MonstersSunk,
			MinesCleared: sum.MinesCleared,
			Torpedoes:    sum.TorpedoesFired,
			Victory:      sum.Victory,
			EndReason:    sum.EndReason,
		}
		if _, err := store.SavePatrol(rec); err != nil {
			errs = append(errs, fmt.Errorf("save patrol: %w", err))
		}
	}
	return errors.Join(errs...)
}
