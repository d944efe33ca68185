package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps scores in a local SQLite file.
type SQLiteStore struct {
	sqlStore
}

// OpenSQLite creates or opens the database at path, creating parent
// directories and running migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{sqlStore{db: db}}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS patrols (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			score INTEGER NOT NULL,
			ships_sunk INTEGER NOT NULL DEFAULT 0,
			monsters_sunk INTEGER NOT NULL DEFAULT 0,
			mines_cleared INTEGER NOT NULL DEFAULT 0,
			torpedoes INTEGER NOT NULL DEFAULT 0,
			victory BOOLEAN NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_patrols_game_id ON patrols(game_id, id DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Logs created before mines were tracked lack the column.
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('patrols') WHERE name = 'mines_cleared'`).Scan(&n)
	if err != nil || n > 0 {
		return err
	}
	_, err = s.db.Exec(`ALTER TABLE patrols ADD COLUMN mines_cleared INTEGER NOT NULL DEFAULT 0`)
	return err
}

// ClearScores removes every score and patrol of a mode.
func (s *SQLiteStore) ClearScores(gameID string) error {
	for _, table := range []string{"scores", "patrols"} {
		if _, err := s.db.Exec("DELETE FROM "+table+" WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	return nil
}
