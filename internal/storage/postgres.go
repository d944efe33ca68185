package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps scores in a PostgreSQL database shared by several
// servers.
type PostgresStore struct {
	sqlStore
}

// OpenPostgres connects to dsn and creates the schema if needed.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &PostgresStore{sqlStore{db: db, numbered: true}}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id BIGSERIAL PRIMARY KEY,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

	CREATE TABLE IF NOT EXISTS patrols (
		id BIGSERIAL PRIMARY KEY,
		game_id TEXT NOT NULL,
		seed BIGINT NOT NULL,
		turns INTEGER NOT NULL,
		score INTEGER NOT NULL,
		ships_sunk INTEGER NOT NULL DEFAULT 0,
		monsters_sunk INTEGER NOT NULL DEFAULT 0,
		mines_cleared INTEGER NOT NULL DEFAULT 0,
		torpedoes INTEGER NOT NULL DEFAULT 0,
		victory BOOLEAN NOT NULL DEFAULT FALSE,
		end_reason TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_patrols_game_id ON patrols(game_id, id DESC);
	ALTER TABLE patrols ADD COLUMN IF NOT EXISTS mines_cleared INTEGER NOT NULL DEFAULT 0;
	`
	_, err := s.db.Exec(schema)
	return err
}
