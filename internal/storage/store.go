// Package storage keeps the score table and the patrol log. SQLite is the
// default backend; a postgres:// DSN selects PostgreSQL.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPath is where the SQLite database lives unless --db says otherwise.
const DefaultPath = "~/.seawar/scores.db"

// Store is the persistence surface used by the CLI and the TUI.
type Store interface {
	SaveScore(gameID string, score int) (int64, error)
	TopScores(gameID string, limit int) ([]ScoreEntry, error)
	HighScore(gameID string) (int, error)

	SavePatrol(rec PatrolRecord) (int64, error)
	RecentPatrols(gameID string, limit int) ([]PatrolRecord, error)
	PatrolStats(gameID string) (PatrolStats, error)

	Close() error
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// PatrolRecord is the log entry of one finished patrol.
type PatrolRecord struct {
	ID           int64
	GameID       string
	Seed         int64
	Turns        int
	Score        int
	ShipsSunk    int
	MonstersSunk int
	MinesCleared int
	Torpedoes    int // Torpedoes fired
	Victory      bool
	EndReason    string
	CreatedAt    time.Time
}

// PatrolStats aggregates the patrol log of one mode.
type PatrolStats struct {
	Patrols      int
	Victories    int
	BestScore    int
	TotalTurns   int
	ShipsSunk    int
	MonstersSunk int
	MinesCleared int
}

// Open picks the backend from dsn: postgres:// and postgresql:// URLs go to
// PostgreSQL, anything else is a SQLite file path.
func Open(dsn string) (Store, error) {
	if IsPostgresDSN(dsn) {
		pg, err := OpenPostgres(dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	lite, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

// IsPostgresDSN reports whether dsn names a PostgreSQL database.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// expandPath resolves a leading ~ to the home directory.
func expandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// scanTime accepts the timestamp forms the drivers return.
func scanTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	case []byte:
		return scanTime(string(t))
	}
	return time.Time{}
}

// sqlStore implements Store over database/sql. Queries are written with ?
// placeholders and rebound for drivers that number them.
type sqlStore struct {
	db       *sql.DB
	numbered bool // $1, $2, ... placeholders
}

func (s *sqlStore) rebind(query string) string {
	if !s.numbered {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// insert runs an INSERT and returns the new row ID.
func (s *sqlStore) insert(query string, args ...any) (int64, error) {
	if s.numbered {
		var id int64
		err := s.db.QueryRow(s.rebind(query)+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Close closes the database connection.
func (s *sqlStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new score for the given mode and returns its ID.
func (s *sqlStore) SaveScore(gameID string, score int) (int64, error) {
	id, err := s.insert("INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return id, nil
}

// TopScores retrieves the best scores for the given mode, highest first.
func (s *sqlStore) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(s.rebind(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`),
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = scanTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score for the given mode, or 0.
func (s *sqlStore) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(s.rebind("SELECT MAX(score) FROM scores WHERE game_id = ?"), gameID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// SavePatrol appends a finished patrol to the log and returns its ID.
func (s *sqlStore) SavePatrol(rec PatrolRecord) (int64, error) {
	id, err := s.insert(
		`INSERT INTO patrols (game_id, seed, turns, score, ships_sunk, monsters_sunk, mines_cleared, torpedoes, victory, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Seed, rec.Turns, rec.Score, rec.ShipsSunk, rec.MonstersSunk,
		rec.MinesCleared, rec.Torpedoes, rec.Victory, rec.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save patrol: %w", err)
	}
	return id, nil
}

// RecentPatrols returns the latest patrols of a mode, newest first. An
// empty gameID lists every mode.
func (s *sqlStore) RecentPatrols(gameID string, limit int) ([]PatrolRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, game_id, seed, turns, score, ships_sunk, monsters_sunk, mines_cleared, torpedoes, victory, end_reason, created_at
		 FROM patrols`
	args := []any{}
	if gameID != "" {
		query += " WHERE game_id = ?"
		args = append(args, gameID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query patrols: %w", err)
	}
	defer rows.Close()

	var records []PatrolRecord
	for rows.Next() {
		var r PatrolRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Seed, &r.Turns, &r.Score, &r.ShipsSunk,
			&r.MonstersSunk, &r.MinesCleared, &r.Torpedoes, &r.Victory, &r.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan patrol: %w", err)
		}
		r.CreatedAt = scanTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// PatrolStats aggregates the patrol log of a mode.
func (s *sqlStore) PatrolStats(gameID string) (PatrolStats, error) {
	var st PatrolStats
	err := s.db.QueryRow(s.rebind(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN victory THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(SUM(turns), 0),
		        COALESCE(SUM(ships_sunk), 0),
		        COALESCE(SUM(monsters_sunk), 0),
		        COALESCE(SUM(mines_cleared), 0)
		 FROM patrols
		 WHERE game_id = ?`), gameID,
	).Scan(&st.Patrols, &st.Victories, &st.BestScore, &st.TotalTurns, &st.ShipsSunk, &st.MonstersSunk, &st.MinesCleared)
	if err != nil {
		return PatrolStats{}, fmt.Errorf("storage: cannot query patrol stats: %w", err)
	}
	return st, nil
}
