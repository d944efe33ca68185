package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "scores.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*SQLiteStore); !ok {
		t.Errorf("Open(%q) = %T, want *SQLiteStore", path, store)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
}

func TestIsPostgresDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{"postgres://user@localhost/seawar", true},
		{"postgresql://localhost/seawar?sslmode=disable", true},
		{"~/.seawar/scores.db", false},
		{"/tmp/postgres.db", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := IsPostgresDSN(tc.dsn); got != tc.want {
			t.Errorf("IsPostgresDSN(%q) = %v, want %v", tc.dsn, got, tc.want)
		}
	}
}

func TestScores(t *testing.T) {
	store := openTemp(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("seawar", s); err != nil {
			t.Fatalf("SaveScore(%d) failed: %v", s, err)
		}
	}
	if _, err := store.SaveScore("seawar_watch", 500); err != nil {
		t.Fatal(err)
	}

	scores, err := store.TopScores("seawar", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 200 || scores[1].Score != 100 {
		t.Errorf("TopScores() = %+v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	high, err := store.HighScore("seawar")
	if err != nil || high != 200 {
		t.Errorf("HighScore() = %d, %v", high, err)
	}
	if high, _ := store.HighScore("nothing"); high != 0 {
		t.Errorf("HighScore(empty) = %d", high)
	}
}

func TestPatrols(t *testing.T) {
	store := openTemp(t)

	records := []PatrolRecord{
		{GameID: "seawar", Seed: 1, Turns: 12, Score: 40, ShipsSunk: 2, MinesCleared: 1, Torpedoes: 3, EndReason: "Submarine rammed"},
		{GameID: "seawar", Seed: 2, Turns: 30, Score: 250, ShipsSunk: 8, MonstersSunk: 2, MinesCleared: 4, Torpedoes: 9, Victory: true, EndReason: "All enemies sunk"},
		{GameID: "seawar_watch", Seed: 3, Turns: 90, Score: 120, EndReason: "HQ destroyed"},
	}
	for _, r := range records {
		if _, err := store.SavePatrol(r); err != nil {
			t.Fatalf("SavePatrol() failed: %v", err)
		}
	}

	recent, err := store.RecentPatrols("seawar", 10)
	if err != nil {
		t.Fatalf("RecentPatrols() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d patrols, want 2", len(recent))
	}
	if recent[0].Seed != 2 || !recent[0].Victory || recent[0].EndReason != "All enemies sunk" {
		t.Errorf("newest patrol = %+v", recent[0])
	}
	if recent[1].Victory || recent[1].Torpedoes != 3 || recent[1].MinesCleared != 1 {
		t.Errorf("oldest patrol = %+v", recent[1])
	}

	all, err := store.RecentPatrols("", 2)
	if err != nil || len(all) != 2 || all[0].GameID != "seawar_watch" {
		t.Errorf("RecentPatrols(all) = %+v, %v", all, err)
	}

	stats, err := store.PatrolStats("seawar")
	if err != nil {
		t.Fatalf("PatrolStats() failed: %v", err)
	}
	want := PatrolStats{Patrols: 2, Victories: 1, BestScore: 250, TotalTurns: 42, ShipsSunk: 10, MonstersSunk: 2, MinesCleared: 5}
	if stats != want {
		t.Errorf("PatrolStats() = %+v, want %+v", stats, want)
	}

	if empty, err := store.PatrolStats("nothing"); err != nil || empty != (PatrolStats{}) {
		t.Errorf("PatrolStats(empty) = %+v, %v", empty, err)
	}
}

func TestMigrateAddsMinesCleared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`CREATE TABLE patrols (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		turns INTEGER NOT NULL,
		score INTEGER NOT NULL,
		ships_sunk INTEGER NOT NULL DEFAULT 0,
		monsters_sunk INTEGER NOT NULL DEFAULT 0,
		torpedoes INTEGER NOT NULL DEFAULT 0,
		victory BOOLEAN NOT NULL DEFAULT 0,
		end_reason TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	INSERT INTO patrols (game_id, seed, turns, score, end_reason) VALUES ('seawar', 1, 5, 15, 'old');`)
	db.Close()
	if err != nil {
		t.Fatalf("creating old schema failed: %v", err)
	}

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() on an old log failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SavePatrol(PatrolRecord{GameID: "seawar", MinesCleared: 2, EndReason: "new"}); err != nil {
		t.Fatalf("SavePatrol() failed: %v", err)
	}
	recent, err := store.RecentPatrols("seawar", 10)
	if err != nil || len(recent) != 2 {
		t.Fatalf("RecentPatrols() = %+v, %v", recent, err)
	}
	if recent[0].MinesCleared != 2 || recent[1].MinesCleared != 0 {
		t.Errorf("mines cleared = %d, %d, want 2, 0", recent[0].MinesCleared, recent[1].MinesCleared)
	}

	// Opening again must not try to add the column twice.
	again, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("second OpenSQLite() failed: %v", err)
	}
	again.Close()
}

func TestClearScores(t *testing.T) {
	store := openTemp(t)

	store.SaveScore("seawar", 10)
	store.SavePatrol(PatrolRecord{GameID: "seawar", EndReason: "x"})
	store.SaveScore("seawar_watch", 20)

	if err := store.ClearScores("seawar"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if s, _ := store.TopScores("seawar", 10); len(s) != 0 {
		t.Errorf("scores left: %+v", s)
	}
	if p, _ := store.RecentPatrols("seawar", 10); len(p) != 0 {
		t.Errorf("patrols left: %+v", p)
	}
	if s, _ := store.TopScores("seawar_watch", 10); len(s) != 1 {
		t.Error("other mode was cleared")
	}
}

func TestExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := OpenSQLite("~/.seawar/scores.db")
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".seawar", "scores.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestRebind(t *testing.T) {
	s := &sqlStore{numbered: true}
	got := s.rebind("SELECT a FROM t WHERE b = ? AND c = ? LIMIT ?")
	if want := "SELECT a FROM t WHERE b = $1 AND c = $2 LIMIT $3"; got != want {
		t.Errorf("rebind() = %q, want %q", got, want)
	}
	if q := (&sqlStore{}).rebind("x = ?"); q != "x = ?" {
		t.Errorf("sqlite rebind changed query to %q", q)
	}
}
