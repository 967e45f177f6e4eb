package engine

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ScoreStore persists finished runs in SQLite.
type ScoreStore struct {
	conn *sql.DB
}

// RunRecord is one finished session.
type RunRecord struct {
	ID         int64
	Player     string
	Difficulty string
	Score      int
	Kills      int
	Duration   float64 // seconds
	Procedural bool
	CreatedAt  time.Time
}

// OpenScoreStore opens (or creates) the store at path; ":memory:"
// works for tests.
func OpenScoreStore(path string) (*ScoreStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open score store: %w", err)
	}
	// WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open score store: %w", err)
	}
	st := &ScoreStore{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate score store: %w", err)
	}
	return st, nil
}

// Close closes the underlying database.
func (st *ScoreStore) Close() error {
	return st.conn.Close()
}

// migrate creates tables if they don't exist
func (st *ScoreStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT 'NORMAL',
		score INTEGER NOT NULL DEFAULT 0,
		kills INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		procedural INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// RecordRun inserts a finished run and returns its id.
func (st *ScoreStore) RecordRun(r RunRecord) (int64, error) {
	res, err := st.conn.Exec(
		"INSERT INTO runs (player, difficulty, score, kills, duration, procedural) VALUES (?, ?, ?, ?, ?, ?)",
		r.Player, r.Difficulty, r.Score, r.Kills, r.Duration, r.Procedural,
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return res.LastInsertId()
}

// RecordSession captures a finished session under the given player
// name.
func (st *ScoreStore) RecordSession(s *Session, player string, procedural bool) (int64, error) {
	return st.RecordRun(RunRecord{
		Player:     player,
		Difficulty: s.Difficulty.String(),
		Score:      s.Score,
		Kills:      s.Kills,
		Duration:   s.GameTime(),
		Procedural: procedural,
	})
}

// TopRuns returns the best runs by score, newest first on ties.
func (st *ScoreStore) TopRuns(limit int) ([]RunRecord, error) {
	rows, err := st.conn.Query(`
		SELECT id, player, difficulty, score, kills, duration, procedural, created_at
		FROM runs
		ORDER BY score DESC, created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top runs: %w", err)
	}
	defer rows.Close()

	var result []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Player, &r.Difficulty, &r.Score, &r.Kills,
			&r.Duration, &r.Procedural, &r.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
