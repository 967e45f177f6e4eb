package relay

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the relay's SQLite state: the token signing secret and an
// audit log of created rooms.
type Store struct {
	conn *sql.DB
}

// RoomRecord is one audit row.
type RoomRecord struct {
	ID        string
	Name      string
	Locked    bool
	CreatedAt time.Time
}

// OpenStore opens (or creates) the store at path; ":memory:" works for
// tests.
func OpenStore(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open relay store: %w", err)
	}
	// WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open relay store: %w", err)
	}
	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate relay store: %w", err)
	}
	return st, nil
}

// Close closes the underlying database.
func (st *Store) Close() error {
	return st.conn.Close()
}

// migrate creates tables if they don't exist
func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		locked INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// GetSetting reads a setting value, "" when absent.
func (st *Store) GetSetting(key string) string {
	var v string
	err := st.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err != nil {
		return ""
	}
	return v
}

// SetSetting upserts a setting value.
func (st *Store) SetSetting(key, value string) error {
	_, err := st.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

// RecordRoom logs a room creation.
func (st *Store) RecordRoom(id, name string, locked bool) error {
	_, err := st.conn.Exec(
		"INSERT INTO rooms (id, name, locked) VALUES (?, ?, ?)",
		id, name, locked)
	return err
}

// RecentRooms returns the latest audit rows, newest first.
func (st *Store) RecentRooms(limit int) ([]RoomRecord, error) {
	rows, err := st.conn.Query(`
		SELECT id, name, locked, created_at
		FROM rooms
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent rooms: %w", err)
	}
	defer rows.Close()

	var result []RoomRecord
	for rows.Next() {
		var r RoomRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Locked, &r.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
