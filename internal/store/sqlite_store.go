package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"parley/internal/domain"
)

// SQLiteStore keeps the three collections in a SQLite database, one table per
// collection with the records held in a JSON column. Row-level upserts give
// the same per-key atomicity as FileStore.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and migrates the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// migrate creates the necessary tables.
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS directory (
		owner TEXT PRIMARY KEY,
		sessions JSON NOT NULL
	);

	CREATE TABLE IF NOT EXISTS message_logs (
		session_id INTEGER PRIMARY KEY,
		messages JSON NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notifications (
		owner TEXT PRIMARY KEY,
		entries JSON NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// ---------- Session directory ----------

func (s *SQLiteStore) LoadSessions(owner domain.Identity) ([]domain.Session, bool, error) {
	var data []byte
	err := s.db.QueryRow(
		"SELECT sessions FROM directory WHERE owner = ?", owner.String(),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var sessions []domain.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, false, fmt.Errorf("unmarshal sessions for %q: %w", owner, err)
	}
	return sessions, true, nil
}

func (s *SQLiteStore) SaveSessions(owner domain.Identity, sessions []domain.Session) error {
	if sessions == nil {
		sessions = []domain.Session{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions for %q: %w", owner, err)
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO directory (owner, sessions) VALUES (?, ?)
	`, owner.String(), data)
	return err
}

// ---------- Message logs ----------

func (s *SQLiteStore) LoadMessages(id domain.SessionID) ([]domain.Message, bool, error) {
	var data []byte
	err := s.db.QueryRow(
		"SELECT messages FROM message_logs WHERE session_id = ?", int64(id),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, false, fmt.Errorf("unmarshal log %d: %w", id, err)
	}
	return messages, true, nil
}

func (s *SQLiteStore) SaveMessages(id domain.SessionID, messages []domain.Message) error {
	if messages == nil {
		messages = []domain.Message{}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal log %d: %w", id, err)
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO message_logs (session_id, messages) VALUES (?, ?)
	`, int64(id), data)
	return err
}

func (s *SQLiteStore) RemoveLog(id domain.SessionID) error {
	_, err := s.db.Exec("DELETE FROM message_logs WHERE session_id = ?", int64(id))
	return err
}

func (s *SQLiteStore) HasLog(id domain.SessionID) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM message_logs WHERE session_id = ?", int64(id),
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ---------- Notification queues ----------

func (s *SQLiteStore) LoadNotifications(owner domain.Identity) ([]domain.Notification, bool, error) {
	var data []byte
	err := s.db.QueryRow(
		"SELECT entries FROM notifications WHERE owner = ?", owner.String(),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var notes []domain.Notification
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, false, fmt.Errorf("unmarshal notifications for %q: %w", owner, err)
	}
	return notes, true, nil
}

func (s *SQLiteStore) SaveNotifications(owner domain.Identity, notes []domain.Notification) error {
	if notes == nil {
		notes = []domain.Notification{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("marshal notifications for %q: %w", owner, err)
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO notifications (owner, entries) VALUES (?, ?)
	`, owner.String(), data)
	return err
}

// Compile-time assertions that SQLiteStore implements the domain store interfaces.
var (
	_ domain.DirectoryStore    = (*SQLiteStore)(nil)
	_ domain.MessageLogStore   = (*SQLiteStore)(nil)
	_ domain.NotificationStore = (*SQLiteStore)(nil)
)
