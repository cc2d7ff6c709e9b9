package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/streetbotapp/streetbot/internal/history"
	"github.com/streetbotapp/streetbot/internal/observe"
)

// SQLiteStore keeps the session slot and configuration in a single
// SQLite file under the app directory.
type SQLiteStore struct {
	db  *sql.DB
	obs *observe.Observer
}

func NewSQLiteStore(dbPath string, obs *observe.Observer) (*SQLiteStore, error) {
	if obs == nil {
		obs = observe.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db, obs: obs}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS configuration (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Session slot

func (s *SQLiteStore) LoadSessions() []history.Session {
	row := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, SessionsKey)

	var value string
	if err := row.Scan(&value); err != nil {
		if err != sql.ErrNoRows {
			s.obs.Log().Warn().Err(err).Msg("session slot unreadable, starting empty")
		}
		return nil
	}

	var sessions []history.Session
	if err := json.Unmarshal([]byte(value), &sessions); err != nil {
		s.obs.Log().Warn().Err(err).Msg("session slot corrupt, starting empty")
		return nil
	}
	return sessions
}

func (s *SQLiteStore) SaveSessions(sessions []history.Session) {
	if len(sessions) == 0 {
		if _, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, SessionsKey); err != nil {
			s.obs.Log().Warn().Err(err).Msg("failed to clear session slot")
		}
		return
	}

	value, err := json.Marshal(sessions)
	if err != nil {
		s.obs.Log().Warn().Err(err).Msg("failed to encode sessions")
		return
	}

	query := `INSERT INTO slots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.Exec(query, SessionsKey, string(value)); err != nil {
		s.obs.Log().Warn().Err(err).Int("sessions", len(sessions)).Msg("failed to write session slot")
	}
}

// Configuration

func (s *SQLiteStore) SetConfig(key, value string) error {
	query := `INSERT INTO configuration (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := s.db.Exec(query, key, value)
	return err
}

func (s *SQLiteStore) GetConfig(key string) (string, error) {
	row := s.db.QueryRow(`SELECT value FROM configuration WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}
