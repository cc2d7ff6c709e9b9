package store

import "github.com/streetbotapp/streetbot/internal/history"

// Memory is an in-process Storage used by tests and the read-only
// disconnected mode. It mirrors the slot semantics of SQLiteStore,
// including the JSON round-trip-free full replace on save.
type Memory struct {
	sessions []history.Session
	config   map[string]string

	// FailWrites simulates a full slot (quota exceeded); saves are
	// dropped while loads keep returning the last accepted state.
	FailWrites bool
	// Saves counts accepted SaveSessions calls.
	Saves int
}

func NewMemory() *Memory {
	return &Memory{config: make(map[string]string)}
}

func (m *Memory) LoadSessions() []history.Session {
	out := make([]history.Session, len(m.sessions))
	copy(out, m.sessions)
	return out
}

func (m *Memory) SaveSessions(sessions []history.Session) {
	if m.FailWrites {
		return
	}
	m.sessions = make([]history.Session, len(sessions))
	copy(m.sessions, sessions)
	m.Saves++
}

func (m *Memory) SetConfig(key, value string) error {
	m.config[key] = value
	return nil
}

func (m *Memory) GetConfig(key string) (string, error) {
	return m.config[key], nil
}

func (m *Memory) Close() error {
	return nil
}
