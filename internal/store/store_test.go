package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/streetbotapp/streetbot/internal/history"
	"github.com/streetbotapp/streetbot/internal/observe"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(tmpDir, "streetbot.db"), observe.Nop())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_Sessions(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := []history.Session{
		{
			SessionID: "abc",
			Title:     "I need food",
			CreatedAt: base,
			UpdatedAt: base.Add(time.Minute),
			Messages: []history.Message{
				{ID: "m1", Role: history.RoleUser, Content: "I need food", CreatedAt: base},
				{
					ID:        "m2",
					Role:      history.RoleAssistant,
					Content:   "Here are two pantries.",
					CreatedAt: base.Add(time.Minute),
					Metadata: &history.Metadata{
						IdentifiedNeeds: []string{"food"},
						Services:        []history.Service{{Name: "Community Food Pantry"}},
					},
				},
			},
		},
		{SessionID: "def", Title: "shelter", CreatedAt: base, UpdatedAt: base},
	}

	t.Run("EmptyLoad", func(t *testing.T) {
		if got := s.LoadSessions(); len(got) != 0 {
			t.Errorf("Expected empty load from fresh store, got %d", len(got))
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		s.SaveSessions(sessions)
		got := s.LoadSessions()
		if len(got) != 2 {
			t.Fatalf("Expected 2 sessions, got %d", len(got))
		}
		if got[0].SessionID != "abc" || got[1].SessionID != "def" {
			t.Errorf("Session order not preserved: %s, %s", got[0].SessionID, got[1].SessionID)
		}
		if len(got[0].Messages) != 2 {
			t.Fatalf("Expected 2 messages, got %d", len(got[0].Messages))
		}
		meta := got[0].Messages[1].Metadata
		if meta == nil || len(meta.Services) != 1 || meta.Services[0].Name != "Community Food Pantry" {
			t.Errorf("Metadata did not round-trip: %+v", meta)
		}
		if !got[0].UpdatedAt.Equal(base.Add(time.Minute)) {
			t.Errorf("UpdatedAt did not round-trip: %v", got[0].UpdatedAt)
		}
	})

	t.Run("EmptySaveRemovesSlot", func(t *testing.T) {
		s.SaveSessions(sessions)
		s.SaveSessions(nil)

		if got := s.LoadSessions(); len(got) != 0 {
			t.Fatalf("Expected empty load after empty save, got %d", len(got))
		}

		row := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, SessionsKey)
		var value string
		if err := row.Scan(&value); err != sql.ErrNoRows {
			t.Errorf("Expected slot row removed, scan err = %v", err)
		}
	})

	t.Run("CorruptSlotLoadsEmpty", func(t *testing.T) {
		_, err := s.db.Exec(
			`INSERT INTO slots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			SessionsKey, "{not json",
		)
		if err != nil {
			t.Fatalf("Failed to plant corrupt slot: %v", err)
		}
		if got := s.LoadSessions(); len(got) != 0 {
			t.Errorf("Expected empty load from corrupt slot, got %d", len(got))
		}
	})
}

func TestSQLiteStore_Config(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetConfig("agent.url", "https://agent.example.com/chat"); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}

	val, err := s.GetConfig("agent.url")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if val != "https://agent.example.com/chat" {
		t.Errorf("Expected stored url, got '%s'", val)
	}

	if err := s.SetConfig("agent.url", "https://other.example.com"); err != nil {
		t.Fatalf("SetConfig overwrite failed: %v", err)
	}
	val, _ = s.GetConfig("agent.url")
	if val != "https://other.example.com" {
		t.Errorf("Expected overwritten url, got '%s'", val)
	}

	val, err = s.GetConfig("unknown")
	if err != nil || val != "" {
		t.Errorf("Expected empty string for unknown key, got '%s' (err %v)", val, err)
	}
}

func TestSQLiteStore_UnavailableDatabaseOnlyLogs(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "streetbot.db"), observe.Nop())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	s.Close()

	// With the database gone, saves and clears must not panic or reach
	// the caller, and loads fall back to an empty list.
	s.SaveSessions([]history.Session{{SessionID: "abc", Title: "hello"}})
	s.SaveSessions(nil)
	if got := s.LoadSessions(); len(got) != 0 {
		t.Errorf("Expected empty load from unavailable database, got %d", len(got))
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "streetbot.db")

	s, err := NewSQLiteStore(dbPath, observe.Nop())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	s.SaveSessions([]history.Session{{SessionID: "abc", Title: "hello"}})
	s.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Database file missing: %v", err)
	}

	s2, err := NewSQLiteStore(dbPath, observe.Nop())
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s2.Close()

	got := s2.LoadSessions()
	if len(got) != 1 || got[0].SessionID != "abc" {
		t.Errorf("Expected session to survive reopen, got %+v", got)
	}
}
