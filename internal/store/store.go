// Package store persists chat sessions and client configuration.
//
// Sessions live in a single slot: one JSON-encoded array under a fixed
// namespaced key, written whole on every successful turn. The slot contract
// is forgiving: a missing, corrupt, or unreadable slot loads as
// "no sessions" and the failure is only logged, so the in-memory
// conversation state stays authoritative.
package store

import "github.com/streetbotapp/streetbot/internal/history"

// SessionsKey is the namespaced slot key holding the session list.
const SessionsKey = "streetbot.chat.sessions"

// Storage is the persistence interface the controller and CLI depend on.
type Storage interface {
	// LoadSessions reads the session slot. It never fails: absence,
	// malformed data, and storage errors all yield an empty list.
	LoadSessions() []history.Session

	// SaveSessions replaces the slot with the given list in one write.
	// An empty list removes the slot. Write failures are logged only.
	SaveSessions(sessions []history.Session)

	// Configuration key-value access. A missing key reads as "".
	SetConfig(key, value string) error
	GetConfig(key string) (string, error)

	Close() error
}
