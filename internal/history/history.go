// Package history holds the chat session data model and the pure
// operations the UI performs on it: upserting a session into the stored
// list, ordering by recency, and grouping for the sidebar.
package history

import (
	"sort"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Session is one persisted conversation thread. The SessionID is issued
// by the agent on the first reply and is stable for the session's lifetime.
type Session struct {
	SessionID string    `json:"sessionId"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is a single conversation entry. Messages are immutable once
// created; the ID is unique within a session.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Metadata carries the agent's structured annotations on a reply.
type Metadata struct {
	Route            string    `json:"route,omitempty"`
	SuggestedActions []string  `json:"suggestedActions,omitempty"`
	IdentifiedNeeds  []string  `json:"identifiedNeeds,omitempty"`
	Services         []Service `json:"services,omitempty"`
}

// Service is one resource returned by the agent's service lookup.
type Service struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Hours    string `json:"hours,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Upsert returns a new list with sess replacing the entry that shares its
// SessionID, or appended when no entry matches. The input is not mutated.
func Upsert(sessions []Session, sess Session) []Session {
	out := make([]Session, len(sessions))
	copy(out, sessions)
	for i, s := range out {
		if s.SessionID == sess.SessionID {
			out[i] = sess
			return out
		}
	}
	return append(out, sess)
}

// SortByRecency returns a new list ordered by UpdatedAt descending.
// The sort is stable, so sessions updated at the same instant keep
// their input order.
func SortByRecency(sessions []Session) []Session {
	out := make([]Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
