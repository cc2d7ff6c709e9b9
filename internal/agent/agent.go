// Package agent talks to the assistant backends. The primary backend is the
// hosted Street Bot endpoint; direct model backends (OpenAI, Ollama, Gemini)
// let the client run without one.
package agent

import (
	"context"

	"github.com/streetbotapp/streetbot/internal/history"
)

// Message is one conversation entry sent to a backend.
type Message struct {
	ID      string
	Role    string
	Content string
}

// ReplyMessage is one message returned by a backend, already reduced
// to plain text.
type ReplyMessage struct {
	Role     string
	Content  string
	Metadata *history.Metadata
}

// Reply is the outcome of one turn. SessionID identifies the server-side
// conversation; a backend that does not track sessions mints one locally.
type Reply struct {
	Messages  []ReplyMessage
	SessionID string
}

// Agent is a conversational backend.
type Agent interface {
	// Send submits the conversation so far and returns the new messages.
	// sessionID is empty on the first turn of a conversation.
	Send(ctx context.Context, msgs []Message, sessionID string) (*Reply, error)

	// Name returns the backend identifier (e.g. "street", "openai").
	Name() string
}
