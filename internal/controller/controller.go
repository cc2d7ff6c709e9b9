// Package controller owns the in-memory conversation state: message
// submission, merging agent replies into live state, and write-through to
// the session store. One controller serves one UI instance; all methods
// are called from the UI loop, and the single in-flight agent call is the
// only thing that happens elsewhere.
package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/streetbotapp/streetbot/internal/agent"
	"github.com/streetbotapp/streetbot/internal/history"
	"github.com/streetbotapp/streetbot/internal/observe"
	"github.com/streetbotapp/streetbot/internal/store"
)

var (
	// ErrEmptyInput rejects submissions that trim to nothing.
	ErrEmptyInput = errors.New("empty input")
	// ErrBusy rejects a submission while a turn is in flight. The input
	// control is expected to go inert on Pending; this is the backstop.
	ErrBusy = errors.New("a request is already in flight")
)

const (
	loadingIDSuffix = "-loading"
	titleLimit      = 48

	noAgentText = "No assistant is configured. Set an agent URL with " +
		"`streetbot config set agent.url <url>` or pick a direct backend, " +
		"then try again."
	callFailedText = "Sorry, I couldn't reach the assistant just now. " +
		"Your message was kept; please try again."
)

// Turn is one in-flight submission: the request payload for the agent and
// the placeholder shown until the reply lands.
type Turn struct {
	SessionID   string
	Request     []agent.Message
	Placeholder history.Message

	seq int
}

// Controller drives a single conversation. Collaborators are injected so
// tests can substitute an in-memory store, a stub agent, and a fixed clock.
type Controller struct {
	store store.Storage
	agent agent.Agent // nil means disconnected mode
	obs   *observe.Observer
	now   func() time.Time
	newID func() string

	sessions  []history.Session
	messages  []history.Message
	sessionID string
	createdAt time.Time
	pending   bool
	seq       int
}

// New creates a controller and loads the stored sessions. A nil agent is
// a valid, handled state: submissions get a configuration hint instead of
// a network call.
func New(st store.Storage, ag agent.Agent, obs *observe.Observer) *Controller {
	if obs == nil {
		obs = observe.Nop()
	}
	return &Controller{
		store:    st,
		agent:    ag,
		obs:      obs,
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: st.LoadSessions(),
	}
}

// SetClock overrides the reference clock (useful for tests).
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// SetIDSource overrides message id generation (useful for tests).
func (c *Controller) SetIDSource(newID func() string) {
	c.newID = newID
}

// Messages returns the live conversation, placeholder included while a
// turn is pending.
func (c *Controller) Messages() []history.Message {
	out := make([]history.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Sessions returns all stored sessions, most recently updated first.
func (c *Controller) Sessions() []history.Session {
	return history.SortByRecency(c.sessions)
}

// Buckets groups the stored sessions for sidebar display.
func (c *Controller) Buckets() history.Buckets {
	return history.Bucketize(history.SortByRecency(c.sessions), c.now())
}

// Pending reports whether a turn is in flight. The input control must be
// inert while this is true; only one request per conversation is allowed.
func (c *Controller) Pending() bool {
	return c.pending
}

// SessionID returns the current conversation's id, "" before the agent
// has issued one.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Connected reports whether an agent backend is configured.
func (c *Controller) Connected() bool {
	return c.agent != nil
}

// NewChat clears the in-memory conversation. The previously persisted
// session stays in the store; a reply still in flight for the old
// conversation will be dropped when it lands.
func (c *Controller) NewChat() {
	c.messages = nil
	c.sessionID = ""
	c.createdAt = time.Time{}
	c.pending = false
	c.seq++
}

// Open loads a stored session into the live conversation.
func (c *Controller) Open(sessionID string) bool {
	for _, s := range c.sessions {
		if s.SessionID != sessionID {
			continue
		}
		c.messages = make([]history.Message, len(s.Messages))
		copy(c.messages, s.Messages)
		c.sessionID = s.SessionID
		c.createdAt = s.CreatedAt
		c.pending = false
		c.seq++
		return true
	}
	return false
}

// Submit starts a turn: appends the user message, persists it
// optimistically when the session already exists, and appends the loading
// placeholder. The returned Turn carries the payload the caller must send
// to the agent and later hand to Resolve.
//
// With no agent configured there is nothing to send: a system message
// explains the missing configuration, the store is untouched, and the
// returned Turn is nil.
func (c *Controller) Submit(text string) (*Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if c.pending {
		return nil, ErrBusy
	}

	userMsg := history.Message{
		ID:        c.newID(),
		Role:      history.RoleUser,
		Content:   text,
		CreatedAt: c.now(),
	}
	c.messages = append(c.messages, userMsg)

	if c.agent == nil {
		c.obs.Log().Warn().Msg("submission with no agent configured")
		c.messages = append(c.messages, history.Message{
			ID:        c.newID(),
			Role:      history.RoleSystem,
			Content:   noAgentText,
			CreatedAt: c.now(),
		})
		return nil, nil
	}

	// The user message is persisted before the call goes out, so a failed
	// turn still keeps it. A session only exists once the agent has named
	// one, so the first turn has nothing to persist yet.
	if c.sessionID != "" {
		c.persist()
	}

	request := make([]agent.Message, len(c.messages))
	for i, m := range c.messages {
		request[i] = agent.Message{ID: m.ID, Role: m.Role, Content: m.Content}
	}

	placeholder := history.Message{
		ID:        userMsg.ID + loadingIDSuffix,
		Role:      history.RoleAssistant,
		Content:   loadingText(text),
		CreatedAt: c.now(),
	}
	c.messages = append(c.messages, placeholder)
	c.pending = true
	c.seq++

	return &Turn{
		SessionID:   c.sessionID,
		Request:     request,
		Placeholder: placeholder,
		seq:         c.seq,
	}, nil
}

// Resolve finishes a turn. The placeholder is removed; a failed call
// becomes exactly one system message and leaves the store alone, while a
// successful reply is appended and written through. A reply for a
// conversation the user has already left is dropped, and resolving the
// same turn a second time is a no-op.
func (c *Controller) Resolve(turn *Turn, reply *agent.Reply, callErr error) {
	if turn == nil {
		return
	}
	if turn.seq != c.seq {
		c.obs.Log().Warn().
			Str("sessionID", turn.SessionID).
			Msg("dropping reply for an abandoned conversation")
		return
	}

	// A turn resolves at most once; resolving invalidates its token.
	c.seq++
	c.pending = false
	c.removeMessage(turn.Placeholder.ID)

	if callErr == nil && reply == nil {
		callErr = errors.New("backend returned no reply")
	}
	if callErr != nil {
		c.obs.Log().Error().Err(callErr).Msg("agent call failed")
		c.messages = append(c.messages, history.Message{
			ID:        c.newID(),
			Role:      history.RoleSystem,
			Content:   callFailedText,
			CreatedAt: c.now(),
		})
		return
	}

	for _, m := range reply.Messages {
		c.messages = append(c.messages, history.Message{
			ID:        c.newID(),
			Role:      m.Role,
			Content:   m.Content,
			Metadata:  m.Metadata,
			CreatedAt: c.now(),
		})
	}

	if reply.SessionID != "" && reply.SessionID != c.sessionID {
		if c.sessionID == "" {
			c.obs.Log().Info().Str("sessionID", reply.SessionID).Msg("session started")
		} else {
			c.obs.Log().Warn().
				Str("old", c.sessionID).
				Str("new", reply.SessionID).
				Msg("agent switched session id")
		}
		c.sessionID = reply.SessionID
		if c.createdAt.IsZero() {
			c.createdAt = c.now()
		}
	}

	if c.sessionID != "" {
		c.persist()
	}
}

// Call performs the agent request for a turn. It touches no controller
// state, so interactive UIs run it off the event loop and feed the result
// back through Resolve.
func (c *Controller) Call(ctx context.Context, turn *Turn) (*agent.Reply, error) {
	return c.agent.Send(ctx, turn.Request, turn.SessionID)
}

// Send runs one full turn synchronously: Submit, the agent call, Resolve.
// Interactive UIs issue the call from their own event loop instead.
func (c *Controller) Send(ctx context.Context, text string) error {
	ctx, span := c.obs.StartSpan(ctx, "controller.Send")
	defer span.End()

	turn, err := c.Submit(text)
	if err != nil {
		return err
	}
	if turn == nil {
		return nil
	}

	reply, callErr := c.agent.Send(ctx, turn.Request, turn.SessionID)
	c.Resolve(turn, reply, callErr)
	return nil
}

func (c *Controller) removeMessage(id string) {
	for i, m := range c.messages {
		if m.ID == id {
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			return
		}
	}
}

// persist upserts the live conversation into the stored list and writes
// the whole list through. CreatedAt and the title of an existing entry
// are preserved.
func (c *Controller) persist() {
	sess := history.Session{
		SessionID: c.sessionID,
		Title:     deriveTitle(c.messages),
		Messages:  c.messages,
		CreatedAt: c.createdAt,
		UpdatedAt: c.now(),
	}
	for _, s := range c.sessions {
		if s.SessionID == c.sessionID {
			sess.CreatedAt = s.CreatedAt
			if s.Title != "" {
				sess.Title = s.Title
			}
			break
		}
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = sess.UpdatedAt
	}

	msgs := make([]history.Message, len(c.messages))
	copy(msgs, c.messages)
	sess.Messages = msgs

	c.sessions = history.Upsert(c.sessions, sess)
	c.store.SaveSessions(c.sessions)
}

func deriveTitle(msgs []history.Message) string {
	for _, m := range msgs {
		if m.Role != history.RoleUser {
			continue
		}
		title := []rune(m.Content)
		if len(title) > titleLimit {
			title = title[:titleLimit]
		}
		return string(title)
	}
	return "New chat"
}
