package agent

import (
	"context"

	"github.com/streetbotapp/streetbot/internal/history"
)

// StubAgent is a canned backend for tests and demos.
type StubAgent struct {
	// Replies are returned in order; when exhausted a generic reply
	// is repeated.
	Replies []Reply
	// Err, when set, fails every call.
	Err error
	// Calls records each submitted conversation.
	Calls [][]Message
}

func NewStubAgent() *StubAgent {
	return &StubAgent{
		Replies: []Reply{
			{
				SessionID: "stub-session",
				Messages: []ReplyMessage{{
					Role:    history.RoleAssistant,
					Content: "Here are two food pantries open today.",
					Metadata: &history.Metadata{
						IdentifiedNeeds: []string{"food"},
						Services: []history.Service{
							{Name: "Community Food Pantry", Category: "food", Hours: "9am-5pm"},
							{Name: "St. Mary's Kitchen", Category: "food", Hours: "11am-2pm"},
						},
					},
				}},
			},
		},
	}
}

func (s *StubAgent) Name() string {
	return "stub"
}

func (s *StubAgent) Send(ctx context.Context, msgs []Message, sessionID string) (*Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.Calls = append(s.Calls, msgs)
	if s.Err != nil {
		return nil, s.Err
	}

	if len(s.Replies) == 0 {
		return &Reply{
			SessionID: sessionID,
			Messages: []ReplyMessage{{
				Role:    history.RoleAssistant,
				Content: "How else can I help?",
			}},
		}, nil
	}

	reply := s.Replies[0]
	s.Replies = s.Replies[1:]
	if reply.SessionID == "" {
		reply.SessionID = sessionID
	}
	return &reply, nil
}
