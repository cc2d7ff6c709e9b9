package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/streetbotapp/streetbot/internal/history"
)

// StreetAgent is the hosted Street Bot resource-lookup endpoint.
type StreetAgent struct {
	baseURL string
	client  *http.Client
}

func NewStreetAgent(baseURL string) (*StreetAgent, error) {
	if baseURL == "" {
		return nil, errors.New("agent URL is required")
	}
	return &StreetAgent{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (a *StreetAgent) Name() string {
	return "street"
}

// SetBaseURL allows overriding the endpoint (useful for tests).
func (a *StreetAgent) SetBaseURL(url string) {
	a.baseURL = url
}

// Wire types for the agent endpoint.
type streetContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type streetMessage struct {
	ID      string              `json:"id"`
	Role    string              `json:"role"`
	Content []streetContentPart `json:"content"`
}

type streetRequest struct {
	Messages  []streetMessage `json:"messages"`
	SessionID string          `json:"sessionId,omitempty"`
}

type streetReplyMessage struct {
	Role     string            `json:"role"`
	Content  json.RawMessage   `json:"content"`
	Metadata *history.Metadata `json:"metadata,omitempty"`
}

type streetResponse struct {
	NewMessages []streetReplyMessage `json:"newMessages"`
	SessionID   string               `json:"sessionId,omitempty"`
}

func (a *StreetAgent) Send(ctx context.Context, msgs []Message, sessionID string) (*Reply, error) {
	wireMsgs := make([]streetMessage, len(msgs))
	for i, m := range msgs {
		wireMsgs[i] = streetMessage{
			ID:      m.ID,
			Role:    m.Role,
			Content: []streetContentPart{{Type: "text", Text: m.Content}},
		}
	}

	jsonBody, err := json.Marshal(streetRequest{Messages: wireMsgs, SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("content-type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, string(body))
	}

	var wire streetResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agent response: %w", err)
	}

	reply := &Reply{SessionID: wire.SessionID}
	for _, m := range wire.NewMessages {
		var content any
		if len(m.Content) > 0 {
			// Content shape varies by agent version; a decode failure
			// reduces to an empty string below, same as an unknown shape.
			_ = json.Unmarshal(m.Content, &content)
		}
		reply.Messages = append(reply.Messages, ReplyMessage{
			Role:     m.Role,
			Content:  ExtractText(content),
			Metadata: m.Metadata,
		})
	}
	return reply, nil
}
