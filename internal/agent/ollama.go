package agent

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/google/uuid"
	"github.com/ollama/ollama/api"

	"github.com/streetbotapp/streetbot/internal/history"
)

// OllamaAgent answers through a local Ollama server.
type OllamaAgent struct {
	client *api.Client
	model  string
}

func NewOllamaAgent(model string) (*OllamaAgent, error) {
	if model == "" {
		model = "llama3.2"
	}

	baseURL := "http://localhost:11434"
	if envURL := os.Getenv("OLLAMA_HOST"); envURL != "" {
		baseURL = envURL
	}
	uri, _ := url.Parse(baseURL)

	return &OllamaAgent{
		client: api.NewClient(uri, http.DefaultClient),
		model:  model,
	}, nil
}

func (a *OllamaAgent) Name() string {
	return "ollama"
}

func (a *OllamaAgent) Send(ctx context.Context, msgs []Message, sessionID string) (*Reply, error) {
	apiMsgs := []api.Message{{Role: "system", Content: systemPrompt}}
	for _, m := range msgs {
		apiMsgs = append(apiMsgs, api.Message{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	req := &api.ChatRequest{
		Model:    a.model,
		Messages: apiMsgs,
		Stream:   new(bool), // false
	}

	var content string
	err := a.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content += resp.Message.Content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat failed: %w", err)
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &Reply{
		SessionID: sessionID,
		Messages: []ReplyMessage{{
			Role:    history.RoleAssistant,
			Content: content,
		}},
	}, nil
}
