package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/streetbotapp/streetbot/internal/history"
)

// GeminiAgent answers through the Gemini API.
type GeminiAgent struct {
	client *genai.Client
	model  string
}

func NewGeminiAgent(apiKey, model string) (*GeminiAgent, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-1.5-pro-latest"
	}

	return &GeminiAgent{client: client, model: model}, nil
}

func (a *GeminiAgent) Name() string {
	return "gemini"
}

func (a *GeminiAgent) Send(ctx context.Context, msgs []Message, sessionID string) (*Reply, error) {
	if len(msgs) == 0 {
		return nil, errors.New("no messages to send")
	}

	model := a.client.GenerativeModel(a.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	cs := model.StartChat()
	var chatHistory []*genai.Content
	for _, m := range msgs[:len(msgs)-1] {
		role := "user"
		if m.Role == history.RoleAssistant {
			role = "model"
		}
		chatHistory = append(chatHistory, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	cs.History = chatHistory

	resp, err := cs.SendMessage(ctx, genai.Text(msgs[len(msgs)-1].Content))
	if err != nil {
		return nil, fmt.Errorf("gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned")
	}

	var content string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			content += string(text)
		}
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
