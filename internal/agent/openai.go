package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/streetbotapp/streetbot/internal/history"
)

// systemPrompt frames the direct model backends as a resource-lookup
// assistant, matching what the hosted agent does server-side.
const systemPrompt = "You are Street Bot, an assistant that helps people find " +
	"social services: housing and shelter, food assistance, medical care, " +
	"employment services, legal aid, mental health support, and transportation. " +
	"Answer plainly and suggest concrete next steps."

// OpenAIAgent answers through the OpenAI chat completions API instead of
// the hosted agent. Session ids are minted locally.
type OpenAIAgent struct {
	client *openai.Client
	model  string
}

func NewOpenAIAgent(apiKey, baseURL, model string) (*OpenAIAgent, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4TurboPreview
	}

	return &OpenAIAgent{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (a *OpenAIAgent) Name() string {
	return "openai"
}

func (a *OpenAIAgent) Send(ctx context.Context, msgs []Message, sessionID string) (*Reply, error) {
	reqMsgs := make([]openai.ChatCompletionMessage, 0, len(msgs)+1)
	reqMsgs = append(reqMsgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range msgs {
		reqMsgs = append(reqMsgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: reqMsgs,
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &Reply{
		SessionID: sessionID,
		Messages: []ReplyMessage{{
			Role:    history.RoleAssistant,
			Content: resp.Choices[0].Message.Content,
		}},
	}, nil
}
