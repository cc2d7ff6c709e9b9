package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/streetbotapp/streetbot/internal/agent"
	"github.com/streetbotapp/streetbot/internal/config"
	"github.com/streetbotapp/streetbot/internal/credential"
	"github.com/streetbotapp/streetbot/internal/observe"
	"github.com/streetbotapp/streetbot/internal/store"
)

func getObserver(cfg *config.Config) *observe.Observer {
	if jsonLogs || cfg.JSONLogs {
		return observe.NewJSON(os.Stderr, verbose || cfg.Verbose)
	}
	return observe.New(os.Stderr, verbose || cfg.Verbose)
}

func getStore(obs *observe.Observer) store.Storage {
	st, err := store.NewSQLiteStore(filepath.Join(config.Dir(), "streetbot.db"), obs)
	if err != nil {
		fmt.Printf("Failed to init store: %v\n", err)
		os.Exit(1)
	}
	return st
}

// resolveConfig reads a setting with flag > store > file precedence.
func resolveConfig(st store.Storage, key, flagValue, fileValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if stored, err := st.GetConfig(key); err == nil && stored != "" {
		return stored
	}
	return fileValue
}

// getAgent builds the configured backend. A missing agent URL is not an
// error: the controller handles a nil agent as disconnected mode.
func getAgent(st store.Storage, cfg *config.Config) (agent.Agent, error) {
	backend := resolveConfig(st, "backend", backendFlag, cfg.Backend)
	if backend == "" {
		backend = "street"
	}
	model := resolveConfig(st, "model", modelFlag, cfg.Model)

	switch backend {
	case "street":
		url := resolveConfig(st, "agent.url", agentURL, cfg.AgentURL)
		if url == "" {
			return nil, nil
		}
		return agent.NewStreetAgent(url)
	case "openai":
		key, err := getAPIKey(st, "openai.api_key")
		if err != nil {
			return nil, err
		}
		baseURL, _ := st.GetConfig("openai.base_url")
		return agent.NewOpenAIAgent(key, baseURL, model)
	case "ollama":
		return agent.NewOllamaAgent(model)
	case "gemini":
		key, err := getAPIKey(st, "gemini.api_key")
		if err != nil {
			return nil, err
		}
		return agent.NewGeminiAgent(key, model)
	case "stub":
		return agent.NewStubAgent(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}

func getAPIKey(st store.Storage, key string) (string, error) {
	stored, err := st.GetConfig(key)
	if err != nil {
		return "", err
	}
	vault, err := credential.NewVault()
	if err != nil {
		return "", err
	}
	return vault.Open(stored)
}
