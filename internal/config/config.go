// Package config loads the optional client configuration file. A missing
// file is a valid state: the client then runs disconnected until an agent
// URL is configured, it never fails to start over configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk client configuration. Values set through
// `streetbot config set` in the store take precedence over the file.
type Config struct {
	// AgentURL is the hosted Street Bot endpoint. Empty means
	// disconnected mode unless a direct backend is chosen.
	AgentURL string `yaml:"agent_url"`
	// Backend selects the assistant backend: "street" (default),
	// "openai", "ollama" or "gemini".
	Backend string `yaml:"backend"`
	// Model is the model name for direct backends.
	Model string `yaml:"model"`
	// JSONLogs switches log output to JSON.
	JSONLogs bool `yaml:"json_logs"`
	// Verbose enables info-level logging.
	Verbose bool `yaml:"verbose"`
}

// Dir returns the app directory (~/.streetbot).
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".streetbot")
}

// Load reads config.yaml from the given directory. A missing file yields
// the zero config; a malformed file is an error so typos don't silently
// drop settings.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml")) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
