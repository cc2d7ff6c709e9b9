package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		cfg, err := Load(tmpDir)
		if err != nil {
			t.Fatalf("Missing file should not error: %v", err)
		}
		if cfg.AgentURL != "" || cfg.Backend != "" {
			t.Errorf("Expected zero config, got %+v", cfg)
		}
	})

	t.Run("Valid", func(t *testing.T) {
		content := "agent_url: https://agent.example.com/chat\nbackend: street\nmodel: gpt-4o\nverbose: true\n"
		os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(content), 0600)

		cfg, err := Load(tmpDir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.AgentURL != "https://agent.example.com/chat" {
			t.Errorf("Unexpected agent url: '%s'", cfg.AgentURL)
		}
		if cfg.Backend != "street" || cfg.Model != "gpt-4o" || !cfg.Verbose {
			t.Errorf("Config not decoded: %+v", cfg)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		badDir := t.TempDir()
		os.WriteFile(filepath.Join(badDir, "config.yaml"), []byte(":\n\t- nope"), 0600)
		if _, err := Load(badDir); err == nil {
			t.Error("Expected error for malformed yaml")
		}
	})
}
