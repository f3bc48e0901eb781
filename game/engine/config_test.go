package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:         "Test Config",
		Description:  "A valid test configuration",
		HistoryLimit: 10,
		Messages: Messages{
			Welcome:  "Welcome to the test game!",
			Victory:  "Victory!",
			Rejected: "Nope: %s",
		},
	}
}

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *GameConfig)
		wantErr string
	}{
		{"valid", func(c *GameConfig) {}, ""},
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"negative history limit", func(c *GameConfig) { c.HistoryLimit = -1 }, "history_limit"},
		{"history limit too large", func(c *GameConfig) { c.HistoryLimit = MaxHistoryLimit + 1 }, "history_limit"},
		{"unlimited history", func(c *GameConfig) { c.HistoryLimit = 0 }, ""},
		{"missing welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, "messages.welcome"},
		{"missing victory", func(c *GameConfig) { c.Messages.Victory = "" }, "messages.victory"},
		{"rejected without verb", func(c *GameConfig) { c.Messages.Rejected = "Nope" }, "messages.rejected"},
		{"rejected may be omitted", func(c *GameConfig) { c.Messages.Rejected = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			tt.modify(config)

			err := ValidateGameConfig(config)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateGameConfigReportsEveryProblem(t *testing.T) {
	config := &GameConfig{HistoryLimit: -5}

	err := ValidateGameConfig(config)
	if got := len(multierr.Errors(err)); got != 5 {
		t.Errorf("Expected 5 problems (name, description, history, welcome, victory), got %d: %v", got, err)
	}
	if ValidateGameConfig(nil) == nil {
		t.Error("Expected error for nil config")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}

func TestOptionalMessagesGetDefaults(t *testing.T) {
	engine, err := NewEngine(createValidConfig())
	if err != nil {
		t.Fatal(err)
	}
	if engine.GetConfig().Messages.Drew == "" || engine.GetConfig().Messages.NoHint == "" {
		t.Error("Expected optional messages to be filled in")
	}
	if engine.GetConfig().Messages.Rejected != "Nope: %s" {
		t.Error("Configured messages must not be overwritten")
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()

	valid := `{
		"name": "file",
		"description": "loaded from disk",
		"seed": 42,
		"history_limit": 5,
		"messages": {"welcome": "Hi", "victory": "Won"}
	}`
	path := filepath.Join(dir, "file.json")
	if err := os.WriteFile(path, []byte(valid), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if config.Seed != 42 || config.HistoryLimit != 5 || config.Messages.Welcome != "Hi" {
		t.Errorf("Unexpected config %+v", config)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"name": "bad"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGameConfig(bad); err == nil {
		t.Error("Expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"name": "x"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGameConfig(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	if _, err := LoadGameConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadConfigByNameNotFound(t *testing.T) {
	if _, err := LoadConfigByName("does_not_exist"); err == nil {
		t.Error("Expected error for unknown config")
	}
}
