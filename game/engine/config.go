package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

// Messages are the player-facing texts a config can customize
type Messages struct {
	Welcome          string `json:"welcome"`
	Victory          string `json:"victory"`
	Drew             string `json:"drew"`
	Recycled         string `json:"recycled"`
	StockEmpty       string `json:"stock_empty"`
	Moved            string `json:"moved"`
	Rejected         string `json:"rejected"`
	Selected         string `json:"selected"`
	Deselected       string `json:"deselected"`
	InvalidSelection string `json:"invalid_selection"`
	Undo             string `json:"undo"`
	Redo             string `json:"redo"`
	NoHint           string `json:"no_hint"`
}

// GameConfig describes one variant of the game
type GameConfig struct {
	Name        string `json:"name" jsonschema:"required"`
	Description string `json:"description" jsonschema:"required"`

	// Seed fixes the shuffle when non-zero
	Seed int64 `json:"seed,omitempty"`

	// HistoryLimit caps the undo stack; zero means unlimited
	HistoryLimit int `json:"history_limit,omitempty" jsonschema:"minimum=0,maximum=1000"`

	Messages Messages `json:"messages"`
}

// DefaultConfig returns the classic draw-one configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Classic Klondike: draw one card at a time, unlimited passes through the stock.",
		Messages:    DefaultMessages(),
	}
}

// DefaultMessages returns the stock player-facing texts
func DefaultMessages() Messages {
	return Messages{
		Welcome:          "New game dealt. Build each foundation from Ace to King!",
		Victory:          "You won! All four foundations are complete.",
		Drew:             "Drew a card from the stock.",
		Recycled:         "Waste turned back into the stock.",
		StockEmpty:       "Stock and waste are both empty.",
		Moved:            "Moved.",
		Rejected:         "Move rejected: %s",
		Selected:         "Card selected. Choose a destination.",
		Deselected:       "Selection cleared.",
		InvalidSelection: "That card cannot be selected.",
		Undo:             "Undid last action.",
		Redo:             "Redid last action.",
		NoHint:           "No moves available. Try drawing from the stock.",
	}
}

// withDefaults fills empty optional messages from DefaultMessages
func (c *GameConfig) withDefaults() *GameConfig {
	out := *c
	def := DefaultMessages()
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&out.Messages.Drew, def.Drew)
	fill(&out.Messages.Recycled, def.Recycled)
	fill(&out.Messages.StockEmpty, def.StockEmpty)
	fill(&out.Messages.Moved, def.Moved)
	fill(&out.Messages.Rejected, def.Rejected)
	fill(&out.Messages.Selected, def.Selected)
	fill(&out.Messages.Deselected, def.Deselected)
	fill(&out.Messages.InvalidSelection, def.InvalidSelection)
	fill(&out.Messages.Undo, def.Undo)
	fill(&out.Messages.Redo, def.Redo)
	fill(&out.Messages.NoHint, def.NoHint)
	return &out
}

// ValidateGameConfig checks a configuration and reports every problem found
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	var errs error
	fail := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidConfig}, args...)...))
	}

	if config.Name == "" {
		fail("name is required")
	}
	if config.Description == "" {
		fail("description is required")
	}
	if config.HistoryLimit < 0 || config.HistoryLimit > MaxHistoryLimit {
		fail("history_limit must be between 0 and %d, got %d", MaxHistoryLimit, config.HistoryLimit)
	}

	if config.Messages.Welcome == "" {
		fail("messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		fail("messages.victory is required")
	}
	if config.Messages.Rejected != "" && !strings.Contains(config.Messages.Rejected, "%s") {
		fail("messages.rejected must contain %%s for the rule description")
	}

	return errs
}

// LoadGameConfig loads and validates a configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	config, err := LoadGameConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", configName, err)
	}
	return config, nil
}
