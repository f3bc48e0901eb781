package service

import (
	"time"

	"github.com/wricardo/klondike/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResult is returned by operations that change the board without a
// source and destination: draw, undo, redo and new game.
type ActionResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// SelectResult contains the result of a select operation
type SelectResult struct {
	Status    engine.SelectionStatus `json:"status"`
	Selection *engine.Selection      `json:"selection,omitempty"`
	Reason    string                 `json:"reason,omitempty"`
	GameState *engine.GameState      `json:"game_state"`
	Message   string                 `json:"message"`
	Events    []GameEvent            `json:"events,omitempty"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success    bool                `json:"success"`
	Reason     engine.ViolatedRule `json:"reason,omitempty"`
	ReasonText string              `json:"reason_text,omitempty"`
	Moved      []engine.Card       `json:"moved,omitempty"`
	Won        bool                `json:"won"`
	GameState  *engine.GameState   `json:"game_state"`
	Message    string              `json:"message"`
	Events     []GameEvent         `json:"events,omitempty"`
}

// HintResult contains a suggested move, if any
type HintResult struct {
	Available bool         `json:"available"`
	Hint      *engine.Hint `json:"hint,omitempty"`
	Message   string       `json:"message"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string        `json:"type"` // "select", "move", "flip", "draw", "recycle", "undo", "redo", "victory", "new_game", "rejected"
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Cards     []engine.Card `json:"cards,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename     string `json:"filename"`
	ConfigID     string `json:"config_id"` // The identifier to use for session creation
	Name         string `json:"name"`      // Display name
	Description  string `json:"description"`
	HistoryLimit int    `json:"history_limit"`
	Seeded       bool   `json:"seeded"`
}
