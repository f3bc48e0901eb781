package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/klondike/game/engine"
)

var (
	// ErrConfigNotFound is returned by ConfigManager implementations for unknown names
	ErrConfigNotFound = errors.New("configuration not found")
	// ErrSessionNotFound is returned by SessionManager implementations for unknown IDs
	ErrSessionNotFound = errors.New("session not found")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.AccessedAt(),
		GameState:      sess.Engine.GetState().Clone(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if !errors.Is(err, ErrConfigNotFound) {
				return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
			}
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
			}
			return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}
	return s.sessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(session, s.getConfigID(session.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// session looks up a session for a mutating call. Callers hold s.mu.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return sess, nil
}

// touch records the access and persists the session after a change
func (s *gameServiceImpl) touch(sessionID string) {
	s.sessions.UpdateLastAccessed(sessionID)
}

// NewGame deals a fresh game in an existing session
func (s *gameServiceImpl) NewGame(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.NewGame()
	s.touch(sessionID)

	return &ActionResult{
		Success:   true,
		GameState: state.Clone(),
		Message:   state.Message,
		Events:    []GameEvent{newEvent("new_game", state.Message, nil)},
	}, nil
}

// Select selects, deselects, or replaces the selected card
func (s *gameServiceImpl) Select(ctx context.Context, sessionID string, ref engine.CardRef) (*SelectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result := sess.Engine.Select(ref)
	state := sess.Engine.GetState()
	s.touch(sessionID)

	out := &SelectResult{
		Status:    result.Status,
		Selection: result.Selection,
		Reason:    result.Reason,
		GameState: state.Clone(),
		Message:   state.Message,
	}
	switch result.Status {
	case engine.SelectionSelected:
		out.Events = []GameEvent{newEvent("select", state.Message, []engine.Card{result.Selection.Card})}
	case engine.SelectionDeselected:
		out.Events = []GameEvent{newEvent("deselect", state.Message, nil)}
	}
	return out, nil
}

// Move moves the selected card to a destination. When from is given it is
// selected first, so a client can issue a move in one request.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, from *engine.CardRef, to engine.Destination) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if from != nil {
		current := sess.Engine.GetState().Selection
		if current == nil || current.Source != *from {
			if sel := sess.Engine.Select(*from); sel.Status == engine.SelectionInvalid {
				state := sess.Engine.GetState()
				s.touch(sessionID)
				return &MoveResult{
					Success:    false,
					Reason:     engine.RuleNoSelection,
					ReasonText: sel.Reason,
					GameState:  state.Clone(),
					Message:    state.Message,
				}, nil
			}
		}
	}

	result := sess.Engine.AttemptMove(to)
	state := sess.Engine.GetState()
	s.touch(sessionID)

	out := &MoveResult{
		Success:    result.Success,
		Reason:     result.Reason,
		ReasonText: result.Reason.Description(),
		Moved:      result.Moved,
		Won:        result.Won,
		GameState:  state.Clone(),
		Message:    state.Message,
	}
	out.Events = moveEvents(result, state)
	return out, nil
}

func moveEvents(result engine.MoveResult, state *engine.GameState) []GameEvent {
	if !result.Success {
		return []GameEvent{newEvent("rejected", state.Message, nil)}
	}
	events := []GameEvent{
		newEvent("move", fmt.Sprintf("Moved %d card(s) to %s", len(result.Moved), result.To), result.Moved),
	}
	if result.Flipped != nil {
		events = append(events, newEvent("flip", fmt.Sprintf("Turned over %s", result.Flipped), []engine.Card{*result.Flipped}))
	}
	if result.Won {
		events = append(events, newEvent("victory", state.Message, nil))
	}
	return events
}

// Draw draws from the stock, or recycles the waste when the stock is empty
func (s *gameServiceImpl) Draw(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.DrawFromStock()
	s.touch(sessionID)

	result := &ActionResult{
		Success:   state.LastEvent != engine.EventStockEmpty,
		GameState: state.Clone(),
		Message:   state.Message,
	}
	switch state.LastEvent {
	case engine.EventDraw:
		top, _ := state.Waste.Top()
		result.Events = []GameEvent{newEvent("draw", state.Message, []engine.Card{top})}
	case engine.EventRecycle:
		result.Events = []GameEvent{newEvent("recycle", state.Message, nil)}
	}
	return result, nil
}

// Undo reverts the last board change
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.step(sessionID, "undo")
}

// Redo reapplies the last undone board change
func (s *gameServiceImpl) Redo(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.step(sessionID, "redo")
}

func (s *gameServiceImpl) step(sessionID, direction string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var state *engine.GameState
	if direction == "undo" {
		if !sess.Engine.CanUndo() {
			return nil, fmt.Errorf("nothing to undo: %w", engine.ErrEmptyHistory)
		}
		state = sess.Engine.Undo()
	} else {
		if !sess.Engine.CanRedo() {
			return nil, fmt.Errorf("nothing to redo: %w", engine.ErrEmptyHistory)
		}
		state = sess.Engine.Redo()
	}
	s.touch(sessionID)

	return &ActionResult{
		Success:   true,
		GameState: state.Clone(),
		Message:   state.Message,
		Events:    []GameEvent{newEvent(direction, state.Message, nil)},
	}, nil
}

// Hint suggests one legal move without changing the game
func (s *gameServiceImpl) Hint(ctx context.Context, sessionID string) (*HintResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	hint, ok := sess.Engine.Hint()
	if !ok {
		return &HintResult{Message: sess.Engine.GetConfig().Messages.NoHint}, nil
	}
	return &HintResult{
		Available: true,
		Hint:      &hint,
		Message:   fmt.Sprintf("Move %s from %s to %s", hint.Card, hint.Source, hint.Target),
	}, nil
}

// GetGameState returns a copy of the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	return sess.Engine.GetState().Clone(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ExportSnapshot captures the full session game, history stacks included
func (s *gameServiceImpl) ExportSnapshot(ctx context.Context, sessionID string) (*engine.StateSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return sess.Engine.Serialize(), nil
}

// ImportSnapshot replaces the session game with a snapshot
func (s *gameServiceImpl) ImportSnapshot(ctx context.Context, sessionID string, snapshot *engine.StateSnapshot) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	state, err := sess.Engine.Deserialize(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore snapshot: %w", err)
	}
	state.LastEvent = engine.EventRestore
	s.touch(sessionID)
	return state.Clone(), nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func newEvent(eventType, message string, cards []engine.Card) GameEvent {
	return GameEvent{
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
		Cards:     cards,
	}
}
