package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/klondike/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	NewGame(ctx context.Context, sessionID string) (*ActionResult, error)
	Select(ctx context.Context, sessionID string, ref engine.CardRef) (*SelectResult, error)
	Move(ctx context.Context, sessionID string, from *engine.CardRef, to engine.Destination) (*MoveResult, error)
	Draw(ctx context.Context, sessionID string) (*ActionResult, error)
	Undo(ctx context.Context, sessionID string) (*ActionResult, error)
	Redo(ctx context.Context, sessionID string) (*ActionResult, error)
	Hint(ctx context.Context, sessionID string) (*HintResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	ExportSnapshot(ctx context.Context, sessionID string) (*engine.StateSnapshot, error)
	ImportSnapshot(ctx context.Context, sessionID string, snapshot *engine.StateSnapshot) (*engine.GameState, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session. LastAccessedAt may be set
// directly until the session is shared; after that go through Touch and
// AccessedAt.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu sync.RWMutex
}

// Touch marks the session as accessed now
func (s *Session) Touch() {
	s.mu.Lock()
	s.LastAccessedAt = time.Now()
	s.mu.Unlock()
}

// AccessedAt returns when the session was last accessed
func (s *Session) AccessedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastAccessedAt
}
