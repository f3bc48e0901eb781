package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"github.com/wricardo/klondike/game/config"
	"github.com/wricardo/klondike/game/engine"
	"github.com/wricardo/klondike/game/service"
	"github.com/wricardo/klondike/game/session"
	"github.com/wricardo/klondike/transport/websocket"
)

// MockGameService implements service.GameService for testing. Unset
// functions fall back to canned answers.
type MockGameService struct {
	CreateSessionFunc  func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc     func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc   func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc  func(ctx context.Context, sessionID string) error
	MoveFunc           func(ctx context.Context, sessionID string, from *engine.CardRef, to engine.Destination) (*service.MoveResult, error)
	UndoFunc           func(ctx context.Context, sessionID string) (*service.ActionResult, error)
	GetGameStateFunc   func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)
	LoadConfigFunc     func(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfigFunc     func(ctx context.Context, configName string, config *engine.GameConfig) error
}

func (m *MockGameService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{ID: "test-session", ConfigName: configName, CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, ConfigName: "test-config", CreatedAt: time.Now()}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) NewGame(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	return &service.ActionResult{Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Select(ctx context.Context, sessionID string, ref engine.CardRef) (*service.SelectResult, error) {
	return &service.SelectResult{Status: engine.SelectionSelected, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Move(ctx context.Context, sessionID string, from *engine.CardRef, to engine.Destination) (*service.MoveResult, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, sessionID, from, to)
	}
	return &service.MoveResult{Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Draw(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	return &service.ActionResult{Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Undo(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	if m.UndoFunc != nil {
		return m.UndoFunc(ctx, sessionID)
	}
	return &service.ActionResult{Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Redo(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	return &service.ActionResult{Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Hint(ctx context.Context, sessionID string) (*service.HintResult, error) {
	return &service.HintResult{Message: "No moves"}, nil
}

func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetMoveHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetMoveHistoryFunc != nil {
		return m.GetMoveHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Moves:      []engine.MoveHistoryEntry{},
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

func (m *MockGameService) ExportSnapshot(ctx context.Context, sessionID string) (*engine.StateSnapshot, error) {
	return nil, fmt.Errorf("session %s: %w", sessionID, service.ErrSessionNotFound)
}

func (m *MockGameService) ImportSnapshot(ctx context.Context, sessionID string, snapshot *engine.StateSnapshot) (*engine.GameState, error) {
	return nil, fmt.Errorf("failed to restore snapshot: %w", engine.ErrInvalidSnapshot)
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	return []*service.ConfigInfo{{ConfigID: "classic", Name: "Classic"}}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return &engine.GameConfig{Name: configName, Description: "Test config"}, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// Test helpers
func setupTestServer(gameService service.GameService) *Server {
	hub := websocket.NewHub()
	go hub.Run()
	return NewServer(gameService, hub)
}

func setupRealServer(t *testing.T) *Server {
	t.Helper()
	configManager, err := config.NewManager("../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	return setupTestServer(service.NewGameService(session.NewManager(), configManager))
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest(method, path, body))
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	server := setupTestServer(&MockGameService{})
	w := do(server, "GET", "/api/health", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var body map[string]string
	parseResponse(t, w, &body)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy, got %v", body)
	}
}

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		expectedConfig string
	}{
		{
			name:           "default config",
			body:           nil,
			expectedStatus: http.StatusCreated,
			expectedConfig: "",
		},
		{
			name:           "config_id",
			body:           map[string]string{"config_id": "practice"},
			expectedStatus: http.StatusCreated,
			expectedConfig: "practice",
		},
		{
			name:           "deprecated config_name",
			body:           map[string]string{"config_name": "limited_undo"},
			expectedStatus: http.StatusCreated,
			expectedConfig: "limited_undo",
		},
		{
			name: "unknown config",
			body: map[string]string{"config_id": "nope"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("config '%s' not found: %w", configName, service.ErrConfigNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "internal failure",
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("disk full")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockGameService{}
			var got string
			mock.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
				got = configName
				return &service.SessionInfo{ID: "ab12", ConfigName: configName}, nil
			}
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			w := do(setupTestServer(mock), "POST", "/api/sessions", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusCreated && got != tt.expectedConfig {
				t.Errorf("Expected config %q, got %q", tt.expectedConfig, got)
			}
			if tt.expectedStatus != http.StatusCreated {
				var body map[string]string
				parseResponse(t, w, &body)
				if body["error"] == "" {
					t.Error("Expected error message in body")
				}
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	mock := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-time.Hour)},
				{ID: "new", CreatedAt: now, LastAccessedAt: now},
				{ID: "mid", CreatedAt: now.Add(-time.Hour), LastAccessedAt: now.Add(-2 * time.Hour)},
			}, nil
		},
	}
	server := setupTestServer(mock)

	tests := []struct {
		query    string
		expected []string
		total    int
	}{
		{"", []string{"new", "old", "mid"}, 3},
		{"?sort=created&order=asc", []string{"old", "mid", "new"}, 3},
		{"?sort=created&limit=2", []string{"new", "mid"}, 3},
		{"?limit=0", []string{"new", "old", "mid"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(server, "GET", "/api/sessions"+tt.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", w.Code)
			}
			var body struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &body)
			if body.Total != tt.total || body.Count != len(tt.expected) {
				t.Errorf("Expected count %d total %d, got %d/%d", len(tt.expected), tt.total, body.Count, body.Total)
			}
			for i, id := range tt.expected {
				if body.Sessions[i].ID != id {
					t.Errorf("Position %d: expected %s, got %s", i, id, body.Sessions[i].ID)
				}
			}
		})
	}
}

func TestErrorStatusMapping(t *testing.T) {
	mock := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return nil, fmt.Errorf("session %s: %w", sessionID, service.ErrSessionNotFound)
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			return service.ErrSessionNotFound
		},
		UndoFunc: func(ctx context.Context, sessionID string) (*service.ActionResult, error) {
			return nil, fmt.Errorf("nothing to undo: %w", engine.ErrEmptyHistory)
		},
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.GameConfig, error) {
			return nil, service.ErrConfigNotFound
		},
		SaveConfigFunc: func(ctx context.Context, configName string, config *engine.GameConfig) error {
			return fmt.Errorf("%w: missing welcome", engine.ErrInvalidConfig)
		},
	}
	server := setupTestServer(mock)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"get missing session", "GET", "/api/sessions/zz99", nil, http.StatusNotFound},
		{"delete missing session", "DELETE", "/api/sessions/zz99", nil, http.StatusNotFound},
		{"undo empty history", "POST", "/api/sessions/ab12/undo", nil, http.StatusConflict},
		{"missing config", "GET", "/api/configs/nope.json", nil, http.StatusNotFound},
		{"invalid config", "POST", "/api/configs", map[string]string{"name": "Broken"}, http.StatusBadRequest},
		{"config without name", "POST", "/api/configs", map[string]string{"description": "x"}, http.StatusBadRequest},
		{"export missing session", "GET", "/api/sessions/zz99/snapshot", nil, http.StatusNotFound},
		{"import corrupt snapshot", "PUT", "/api/sessions/ab12/snapshot", map[string]int{"version": 9}, http.StatusBadRequest},
		{"move without destination", "POST", "/api/sessions/ab12/move", map[string]string{}, http.StatusBadRequest},
		{"wrong method", "GET", "/api/sessions/ab12/draw", nil, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(server, tt.method, tt.path, tt.body)
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestBadRequestBodies(t *testing.T) {
	server := setupTestServer(&MockGameService{})

	for _, path := range []string{
		"/api/sessions/ab12/select",
		"/api/sessions/ab12/move",
	} {
		req := httptest.NewRequest("POST", path, strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestMoveRequestDecoding(t *testing.T) {
	var gotFrom *engine.CardRef
	var gotTo engine.Destination
	mock := &MockGameService{
		MoveFunc: func(ctx context.Context, sessionID string, from *engine.CardRef, to engine.Destination) (*service.MoveResult, error) {
			gotFrom, gotTo = from, to
			return &service.MoveResult{Success: true, GameState: &engine.GameState{}}, nil
		},
	}
	server := setupTestServer(mock)

	body := `{"from":{"pile":{"kind":"waste"},"index":3},"to":{"kind":"foundation","suit":"hearts"}}`
	req := httptest.NewRequest("POST", "/api/sessions/ab12/move", strings.NewReader(body))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotFrom == nil || gotFrom.Pile.Kind != engine.PileWaste || gotFrom.Index != 3 {
		t.Errorf("Unexpected from %+v", gotFrom)
	}
	if gotTo != engine.FoundationRef(engine.Hearts) {
		t.Errorf("Unexpected destination %+v", gotTo)
	}

	// Without a source the selection already held by the session is moved
	gotFrom = nil
	w = do(server, "POST", "/api/sessions/ab12/move", map[string]interface{}{"to": engine.TableauRef(4)})
	if w.Code != http.StatusOK || gotFrom != nil || gotTo != engine.TableauRef(4) {
		t.Errorf("Expected selection move to tableau[4], got %d %+v %+v", w.Code, gotFrom, gotTo)
	}
}

func TestGetHistoryOptions(t *testing.T) {
	var got service.HistoryOptions
	mock := &MockGameService{
		GetMoveHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
			got = opts
			return &service.HistoryResponse{Moves: []engine.MoveHistoryEntry{}}, nil
		},
	}
	server := setupTestServer(mock)

	tests := []struct {
		query    string
		expected service.HistoryOptions
	}{
		{"", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{"?page=3&limit=5&order=asc", service.HistoryOptions{Page: 3, Limit: 5, Order: "asc"}},
		{"?page=-1&limit=abc&order=sideways", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}

	for _, tt := range tests {
		w := do(server, "GET", "/api/sessions/ab12/history"+tt.query, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if got != tt.expected {
			t.Errorf("%q: expected %+v, got %+v", tt.query, tt.expected, got)
		}
	}
}

func TestWebSocketEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name:           "Missing session parameter",
			queryParams:    "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Invalid session",
			queryParams: "?session=invalid",
			setupMock: func(m *MockGameService) {
				m.GetGameStateFunc = func(ctx context.Context, sessionID string) (*engine.GameState, error) {
					return nil, service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			w := do(setupTestServer(mock), "GET", "/ws"+tt.queryParams, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}

	t.Run("No hub", func(t *testing.T) {
		w := do(NewServer(&MockGameService{}, nil), "GET", "/ws?session=ab12", nil)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", w.Code)
		}
	})
}

// TestGameFlow drives a real service through the HTTP surface
func TestGameFlow(t *testing.T) {
	server := setupRealServer(t)

	w := do(server, "POST", "/api/sessions", map[string]string{"config_id": "practice"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create failed: %d %s", w.Code, w.Body.String())
	}
	var info service.SessionInfo
	parseResponse(t, w, &info)
	base := "/api/sessions/" + info.ID

	if info.GameState == nil || info.GameState.Stock.Len() != 24 {
		t.Fatal("Expected a fresh deal with 24 stock cards")
	}

	// Nothing to undo yet
	if w := do(server, "POST", base+"/undo", nil); w.Code != http.StatusConflict {
		t.Errorf("Expected 409 on empty undo, got %d", w.Code)
	}

	// Draw, undo, redo
	w = do(server, "POST", base+"/draw", nil)
	var drawn service.ActionResult
	parseResponse(t, w, &drawn)
	if !drawn.Success || drawn.GameState.Waste.Len() != 1 {
		t.Fatalf("Expected one waste card after draw, got %+v", drawn.GameState.Waste)
	}

	w = do(server, "POST", base+"/undo", nil)
	var undone service.ActionResult
	parseResponse(t, w, &undone)
	if w.Code != http.StatusOK || undone.GameState.Waste.Len() != 0 {
		t.Fatalf("Expected undo to empty the waste, got %d", w.Code)
	}

	w = do(server, "POST", base+"/redo", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Redo failed: %d", w.Code)
	}

	// Find a legal move, drawing as needed
	var hint service.HintResult
	for i := 0; i < 30; i++ {
		parseResponse(t, do(server, "GET", base+"/hint", nil), &hint)
		if hint.Available {
			break
		}
		do(server, "POST", base+"/draw", nil)
	}
	if !hint.Available {
		t.Skip("No legal move found for this deal")
	}

	from := hint.Hint.CardRef()
	w = do(server, "POST", base+"/move", map[string]interface{}{"from": from, "to": hint.Hint.Target})
	var moved service.MoveResult
	parseResponse(t, w, &moved)
	if !moved.Success {
		t.Fatalf("Hinted move rejected: %s", moved.Reason)
	}
	if len(moved.Moved) == 0 || !moved.Moved[0].SameCard(hint.Hint.Card) {
		t.Errorf("Expected %s to move, got %v", hint.Hint.Card, moved.Moved)
	}

	// A move with nothing selected is rejected, not an HTTP error
	w = do(server, "POST", base+"/move", map[string]interface{}{"to": engine.TableauRef(0)})
	parseResponse(t, w, &moved)
	if w.Code != http.StatusOK || moved.Success || moved.Reason != engine.RuleNoSelection {
		t.Errorf("Expected no_selection rejection, got %d %+v", w.Code, moved.Reason)
	}

	// Select a face-down card is invalid
	w = do(server, "POST", base+"/select", engine.CardRef{Pile: engine.TableauRef(6), Index: 0})
	var sel service.SelectResult
	parseResponse(t, w, &sel)
	if sel.Status != engine.SelectionInvalid {
		t.Errorf("Expected invalid selection of a face-down card, got %s", sel.Status)
	}

	// History has entries
	w = do(server, "GET", base+"/history?order=asc&limit=100", nil)
	var history service.HistoryResponse
	parseResponse(t, w, &history)
	if history.TotalMoves < 4 || history.Moves[0].Action != "new_game" {
		t.Errorf("Unexpected history %+v", history)
	}

	// Snapshot round trip
	w = do(server, "GET", base+"/snapshot", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Snapshot export failed: %d", w.Code)
	}
	snapshot, err := engine.UnmarshalSnapshot(w.Body.Bytes())
	if err != nil {
		t.Fatalf("Exported snapshot invalid: %v", err)
	}

	do(server, "POST", base+"/new-game", nil)

	req := httptest.NewRequest("PUT", base+"/snapshot", bytes.NewReader(w.Body.Bytes()))
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Snapshot import failed: %d %s", w.Code, w.Body.String())
	}

	var state engine.GameState
	parseResponse(t, do(server, "GET", base+"/state", nil), &state)
	if state.GameID != snapshot.State.GameID {
		t.Error("Expected restored game id")
	}
	if state.LastEvent != engine.EventRestore {
		t.Errorf("Expected restore event, got %s", state.LastEvent)
	}

	// Configs
	var configs []*service.ConfigInfo
	parseResponse(t, do(server, "GET", "/api/configs", nil), &configs)
	if len(configs) < 3 {
		t.Errorf("Expected shipped configs, got %d", len(configs))
	}

	// Delete
	if w := do(server, "DELETE", base, nil); w.Code != http.StatusOK {
		t.Errorf("Delete failed: %d", w.Code)
	}
	if w := do(server, "GET", base, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestWebSocketReceivesMoves(t *testing.T) {
	server := setupRealServer(t)
	ts := httptest.NewServer(server)
	defer ts.Close()

	w := do(server, "POST", "/api/sessions", nil)
	var info service.SessionInfo
	parseResponse(t, w, &info)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + strings.ToUpper(info.ID)
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	read := func() websocket.Message {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		var msg websocket.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Bad message: %v", err)
		}
		return msg
	}

	initial := read()
	if initial.GameState == nil || initial.GameState.GameID != info.GameState.GameID {
		t.Fatal("Expected initial state for the session")
	}

	// Wait until the hub has registered the client before drawing
	deadline := time.Now().Add(time.Second)
	for server.hub.ClientCount(info.ID) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	do(server, "POST", "/api/sessions/"+info.ID+"/draw", nil)

	update := read()
	if update.Event != websocket.EventStateUpdate || update.GameState.Waste.Len() != 1 {
		t.Errorf("Expected state update with one waste card, got %+v", update.Event)
	}
}
