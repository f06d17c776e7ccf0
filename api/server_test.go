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

	gws "github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/tilemerge/game/config"
	"github.com/wricardo/mcp-training/tilemerge/game/engine"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
	"github.com/wricardo/mcp-training/tilemerge/game/session"
	"github.com/wricardo/mcp-training/tilemerge/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string, gridSize int) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Game Operations
	MoveFunc     func(ctx context.Context, sessionID, direction string, reset bool) (*service.MoveResult, error)
	BulkMoveFunc func(ctx context.Context, sessionID string, moves []string, reset bool) (*service.BulkMoveResult, error)
	ResetFunc    func(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameStateFunc   func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetSnapshotFunc    func(ctx context.Context, sessionID string) (engine.Snapshot, error)
	GetMoveHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, cfg *engine.GameConfig) error
}

func testState() *engine.GameState {
	board, _ := engine.NewBoard(4)
	return &engine.GameState{Board: board, Phase: engine.PhasePlaying}
}

func notFound(id string) error {
	return fmt.Errorf("session %q: %w", id, session.ErrSessionNotFound)
}

func (m *MockGameService) CreateSession(ctx context.Context, configName string, gridSize int) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName, gridSize)
	}
	return &service.SessionInfo{ID: "ab12", ConfigName: configName, GridSize: 4, CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, ConfigName: "classic", GridSize: 4, GameState: testState()}, nil
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

func (m *MockGameService) Move(ctx context.Context, sessionID, direction string, reset bool) (*service.MoveResult, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, sessionID, direction, reset)
	}
	return &service.MoveResult{Direction: direction, Moved: true, GameState: testState()}, nil
}

func (m *MockGameService) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*service.BulkMoveResult, error) {
	if m.BulkMoveFunc != nil {
		return m.BulkMoveFunc(ctx, sessionID, moves, reset)
	}
	return &service.BulkMoveResult{RequestedMoves: len(moves), MovesExecuted: len(moves), GameState: testState()}, nil
}

func (m *MockGameService) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return testState(), nil
}

func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return testState(), nil
}

func (m *MockGameService) GetSnapshot(ctx context.Context, sessionID string) (engine.Snapshot, error) {
	if m.GetSnapshotFunc != nil {
		return m.GetSnapshotFunc(ctx, sessionID)
	}
	return testState().Board.Snapshot(), nil
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

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	cfg := engine.DefaultGameConfig()
	cfg.Name = configName
	return cfg, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, cfg *engine.GameConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, cfg)
	}
	return nil
}

// Test helpers
func setupTestServer(mockService *MockGameService) *Server {
	return NewServer(mockService, nil)
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

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	w := serve(setupTestServer(&MockGameService{}), makeRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("Unexpected health response %v", resp)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("move 2: %w", engine.ErrInvalidDirection), http.StatusBadRequest},
		{fmt.Errorf("%w: 9 outside [2, 8]", engine.ErrInvalidSize), http.StatusBadRequest},
		{fmt.Errorf("save: %w", config.ErrInvalidConfig), http.StatusBadRequest},
		{notFound("zz99"), http.StatusNotFound},
		{fmt.Errorf("config 'x': %w", config.ErrConfigNotFound), http.StatusNotFound},
		{session.ErrSessionAlreadyExists, http.StatusConflict},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "Create session with default config",
			requestBody:    nil,
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "ab12" {
					t.Errorf("Expected session ID ab12, got %s", resp.ID)
				}
			},
		},
		{
			name:        "Config id and grid size are passed through",
			requestBody: map[string]interface{}{"config_id": "tiny", "grid_size": 3},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, gridSize int) (*service.SessionInfo, error) {
					if configName != "tiny" || gridSize != 3 {
						t.Errorf("Unexpected arguments %q %d", configName, gridSize)
					}
					return &service.SessionInfo{ID: "cd34", ConfigName: configName, GridSize: gridSize}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.GridSize != 3 {
					t.Errorf("Expected grid size 3, got %d", resp.GridSize)
				}
			},
		},
		{
			name:        "Deprecated config_name still works",
			requestBody: map[string]string{"config_name": "large"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, gridSize int) (*service.SessionInfo, error) {
					if configName != "large" {
						t.Errorf("Expected config name 'large', got %s", configName)
					}
					return &service.SessionInfo{ID: "ef56", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "Invalid grid size",
			requestBody: map[string]int{"grid_size": 9},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, gridSize int) (*service.SessionInfo, error) {
					return nil, engine.ValidateGridSize(gridSize)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Unknown config",
			requestBody: map[string]string{"config_id": "nope"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, gridSize int) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("config 'nope': %w", config.ErrConfigNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "Handle service error",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, gridSize int) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %v", resp["error"])
				}
				if resp["code"].(float64) != http.StatusInternalServerError {
					t.Errorf("Expected code 500, got %v", resp["code"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			w := serve(setupTestServer(mockService), makeRequest("POST", "/api/sessions", tt.requestBody))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestCreateSessionBadBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/sessions", strings.NewReader("{not json"))
	w := serve(setupTestServer(&MockGameService{}), req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestListSessions(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	mockService := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "aaaa", CreatedAt: base, LastAccessedAt: base.Add(3 * time.Minute)},
				{ID: "bbbb", CreatedAt: base.Add(time.Minute), LastAccessedAt: base.Add(time.Minute)},
				{ID: "cccc", CreatedAt: base.Add(2 * time.Minute), LastAccessedAt: base.Add(2 * time.Minute)},
			}, nil
		},
	}
	server := setupTestServer(mockService)

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"default accessed desc", "", []string{"aaaa", "cccc", "bbbb"}},
		{"created asc", "?sort=created&order=asc", []string{"aaaa", "bbbb", "cccc"}},
		{"created desc with limit", "?sort=created&limit=2", []string{"cccc", "bbbb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(server, makeRequest("GET", "/api/sessions"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var resp struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)

			if resp.Total != 3 {
				t.Errorf("Expected total 3, got %d", resp.Total)
			}
			if resp.Count != len(tt.wantIDs) {
				t.Errorf("Expected count %d, got %d", len(tt.wantIDs), resp.Count)
			}
			for i, id := range tt.wantIDs {
				if i >= len(resp.Sessions) || resp.Sessions[i].ID != id {
					t.Errorf("Position %d: expected %s", i, id)
				}
			}
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID == "ab12" {
				return &service.SessionInfo{ID: "ab12", ConfigName: "classic"}, nil
			}
			return nil, notFound(sessionID)
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			if sessionID == "ab12" {
				return nil
			}
			return notFound(sessionID)
		},
	}
	server := setupTestServer(mockService)

	if w := serve(server, makeRequest("GET", "/api/sessions/ab12", nil)); w.Code != http.StatusOK {
		t.Errorf("Get existing: expected 200, got %d", w.Code)
	}
	if w := serve(server, makeRequest("GET", "/api/sessions/zz99", nil)); w.Code != http.StatusNotFound {
		t.Errorf("Get missing: expected 404, got %d", w.Code)
	}
	if w := serve(server, makeRequest("DELETE", "/api/sessions/ab12", nil)); w.Code != http.StatusOK {
		t.Errorf("Delete existing: expected 200, got %d", w.Code)
	}
	if w := serve(server, makeRequest("DELETE", "/api/sessions/zz99", nil)); w.Code != http.StatusNotFound {
		t.Errorf("Delete missing: expected 404, got %d", w.Code)
	}
}

// Game Operation Tests

func TestMove(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name: "Successful move",
			body: map[string]interface{}{"direction": "left", "reset": true},
			setupMock: func(m *MockGameService) {
				m.MoveFunc = func(ctx context.Context, sessionID, direction string, reset bool) (*service.MoveResult, error) {
					if sessionID != "ab12" || direction != "left" || !reset {
						t.Errorf("Unexpected arguments %q %q %v", sessionID, direction, reset)
					}
					return &service.MoveResult{Direction: "left", Moved: true, ScoreDelta: 4, GameState: testState()}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Invalid direction",
			body: map[string]string{"direction": "sideways"},
			setupMock: func(m *MockGameService) {
				m.MoveFunc = func(ctx context.Context, sessionID, direction string, reset bool) (*service.MoveResult, error) {
					_, err := engine.ParseDirection(direction)
					return nil, err
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown session",
			body: map[string]string{"direction": "up"},
			setupMock: func(m *MockGameService) {
				m.MoveFunc = func(ctx context.Context, sessionID, direction string, reset bool) (*service.MoveResult, error) {
					return nil, notFound(sessionID)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			tt.setupMock(mockService)

			w := serve(setupTestServer(mockService), makeRequest("POST", "/api/sessions/ab12/move", tt.body))
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	t.Run("Malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/sessions/ab12/move", strings.NewReader("left"))
		if w := serve(setupTestServer(&MockGameService{}), req); w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestBulkMove(t *testing.T) {
	var gotMoves []string
	mockService := &MockGameService{
		BulkMoveFunc: func(ctx context.Context, sessionID string, moves []string, reset bool) (*service.BulkMoveResult, error) {
			gotMoves = moves
			return &service.BulkMoveResult{
				RequestedMoves: len(moves),
				MovesExecuted:  len(moves),
				GameState:      testState(),
			}, nil
		},
	}

	body := map[string]interface{}{"moves": []string{"up", "left", "d"}}
	w := serve(setupTestServer(mockService), makeRequest("POST", "/api/sessions/ab12/bulk-move", body))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if len(gotMoves) != 3 || gotMoves[2] != "d" {
		t.Errorf("Moves not passed through: %v", gotMoves)
	}

	var resp service.BulkMoveResult
	parseResponse(t, w, &resp)
	if resp.MovesExecuted != 3 {
		t.Errorf("Expected 3 moves executed, got %d", resp.MovesExecuted)
	}
}

func TestStateSnapshotReset(t *testing.T) {
	server := setupTestServer(&MockGameService{})

	w := serve(server, makeRequest("GET", "/api/sessions/ab12/state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("State: expected 200, got %d", w.Code)
	}
	var state engine.GameState
	parseResponse(t, w, &state)
	if state.Board == nil || state.Board.Size != 4 {
		t.Errorf("Unexpected state %+v", state)
	}

	w = serve(server, makeRequest("GET", "/api/sessions/ab12/snapshot", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Snapshot: expected 200, got %d", w.Code)
	}
	var snap engine.Snapshot
	parseResponse(t, w, &snap)
	if len(snap.Cells) != 4 || snap.Cells[0][0] != 2 || snap.Cells[1][1] != 2 {
		t.Errorf("Unexpected snapshot %+v", snap)
	}

	w = serve(server, makeRequest("POST", "/api/sessions/ab12/reset", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Reset: expected 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	parseResponse(t, w, &resp)
	if resp["message"] != "Game reset successfully" {
		t.Errorf("Unexpected reset response %v", resp)
	}
}

func TestGetHistoryParams(t *testing.T) {
	tests := []struct {
		query string
		want  service.HistoryOptions
	}{
		{"", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{"?page=3&limit=5&order=asc", service.HistoryOptions{Page: 3, Limit: 5, Order: "asc"}},
		{"?page=-1&limit=zero&order=sideways", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}

	for _, tt := range tests {
		var got service.HistoryOptions
		mockService := &MockGameService{
			GetMoveHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
				got = opts
				return &service.HistoryResponse{Page: opts.Page, PageSize: opts.Limit}, nil
			},
		}

		w := serve(setupTestServer(mockService), makeRequest("GET", "/api/sessions/ab12/history"+tt.query, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%q: expected 200, got %d", tt.query, w.Code)
		}
		if got != tt.want {
			t.Errorf("%q: expected options %+v, got %+v", tt.query, tt.want, got)
		}
	}
}

// Configuration Tests

func TestConfigs(t *testing.T) {
	var saved string
	mockService := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{{ConfigID: "classic", Name: "Classic", GridSize: 4}}, nil
		},
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.GameConfig, error) {
			if configName != "classic" {
				return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configName)
			}
			return engine.DefaultGameConfig(), nil
		},
		SaveConfigFunc: func(ctx context.Context, configName string, cfg *engine.GameConfig) error {
			if err := engine.ValidateGameConfig(cfg); err != nil {
				return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
			}
			saved = configName
			return nil
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("GET", "/api/configs", nil))
	var list []*service.ConfigInfo
	parseResponse(t, w, &list)
	if len(list) != 1 || list[0].ConfigID != "classic" {
		t.Errorf("Unexpected config list %v", list)
	}

	if w := serve(server, makeRequest("GET", "/api/configs/classic.json", nil)); w.Code != http.StatusOK {
		t.Errorf("Get classic.json: expected 200, got %d", w.Code)
	}
	if w := serve(server, makeRequest("GET", "/api/configs/nope", nil)); w.Code != http.StatusNotFound {
		t.Errorf("Get missing: expected 404, got %d", w.Code)
	}

	good := engine.DefaultGameConfig()
	good.Name = "Six"
	good.GridSize = 6
	if w := serve(server, makeRequest("POST", "/api/configs?id=six", good)); w.Code != http.StatusCreated {
		t.Errorf("Save: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if saved != "six" {
		t.Errorf("Expected config saved as six, got %q", saved)
	}

	bad := engine.DefaultGameConfig()
	bad.GridSize = 1
	if w := serve(server, makeRequest("POST", "/api/configs", bad)); w.Code != http.StatusBadRequest {
		t.Errorf("Save invalid: expected 400, got %d", w.Code)
	}

	if w := serve(server, makeRequest("POST", "/api/configs", map[string]string{"description": "no name"})); w.Code != http.StatusBadRequest {
		t.Errorf("Save without name: expected 400, got %d", w.Code)
	}
}

func TestUnifiedSessions(t *testing.T) {
	high := testState()
	high.Board.Score = 128
	mockService := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "aaaa", ConfigName: "Classic", GridSize: 4, GameState: testState()},
				{ID: "bbbb", ConfigName: "Tiny", GridSize: 2},
				{ID: "cccc", ConfigName: "Classic", GridSize: 4, GameState: high},
			}, nil
		},
	}
	server := setupTestServer(mockService)

	var resp struct {
		Count     int                      `json:"count"`
		BestScore int                      `json:"best_score"`
		Sessions  []map[string]interface{} `json:"sessions"`
	}

	w := serve(server, makeRequest("GET", "/api/sessions/unified?configName=Classic", nil))
	parseResponse(t, w, &resp)
	if resp.Count != 2 || resp.BestScore != 128 {
		t.Errorf("Unexpected unified response %+v", resp)
	}

	w = serve(server, makeRequest("GET", "/api/sessions/unified?sessionIds=ab12,,cd34", nil))
	parseResponse(t, w, &resp)
	if resp.Count != 2 {
		t.Errorf("Expected 2 sessions by id, got %d", resp.Count)
	}
	if resp.Sessions[0]["session_id"] != "ab12" || resp.Sessions[0]["snapshot"] == nil {
		t.Errorf("Unexpected first entry %v", resp.Sessions[0])
	}
}

func TestWebSocketWithoutHub(t *testing.T) {
	w := serve(setupTestServer(&MockGameService{}), makeRequest("GET", "/ws?session=ab12", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

// TestEndToEnd drives the real service stack over HTTP and watches the
// WebSocket push stream of the session.
func TestEndToEnd(t *testing.T) {
	configMgr, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	gameService := service.NewGameService(session.NewManager(), configMgr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := websocket.NewHub()
	go hub.Run(ctx)

	httpServer := httptest.NewServer(NewServer(gameService, hub))
	defer httpServer.Close()

	post := func(path string, body interface{}) *http.Response {
		t.Helper()
		data, _ := json.Marshal(body)
		resp, err := http.Post(httpServer.URL+path, "application/json", bytes.NewReader(data))
		if err != nil {
			t.Fatalf("POST %s failed: %v", path, err)
		}
		return resp
	}

	resp := post("/api/sessions", map[string]int{"grid_size": 2})
	var info service.SessionInfo
	json.NewDecoder(resp.Body).Decode(&info)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated || info.GridSize != 2 {
		t.Fatalf("Create session: status %d, info %+v", resp.StatusCode, info)
	}

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws?session=" + info.ID
	conn, _, err := gws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	readMessage := func() websocket.Message {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg websocket.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed to read WebSocket message: %v", err)
		}
		return msg
	}

	if msg := readMessage(); msg.Event != "state" || msg.Snapshot.Cells[0][0] != 2 {
		t.Errorf("Unexpected first frame %+v", msg)
	}

	resp = post("/api/sessions/"+info.ID+"/move", map[string]string{"direction": "left"})
	var moved service.MoveResult
	json.NewDecoder(resp.Body).Decode(&moved)
	resp.Body.Close()
	if !moved.Moved || !sameCells(moved.Snapshot.Cells, [][]int{{2, 2}, {2, 0}}) {
		t.Errorf("Unexpected move result %+v", moved)
	}

	msg := readMessage()
	if msg.Event != service.EventMove || !sameCells(msg.Snapshot.Cells, [][]int{{2, 2}, {2, 0}}) {
		t.Errorf("Unexpected pushed frame %+v", msg)
	}

	resp = post("/api/sessions/"+info.ID+"/move", map[string]string{"direction": "diagonal"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Invalid direction: expected 400, got %d", resp.StatusCode)
	}

	resp = post("/api/sessions/"+info.ID+"/bulk-move", map[string][]string{"moves": {"a", "d", "s"}})
	var bulk service.BulkMoveResult
	json.NewDecoder(resp.Body).Decode(&bulk)
	resp.Body.Close()
	if !bulk.GameOver || bulk.EndScore != 8 {
		t.Errorf("Expected the bulk move to finish the game with score 8, got %+v", bulk)
	}
	if msg := readMessage(); msg.Event != service.EventTerminal || msg.Phase != engine.PhaseTerminal {
		t.Errorf("Unexpected terminal frame %+v", msg)
	}

	resp = post("/api/sessions/zz99/reset", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Reset unknown session: expected 404, got %d", resp.StatusCode)
	}
}

func sameCells(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
