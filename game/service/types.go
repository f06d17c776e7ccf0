package service

import (
	"time"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// Event types reported by moves
const (
	EventMove     = "move"
	EventMerge    = "merge"
	EventSpawn    = "spawn"
	EventTerminal = "terminal"
	EventNoMove   = "no_move"
	EventReset    = "reset"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	GridSize       int                `json:"grid_size"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Direction  string            `json:"direction"`
	Moved      bool              `json:"moved"`
	ScoreDelta int               `json:"score_delta"`
	Spawned    *engine.Position  `json:"spawned,omitempty"`
	GameState  *engine.GameState `json:"game_state"`
	Snapshot   engine.Snapshot   `json:"snapshot"`
	Message    string            `json:"message"`
	Events     []GameEvent       `json:"events,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	RequestedMoves int  `json:"requested_moves"`
	MovesExecuted  int  `json:"moves_executed"`
	MovedCount     int  `json:"moved_count"` // executed moves that changed the board
	Truncated      bool `json:"truncated,omitempty"`
	Limit          int  `json:"limit,omitempty"`

	StartScore int `json:"start_score"`
	EndScore   int `json:"end_score"`
	ScoreDelta int `json:"score_delta"`

	// Per-step compact trace (only for this call)
	Steps  []StepInfo  `json:"steps,omitempty"`
	Events []GameEvent `json:"events"`

	GameOver       bool              `json:"game_over"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // game_over
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the first move not executed
	GameState      *engine.GameState `json:"game_state"`
	Snapshot       engine.Snapshot   `json:"snapshot"`
	Message        string            `json:"message,omitempty"`
	PossibleMoves  []string          `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx        int              `json:"idx"`
	Dir        string           `json:"dir"`
	Moved      bool             `json:"moved"`
	ScoreDelta int              `json:"score_delta"`
	Score      int              `json:"score"`
	Spawned    *engine.Position `json:"spawned,omitempty"`
	Terminal   bool             `json:"terminal,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
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
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
}
