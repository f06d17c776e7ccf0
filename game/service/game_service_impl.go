package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
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
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		GridSize:       sess.Config.GridSize,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState().Clone(),
		GameConfig:     sess.Config,
	}
}

// getSession looks up a session and marks it as accessed
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// CreateSession creates a new game session. A non-zero gridSize overrides the
// board size of the selected configuration.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, gridSize int) (*SessionInfo, error) {
	if gridSize != 0 {
		if err := engine.ValidateGridSize(gridSize); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("config '%s' (available: %v): %w", configName, configIDs, err)
			}
			return nil, fmt.Errorf("config '%s': %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	if gridSize != 0 && gridSize != config.GridSize {
		sized := *config
		sized.GridSize = gridSize
		config = &sized
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().Str("session", sess.ID).Str("config", configID).Int("grid_size", config.GridSize).Msg("session started")
	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %q: %w", sessionID, err)
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	wasOver := sess.Engine.IsGameOver()
	res := sess.Engine.Move(dir)
	state := sess.Engine.GetState()

	var spawned *engine.Position
	if res.Moved {
		spawned = copyPosition(sess.Engine.GetLastMove().Spawned)
	}
	events = append(events, moveEvents(dir, res, spawned, state, wasOver)...)

	log.Debug().
		Str("session", sess.ID).
		Stringer("direction", dir).
		Bool("moved", res.Moved).
		Int("score_delta", res.ScoreDelta).
		Int("score", state.Board.Score).
		Bool("game_over", state.GameOver).
		Msg("move")

	return &MoveResult{
		Direction:  dir.String(),
		Moved:      res.Moved,
		ScoreDelta: res.ScoreDelta,
		Spawned:    spawned,
		GameState:  state.Clone(),
		Snapshot:   state.Board.Snapshot(),
		Message:    state.Message,
		Events:     events,
	}, nil
}

// BulkMove validates every direction first, then executes them in order and
// stops once the game reaches a terminal position.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	dirs := make([]engine.Direction, 0, len(moves))
	for i, m := range moves {
		dir, err := engine.ParseDirection(m)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		dirs = append(dirs, dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}

	if len(dirs) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		dirs = dirs[:engine.MaxBulkMoves]
	}

	result.StartScore = sess.Engine.GetScore()

	for i, dir := range dirs {
		if err := ctx.Err(); err != nil {
			result.StoppedReason = err.Error()
			result.StopReasonCode = "canceled"
			result.StoppedOnMove = i + 1
			break
		}
		if sess.Engine.IsGameOver() {
			result.StoppedReason = fmt.Sprintf("game over before move %d", i+1)
			result.StopReasonCode = "game_over"
			result.StoppedOnMove = i + 1
			break
		}

		res := sess.Engine.Move(dir)
		state := sess.Engine.GetState()
		result.MovesExecuted++

		step := StepInfo{
			Idx:        i + 1,
			Dir:        dir.String(),
			Moved:      res.Moved,
			ScoreDelta: res.ScoreDelta,
			Score:      state.Board.Score,
			Terminal:   state.GameOver,
		}
		if res.Moved {
			result.MovedCount++
			step.Spawned = copyPosition(sess.Engine.GetLastMove().Spawned)
		}
		result.Steps = append(result.Steps, step)
		result.Events = append(result.Events, moveEvents(dir, res, step.Spawned, state, false)...)
	}

	state := sess.Engine.GetState()
	result.EndScore = state.Board.Score
	result.ScoreDelta = result.EndScore - result.StartScore
	result.GameOver = state.GameOver
	if result.GameOver && result.StopReasonCode == "" {
		result.StopReasonCode = "game_over"
	}
	result.GameState = state.Clone()
	result.Snapshot = state.Board.Snapshot()
	result.Message = state.Message
	result.PossibleMoves = sess.Engine.GetPossibleMoves()

	log.Debug().
		Str("session", sess.ID).
		Int("requested", result.RequestedMoves).
		Int("executed", result.MovesExecuted).
		Int("score_delta", result.ScoreDelta).
		Bool("game_over", result.GameOver).
		Msg("bulk move")

	return result, nil
}

// Reset starts a new game in the session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()
	log.Info().Str("session", sess.ID).Int("games_played", state.GamesPlayed).Msg("game reset")
	return state.Clone(), nil
}

// GetGameState returns a copy of the session's game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState().Clone(), nil
}

// GetSnapshot returns the renderer view of the session's board
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return sess.Engine.GetSnapshot(), nil
}

// GetMoveHistory returns one page of the cumulative move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", sessionID, err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	moves := []engine.MoveHistoryEntry{}
	// pages past the end are empty
	if opts.Page <= totalPages {
		start := (opts.Page - 1) * opts.Limit
		end := min(start+opts.Limit, total)
		if opts.Order == "desc" {
			for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else if start < total {
			moves = append(moves, history[start:end]...)
		}
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

// ListConfigs returns the available configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a configuration by id
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig stores a configuration under the given id
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Game reset to a fresh board",
		Timestamp: time.Now(),
	}
}

// moveEvents describes what a single move did to the board
func moveEvents(dir engine.Direction, res engine.MoveResult, spawned *engine.Position, state *engine.GameState, wasOver bool) []GameEvent {
	now := time.Now()

	if !res.Moved {
		msg := fmt.Sprintf("Nothing moved %s", dir)
		if wasOver {
			msg = "The game is over; reset to play again"
		}
		return []GameEvent{{Type: EventNoMove, Message: msg, Timestamp: now}}
	}

	events := []GameEvent{{Type: EventMove, Message: fmt.Sprintf("Moved %s", dir), Timestamp: now}}
	if res.ScoreDelta > 0 {
		events = append(events, GameEvent{
			Type:      EventMerge,
			Message:   fmt.Sprintf("Merged tiles worth %d points", res.ScoreDelta),
			Timestamp: now,
		})
	}
	if spawned != nil {
		events = append(events, GameEvent{
			Type:      EventSpawn,
			Message:   fmt.Sprintf("New %d tile at (%d,%d)", engine.SpawnValue, spawned.Row, spawned.Col),
			Timestamp: now,
			Position:  spawned,
		})
	}
	if state.GameOver {
		events = append(events, GameEvent{Type: EventTerminal, Message: state.Message, Timestamp: now})
	}
	return events
}

func copyPosition(p *engine.Position) *engine.Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
