package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	GetScore() int
	GetSnapshot() Snapshot

	// Movement operations
	Move(dir Direction) MoveResult
	CanMove(dir Direction) bool
	GetPossibleMoves() []string
	BulkMove(dirs []Direction) []MoveResult

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

var _ Engine = (*GameEngine)(nil)

// GameEngine owns one board and runs move, spawn and terminal detection on it
type GameEngine struct {
	state  *GameState
	config *GameConfig
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	cfg := *config
	cfg.Messages = cfg.Messages.withDefaults()

	return &GameEngine{
		config: &cfg,
		state:  InitGameStateFromConfig(&cfg),
	}, nil
}

// NewEngineWithDefaults creates a new game engine with the classic configuration
func NewEngineWithDefaults() *GameEngine {
	config := DefaultGameConfig()
	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state after checking its board
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := ValidateBoard(state.Board); err != nil {
		return err
	}
	e.state = state
	e.state.GameOver = IsTerminal(state.Board)
	if e.state.GameOver {
		e.state.Phase = PhaseTerminal
	} else {
		e.state.Phase = PhasePlaying
	}
	e.state.refresh()
	return nil
}

// Reset starts a new game with a fresh seeded board and a zero score.
// The cumulative move history survives; the current segment is cleared.
func (e *GameEngine) Reset() *GameState {
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves
	prevGames := e.state.GamesPlayed

	e.state = InitGameStateFromConfig(e.config)

	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.GamesPlayed = prevGames + 1

	return e.state
}

// IsGameOver reports whether the board is terminal
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Board.Score
}

// GetSnapshot returns a deep copy of the board for rendering
func (e *GameEngine) GetSnapshot() Snapshot {
	return e.state.Board.Snapshot()
}

// Move applies one direction command. When tiles moved a new tile is spawned
// and the board is checked for a terminal position. A terminal game ignores moves.
func (e *GameEngine) Move(dir Direction) MoveResult {
	if e.state.GameOver || !dir.Valid() {
		return MoveResult{}
	}

	board := e.state.Board
	result := ApplyMove(board, dir)
	entry := MoveHistoryEntry{
		Action:     dir.String(),
		Moved:      result.Moved,
		ScoreDelta: result.ScoreDelta,
	}

	msgs := e.config.Messages
	if result.Moved {
		if pos, ok := SpawnTile(board); ok {
			entry.Spawned = &pos
		}
		if IsTerminal(board) {
			e.state.GameOver = true
			e.state.Phase = PhaseTerminal
			e.state.Message = formatScore(msgs.GameOver, board.Score)
			entry.Terminal = true
		} else {
			e.state.Message = formatScore(msgs.Moved, board.Score)
		}
	} else {
		e.state.Message = msgs.NoMove
	}

	entry.Score = board.Score
	e.state.AddMoveToHistory(entry)
	e.state.refresh()

	return result
}

// CanMove reports whether dir would change the board
func (e *GameEngine) CanMove(dir Direction) bool {
	if e.state.GameOver || !dir.Valid() {
		return false
	}
	return CanMove(e.state.Board, dir)
}

// GetPossibleMoves returns every direction that would change the board
func (e *GameEngine) GetPossibleMoves() []string {
	var possible []string
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir.String())
		}
	}
	return possible
}

// BulkMove executes moves in sequence and stops once the game is over
func (e *GameEngine) BulkMove(dirs []Direction) []MoveResult {
	results := make([]MoveResult, 0, len(dirs))
	for _, dir := range dirs {
		if e.IsGameOver() {
			break
		}
		results = append(results, e.Move(dir))
	}
	return results
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	cfg := *config
	cfg.Messages = cfg.Messages.withDefaults()
	e.config = &cfg
	e.state = InitGameStateFromConfig(&cfg)
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}
