package engine

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Validation constants
	MinGridSize         = 2
	MaxGridSize         = 8
	DefaultGridSize     = 4
	SeedValue           = 2
	SpawnValue          = 2
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

var (
	ErrInvalidSize      = errors.New("invalid grid size")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidBoard     = errors.New("invalid board")
)

// Direction is one of the four cardinal move commands
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every valid direction in a stable order
var Directions = []Direction{Up, Down, Left, Right}

// String returns the lowercase wire name of the direction
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// ParseDirection maps text input onto a Direction. Arrow-key style names and
// the W/A/S/D keys are accepted, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q (use up, down, left or right)", ErrInvalidDirection, s)
}

// MarshalText encodes the direction by name
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Phase is a step of the game lifecycle
type Phase string

const (
	PhaseAwaitingSize Phase = "awaiting_size"
	PhasePlaying      Phase = "playing"
	PhaseTerminal     Phase = "terminal"
	PhaseEnded        Phase = "ended"
)

// Position represents row,col coordinates
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is the grid state container
type Board struct {
	Size  int     `json:"size"`
	Cells [][]int `json:"cells"`
	Score int     `json:"score"`
}

// Snapshot is a read-only copy of the board handed to renderers
type Snapshot struct {
	Cells [][]int `json:"cells"`
	Score int     `json:"score"`
}

// MoveResult is the outcome of a single ApplyMove call
type MoveResult struct {
	Moved      bool `json:"moved"`
	ScoreDelta int  `json:"score_delta"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	GridSize    int      `json:"grid_size"`
	Messages    Messages `json:"messages"`
}

// Messages holds the player-facing texts of a configuration
type Messages struct {
	Welcome      string `json:"welcome"`
	Moved        string `json:"moved"`
	NoMove       string `json:"no_move"`
	GameOver     string `json:"game_over"`
	PlayAgain    string `json:"play_again"`
	SizePrompt   string `json:"size_prompt"`
	InvalidInput string `json:"invalid_input"` // size input that is not a number
	InvalidSize  string `json:"invalid_size"`  // number outside the allowed range
}

// GameState represents the complete game state
type GameState struct {
	Board       *Board             `json:"board"`
	Phase       Phase              `json:"phase"`
	GameOver    bool               `json:"game_over"`
	Message     string             `json:"message"`
	ConfigName  string             `json:"config_name"`
	MaxTile     int                `json:"max_tile"`
	EmptyCells  int                `json:"empty_cells"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`
	GamesPlayed int                `json:"games_played"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Computed helper view (not required for core game logic)
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action     string    `json:"action"`
	Moved      bool      `json:"moved"`
	ScoreDelta int       `json:"score_delta"`
	Score      int       `json:"score"`
	Spawned    *Position `json:"spawned,omitempty"`
	Terminal   bool      `json:"terminal,omitempty"`
	Timestamp  int64     `json:"timestamp"`
	MoveNumber int       `json:"move_number"`
}
