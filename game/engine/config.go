package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultGameConfig returns the built-in classic configuration
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "Classic",
		Description: "The classic 4x4 board",
		GridSize:    DefaultGridSize,
		Messages:    DefaultMessages(),
	}
}

// DefaultMessages returns the stock player-facing texts
func DefaultMessages() Messages {
	return Messages{
		Welcome:      "Slide the tiles with the arrow keys or W/A/S/D. Equal tiles merge.",
		Moved:        "Score: %d",
		NoMove:       "Nothing moved",
		GameOver:     "Game Over! Your score: %d",
		PlayAgain:    "Do you want to play again?",
		SizePrompt:   "Enter grid size (2 to 8): ",
		InvalidInput: "Error: Invalid input. Please enter a number between 2 and 8.",
		InvalidSize:  "Error: Please enter a valid number between 2 and 8.",
	}
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if err := ValidateGridSize(config.GridSize); err != nil {
		return fmt.Errorf("config validation: grid_size: %w", err)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if !strings.Contains(config.Messages.GameOver, "%d") {
		return fmt.Errorf("config validation: messages.game_over must contain %%d for the final score")
	}
	if strings.Count(config.Messages.Moved, "%d") > 1 {
		return fmt.Errorf("config validation: messages.moved may contain at most one %%d")
	}
	return nil
}

// withDefaults fills the optional texts a config file may leave out
func (m Messages) withDefaults() Messages {
	def := DefaultMessages()
	if m.Moved == "" {
		m.Moved = def.Moved
	}
	if m.NoMove == "" {
		m.NoMove = def.NoMove
	}
	if m.PlayAgain == "" {
		m.PlayAgain = def.PlayAgain
	}
	if m.SizePrompt == "" {
		m.SizePrompt = def.SizePrompt
	}
	if m.InvalidInput == "" {
		m.InvalidInput = def.InvalidInput
	}
	if m.InvalidSize == "" {
		m.InvalidSize = def.InvalidSize
	}
	return m
}

// formatScore substitutes score into a message that carries a %d verb
func formatScore(msg string, score int) string {
	if !strings.Contains(msg, "%d") {
		return msg
	}
	return fmt.Sprintf(msg, score)
}

// LoadGameConfig loads and validates a game configuration from a JSON file
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

// InitGameStateFromConfig creates a fresh game state with a seeded board.
// A nil config uses DefaultGameConfig; an out-of-range size falls back to DefaultGridSize.
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultGameConfig()
	}

	board, err := NewBoard(config.GridSize)
	if err != nil {
		board, _ = NewBoard(DefaultGridSize)
	}

	state := &GameState{
		Board:        board,
		Phase:        PhasePlaying,
		Message:      config.Messages.Welcome,
		ConfigName:   config.Name,
		MoveHistory:  []MoveHistoryEntry{},
		CurrentMoves: []MoveHistoryEntry{},
	}
	state.refresh()
	return state
}
