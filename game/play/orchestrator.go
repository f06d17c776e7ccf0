package play

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// ErrWrongPhase is returned for a command the current phase does not accept
var ErrWrongPhase = errors.New("command not valid in current phase")

// Renderer receives a copy of the board after every accepted move and after a reset
type Renderer interface {
	Render(snap engine.Snapshot)
}

// RendererFunc adapts a plain function to Renderer
type RendererFunc func(snap engine.Snapshot)

// Render calls f(snap)
func (f RendererFunc) Render(snap engine.Snapshot) { f(snap) }

// Orchestrator drives one player through size selection, play, game over and
// the play-again decision.
type Orchestrator struct {
	engine   *engine.GameEngine
	renderer Renderer
	phase    engine.Phase
	message  string
}

// NewOrchestrator validates cfg and waits for a grid size. A nil cfg uses the
// classic configuration and a nil renderer discards snapshots.
func NewOrchestrator(cfg *engine.GameConfig, renderer Renderer) (*Orchestrator, error) {
	if cfg == nil {
		cfg = engine.DefaultGameConfig()
	}
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	if renderer == nil {
		renderer = RendererFunc(func(engine.Snapshot) {})
	}

	return &Orchestrator{
		engine:   eng,
		renderer: renderer,
		phase:    engine.PhaseAwaitingSize,
		message:  eng.GetConfig().Messages.SizePrompt,
	}, nil
}

// Phase returns the current lifecycle phase
func (o *Orchestrator) Phase() engine.Phase {
	return o.phase
}

// Message returns the text the player should see next
func (o *Orchestrator) Message() string {
	return o.message
}

// Messages returns the texts of the active configuration
func (o *Orchestrator) Messages() engine.Messages {
	return o.engine.GetConfig().Messages
}

// Snapshot returns a copy of the current board
func (o *Orchestrator) Snapshot() engine.Snapshot {
	return o.engine.GetSnapshot()
}

// Score returns the current score
func (o *Orchestrator) Score() int {
	return o.engine.GetScore()
}

// GridSize returns the size of the board in play
func (o *Orchestrator) GridSize() int {
	return o.engine.GetConfig().GridSize
}

// SubmitSize parses the player's grid size. Invalid input leaves the
// orchestrator waiting for another attempt.
func (o *Orchestrator) SubmitSize(input string) error {
	if o.phase != engine.PhaseAwaitingSize {
		return fmt.Errorf("submit size in phase %s: %w", o.phase, ErrWrongPhase)
	}

	msgs := o.Messages()
	size, err := engine.ParseGridSize(input)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			o.message = msgs.InvalidInput
		} else {
			o.message = msgs.InvalidSize
		}
		return err
	}

	cfg := *o.engine.GetConfig()
	cfg.GridSize = size
	if err := o.engine.SetConfig(&cfg); err != nil {
		return err
	}

	o.phase = engine.PhasePlaying
	o.message = msgs.Welcome
	o.renderer.Render(o.engine.GetSnapshot())
	return nil
}

// Command applies one direction while playing. A move that leaves the board
// terminal switches to the terminal phase.
func (o *Orchestrator) Command(dir engine.Direction) (engine.MoveResult, error) {
	if o.phase != engine.PhasePlaying {
		return engine.MoveResult{}, fmt.Errorf("move %s in phase %s: %w", dir, o.phase, ErrWrongPhase)
	}
	if !dir.Valid() {
		return engine.MoveResult{}, engine.ErrInvalidDirection
	}

	result := o.engine.Move(dir)
	o.message = o.engine.GetState().Message
	if o.engine.IsGameOver() {
		o.phase = engine.PhaseTerminal
	}
	o.renderer.Render(o.engine.GetSnapshot())
	return result, nil
}

// Decide answers the play-again question of a finished game
func (o *Orchestrator) Decide(playAgain bool) error {
	if o.phase != engine.PhaseTerminal {
		return fmt.Errorf("decide in phase %s: %w", o.phase, ErrWrongPhase)
	}

	if !playAgain {
		o.phase = engine.PhaseEnded
		o.message = ""
		return nil
	}

	o.engine.Reset()
	o.phase = engine.PhasePlaying
	o.message = o.Messages().Welcome
	o.renderer.Render(o.engine.GetSnapshot())
	return nil
}

// GamesPlayed counts the games restarted through Decide
func (o *Orchestrator) GamesPlayed() int {
	return o.engine.GetState().GamesPlayed
}
