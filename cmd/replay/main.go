// Command replay drives a tile merge session on a running server through the
// REST API with fixed move patterns, e.g. "up,left,down,right" repeated until
// the game ends or the move budget is spent. Each pattern plays one game in
// the same session (reset in between) and the results are compared at the end.
//
// Spawns are deterministic, so moves are expanded locally and sent in batches
// through the bulk-move endpoint unless --single is given.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

const defaultPattern = "up,left,down,right"

// GameResult is the outcome of one pattern's game.
type GameResult struct {
	Pattern  string
	Moves    int
	Score    int
	MaxTile  int
	GameOver bool
	Stuck    bool // no direction of the pattern moves, game not over
}

type options struct {
	serverURL   string
	configID    string
	gridSize    int
	sessionID   string
	patterns    []string
	skipBlocked bool
	maxMoves    int
	single      bool
	delay       time.Duration
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("replay failed")
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Replay move patterns against a tile merge server",
		ArgsUsage: "[PATTERN ...] (default " + defaultPattern + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "config", Usage: "Configuration for a new session"},
			&cli.IntFlag{Name: "grid-size", Usage: "Board size for a new session (2 to 8)"},
			&cli.StringFlag{Name: "continue", Usage: "Play in an existing session by ID"},
			&cli.IntFlag{Name: "max-moves", Value: 1000, Usage: "Maximum moves per game"},
			&cli.BoolFlag{Name: "skip-blocked", Value: true, Usage: "Pass over directions that would not change the board"},
			&cli.BoolFlag{Name: "single", Usage: "Send one move per request instead of bulk moves"},
			&cli.DurationFlag{Name: "delay", Usage: "Delay between requests"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("v") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			opts := options{
				serverURL:   cmd.String("url"),
				configID:    cmd.String("config"),
				gridSize:    int(cmd.Int("grid-size")),
				sessionID:   cmd.String("continue"),
				patterns:    cmd.Args().Slice(),
				skipBlocked: cmd.Bool("skip-blocked"),
				maxMoves:    int(cmd.Int("max-moves")),
				single:      cmd.Bool("single"),
				delay:       cmd.Duration("delay"),
			}
			if len(opts.patterns) == 0 {
				opts.patterns = []string{defaultPattern}
			}

			_, err := run(ctx, opts, os.Stdout)
			return err
		},
	}
}

// run plays one game per pattern and prints a summary to out.
func run(ctx context.Context, opts options, out io.Writer) ([]GameResult, error) {
	patterns := make([]*Pattern, 0, len(opts.patterns))
	for _, s := range opts.patterns {
		p, err := ParsePattern(s, opts.skipBlocked)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	log.Info().Str("url", opts.serverURL).Msg("connecting to game server")
	client := NewClient(opts.serverURL)

	if opts.sessionID != "" {
		client.UseSession(opts.sessionID)
		if _, err := client.State(ctx); err != nil {
			return nil, fmt.Errorf("resume session %s: %w", opts.sessionID, err)
		}
		log.Info().Str("session", opts.sessionID).Msg("resuming session")
	} else {
		info, err := client.CreateSession(ctx, opts.configID, opts.gridSize)
		if err != nil {
			return nil, err
		}
		log.Info().Str("session", info.ID).Int("grid_size", info.GridSize).Str("config", info.ConfigName).Msg("session created")
	}

	var results []GameResult
	for _, p := range patterns {
		result, err := playGame(ctx, client, p, opts)
		if err != nil {
			return results, fmt.Errorf("pattern %s: %w", p.Name(), err)
		}
		log.Info().
			Str("pattern", result.Pattern).
			Int("moves", result.Moves).
			Int("score", result.Score).
			Int("max_tile", result.MaxTile).
			Bool("game_over", result.GameOver).
			Msg("game finished")
		results = append(results, result)
	}

	printSummary(out, client.SessionID(), results)
	return results, nil
}

// playGame resets the session and replays p until the game ends or the move
// budget runs out.
func playGame(ctx context.Context, client *Client, p *Pattern, opts options) (GameResult, error) {
	if _, err := client.Reset(ctx); err != nil {
		return GameResult{}, err
	}
	p.Reset()

	moves, stuck := 0, false
	for moves < opts.maxMoves && !stuck {
		snap, err := client.Snapshot(ctx)
		if err != nil {
			return GameResult{}, err
		}
		board, err := engine.NewBoardFromCells(snap.Cells, snap.Score)
		if err != nil {
			return GameResult{}, err
		}

		if opts.single {
			dir, ok := p.NextMove(board)
			if !ok {
				stuck = true
				continue
			}
			res, err := client.Move(ctx, dir)
			if err != nil {
				return GameResult{}, err
			}
			moves++
			log.Debug().Str("dir", dir.String()).Bool("moved", res.Moved).Int("score", res.Snapshot.Score).Msg("move")
			if res.GameState != nil && res.GameState.GameOver {
				break
			}
		} else {
			plan := Plan(board, p, min(engine.MaxBulkMoves, opts.maxMoves-moves))
			if len(plan) == 0 {
				stuck = true
				continue
			}
			res, err := client.BulkMove(ctx, plan)
			if err != nil {
				return GameResult{}, err
			}
			moves += res.MovesExecuted
			log.Debug().Int("executed", res.MovesExecuted).Int("score", res.EndScore).Msg("bulk move")
			if res.GameOver {
				break
			}
		}

		if opts.delay > 0 {
			select {
			case <-ctx.Done():
				return GameResult{}, ctx.Err()
			case <-time.After(opts.delay):
			}
		}
	}

	state, err := client.State(ctx)
	if err != nil {
		return GameResult{}, err
	}
	return GameResult{
		Pattern:  p.Name(),
		Moves:    moves,
		Score:    state.Board.Score,
		MaxTile:  state.MaxTile,
		GameOver: state.GameOver,
		Stuck:    stuck && !state.GameOver,
	}, nil
}

// bestResult returns the game with the highest score, the first one on ties.
func bestResult(results []GameResult) GameResult {
	var best GameResult
	for i, r := range results {
		if i == 0 || r.Score > best.Score {
			best = r
		}
	}
	return best
}

func printSummary(w io.Writer, sessionID string, results []GameResult) {
	fmt.Fprintf(w, "\nSession: %s\n", sessionID)
	fmt.Fprintf(w, "%-24s %6s %7s %8s  %s\n", "PATTERN", "MOVES", "SCORE", "MAX TILE", "STATUS")
	for _, r := range results {
		status := "budget reached"
		switch {
		case r.GameOver:
			status = "game over"
		case r.Stuck:
			status = "stuck"
		}
		fmt.Fprintf(w, "%-24s %6d %7d %8d  %s\n", r.Pattern, r.Moves, r.Score, r.MaxTile, status)
	}
	if len(results) > 1 {
		best := bestResult(results)
		fmt.Fprintf(w, "\nBest: %s with %d points (tile %d)\n", best.Pattern, best.Score, best.MaxTile)
	}
}
