// Command analyze prints quick, human-readable heuristics about board
// positions. For each direction it shows whether the move changes the board,
// the points it scores, where the new tile lands and the resulting grid. It
// also reports empty cells, the largest tile and whether the game is over.
//
// Boards come from snapshot files ({"cells": [[...]], "score": N}, as served
// by /api/sessions/{id}/snapshot) or from the --board flag.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// DirectionAnalysis is the outcome of one direction on a copy of the board.
type DirectionAnalysis struct {
	Direction  engine.Direction
	Moved      bool
	ScoreDelta int
	Spawned    *engine.Position
	Result     *engine.Board
	Terminal   bool
}

// BoardAnalysis summarizes a position.
type BoardAnalysis struct {
	Board      *engine.Board
	Empty      int
	MaxTile    int
	Terminal   bool
	Directions []DirectionAnalysis
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze tile merge board positions",
		ArgsUsage: "[snapshot.json ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "board",
				Usage: `Board as JSON rows, e.g. '[[2,2],[4,0]]'`,
			},
			&cli.IntFlag{
				Name:  "score",
				Usage: "Score to start from when using --board",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			if out == nil {
				out = os.Stdout
			}

			if raw := cmd.String("board"); raw != "" {
				var cells [][]int
				if err := json.Unmarshal([]byte(raw), &cells); err != nil {
					return fmt.Errorf("parsing --board: %w", err)
				}
				return analyzeCells(out, "--board", cells, int(cmd.Int("score")))
			}

			if cmd.Args().Len() == 0 {
				return fmt.Errorf("give a --board or at least one snapshot file")
			}
			for _, path := range cmd.Args().Slice() {
				if err := analyzeFile(out, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func analyzeFile(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var snap engine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return analyzeCells(w, path, snap.Cells, snap.Score)
}

func analyzeCells(w io.Writer, label string, cells [][]int, score int) error {
	board, err := engine.NewBoardFromCells(cells, score)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", label)
	printAnalysis(w, Analyze(board))
	return nil
}

// Analyze tries every direction on a copy of b. b is not modified.
func Analyze(b *engine.Board) BoardAnalysis {
	a := BoardAnalysis{
		Board:    b.Clone(),
		Empty:    engine.CountEmpty(b),
		MaxTile:  engine.MaxTile(b),
		Terminal: engine.IsTerminal(b),
	}

	for _, dir := range engine.Directions {
		next := b.Clone()
		res := engine.ApplyMove(next, dir)
		d := DirectionAnalysis{
			Direction:  dir,
			Moved:      res.Moved,
			ScoreDelta: res.ScoreDelta,
			Result:     next,
		}
		if res.Moved {
			if pos, ok := engine.SpawnTile(next); ok {
				d.Spawned = &pos
			}
		}
		d.Terminal = engine.IsTerminal(next)
		a.Directions = append(a.Directions, d)
	}
	return a
}

// Best returns the direction with the highest immediate score among the ones
// that move, preferring the earlier direction on ties. ok is false on a
// terminal board.
func (a BoardAnalysis) Best() (dir engine.Direction, ok bool) {
	bestDelta := -1
	for _, d := range a.Directions {
		if d.Moved && d.ScoreDelta > bestDelta {
			dir, bestDelta, ok = d.Direction, d.ScoreDelta, true
		}
	}
	return dir, ok
}

func printAnalysis(w io.Writer, a BoardAnalysis) {
	fmt.Fprintf(w, "Grid Size: %d x %d\n", a.Board.Size, a.Board.Size)
	fmt.Fprintf(w, "Score: %d\n", a.Board.Score)
	fmt.Fprintf(w, "Max Tile: %d\n", a.MaxTile)
	fmt.Fprintf(w, "Empty Cells: %d\n", a.Empty)
	fmt.Fprint(w, engine.FormatGrid(a.Board.Cells))

	if a.Terminal {
		fmt.Fprintf(w, "💀 GAME OVER: no direction changes the board\n")
		return
	}

	for _, d := range a.Directions {
		if !d.Moved {
			fmt.Fprintf(w, "\n%s: no change\n", d.Direction)
			continue
		}
		fmt.Fprintf(w, "\n%s: +%d", d.Direction, d.ScoreDelta)
		if d.Spawned != nil {
			fmt.Fprintf(w, ", new tile at (%d, %d)", d.Spawned.Row, d.Spawned.Col)
		}
		if d.Terminal {
			fmt.Fprint(w, ", ends the game")
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, engine.FormatGrid(d.Result.Cells))
	}

	if best, ok := a.Best(); ok {
		fmt.Fprintf(w, "\n✅ Highest immediate score: %s\n", best)
	}
}
