package main

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// Pattern replays a fixed cycle of directions.
type Pattern struct {
	name        string
	dirs        []engine.Direction
	skipBlocked bool
	next        int
}

// ParsePattern reads a comma separated list of directions ("up,left" or
// "w,a"). With skipBlocked, directions that would not change the board are
// passed over instead of being sent as no-op moves.
func ParsePattern(s string, skipBlocked bool) (*Pattern, error) {
	var dirs []engine.Direction
	var names []string
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		dir, err := engine.ParseDirection(part)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, dir)
		names = append(names, dir.String())
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("empty pattern %q", s)
	}
	return &Pattern{
		name:        strings.Join(names, ","),
		dirs:        dirs,
		skipBlocked: skipBlocked,
	}, nil
}

func (p *Pattern) Name() string { return p.name }

// NextMove returns the next direction of the cycle. ok is false once the
// board is terminal, or when skipping blocked directions leaves none.
func (p *Pattern) NextMove(b *engine.Board) (dir engine.Direction, ok bool) {
	if engine.IsTerminal(b) {
		return 0, false
	}
	if !p.skipBlocked {
		dir = p.dirs[p.next]
		p.next = (p.next + 1) % len(p.dirs)
		return dir, true
	}
	for i := 0; i < len(p.dirs); i++ {
		dir = p.dirs[(p.next+i)%len(p.dirs)]
		if engine.CanMove(b, dir) {
			p.next = (p.next + i + 1) % len(p.dirs)
			return dir, true
		}
	}
	return 0, false
}

// Reset restarts the cycle at its first direction.
func (p *Pattern) Reset() {
	p.next = 0
}

// simulate applies dir to a copy of b, spawning the follow-up tile like the
// engine does.
func simulate(b *engine.Board, dir engine.Direction) *engine.Board {
	next := b.Clone()
	if engine.ApplyMove(next, dir).Moved {
		engine.SpawnTile(next)
	}
	return next
}

// Plan expands p on a copy of b into at most max moves. Spawns are
// deterministic, so the server ends up on the same board.
func Plan(b *engine.Board, p *Pattern, max int) []engine.Direction {
	var moves []engine.Direction
	board := b.Clone()
	for len(moves) < max {
		dir, ok := p.NextMove(board)
		if !ok {
			break
		}
		board = simulate(board, dir)
		moves = append(moves, dir)
	}
	return moves
}
