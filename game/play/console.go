package play

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// consoleRenderer prints the score line and the grid
type consoleRenderer struct {
	out io.Writer
}

func (r consoleRenderer) Render(snap engine.Snapshot) {
	fmt.Fprintf(r.out, "Score: %d\n%s", snap.Score, engine.FormatGrid(snap.Cells))
}

// RunConsole plays line by line: a grid size first, then one direction per
// line (w/a/s/d or up/left/down/right), "q" to quit. It returns when the
// player declines another game, input runs out or ctx is done.
func RunConsole(ctx context.Context, in io.Reader, out io.Writer, cfg *engine.GameConfig) error {
	o, err := NewOrchestrator(cfg, consoleRenderer{out: out})
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, o.Message())

	for o.Phase() != engine.PhaseEnded {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch o.Phase() {
		case engine.PhaseAwaitingSize:
			if err := o.SubmitSize(line); err != nil {
				fmt.Fprintln(out, o.Message())
				fmt.Fprint(out, o.Messages().SizePrompt)
				continue
			}
			fmt.Fprintln(out, o.Message())

		case engine.PhasePlaying:
			if isQuit(line) {
				return nil
			}
			dir, err := engine.ParseDirection(line)
			if err != nil {
				continue
			}
			result, err := o.Command(dir)
			if err != nil {
				return err
			}
			if !result.Moved {
				fmt.Fprintln(out, o.Message())
			}
			if o.Phase() == engine.PhaseTerminal {
				fmt.Fprintln(out, o.Message())
				fmt.Fprintf(out, "%s (y/n): ", o.Messages().PlayAgain)
			}

		case engine.PhaseTerminal:
			answer, ok := parseYesNo(line)
			if !ok {
				fmt.Fprintf(out, "%s (y/n): ", o.Messages().PlayAgain)
				continue
			}
			if err := o.Decide(answer); err != nil {
				return err
			}
			if answer {
				fmt.Fprintln(out, o.Message())
			}
		}
	}
	return nil
}

func isQuit(line string) bool {
	switch strings.ToLower(line) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

func parseYesNo(line string) (bool, bool) {
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}
