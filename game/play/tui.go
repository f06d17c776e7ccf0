package play

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

const (
	tileWidth  = 7
	tileHeight = 3
	boardTop   = 2
	boardLeft  = 2
)

var (
	tilePalette = map[int]tcell.Color{
		2:    tcell.NewHexColor(0xeee4da),
		4:    tcell.NewHexColor(0xede0c8),
		8:    tcell.NewHexColor(0xf2b179),
		16:   tcell.NewHexColor(0xf59563),
		32:   tcell.NewHexColor(0xf67c5f),
		64:   tcell.NewHexColor(0xf65e3b),
		128:  tcell.NewHexColor(0xedcf72),
		256:  tcell.NewHexColor(0xedcc61),
		512:  tcell.NewHexColor(0xedc850),
		1024: tcell.NewHexColor(0xedc53f),
		2048: tcell.NewHexColor(0xedc22e),
	}
	emptyTileColor = tcell.NewHexColor(0xcdc1b4)
	darkText       = tcell.NewHexColor(0x776e65)
	lightText      = tcell.NewHexColor(0xf9f6f2)
)

// TileColor returns the background colour for a tile value
func TileColor(value int) tcell.Color {
	if c, ok := tilePalette[value]; ok {
		return c
	}
	return emptyTileColor
}

func tileStyle(value int) tcell.Style {
	fg := lightText
	if value == 2 || value == 4 {
		fg = darkText
	}
	return tcell.StyleDefault.Background(TileColor(value)).Foreground(fg).Bold(value != 0)
}

// tui keeps what the screen shows between events
type tui struct {
	screen tcell.Screen
	orch   *Orchestrator
	snap   engine.Snapshot
	input  string
}

func (t *tui) Render(snap engine.Snapshot) {
	t.snap = snap
}

// RunTUI plays on an initialised screen until the player quits with q, Esc or
// Ctrl-C, or declines another game. The caller owns Init and Fini.
func RunTUI(screen tcell.Screen, cfg *engine.GameConfig) error {
	t := &tui{screen: screen}
	o, err := NewOrchestrator(cfg, t)
	if err != nil {
		return err
	}
	t.orch = o
	t.draw()

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if t.handleKey(ev) {
				return nil
			}
		}
		if o.Phase() == engine.PhaseEnded {
			return nil
		}
		t.draw()
	}
}

// handleKey reports whether the player asked to leave
func (t *tui) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	}

	switch t.orch.Phase() {
	case engine.PhaseAwaitingSize:
		switch ev.Key() {
		case tcell.KeyEnter:
			t.orch.SubmitSize(t.input)
			t.input = ""
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(t.input) > 0 {
				t.input = t.input[:len(t.input)-1]
			}
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
			if len(t.input) < 2 {
				t.input += string(ev.Rune())
			}
		}

	case engine.PhasePlaying:
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return true
		}
		if dir, ok := keyDirection(ev); ok {
			_, _ = t.orch.Command(dir)
		}

	case engine.PhaseTerminal:
		if ev.Key() != tcell.KeyRune {
			return false
		}
		switch ev.Rune() {
		case 'y', 'Y':
			_ = t.orch.Decide(true)
		case 'n', 'N', 'q':
			_ = t.orch.Decide(false)
		}
	}
	return false
}

func keyDirection(ev *tcell.EventKey) (engine.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return engine.Up, true
	case tcell.KeyDown:
		return engine.Down, true
	case tcell.KeyLeft:
		return engine.Left, true
	case tcell.KeyRight:
		return engine.Right, true
	case tcell.KeyRune:
		dir, err := engine.ParseDirection(string(ev.Rune()))
		return dir, err == nil
	}
	return 0, false
}

func (t *tui) draw() {
	t.screen.Clear()
	text := tcell.StyleDefault

	switch t.orch.Phase() {
	case engine.PhaseAwaitingSize:
		msgs := t.orch.Messages()
		t.print(0, 0, text, msgs.SizePrompt+t.input)
		if msg := t.orch.Message(); msg != msgs.SizePrompt {
			t.print(0, 1, text.Foreground(tcell.ColorRed), msg)
		}
		t.print(0, 3, text.Dim(true), "Enter to confirm, q to quit")

	default:
		t.print(0, 0, text.Bold(true), fmt.Sprintf("Score: %d", t.snap.Score))
		bottom := t.drawBoard()
		t.print(0, bottom+1, text, t.orch.Message())
		if t.orch.Phase() == engine.PhaseTerminal {
			t.print(0, bottom+2, text, t.orch.Messages().PlayAgain+" (y/n)")
		} else {
			t.print(0, bottom+2, text.Dim(true), "Arrows or W/A/S/D to move, q to quit")
		}
	}
	t.screen.Show()
}

// drawBoard paints the tiles and returns the first row below the board
func (t *tui) drawBoard() int {
	for r, row := range t.snap.Cells {
		for c, v := range row {
			x := boardLeft + c*(tileWidth+1)
			y := boardTop + r*(tileHeight+1)
			style := tileStyle(v)
			for dy := 0; dy < tileHeight; dy++ {
				for dx := 0; dx < tileWidth; dx++ {
					t.screen.SetContent(x+dx, y+dy, ' ', nil, style)
				}
			}
			if v != 0 {
				label := strconv.Itoa(v)
				t.print(x+(tileWidth-len(label))/2, y+tileHeight/2, style, label)
			}
		}
	}
	return boardTop + len(t.snap.Cells)*(tileHeight+1)
}

func (t *tui) print(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
