package play

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	s.SetSize(60, 24)
	t.Cleanup(s.Fini)
	return s
}

func injectRunes(s tcell.SimulationScreen, runes string) {
	for _, r := range runes {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func screenRow(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func screenText(s tcell.SimulationScreen) string {
	_, _, h := s.GetContents()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = screenRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestRunTUIRejectsBadSize(t *testing.T) {
	s := newSimScreen(t)
	injectRunes(s, "9")
	s.InjectKey(tcell.KeyEnter, '\r', tcell.ModNone)
	injectRunes(s, "q")

	if err := RunTUI(s, nil); err != nil {
		t.Fatalf("RunTUI failed: %v", err)
	}
	if got := screenRow(s, 1); got != "Error: Please enter a valid number between 2 and 8." {
		t.Errorf("Unexpected error row %q", got)
	}
	if got := screenRow(s, 0); got != "Enter grid size (2 to 8):" {
		t.Errorf("Expected an empty prompt after a rejected size, got %q", got)
	}
}

func TestRunTUIRetriesSizeAfterError(t *testing.T) {
	s := newSimScreen(t)
	injectRunes(s, "9")
	s.InjectKey(tcell.KeyEnter, '\r', tcell.ModNone)
	injectRunes(s, "3")
	s.InjectKey(tcell.KeyEnter, '\r', tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	if err := RunTUI(s, nil); err != nil {
		t.Fatalf("RunTUI failed: %v", err)
	}
	if got := screenRow(s, 0); got != "Score: 0" {
		t.Errorf("Expected a 3x3 game after retyping the size, score row %q", got)
	}
	// a third row of (empty) tiles is painted
	cells, w, _ := s.GetContents()
	_, bg, _ := cells[(boardTop+2*(tileHeight+1))*w+boardLeft].Style.Decompose()
	if bg != TileColor(0) {
		t.Errorf("Expected a third row of tiles")
	}
}

func TestRunTUIPlaysToGameOver(t *testing.T) {
	s := newSimScreen(t)
	injectRunes(s, "2")
	s.InjectKey(tcell.KeyEnter, '\r', tcell.ModNone)
	s.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	injectRunes(s, "ad")
	s.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	if err := RunTUI(s, nil); err != nil {
		t.Fatalf("RunTUI failed: %v", err)
	}

	text := screenText(s)
	if got := screenRow(s, 0); got != "Score: 8" {
		t.Errorf("Unexpected score row %q", got)
	}
	if !strings.Contains(text, "Game Over! Your score: 8") {
		t.Errorf("Expected game over text, screen:\n%s", text)
	}
	if !strings.Contains(text, "Do you want to play again? (y/n)") {
		t.Errorf("Expected play-again question, screen:\n%s", text)
	}

	// [[4,2],[2,4]]: labels sit on the middle row of each tile
	labelRow := boardTop + tileHeight/2
	if got := screenRow(s, labelRow); !strings.Contains(got, "4") || !strings.Contains(got, "2") {
		t.Errorf("Unexpected first tile row %q", got)
	}

	cells, w, _ := s.GetContents()
	_, bg, _ := cells[boardTop*w+boardLeft].Style.Decompose()
	if bg != TileColor(4) {
		t.Errorf("Expected the top-left tile painted with the colour of 4")
	}
}

func TestRunTUIPlayAgain(t *testing.T) {
	s := newSimScreen(t)
	injectRunes(s, "2")
	s.InjectKey(tcell.KeyEnter, '\r', tcell.ModNone)
	injectRunes(s, "aadsy")
	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)

	if err := RunTUI(s, nil); err != nil {
		t.Fatalf("RunTUI failed: %v", err)
	}
	if got := screenRow(s, 0); got != "Score: 0" {
		t.Errorf("Expected a fresh game after y, score row %q", got)
	}
}

func TestTileColor(t *testing.T) {
	if TileColor(2048) != tcell.NewHexColor(0xedc22e) {
		t.Error("Unexpected colour for 2048")
	}
	if TileColor(0) != TileColor(4096) {
		t.Error("Empty and unknown values should share the default colour")
	}
	if TileColor(2) == TileColor(4) {
		t.Error("Expected distinct colours for 2 and 4")
	}
}
