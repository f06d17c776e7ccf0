package engine

import "time"

// refresh recomputes the derived fields of the state from its board
func (gs *GameState) refresh() {
	if gs.Board == nil {
		return
	}
	gs.MaxTile = MaxTile(gs.Board)
	gs.EmptyCells = CountEmpty(gs.Board)
	gs.PossibleMoves = gs.PossibleMoves[:0]
	if gs.GameOver {
		return
	}
	for _, dir := range Directions {
		if CanMove(gs.Board, dir) {
			gs.PossibleMoves = append(gs.PossibleMoves, dir.String())
		}
	}
}

// AddMoveToHistory records a move in both the cumulative and current histories
func (gs *GameState) AddMoveToHistory(entry MoveHistoryEntry) {
	entry.Timestamp = time.Now().Unix()
	entry.MoveNumber = gs.TotalMoves + 1

	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs
	if gs.Board != nil {
		c.Board = gs.Board.Clone()
	}
	c.MoveHistory = cloneHistory(gs.MoveHistory)
	c.CurrentMoves = cloneHistory(gs.CurrentMoves)
	c.PossibleMoves = append([]string(nil), gs.PossibleMoves...)
	return &c
}

func cloneHistory(entries []MoveHistoryEntry) []MoveHistoryEntry {
	out := make([]MoveHistoryEntry, len(entries))
	for i, e := range entries {
		if e.Spawned != nil {
			p := *e.Spawned
			e.Spawned = &p
		}
		out[i] = e
	}
	return out
}
