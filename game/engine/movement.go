package engine

// lineOrigin returns the cell of the given line that touches the destination
// edge for d, plus the row/col step that walks from that edge back into the grid.
// Every line is scanned in that order, so the tile nearest the edge resolves first.
func (d Direction) lineOrigin(line, size int) (row, col, dRow, dCol int) {
	switch d {
	case Up:
		return 0, line, 1, 0
	case Down:
		return size - 1, line, -1, 0
	case Left:
		return line, 0, 0, 1
	default: // Right
		return line, size - 1, 0, -1
	}
}

// ApplyMove slides every tile toward the edge named by dir and merges equal
// neighbours, at most once per pair. The board is mutated in place.
func ApplyMove(b *Board, dir Direction) MoveResult {
	var result MoveResult
	for line := 0; line < b.Size; line++ {
		moved, delta := compactLine(b, dir, line)
		result.Moved = result.Moved || moved
		result.ScoreDelta += delta
	}
	b.Score += result.ScoreDelta
	return result
}

// compactLine resolves one line. Positions are indexed by distance from the
// destination edge, so k-1 is always the neighbour the tile at k moves into.
func compactLine(b *Board, dir Direction, line int) (moved bool, delta int) {
	row, col, dRow, dCol := dir.lineOrigin(line, b.Size)
	at := func(k int) *int {
		return &b.Cells[row+k*dRow][col+k*dCol]
	}

	merged := make([]bool, b.Size)
	for k := 1; k < b.Size; k++ {
		value := *at(k)
		if value == 0 {
			continue
		}

		pos := k
		for pos > 0 && *at(pos - 1) == 0 {
			*at(pos - 1) = value
			*at(pos) = 0
			pos--
			moved = true
		}

		if pos > 0 && *at(pos - 1) == value && !merged[pos-1] {
			*at(pos - 1) = value * 2
			*at(pos) = 0
			merged[pos-1] = true
			delta += value * 2
			moved = true
		}
	}
	return moved, delta
}

// SpawnTile places a new tile in the first empty cell in row-major order.
// It reports where the tile went, or false when the board is full.
func SpawnTile(b *Board) (Position, bool) {
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if b.Cells[r][c] == 0 {
				b.Cells[r][c] = SpawnValue
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// IsTerminal reports whether no move can change the board: no empty cell and
// no horizontally or vertically adjacent equal pair.
func IsTerminal(b *Board) bool {
	if CountEmpty(b) > 0 {
		return false
	}
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			v := b.Cells[r][c]
			if c+1 < b.Size && b.Cells[r][c+1] == v {
				return false
			}
			if r+1 < b.Size && b.Cells[r+1][c] == v {
				return false
			}
		}
	}
	return true
}

// CanMove reports whether dir would change the board, without mutating it
func CanMove(b *Board, dir Direction) bool {
	return ApplyMove(b.Clone(), dir).Moved
}
