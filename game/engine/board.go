package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateGridSize checks that size lies in [MinGridSize, MaxGridSize]
func ValidateGridSize(size int) error {
	if size < MinGridSize || size > MaxGridSize {
		return fmt.Errorf("%w: must be between %d and %d, got %d", ErrInvalidSize, MinGridSize, MaxGridSize, size)
	}
	return nil
}

// ParseGridSize parses console or query input into a valid grid size
func ParseGridSize(input string) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}
	if err := ValidateGridSize(size); err != nil {
		return 0, err
	}
	return size, nil
}

// NewBoard creates a seeded board: value 2 at (0,0) and (1,1), score 0
func NewBoard(size int) (*Board, error) {
	if err := ValidateGridSize(size); err != nil {
		return nil, err
	}

	b := &Board{
		Size:  size,
		Cells: make([][]int, size),
	}
	for i := range b.Cells {
		b.Cells[i] = make([]int, size)
	}

	b.Cells[0][0] = SeedValue
	b.Cells[1][1] = SeedValue
	return b, nil
}

// NewBoardFromCells builds a board from an existing grid, checking every invariant
// except the score one (which depends on history the grid doesn't carry).
func NewBoardFromCells(cells [][]int, score int) (*Board, error) {
	b := &Board{
		Size:  len(cells),
		Cells: copyCells(cells),
		Score: score,
	}
	if err := ValidateBoard(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ValidateBoard checks the structural invariants of a board
func ValidateBoard(b *Board) error {
	if b == nil {
		return fmt.Errorf("%w: board is nil", ErrInvalidBoard)
	}
	if err := ValidateGridSize(b.Size); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	if len(b.Cells) != b.Size {
		return fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, b.Size, len(b.Cells))
	}
	for r, row := range b.Cells {
		if len(row) != b.Size {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidBoard, r, len(row), b.Size)
		}
		for c, v := range row {
			if v != 0 && (v < 2 || !IsPowerOfTwo(v)) {
				return fmt.Errorf("%w: cell (%d,%d) holds %d, not a power of two", ErrInvalidBoard, r, c, v)
			}
		}
	}
	if b.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidBoard, b.Score)
	}
	return nil
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	return &Board{
		Size:  b.Size,
		Cells: copyCells(b.Cells),
		Score: b.Score,
	}
}

// Snapshot returns the renderer view of the board
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Cells: copyCells(b.Cells),
		Score: b.Score,
	}
}

// Get returns the value at row,col
func (b *Board) Get(row, col int) int {
	return b.Cells[row][col]
}

// Equal reports whether both boards hold the same cells and score
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.Size != other.Size || b.Score != other.Score {
		return false
	}
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c] != other.Cells[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the board as text
func (b *Board) String() string {
	return FormatGrid(b.Cells)
}

func copyCells(cells [][]int) [][]int {
	out := make([][]int, len(cells))
	for i, row := range cells {
		out[i] = append([]int(nil), row...)
	}
	return out
}
