package engine

import (
	"fmt"
	"strings"
)

// CountEmpty counts the empty cells of the board
func CountEmpty(b *Board) int {
	count := 0
	for _, row := range b.Cells {
		for _, v := range row {
			if v == 0 {
				count++
			}
		}
	}
	return count
}

// EmptyCells lists the empty positions in row-major order
func EmptyCells(b *Board) []Position {
	cells := make([]Position, 0, b.Size*b.Size)
	for r, row := range b.Cells {
		for c, v := range row {
			if v == 0 {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// MaxTile returns the largest tile value on the board
func MaxTile(b *Board) int {
	best := 0
	for _, row := range b.Cells {
		for _, v := range row {
			if v > best {
				best = v
			}
		}
	}
	return best
}

// IsPowerOfTwo reports whether v is a positive power of two
func IsPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

// FormatGrid renders cells as right-aligned columns, "." for empty cells
func FormatGrid(cells [][]int) string {
	width := 1
	for _, row := range cells {
		for _, v := range row {
			if w := len(fmt.Sprint(v)); v != 0 && w > width {
				width = w
			}
		}
	}

	var sb strings.Builder
	for _, row := range cells {
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if v == 0 {
				sb.WriteString(fmt.Sprintf("%*s", width, "."))
			} else {
				sb.WriteString(fmt.Sprintf("%*d", width, v))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
