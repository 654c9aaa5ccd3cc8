package parcel

import "fmt"

// Validate checks the parcel's internal consistency and returns every violation found.
// An empty result means the parcel is valid.
func Validate(p Parcel) []error {
	var errs []error

	if p.symbol == 0 {
		errs = append(errs, ErrMissingSymbol)
	}

	for i := 1; i < len(p.grid); i++ {
		if got := len(p.grid[i]); got != p.width {
			errs = append(errs, fmt.Errorf("%w: row %d has width %d, expected %d", ErrRaggedRow, i+1, got, p.width))
		}
	}

	if p.height == 0 || p.width == 0 {
		return append(errs, fmt.Errorf("%w: zero size", ErrEmpty))
	}

	startRow, startCol, ok := firstOccupied(p.grid)
	if !ok {
		return append(errs, fmt.Errorf("%w: no filled cells", ErrEmpty))
	}

	total := p.CellCount()
	if reached := floodFill(p.grid, startRow, startCol); reached != total {
		errs = append(errs, fmt.Errorf("%w: %d filled cells, only %d reachable", ErrDisconnected, total, reached))
	}

	return errs
}

func firstOccupied(grid [][]bool) (int, int, bool) {
	for i, row := range grid {
		for j, filled := range row {
			if filled {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// floodFill counts filled cells reachable from (row, col) through up/down/left/right steps.
// Bounds are checked per row so ragged masks are safe.
func floodFill(grid [][]bool, row, col int) int {
	visited := make([][]bool, len(grid))
	for i := range grid {
		visited[i] = make([]bool, len(grid[i]))
	}

	type point struct{ row, col int }
	stack := []point{{row, col}}
	visited[row][col] = true
	count := 0

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		for _, next := range [4]point{
			{cur.row - 1, cur.col},
			{cur.row + 1, cur.col},
			{cur.row, cur.col - 1},
			{cur.row, cur.col + 1},
		} {
			if next.row < 0 || next.row >= len(grid) {
				continue
			}
			if next.col < 0 || next.col >= len(grid[next.row]) {
				continue
			}
			if !grid[next.row][next.col] || visited[next.row][next.col] {
				continue
			}
			visited[next.row][next.col] = true
			stack = append(stack, next)
		}
	}

	return count
}
