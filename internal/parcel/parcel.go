package parcel

import (
	"slices"
	"strings"
	"unicode"
)

// Cell is an occupied cell offset from a parcel's bottom-left corner, y growing upward.
type Cell struct {
	X int
	Y int
}

// Parcel is an immutable occupancy mask with a single fill symbol.
// Row 0 of the mask is the top line as written; row Height()-1 is the bottom row.
type Parcel struct {
	grid   [][]bool
	symbol rune
	width  int
	height int
}

// New builds a parcel from a mask and a symbol. The mask is copied.
// Width is taken from the first row so ragged masks stay detectable by Validate.
func New(grid [][]bool, symbol rune) Parcel {
	p := Parcel{
		grid:   cloneGrid(grid),
		symbol: symbol,
		height: len(grid),
	}
	if len(grid) > 0 {
		p.width = len(grid[0])
	}
	return p
}

// FromLines derives a parcel from text rows: any non-whitespace rune marks an occupied cell
// and the first one encountered in row-major order becomes the symbol.
func FromLines(lines []string) Parcel {
	grid := make([][]bool, len(lines))
	var symbol rune
	for i, line := range lines {
		runes := []rune(line)
		row := make([]bool, len(runes))
		for j, r := range runes {
			if unicode.IsSpace(r) {
				continue
			}
			row[j] = true
			if symbol == 0 {
				symbol = r
			}
		}
		grid[i] = row
	}

	p := Parcel{grid: grid, symbol: symbol, height: len(grid)}
	if len(grid) > 0 {
		p.width = len(grid[0])
	}
	return p
}

func (p Parcel) Width() int   { return p.width }
func (p Parcel) Height() int  { return p.height }
func (p Parcel) Symbol() rune { return p.symbol }

// Occupied reports whether the mask cell at row, col is filled. Out of range is empty.
func (p Parcel) Occupied(row, col int) bool {
	if row < 0 || row >= len(p.grid) {
		return false
	}
	if col < 0 || col >= len(p.grid[row]) {
		return false
	}
	return p.grid[row][col]
}

// Grid returns a deep copy of the mask.
func (p Parcel) Grid() [][]bool {
	return cloneGrid(p.grid)
}

// BottomRow returns a copy of the lowest row of the mask, or nil for an empty parcel.
func (p Parcel) BottomRow() []bool {
	if p.height == 0 {
		return nil
	}
	return slices.Clone(p.grid[p.height-1])
}

// CellCount returns the number of occupied cells.
func (p Parcel) CellCount() int {
	count := 0
	for _, row := range p.grid {
		for _, filled := range row {
			if filled {
				count++
			}
		}
	}
	return count
}

// Cells lists occupied cells relative to the bottom-left anchor.
func (p Parcel) Cells() []Cell {
	cells := make([]Cell, 0, p.CellCount())
	for row := p.height - 1; row >= 0; row-- {
		for col, filled := range p.grid[row] {
			if filled {
				cells = append(cells, Cell{X: col, Y: p.height - 1 - row})
			}
		}
	}
	return cells
}

// Fits reports whether the parcel's bounding box fits within width x height.
func (p Parcel) Fits(width, height int) bool {
	return p.width <= width && p.height <= height
}

// Lines renders the mask top row first, empty cells as spaces.
func (p Parcel) Lines() []string {
	symbol := p.symbol
	if symbol == 0 {
		symbol = '?'
	}
	lines := make([]string, 0, p.height)
	for _, row := range p.grid {
		var b strings.Builder
		for _, filled := range row {
			if filled {
				b.WriteRune(symbol)
			} else {
				b.WriteByte(' ')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

func (p Parcel) String() string {
	return strings.Join(p.Lines(), "\n")
}

// Equal reports structural equality of mask, symbol and dimensions.
func (p Parcel) Equal(other Parcel) bool {
	if p.width != other.width || p.height != other.height || p.symbol != other.symbol {
		return false
	}
	return slices.EqualFunc(p.grid, other.grid, func(a, b []bool) bool {
		return slices.Equal(a, b)
	})
}

func cloneGrid(grid [][]bool) [][]bool {
	out := make([][]bool, len(grid))
	for i, row := range grid {
		out[i] = slices.Clone(row)
	}
	return out
}
