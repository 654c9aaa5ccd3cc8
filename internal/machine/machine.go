package machine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/eugenenazirov/parcel-loader/internal/parcel"
)

const (
	// Width is the number of columns in every machine body.
	Width = 6
	// Height is the number of rows in every machine body.
	Height = 6
)

// Point is a cell position inside a machine, origin bottom-left, y growing upward.
type Point struct {
	X int
	Y int
}

// Placement is a parcel anchored by its bottom-left corner.
type Placement struct {
	Parcel parcel.Parcel
	X      int
	Y      int
}

// MaxX returns the rightmost column covered by the placement's bounding box.
func (p Placement) MaxX() int {
	return p.X + p.Parcel.Width() - 1
}

// MaxY returns the topmost row covered by the placement's bounding box.
func (p Placement) MaxY() int {
	return p.Y + p.Parcel.Height() - 1
}

// Cells returns the occupied cells of the placement in machine coordinates.
func (p Placement) Cells() []Point {
	cells := p.Parcel.Cells()
	out := make([]Point, len(cells))
	for i, c := range cells {
		out[i] = Point{X: p.X + c.X, Y: p.Y + c.Y}
	}
	return out
}

// Machine is a fixed-size loading area. It is a value: Place returns a new
// Machine and never modifies the receiver.
type Machine struct {
	grid       [Height][Width]rune
	placements []Placement
}

// New returns an empty machine.
func New() Machine {
	return Machine{}
}

func (m Machine) Width() int  { return Width }
func (m Machine) Height() int { return Height }

// Cell returns the symbol stored at x, y, or zero when the cell is empty or out of bounds.
func (m Machine) Cell(x, y int) rune {
	if !inBounds(x, y) {
		return 0
	}
	return m.grid[y][x]
}

// Occupied reports whether the cell at x, y holds a parcel.
func (m Machine) Occupied(x, y int) bool {
	return m.Cell(x, y) != 0
}

// Collides reports whether placing p with its bottom-left corner at x, y would
// leave the machine or overlap an occupied cell.
func (m Machine) Collides(p parcel.Parcel, x, y int) bool {
	if x < 0 || y < 0 || x+p.Width() > Width || y+p.Height() > Height {
		return true
	}
	for _, c := range p.Cells() {
		cx, cy := x+c.X, y+c.Y
		if !inBounds(cx, cy) || m.grid[cy][cx] != 0 {
			return true
		}
	}
	return false
}

// Place returns a copy of the machine with p stamped at x, y. The receiver is
// left unchanged. Callers are expected to have checked Collides first; a
// collision here is reported as ErrPlacement.
func (m Machine) Place(p parcel.Parcel, x, y int) (Machine, error) {
	if m.Collides(p, x, y) {
		return m, fmt.Errorf("%w: parcel %q %dx%d at (%d,%d)", ErrPlacement, p.Symbol(), p.Width(), p.Height(), x, y)
	}

	next := Machine{
		grid:       m.grid,
		placements: append(slices.Clone(m.placements), Placement{Parcel: p, X: x, Y: y}),
	}
	symbol := p.Symbol()
	for _, c := range p.Cells() {
		next.grid[y+c.Y][x+c.X] = symbol
	}

	return next, nil
}

// Placements returns a copy of the placements in the order they were made.
func (m Machine) Placements() []Placement {
	return slices.Clone(m.placements)
}

// ParcelCount returns the number of parcels loaded.
func (m Machine) ParcelCount() int {
	return len(m.placements)
}

// OccupiedCount returns the number of filled cells.
func (m Machine) OccupiedCount() int {
	count := 0
	for y := range m.grid {
		for x := range m.grid[y] {
			if m.grid[y][x] != 0 {
				count++
			}
		}
	}
	return count
}

// FillRatio returns the share of the machine's area that is occupied.
func (m Machine) FillRatio() float64 {
	return float64(m.OccupiedCount()) / float64(Width*Height)
}

// Rows renders the grid top row first with empty cells as spaces.
func (m Machine) Rows() []string {
	rows := make([]string, 0, Height)
	for y := Height - 1; y >= 0; y-- {
		var b strings.Builder
		for x := 0; x < Width; x++ {
			if r := m.grid[y][x]; r != 0 {
				b.WriteRune(r)
			} else {
				b.WriteByte(' ')
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}

func (m Machine) String() string {
	return fmt.Sprintf("Machine{parcels=%d, size=%dx%d}", len(m.placements), Width, Height)
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}
