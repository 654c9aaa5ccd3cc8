package report

import (
	"fmt"
	"image/color"

	"github.com/eugenenazirov/parcel-loader/internal/machine"
)

// palette colours placements by their order inside a machine.
var palette = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 255},  // green
	{R: 33, G: 150, B: 243, A: 255}, // blue
	{R: 255, G: 152, B: 0, A: 255},  // orange
	{R: 156, G: 39, B: 176, A: 255}, // purple
	{R: 0, G: 188, B: 212, A: 255},  // cyan
	{R: 244, G: 67, B: 54, A: 255},  // red
	{R: 255, G: 235, B: 59, A: 255}, // yellow
	{R: 121, G: 85, B: 72, A: 255},  // brown
}

var emptyCell = color.NRGBA{R: 245, G: 245, B: 245, A: 255}

func placementColor(i int) color.NRGBA {
	return palette[i%len(palette)]
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// cellOwners maps every occupied cell of m to the index of the placement covering it.
func cellOwners(m machine.Machine) map[machine.Point]int {
	owners := make(map[machine.Point]int, m.OccupiedCount())
	for i, pl := range m.Placements() {
		for _, c := range pl.Cells() {
			owners[c] = i
		}
	}
	return owners
}
