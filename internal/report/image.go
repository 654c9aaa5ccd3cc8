package report

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/machine"
)

// DefaultCellSize is the edge length in pixels of one machine cell in PNG output.
const DefaultCellSize = 32

// MachineImage draws m with each placement in its own colour. Image row 0 is
// the top machine row. Cells are separated by a one pixel gap.
func MachineImage(m machine.Machine, cellSize int) *image.NRGBA {
	if cellSize < 2 {
		cellSize = 2
	}

	img := imaging.New(machine.Width*cellSize, machine.Height*cellSize, emptyCell)
	owners := cellOwners(m)

	for pt, owner := range owners {
		tile := imaging.New(cellSize-1, cellSize-1, placementColor(owner))
		at := image.Pt(pt.X*cellSize, (machine.Height-1-pt.Y)*cellSize)
		img = imaging.Paste(img, tile, at)
	}

	return img
}

// SavePNGs writes one machine-N.png per machine into dir and returns the paths.
func SavePNGs(dir string, r loader.Result, cellSize int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(r.Machines))
	for i, m := range r.Machines {
		path := filepath.Join(dir, fmt.Sprintf("machine-%d.png", i+1))
		if err := imaging.Save(MachineImage(m, cellSize), path); err != nil {
			return nil, fmt.Errorf("save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
