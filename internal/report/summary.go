package report

import (
	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/machine"
)

// Summary holds the headline numbers of a loading run.
type Summary struct {
	Input     int `json:"input"`
	Invalid   int `json:"invalid"`
	Rejected  int `json:"rejected"`
	Oversized int `json:"oversized"`
	Placed    int `json:"placed"`
	Machines  int `json:"machines"`
}

// PlacementInfo describes one loaded parcel.
type PlacementInfo struct {
	Symbol string   `json:"symbol"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
	MaxX   int      `json:"max_x"`
	MaxY   int      `json:"max_y"`
	Lines  []string `json:"lines"`
}

// MachineInfo describes one loaded machine. Rows are listed top row first.
type MachineInfo struct {
	Index      int             `json:"machine"`
	Parcels    int             `json:"parcels"`
	FillRatio  float64         `json:"fill_ratio"`
	Rows       []string        `json:"rows"`
	Placements []PlacementInfo `json:"placements"`
}

// Summarize counts the outcome of r.
func Summarize(r loader.Result) Summary {
	return Summary{
		Input:     len(r.Input),
		Invalid:   len(r.Invalid),
		Rejected:  len(r.Rejected),
		Oversized: len(r.Oversized),
		Placed:    r.Placed(),
		Machines:  len(r.Machines),
	}
}

// Machines describes every machine of r, numbered from 1.
func Machines(r loader.Result) []MachineInfo {
	out := make([]MachineInfo, len(r.Machines))
	for i, m := range r.Machines {
		out[i] = describeMachine(i+1, m)
	}
	return out
}

func describeMachine(index int, m machine.Machine) MachineInfo {
	placements := m.Placements()
	info := MachineInfo{
		Index:      index,
		Parcels:    len(placements),
		FillRatio:  m.FillRatio(),
		Rows:       m.Rows(),
		Placements: make([]PlacementInfo, len(placements)),
	}
	for i, pl := range placements {
		info.Placements[i] = PlacementInfo{
			Symbol: string(pl.Parcel.Symbol()),
			Width:  pl.Parcel.Width(),
			Height: pl.Parcel.Height(),
			X:      pl.X,
			Y:      pl.Y,
			MaxX:   pl.MaxX(),
			MaxY:   pl.MaxY(),
			Lines:  pl.Parcel.Lines(),
		}
	}
	return info
}
