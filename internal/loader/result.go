package loader

import (
	"github.com/eugenenazirov/parcel-loader/internal/machine"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
)

// Rejection records why an input block was excluded from loading.
type Rejection struct {
	Block   int
	Lines   []string
	Reasons []string
}

// Result is the outcome of a loading run. Strategies fill Machines and
// Oversized; the processing pipeline adds Input, Invalid and Rejected.
type Result struct {
	Input     []parcel.Parcel
	Invalid   []parcel.Parcel
	Rejected  []Rejection
	Machines  []machine.Machine
	Oversized []parcel.Parcel
}

// Placed returns the number of parcels loaded across all machines.
func (r Result) Placed() int {
	total := 0
	for _, m := range r.Machines {
		total += m.ParcelCount()
	}
	return total
}
