package report

import (
	"fmt"
	"strings"

	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/machine"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
)

const (
	wideRule   = 60
	narrowRule = 30
)

// Text renders r as a console report: statistics, machine diagrams framed by
// '+' with the top row first, placement details and the problem parcels.
func Text(r loader.Result) string {
	var b strings.Builder
	s := Summarize(r)

	rule(&b, '=', wideRule)
	b.WriteString("PARCEL LOADING REPORT\n")
	rule(&b, '=', wideRule)

	b.WriteString("\nSTATISTICS:\n")
	fmt.Fprintf(&b, "Parcels read: %d\n", s.Input)
	fmt.Fprintf(&b, "Rejected blocks: %d\n", s.Rejected)
	fmt.Fprintf(&b, "Failed validation: %d\n", s.Invalid)
	fmt.Fprintf(&b, "Too large for a machine: %d\n", s.Oversized)
	fmt.Fprintf(&b, "Loaded: %d\n", s.Placed)
	fmt.Fprintf(&b, "Machines used: %d\n", s.Machines)

	if len(r.Machines) > 0 {
		b.WriteString("\n")
		rule(&b, '=', 40)
		b.WriteString("MACHINES:\n")
		for i, m := range r.Machines {
			writeMachine(&b, i+1, m)
		}
	}

	if len(r.Rejected) > 0 {
		b.WriteString("\n")
		rule(&b, '=', 40)
		b.WriteString("REJECTED BLOCKS:\n")
		for _, rej := range r.Rejected {
			fmt.Fprintf(&b, "Block #%d\n", rej.Block)
			for _, line := range rej.Lines {
				b.WriteString(line + "\n")
			}
			for _, reason := range rej.Reasons {
				b.WriteString("  - " + reason + "\n")
			}
		}
	}

	writeParcels(&b, "INVALID PARCELS:", r.Invalid)
	writeParcels(&b, "PARCELS TOO LARGE FOR A MACHINE:", r.Oversized)

	rule(&b, '=', wideRule)
	return b.String()
}

// Diagram frames the machine grid with '+', top row first.
func Diagram(m machine.Machine) string {
	var b strings.Builder
	border := strings.Repeat("+", machine.Width+2)
	b.WriteString(border + "\n")
	for _, row := range m.Rows() {
		b.WriteString("+" + row + "+\n")
	}
	b.WriteString(border)
	return b.String()
}

func writeMachine(b *strings.Builder, index int, m machine.Machine) {
	b.WriteString("\n")
	rule(b, '-', narrowRule)
	fmt.Fprintf(b, "Machine #%d\n", index)
	rule(b, '-', narrowRule)
	b.WriteString(Diagram(m) + "\n\n")

	placements := m.Placements()
	fmt.Fprintf(b, "Parcels loaded: %d (fill %.1f%%)\n", len(placements), m.FillRatio()*100)
	for _, pl := range placements {
		fmt.Fprintf(b, "parcel '%c' [%dx%d] at (%d,%d)-(%d,%d)\n",
			pl.Parcel.Symbol(), pl.Parcel.Width(), pl.Parcel.Height(), pl.X, pl.Y, pl.MaxX(), pl.MaxY())
		b.WriteString(pl.Parcel.String() + "\n")
		rule(b, '-', narrowRule)
	}
}

func writeParcels(b *strings.Builder, title string, parcels []parcel.Parcel) {
	if len(parcels) == 0 {
		return
	}
	b.WriteString("\n")
	rule(b, '=', 40)
	b.WriteString(title + "\n")
	for _, p := range parcels {
		fmt.Fprintf(b, "parcel '%c' [%dx%d]\n", p.Symbol(), p.Width(), p.Height())
		b.WriteString(p.String() + "\n")
		rule(b, '-', narrowRule)
	}
}

func rule(b *strings.Builder, c byte, n int) {
	b.WriteString(strings.Repeat(string(c), n) + "\n")
}
