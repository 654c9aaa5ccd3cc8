package loader

import (
	"fmt"
	"strings"

	"github.com/eugenenazirov/parcel-loader/internal/machine"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
)

// HasSupport reports whether p anchored at x, y rests on enough filled cells.
// A parcel on the floor is always supported. Otherwise strictly more than half of
// the occupied cells in its bottom row must sit on occupied cells of row y-1.
func HasSupport(m machine.Machine, p parcel.Parcel, x, y int) bool {
	if y == 0 {
		return true
	}
	supported, total := countSupport(m, p, x, y)
	if total == 0 {
		return true
	}
	return supported >= requiredSupport(total)
}

// DescribeSupport explains the support decision for debug logging.
func DescribeSupport(m machine.Machine, p parcel.Parcel, x, y int) string {
	if y == 0 {
		return "on the floor"
	}

	var cells strings.Builder
	for i, filled := range p.BottomRow() {
		if !filled {
			continue
		}
		state := "no"
		if m.Occupied(x+i, y-1) {
			state = "yes"
		}
		fmt.Fprintf(&cells, " [%d:%s]", i, state)
	}

	supported, total := countSupport(m, p, x, y)
	return fmt.Sprintf("support %d/%d (need %d)%s", supported, total, requiredSupport(total), cells.String())
}

func countSupport(m machine.Machine, p parcel.Parcel, x, y int) (supported, total int) {
	for i, filled := range p.BottomRow() {
		if !filled {
			continue
		}
		total++
		if m.Occupied(x+i, y-1) {
			supported++
		}
	}
	return supported, total
}

func requiredSupport(total int) int {
	return total/2 + 1
}
