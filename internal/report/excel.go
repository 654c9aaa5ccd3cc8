package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/machine"
)

// SummarySheet is the name of the first worksheet of an exported workbook.
const SummarySheet = "Summary"

// MachineSheet returns the worksheet name used for the machine with the given 1-based index.
func MachineSheet(index int) string {
	return fmt.Sprintf("Machine %d", index)
}

// WriteExcel writes r as an xlsx workbook: a summary sheet followed by one
// sheet per machine holding the grid and a placement table.
func WriteExcel(w io.Writer, r loader.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, r); err != nil {
		return err
	}

	for i, m := range r.Machines {
		if err := writeMachineSheet(f, MachineSheet(i+1), m); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r loader.Result) error {
	s := Summarize(r)
	rows := [][]any{
		{"Metric", "Value"},
		{"Parcels read", s.Input},
		{"Rejected blocks", s.Rejected},
		{"Failed validation", s.Invalid},
		{"Too large for a machine", s.Oversized},
		{"Loaded", s.Placed},
		{"Machines used", s.Machines},
	}
	if err := setRows(f, SummarySheet, 1, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 26); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

func writeMachineSheet(f *excelize.File, sheet string, m machine.Machine) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}

	styles, err := placementStyles(f, m.ParcelCount())
	if err != nil {
		return err
	}
	owners := cellOwners(m)

	// Spreadsheet row 1 holds the top machine row.
	for y := machine.Height - 1; y >= 0; y-- {
		for x := 0; x < machine.Width; x++ {
			cell, err := excelize.CoordinatesToCellName(x+1, machine.Height-y)
			if err != nil {
				return fmt.Errorf("cell reference: %w", err)
			}
			owner, ok := owners[machine.Point{X: x, Y: y}]
			if !ok {
				continue
			}
			if err := f.SetCellValue(sheet, cell, string(m.Cell(x, y))); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, styles[owner]); err != nil {
				return fmt.Errorf("style cell %s: %w", cell, err)
			}
		}
	}

	rows := [][]any{{"Parcel", "Width", "Height", "X", "Y", "Max X", "Max Y"}}
	for _, pl := range m.Placements() {
		rows = append(rows, []any{
			string(pl.Parcel.Symbol()), pl.Parcel.Width(), pl.Parcel.Height(),
			pl.X, pl.Y, pl.MaxX(), pl.MaxY(),
		})
	}
	return setRows(f, sheet, machine.Height+2, rows)
}

func placementStyles(f *excelize.File, n int) ([]int, error) {
	styles := make([]int, n)
	for i := range styles {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(placementColor(i))}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Font:      &excelize.Font{Bold: true},
		})
		if err != nil {
			return nil, fmt.Errorf("create style: %w", err)
		}
		styles[i] = id
	}
	return styles, nil
}

func setRows(f *excelize.File, sheet string, firstRow int, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, firstRow+i)
			if err != nil {
				return fmt.Errorf("cell reference: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return nil
}
