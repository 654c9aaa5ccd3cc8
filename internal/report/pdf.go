package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/machine"
)

// Page layout in mm, A4 portrait.
const (
	pdfPageWidth  = 210.0
	pdfMarginLeft = 15.0
	pdfMarginTop  = 15.0
	pdfCellSize   = 20.0
	pdfGridTop    = pdfMarginTop + 20.0
	pdfQRSize     = 40.0
	pdfContentW   = pdfPageWidth - 2*pdfMarginLeft
)

// WritePDF writes r as a PDF document: one page per machine with the grid
// drawn to scale and a QR code carrying the placement data, followed by a
// summary page.
func WritePDF(w io.Writer, r loader.Result) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, info := range Machines(r) {
		pdf.AddPage()
		if err := renderMachinePage(pdf, tr, r.Machines[info.Index-1], info); err != nil {
			return fmt.Errorf("render machine %d: %w", info.Index, err)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, Summarize(r))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func renderMachinePage(pdf *fpdf.Fpdf, tr func(string) string, m machine.Machine, info MachineInfo) error {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(pdfMarginLeft, pdfMarginTop)
	pdf.CellFormat(pdfContentW, 8, fmt.Sprintf("Machine %d", info.Index), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(pdfMarginLeft)
	stats := fmt.Sprintf("Parcels: %d | Fill: %.1f%% | Size: %dx%d", info.Parcels, info.FillRatio*100, machine.Width, machine.Height)
	pdf.CellFormat(pdfContentW, 6, stats, "", 1, "L", false, 0, "")

	drawGrid(pdf, tr, m)

	if err := drawQRCode(pdf, info); err != nil {
		return err
	}

	drawLegend(pdf, tr, info, pdfGridTop+machine.Height*pdfCellSize+8)
	return nil
}

// drawGrid draws the machine with the top row at the top of the page.
func drawGrid(pdf *fpdf.Fpdf, tr func(string) string, m machine.Machine) {
	owners := cellOwners(m)
	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetFont("Helvetica", "B", 12)

	for y := 0; y < machine.Height; y++ {
		for x := 0; x < machine.Width; x++ {
			px := pdfMarginLeft + float64(x)*pdfCellSize
			py := pdfGridTop + float64(machine.Height-1-y)*pdfCellSize

			c := emptyCell
			owner, ok := owners[machine.Point{X: x, Y: y}]
			if ok {
				c = placementColor(owner)
			}
			pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
			pdf.Rect(px, py, pdfCellSize, pdfCellSize, "FD")

			if ok {
				pdf.SetXY(px, py)
				pdf.CellFormat(pdfCellSize, pdfCellSize, tr(string(m.Cell(x, y))), "", 0, "CM", false, 0, "")
			}
		}
	}
}

// qrPayload is kept compact so a machine full of single-cell parcels still fits in one code.
type qrPayload struct {
	Machine    int           `json:"m"`
	Placements []qrPlacement `json:"p"`
}

type qrPlacement struct {
	Symbol string `json:"s"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"w"`
	Height int    `json:"h"`
}

func newQRPayload(info MachineInfo) qrPayload {
	payload := qrPayload{Machine: info.Index, Placements: make([]qrPlacement, len(info.Placements))}
	for i, pl := range info.Placements {
		payload.Placements[i] = qrPlacement{Symbol: pl.Symbol, X: pl.X, Y: pl.Y, Width: pl.Width, Height: pl.Height}
	}
	return payload
}

func drawQRCode(pdf *fpdf.Fpdf, info MachineInfo) error {
	data, err := json.Marshal(newQRPayload(info))
	if err != nil {
		return fmt.Errorf("marshal qr payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate qr code: %w", err)
	}

	name := fmt.Sprintf("qr_machine_%d", info.Index)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))

	x := pdfPageWidth - pdfMarginLeft - pdfQRSize
	pdf.ImageOptions(name, x, pdfGridTop, pdfQRSize, pdfQRSize, false, opts, 0, "")
	return pdf.Error()
}

func drawLegend(pdf *fpdf.Fpdf, tr func(string) string, info MachineInfo, top float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(pdfMarginLeft, top)
	pdf.CellFormat(pdfContentW, 6, "Placements", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i, pl := range info.Placements {
		c := placementColor(i)
		y := top + 7 + float64(i)*5
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Rect(pdfMarginLeft, y+1, 3, 3, "F")
		pdf.SetXY(pdfMarginLeft+5, y)
		line := fmt.Sprintf("'%s' %dx%d at (%d,%d)-(%d,%d)", pl.Symbol, pl.Width, pl.Height, pl.X, pl.Y, pl.MaxX, pl.MaxY)
		pdf.CellFormat(pdfContentW-5, 5, tr(line), "", 0, "L", false, 0, "")
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, s Summary) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(pdfMarginLeft, pdfMarginTop)
	pdf.CellFormat(pdfContentW, 10, "Loading Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(pdfMarginLeft, pdfMarginTop+12, pdfPageWidth-pdfMarginLeft, pdfMarginTop+12)

	items := []struct {
		label string
		value int
	}{
		{"Parcels read", s.Input},
		{"Rejected blocks", s.Rejected},
		{"Failed validation", s.Invalid},
		{"Too large for a machine", s.Oversized},
		{"Loaded", s.Placed},
		{"Machines used", s.Machines},
	}

	y := pdfMarginTop + 18
	for _, item := range items {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetXY(pdfMarginLeft+5, y)
		pdf.CellFormat(70, 7, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", item.value), "", 0, "L", false, 0, "")
		y += 8
	}
}
