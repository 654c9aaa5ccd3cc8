package parcel

import (
	"errors"
	"slices"
	"testing"
)

func TestFromLines(t *testing.T) {
	t.Parallel()

	p := FromLines([]string{"333", "3 3", "333"})

	if p.Width() != 3 || p.Height() != 3 {
		t.Fatalf("expected 3x3, got %dx%d", p.Width(), p.Height())
	}
	if p.Symbol() != '3' {
		t.Fatalf("expected symbol '3', got %q", p.Symbol())
	}
	if p.Occupied(1, 1) {
		t.Fatalf("expected hole at row 1 col 1")
	}
	if p.CellCount() != 8 {
		t.Fatalf("expected 8 cells, got %d", p.CellCount())
	}
}

func TestFromLinesSymbolFromLaterRow(t *testing.T) {
	t.Parallel()

	p := FromLines([]string{"   ", " x "})
	if p.Symbol() != 'x' {
		t.Fatalf("expected symbol 'x', got %q", p.Symbol())
	}
}

func TestCellsAreAnchoredBottomLeft(t *testing.T) {
	t.Parallel()

	// top row "1 " sits above the bottom row "11"
	p := FromLines([]string{"1 ", "11"})
	got := p.Cells()
	want := []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected cells %v, got %v", want, got)
	}

	if bottom := p.BottomRow(); !slices.Equal(bottom, []bool{true, true}) {
		t.Fatalf("unexpected bottom row %v", bottom)
	}
}

func TestLinesRoundTrip(t *testing.T) {
	t.Parallel()

	lines := []string{"333", "3 3", "333"}
	p := FromLines(lines)
	if got := p.Lines(); !slices.Equal(got, lines) {
		t.Fatalf("expected %v, got %v", lines, got)
	}
	if p.String() != "333\n3 3\n333" {
		t.Fatalf("unexpected string %q", p.String())
	}
}

func TestGridIsDefensiveCopy(t *testing.T) {
	t.Parallel()

	src := [][]bool{{true, true}}
	p := New(src, 'a')
	src[0][0] = false
	if !p.Occupied(0, 0) {
		t.Fatalf("expected New to copy the mask")
	}

	grid := p.Grid()
	grid[0][1] = false
	if !p.Occupied(0, 1) {
		t.Fatalf("expected Grid to return a copy")
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := FromLines([]string{"22", "22"})
	b := FromLines([]string{"22", "22"})
	c := FromLines([]string{"22", "2 "})
	d := FromLines([]string{"33", "33"})

	if !a.Equal(b) {
		t.Fatalf("expected identical parcels to be equal")
	}
	if a.Equal(c) || a.Equal(d) {
		t.Fatalf("expected different parcels not to be equal")
	}
}

func TestFits(t *testing.T) {
	t.Parallel()

	if !FromLines([]string{"666666"}).Fits(6, 6) {
		t.Fatalf("expected width 6 to fit")
	}
	if FromLines([]string{"7777777"}).Fits(6, 6) {
		t.Fatalf("expected width 7 not to fit")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		parcel  Parcel
		wantErr []error
	}{
		{
			name:   "Single",
			parcel: FromLines([]string{"1"}),
		},
		{
			name:   "RingWithHole",
			parcel: FromLines([]string{"XXX", "X X", "XXX"}),
		},
		{
			name:   "UShape",
			parcel: FromLines([]string{"X X", "XXX"}),
		},
		{
			name:    "TwoBlobs",
			parcel:  FromLines([]string{"X X"}),
			wantErr: []error{ErrDisconnected},
		},
		{
			name:    "DiagonalOnly",
			parcel:  FromLines([]string{"X ", " X"}),
			wantErr: []error{ErrDisconnected},
		},
		{
			name:    "MissingSymbol",
			parcel:  New([][]bool{{true}}, 0),
			wantErr: []error{ErrMissingSymbol},
		},
		{
			name:    "ZeroSize",
			parcel:  New(nil, 'a'),
			wantErr: []error{ErrEmpty},
		},
		{
			name:    "NoFilledCells",
			parcel:  FromLines([]string{"   "}),
			wantErr: []error{ErrMissingSymbol, ErrEmpty},
		},
		{
			name:    "RaggedRows",
			parcel:  FromLines([]string{"111", "1", "11"}),
			wantErr: []error{ErrRaggedRow, ErrRaggedRow},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Validate(tc.parcel)
			if len(got) != len(tc.wantErr) {
				t.Fatalf("expected %d violations, got %d: %v", len(tc.wantErr), len(got), got)
			}
			for i, want := range tc.wantErr {
				if !errors.Is(got[i], want) {
					t.Fatalf("violation %d: expected %v, got %v", i, want, got[i])
				}
			}
		})
	}
}

func TestValidateReportsCounts(t *testing.T) {
	t.Parallel()

	errs := Validate(FromLines([]string{"XX  X"}))
	if len(errs) != 1 {
		t.Fatalf("expected one violation, got %v", errs)
	}
	if got := errs[0].Error(); got != "parcel is not connected: 3 filled cells, only 2 reachable" {
		t.Fatalf("unexpected message %q", got)
	}
}
