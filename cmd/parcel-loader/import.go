package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/parser"
	"github.com/eugenenazirov/parcel-loader/internal/processor"
	"github.com/eugenenazirov/parcel-loader/internal/report"
)

type importOptions struct {
	Path      string
	Strategy  string
	ExcelPath string
	PDFPath   string
	PNGDir    string
}

// runImport loads the parcels at opts.Path, prints the text report to out and
// writes the optional exports.
func runImport(opts importOptions, out io.Writer, logger *zap.Logger) error {
	strategyType, err := loader.ParseStrategyType(opts.Strategy)
	if err != nil {
		return err
	}
	strategy, err := loader.NewStrategy(strategyType, logger)
	if err != nil {
		return err
	}

	source, err := sourceFor(opts.Path)
	if err != nil {
		return err
	}

	proc, err := processor.New(source, strategy, logger)
	if err != nil {
		return err
	}
	result, err := proc.Process()
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, report.Text(result)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if opts.ExcelPath != "" {
		if err := writeFile(opts.ExcelPath, func(w io.Writer) error { return report.WriteExcel(w, result) }); err != nil {
			return fmt.Errorf("write excel: %w", err)
		}
		logger.Info("excel report written", zap.String("path", opts.ExcelPath))
	}
	if opts.PDFPath != "" {
		if err := writeFile(opts.PDFPath, func(w io.Writer) error { return report.WritePDF(w, result) }); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		logger.Info("pdf report written", zap.String("path", opts.PDFPath))
	}
	if opts.PNGDir != "" {
		paths, err := report.SavePNGs(opts.PNGDir, result, report.DefaultCellSize)
		if err != nil {
			return fmt.Errorf("write images: %w", err)
		}
		logger.Info("machine images written", zap.Strings("paths", paths))
	}
	return nil
}

func sourceFor(path string) (parser.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", parser.ErrSourceNotFound, path)
	}
	if info.IsDir() {
		return parser.NewDirSource(path), nil
	}
	return parser.NewFileSource(path), nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
