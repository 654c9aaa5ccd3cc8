// Package processor runs the full import pipeline: read blocks, validate and
// normalize them, build parcels and hand the valid ones to a loading strategy.
package processor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
	"github.com/eugenenazirov/parcel-loader/internal/parser"
)

// ErrNilDependency is returned when the processor is built without a source or strategy.
var ErrNilDependency = errors.New("processor dependency is nil")

// Processor wires a block source to a loading strategy.
type Processor struct {
	source   parser.Source
	strategy loader.Strategy
	logger   *zap.Logger
}

// New creates a processor. A nil logger disables logging.
func New(source parser.Source, strategy loader.Strategy, logger *zap.Logger) (*Processor, error) {
	if source == nil || strategy == nil {
		return nil, ErrNilDependency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{source: source, strategy: strategy, logger: logger}, nil
}

// Process reads every block and loads the valid parcels. Blocks that fail
// line or shape validation are reported in the result and skipped.
func (p *Processor) Process() (loader.Result, error) {
	blocks, err := p.source.Blocks()
	if err != nil {
		return loader.Result{}, fmt.Errorf("read %s: %w", p.source.Describe(), err)
	}

	p.logger.Info("processing started",
		zap.String("source", p.source.Describe()),
		zap.Int("blocks", len(blocks)),
	)

	var (
		result loader.Result
		valid  []parcel.Parcel
	)

	for i, lines := range blocks {
		block := i + 1
		p.logger.Debug("processing block", zap.Int("block", block), zap.Int("lines", len(lines)))

		if errs := parser.ValidateLines(lines); len(errs) > 0 {
			p.logger.Warn("block rejected by line validation",
				zap.Int("block", block),
				zap.Errors("errors", errs),
			)
			result.Rejected = append(result.Rejected, rejection(block, lines, errs))
			continue
		}

		normalized := parser.Normalize(lines)
		pc := parcel.FromLines(normalized)
		result.Input = append(result.Input, pc)

		if errs := parcel.Validate(pc); len(errs) > 0 {
			p.logger.Warn("block rejected by shape validation",
				zap.Int("block", block),
				zap.Errors("errors", errs),
			)
			result.Invalid = append(result.Invalid, pc)
			result.Rejected = append(result.Rejected, rejection(block, normalized, errs))
			continue
		}

		valid = append(valid, pc)
	}

	p.logger.Info("blocks parsed",
		zap.Int("valid", len(valid)),
		zap.Int("blocks", len(blocks)),
		zap.Stringer("strategy", p.strategy.Type()),
	)

	loaded, err := p.strategy.Load(valid)
	if err != nil {
		return loader.Result{}, fmt.Errorf("load parcels: %w", err)
	}

	result.Machines = loaded.Machines
	result.Oversized = loaded.Oversized

	p.logger.Info("processing finished",
		zap.Int("placed", result.Placed()),
		zap.Int("machines", len(result.Machines)),
		zap.Int("oversized", len(result.Oversized)),
		zap.Int("rejected", len(result.Rejected)),
	)
	return result, nil
}

func rejection(block int, lines []string, errs []error) loader.Rejection {
	reasons := make([]string, len(errs))
	for i, err := range errs {
		reasons[i] = err.Error()
	}
	return loader.Rejection{
		Block:   block,
		Lines:   append([]string(nil), lines...),
		Reasons: reasons,
	}
}
