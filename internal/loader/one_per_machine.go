package loader

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/parcel-loader/internal/machine"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
)

// onePerMachine gives every parcel its own machine, anchored at the origin.
type onePerMachine struct {
	logger *zap.Logger
}

func (s *onePerMachine) Type() StrategyType {
	return OnePerMachine
}

func (s *onePerMachine) Load(parcels []parcel.Parcel) (Result, error) {
	result := Result{}

	for _, p := range parcels {
		if !fitsInMachine(p) {
			s.logger.Warn("parcel too large for machine",
				zap.Int("width", p.Width()),
				zap.Int("height", p.Height()),
				zap.Int("machine_width", machine.Width),
				zap.Int("machine_height", machine.Height),
			)
			result.Oversized = append(result.Oversized, p)
			continue
		}

		m, err := loadIntoNewMachine(p)
		if err != nil {
			return Result{}, err
		}
		result.Machines = append(result.Machines, m)
		s.logger.Debug("parcel loaded into new machine",
			zap.Int("width", p.Width()),
			zap.Int("height", p.Height()),
		)
	}

	s.logger.Debug("loading finished",
		zap.Int("placed", result.Placed()),
		zap.Int("machines", len(result.Machines)),
		zap.Int("oversized", len(result.Oversized)),
	)
	return result, nil
}
