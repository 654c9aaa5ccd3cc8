package loader

import (
	"slices"

	"go.uber.org/zap"

	"github.com/eugenenazirov/parcel-loader/internal/machine"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
)

// densePacking loads the widest parcels first and reuses existing machines
// wherever the Finder locates a supported position.
type densePacking struct {
	finder *Finder
	logger *zap.Logger
}

func (s *densePacking) Type() StrategyType {
	return DensePacking
}

func (s *densePacking) Load(parcels []parcel.Parcel) (Result, error) {
	result := Result{}
	var machines []machine.Machine

	for _, p := range sortByWidthDesc(parcels) {
		s.logger.Debug("loading parcel",
			zap.String("symbol", string(p.Symbol())),
			zap.Int("width", p.Width()),
			zap.Int("height", p.Height()),
		)

		if !fitsInMachine(p) {
			s.logger.Warn("parcel too large for machine",
				zap.Int("width", p.Width()),
				zap.Int("height", p.Height()),
			)
			result.Oversized = append(result.Oversized, p)
			continue
		}

		placed, err := s.placeInExisting(machines, p)
		if err != nil {
			return Result{}, err
		}
		if placed {
			continue
		}

		m, err := loadIntoNewMachine(p)
		if err != nil {
			return Result{}, err
		}
		machines = append(machines, m)
		s.logger.Debug("parcel loaded into new machine", zap.Int("machine", len(machines)))
	}

	result.Machines = machines
	s.logger.Debug("loading finished",
		zap.Int("placed", result.Placed()),
		zap.Int("machines", len(result.Machines)),
		zap.Int("oversized", len(result.Oversized)),
	)
	return result, nil
}

// placeInExisting tries machines in creation order and replaces the first one
// that accepts p with its loaded copy.
func (s *densePacking) placeInExisting(machines []machine.Machine, p parcel.Parcel) (bool, error) {
	for i, m := range machines {
		pos, ok := s.finder.Find(m, p)
		if !ok {
			continue
		}
		loaded, err := m.Place(p, pos.X, pos.Y)
		if err != nil {
			return false, err
		}
		machines[i] = loaded
		s.logger.Debug("parcel loaded into existing machine",
			zap.Int("machine", i+1),
			zap.Int("x", pos.X),
			zap.Int("y", pos.Y),
		)
		return true, nil
	}
	return false, nil
}

// sortByWidthDesc returns a copy ordered by width, widest first. Equal widths keep input order.
func sortByWidthDesc(parcels []parcel.Parcel) []parcel.Parcel {
	sorted := slices.Clone(parcels)
	slices.SortStableFunc(sorted, func(a, b parcel.Parcel) int {
		return b.Width() - a.Width()
	})
	return sorted
}
