package loader

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/parcel-loader/internal/machine"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
)

// Position is a bottom-left anchor inside a machine.
type Position struct {
	X int
	Y int
}

// Finder searches a machine for the lowest, then leftmost, position where a
// parcel fits without collisions and with sufficient support.
type Finder struct {
	logger *zap.Logger
}

// NewFinder creates a Finder. A nil logger disables logging.
func NewFinder(logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{logger: logger}
}

// Find returns the best position for p in m, or false when no position qualifies.
func (f *Finder) Find(m machine.Machine, p parcel.Parcel) (Position, bool) {
	maxY := machine.Height - p.Height()
	maxX := machine.Width - p.Width()

	f.logger.Debug("searching position",
		zap.String("symbol", string(p.Symbol())),
		zap.Int("width", p.Width()),
		zap.Int("height", p.Height()),
	)

	// Rows are scanned bottom-up and columns left to right, so the first
	// accepted candidate is the lowest-y, then lowest-x one.
	for y := 0; y <= maxY; y++ {
		for x := 0; x <= maxX; x++ {
			if f.canPlaceAt(m, p, x, y) {
				f.logger.Debug("position found", zap.Int("x", x), zap.Int("y", y))
				return Position{X: x, Y: y}, true
			}
		}
	}

	f.logger.Debug("no position found")
	return Position{}, false
}

func (f *Finder) canPlaceAt(m machine.Machine, p parcel.Parcel, x, y int) bool {
	if m.Collides(p, x, y) {
		return false
	}
	if !HasSupport(m, p, x, y) {
		if ce := f.logger.Check(zap.DebugLevel, "position rejected for insufficient support"); ce != nil {
			ce.Write(
				zap.Int("x", x),
				zap.Int("y", y),
				zap.String("support", DescribeSupport(m, p, x, y)),
			)
		}
		return false
	}
	return true
}
