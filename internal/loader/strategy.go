package loader

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/parcel-loader/internal/machine"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
)

// StrategyType identifies a loading algorithm.
type StrategyType int

const (
	OnePerMachine StrategyType = 1
	DensePacking  StrategyType = 2
)

// StrategyTypes lists the available strategies in id order.
func StrategyTypes() []StrategyType {
	return []StrategyType{OnePerMachine, DensePacking}
}

// ID returns the numeric identifier used by the console and the API.
func (t StrategyType) ID() int {
	return int(t)
}

// Name returns the machine-friendly name of the strategy.
func (t StrategyType) Name() string {
	switch t {
	case OnePerMachine:
		return "one-per-machine"
	case DensePacking:
		return "dense"
	default:
		return "unknown"
	}
}

func (t StrategyType) String() string {
	switch t {
	case OnePerMachine:
		return "one parcel per machine"
	case DensePacking:
		return "dense packing"
	default:
		return fmt.Sprintf("strategy(%d)", int(t))
	}
}

// ParseStrategyType accepts a numeric id or a strategy name.
func ParseStrategyType(raw string) (StrategyType, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if id, err := strconv.Atoi(value); err == nil {
		for _, t := range StrategyTypes() {
			if t.ID() == id {
				return t, nil
			}
		}
		return 0, fmt.Errorf("%w: id %d", ErrUnknownStrategy, id)
	}
	for _, t := range StrategyTypes() {
		if t.Name() == value {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, raw)
}

// Strategy describes an algorithm that distributes parcels across machines.
type Strategy interface {
	Load(parcels []parcel.Parcel) (Result, error)
	Type() StrategyType
}

// NewStrategy returns the implementation for t. A nil logger disables logging.
func NewStrategy(t StrategyType, logger *zap.Logger) (Strategy, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("strategy", t.Name()))

	switch t {
	case OnePerMachine:
		return &onePerMachine{logger: logger}, nil
	case DensePacking:
		return &densePacking{finder: NewFinder(logger), logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(t))
	}
}

func fitsInMachine(p parcel.Parcel) bool {
	return p.Fits(machine.Width, machine.Height)
}

func loadIntoNewMachine(p parcel.Parcel) (machine.Machine, error) {
	return machine.New().Place(p, 0, 0)
}
