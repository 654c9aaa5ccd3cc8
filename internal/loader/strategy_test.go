package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/parcel-loader/internal/machine"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
)

func parcels(blocks ...[]string) []parcel.Parcel {
	out := make([]parcel.Parcel, len(blocks))
	for i, lines := range blocks {
		out[i] = parcel.FromLines(lines)
	}
	return out
}

func newStrategy(t *testing.T, st StrategyType) Strategy {
	t.Helper()
	s, err := NewStrategy(st, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Equal(t, st, s.Type())
	return s
}

var maxSizeParcel = []string{"666666", "666666", "666666", "666666", "666666", "666666"}

// assertLoadInvariants checks that no placements overlap, every cell is in
// bounds and every raised placement is supported by the cells loaded before it.
func assertLoadInvariants(t *testing.T, result Result) {
	t.Helper()

	for mi, m := range result.Machines {
		var replay machine.Machine
		seen := make(map[machine.Point]int)

		for pi, pl := range m.Placements() {
			for _, c := range pl.Cells() {
				require.True(t, c.X >= 0 && c.X < machine.Width && c.Y >= 0 && c.Y < machine.Height,
					"machine %d placement %d cell %v out of bounds", mi, pi, c)
				prev, clash := seen[c]
				require.False(t, clash, "machine %d placements %d and %d overlap at %v", mi, prev, pi, c)
				seen[c] = pi
				assert.Equal(t, pl.Parcel.Symbol(), m.Cell(c.X, c.Y))
			}

			if pl.Y > 0 {
				assert.True(t, HasSupport(replay, pl.Parcel, pl.X, pl.Y),
					"machine %d placement %d at (%d,%d) lacks support", mi, pi, pl.X, pl.Y)
			}

			var err error
			replay, err = replay.Place(pl.Parcel, pl.X, pl.Y)
			require.NoError(t, err)
		}

		assert.Equal(t, len(seen), m.OccupiedCount(), "machine %d has stray cells", mi)
	}
}

func TestParseStrategyType(t *testing.T) {
	cases := map[string]StrategyType{
		"1":               OnePerMachine,
		"2":               DensePacking,
		" dense ":         DensePacking,
		"ONE-PER-MACHINE": OnePerMachine,
	}
	for raw, want := range cases {
		got, err := ParseStrategyType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"3", "0", "", "best"} {
		_, err := ParseStrategyType(raw)
		assert.True(t, errors.Is(err, ErrUnknownStrategy), "expected ErrUnknownStrategy for %q, got %v", raw, err)
	}
}

func TestStrategyTypeDescriptions(t *testing.T) {
	assert.Equal(t, 1, OnePerMachine.ID())
	assert.Equal(t, "one parcel per machine", OnePerMachine.String())
	assert.Equal(t, 2, DensePacking.ID())
	assert.Equal(t, "dense packing", DensePacking.String())
	assert.Equal(t, "strategy(9)", StrategyType(9).String())
}

func TestNewStrategy_Unknown(t *testing.T) {
	_, err := NewStrategy(StrategyType(42), nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestOnePerMachine_MaxSizeParcel(t *testing.T) {
	s := newStrategy(t, OnePerMachine)
	input := parcels(maxSizeParcel)

	result, err := s.Load(input)
	require.NoError(t, err)

	assert.Empty(t, result.Oversized)
	require.Len(t, result.Machines, 1)
	assert.Equal(t, 1, result.Placed())

	placements := result.Machines[0].Placements()
	require.Len(t, placements, 1)
	assert.True(t, placements[0].Parcel.Equal(input[0]))
	assert.Zero(t, placements[0].X)
	assert.Zero(t, placements[0].Y)
}

func TestOnePerMachine_ThreeParcelsThreeMachines(t *testing.T) {
	s := newStrategy(t, OnePerMachine)
	input := parcels([]string{"1", "1", "1"}, []string{"22", "22", "22"}, []string{"333", "333", "333"})

	result, err := s.Load(input)
	require.NoError(t, err)

	assert.Empty(t, result.Oversized)
	require.Len(t, result.Machines, 3)
	for i, m := range result.Machines {
		placements := m.Placements()
		require.Len(t, placements, 1)
		assert.True(t, placements[0].Parcel.Equal(input[i]), "machine %d holds the wrong parcel", i)
	}
	assertLoadInvariants(t, result)
}

func TestOnePerMachine_MixedSizesOneMachineEach(t *testing.T) {
	s := newStrategy(t, OnePerMachine)
	input := parcels([]string{"1"}, []string{"22", "22"}, []string{"333", "3 3", "333"})

	result, err := s.Load(input)
	require.NoError(t, err)

	assert.Len(t, result.Machines, 3)
	assert.Empty(t, result.Oversized)
	assert.Empty(t, result.Invalid)
}

func TestOnePerMachine_Oversized(t *testing.T) {
	s := newStrategy(t, OnePerMachine)
	input := parcels([]string{"1", "1", "1"}, []string{"7777777", "7777777", "7777777"}, []string{"333", "333", "333"})

	result, err := s.Load(input)
	require.NoError(t, err)

	require.Len(t, result.Machines, 2)
	assert.Equal(t, 2, result.Placed())
	require.Len(t, result.Oversized, 1)
	assert.True(t, result.Oversized[0].Equal(input[1]))
	assert.True(t, result.Machines[0].Placements()[0].Parcel.Equal(input[0]))
	assert.True(t, result.Machines[1].Placements()[0].Parcel.Equal(input[2]))
}

func TestStrategies_EmptyInput(t *testing.T) {
	for _, st := range StrategyTypes() {
		result, err := newStrategy(t, st).Load(nil)
		require.NoError(t, err)
		assert.Empty(t, result.Machines, st.String())
		assert.Empty(t, result.Oversized, st.String())
		assert.Zero(t, result.Placed(), st.String())
	}
}

func TestStrategies_TooWideParcelIsOversized(t *testing.T) {
	for _, st := range StrategyTypes() {
		result, err := newStrategy(t, st).Load(parcels([]string{"7777777"}))
		require.NoError(t, err)
		assert.Len(t, result.Oversized, 1, st.String())
		assert.Empty(t, result.Machines, st.String())
	}
}

func TestStrategies_TallParcelIsOversized(t *testing.T) {
	tall := []string{"1", "1", "1", "1", "1", "1", "1"}
	for _, st := range StrategyTypes() {
		result, err := newStrategy(t, st).Load(parcels(tall))
		require.NoError(t, err)
		assert.Len(t, result.Oversized, 1, st.String())
	}
}

func TestDensePacking_MaxSizeParcel(t *testing.T) {
	s := newStrategy(t, DensePacking)
	input := parcels(maxSizeParcel)

	result, err := s.Load(input)
	require.NoError(t, err)

	require.Len(t, result.Machines, 1)
	placements := result.Machines[0].Placements()
	require.Len(t, placements, 1)
	assert.True(t, placements[0].Parcel.Equal(input[0]))
	assert.Equal(t, 0, placements[0].X)
	assert.Equal(t, 0, placements[0].Y)
}

func TestDensePacking_ThreeParcelsOneMachine(t *testing.T) {
	s := newStrategy(t, DensePacking)
	input := parcels([]string{"1", "1", "1"}, []string{"22", "22", "22"}, []string{"333", "333", "333"})

	result, err := s.Load(input)
	require.NoError(t, err)

	assert.Empty(t, result.Oversized)
	require.Len(t, result.Machines, 1)
	placements := result.Machines[0].Placements()
	require.Len(t, placements, 3)

	// widest parcel goes first and lands in the corner
	assert.Equal(t, 3, placements[0].Parcel.Width())
	assert.Equal(t, 0, placements[0].X)
	assert.Equal(t, 0, placements[0].Y)
	assertLoadInvariants(t, result)
}

func TestDensePacking_OversizedAndOneMachine(t *testing.T) {
	s := newStrategy(t, DensePacking)
	input := parcels([]string{"1", "1", "1"}, []string{"7777777", "7777777", "7777777"}, []string{"333", "333", "333"})

	result, err := s.Load(input)
	require.NoError(t, err)

	require.Len(t, result.Machines, 1)
	assert.Equal(t, 2, result.Placed())
	require.Len(t, result.Oversized, 1)
	assert.True(t, result.Oversized[0].Equal(input[1]))
}

func TestDensePacking_OpensSecondMachine(t *testing.T) {
	s := newStrategy(t, DensePacking)
	input := parcels(
		[]string{"11111", "11111", "11111", "11111"},
		[]string{"222222", "222222", "222222"},
	)

	result, err := s.Load(input)
	require.NoError(t, err)

	assert.Empty(t, result.Oversized)
	assert.Len(t, result.Machines, 2)
	assert.Equal(t, 2, result.Placed())
}

func TestDensePacking_SortsWidestFirst(t *testing.T) {
	s := newStrategy(t, DensePacking)
	input := parcels([]string{"1"}, []string{"333"}, []string{"55555"})

	result, err := s.Load(input)
	require.NoError(t, err)

	require.Len(t, result.Machines, 1)
	placements := result.Machines[0].Placements()
	require.Len(t, placements, 3)

	assert.Equal(t, 5, placements[0].Parcel.Width())
	assert.Equal(t, 0, placements[0].Y)
	assert.Equal(t, Position{X: 0, Y: 1}, Position{X: placements[1].X, Y: placements[1].Y})
	assert.Equal(t, Position{X: 5, Y: 0}, Position{X: placements[2].X, Y: placements[2].Y})
}

func TestDensePacking_StableForEqualWidths(t *testing.T) {
	s := newStrategy(t, DensePacking)
	input := parcels([]string{"a"}, []string{"b"}, []string{"c"})

	result, err := s.Load(input)
	require.NoError(t, err)

	require.Len(t, result.Machines, 1)
	placements := result.Machines[0].Placements()
	require.Len(t, placements, 3)
	for i, want := range []rune{'a', 'b', 'c'} {
		assert.Equal(t, want, placements[i].Parcel.Symbol())
		assert.Equal(t, i, placements[i].X)
	}
}

func TestDensePacking_SixParcelsAllPlaced(t *testing.T) {
	s := newStrategy(t, DensePacking)
	input := parcels(
		[]string{"999", "999", "999"},
		[]string{"666", "666"},
		[]string{"55555"},
		[]string{"1"},
		[]string{"1"},
		[]string{"333"},
	)

	result, err := s.Load(input)
	require.NoError(t, err)

	assert.Empty(t, result.Oversized)
	assert.Equal(t, 6, result.Placed())
	require.Len(t, result.Machines, 1)
	assert.Equal(t, []string{
		"      ",
		"1     ",
		"999333",
		"999666",
		"999666",
		"555551",
	}, result.Machines[0].Rows())
	assertLoadInvariants(t, result)
}

func TestDensePacking_NeverWorseThanOnePerMachine(t *testing.T) {
	inputs := [][]parcel.Parcel{
		parcels([]string{"1"}, []string{"22", "22"}, []string{"333", "3 3", "333"}),
		parcels([]string{"999", "999", "999"}, []string{"666", "666"}, []string{"55555"}, []string{"1"}, []string{"1"}, []string{"333"}),
		parcels([]string{"11111", "11111", "11111", "11111"}, []string{"222222", "222222", "222222"}),
		parcels([]string{"X  ", "XX ", "XXX"}, []string{"YYY", " Y ", " Y "}, []string{"ZZ", "ZZ"}, []string{"7777777"}),
		parcels(maxSizeParcel, maxSizeParcel, []string{"1"}),
	}

	one := newStrategy(t, OnePerMachine)
	dense := newStrategy(t, DensePacking)

	for i, input := range inputs {
		oneResult, err := one.Load(input)
		require.NoError(t, err)
		denseResult, err := dense.Load(input)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(denseResult.Machines), len(oneResult.Machines), "input %d", i)
		assert.Equal(t, oneResult.Placed(), denseResult.Placed(), "input %d", i)
		assert.Equal(t, len(oneResult.Oversized), len(denseResult.Oversized), "input %d", i)
		assertLoadInvariants(t, oneResult)
		assertLoadInvariants(t, denseResult)
	}
}

func TestDensePacking_DoesNotReorderInput(t *testing.T) {
	input := parcels([]string{"1"}, []string{"333"})
	_, err := newStrategy(t, DensePacking).Load(input)
	require.NoError(t, err)

	assert.Equal(t, '1', input[0].Symbol())
	assert.Equal(t, '3', input[1].Symbol())
}
