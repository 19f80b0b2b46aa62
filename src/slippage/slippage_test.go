package slippage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sextant/src/frame"
	"sextant/src/models"
)

func testIndex(n int) []time.Time {
	index := make([]time.Time, n)
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range index {
		index[i] = base.AddDate(0, 0, i)
	}
	return index
}

func testFrame(t *testing.T, columns map[string][]float64) *frame.Frame {
	t.Helper()

	n := 0
	var names []string
	for col, vals := range columns {
		names = append(names, col)
		n = len(vals)
	}

	f := frame.NewFrame(testIndex(n), names)
	for col, vals := range columns {
		require.NoError(t, f.SetColumn(col, vals))
	}
	return f
}

func TestFixedSlippage(t *testing.T) {
	turnover := testFrame(t, map[string][]float64{"AAPL": {0, 0.5, 1}})

	t.Run("applies the declared one-way rate", func(t *testing.T) {
		slippages, err := FixedSlippage{OneWayRate: 0.001}.Slippages(turnover, nil, nil)
		require.NoError(t, err)
		require.Equal(t, 0.0, slippages.At(0, "AAPL"))
		require.InDelta(t, 0.0005, slippages.At(1, "AAPL"), 1e-12)
		require.InDelta(t, 0.001, slippages.At(2, "AAPL"), 1e-12)
	})

	t.Run("zero rate falls back to the default", func(t *testing.T) {
		slippages, err := FixedSlippage{}.Slippages(turnover, nil, nil)
		require.NoError(t, err)
		require.InDelta(t, DefaultOneWaySlippage, slippages.At(2, "AAPL"), 1e-12)
	})
}

func TestFromBPS(t *testing.T) {
	require.InDelta(t, 0.0005, FromBPS(5).OneWayRate, 1e-12)
}

type staticFees struct {
	rate float64
	err  error
}

func (f staticFees) BorrowFeesAlignedTo(positions *frame.Frame) (*frame.Frame, error) {
	if f.err != nil {
		return nil, f.err
	}
	return frame.NewConstantFrame(positions.Index(), positions.Columns(), f.rate), nil
}

func TestBorrowFeeSlippage(t *testing.T) {
	positions := testFrame(t, map[string][]float64{"AAPL": {0.5, -0.5, 0}})
	turnover := testFrame(t, map[string][]float64{"AAPL": {0.5, 1, 0.5}})

	t.Run("charges the daily rate on short exposure only", func(t *testing.T) {
		model := BorrowFeeSlippage{Fees: staticFees{rate: 0.252}}

		slippages, err := model.Slippages(turnover, positions, nil)
		require.NoError(t, err)
		require.Equal(t, 0.0, slippages.At(0, "AAPL"))
		require.InDelta(t, 0.252/252*0.5, slippages.At(1, "AAPL"), 1e-12)
		require.Equal(t, 0.0, slippages.At(2, "AAPL"))
	})

	t.Run("a fetcher failure names the failing service", func(t *testing.T) {
		model := BorrowFeeSlippage{Fees: staticFees{err: errors.New("connection refused")}}

		_, err := model.Slippages(turnover, positions, nil)
		require.Error(t, err)

		var extErr *models.ExternalError
		require.ErrorAs(t, err, &extErr)
		require.Equal(t, "borrow fee schedule", extErr.Service)
	})

	t.Run("a missing fetcher is a configuration error", func(t *testing.T) {
		_, err := BorrowFeeSlippage{}.Slippages(turnover, positions, nil)

		var paramErr *models.ParameterError
		require.ErrorAs(t, err, &paramErr)
	})
}

func TestCompositeSlippage(t *testing.T) {
	turnover := testFrame(t, map[string][]float64{"AAPL": {1}})
	positions := testFrame(t, map[string][]float64{"AAPL": {-1}})

	composite := CompositeSlippage{
		Children: []Slippage{
			FixedSlippage{OneWayRate: 0.001},
			BorrowFeeSlippage{Fees: staticFees{rate: 0.252}},
		},
		FlatBPS: 5,
	}

	slippages, err := composite.Slippages(turnover, positions, nil)
	require.NoError(t, err)

	// 0.001 fixed + 0.001 daily borrow + 0.0005 flat
	require.InDelta(t, 0.0025, slippages.At(0, "AAPL"), 1e-12)
}
