package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sextant/src/frame"
	"sextant/src/strategy"
)

func TestMovingAverageSignals(t *testing.T) {
	index := make([]time.Time, 6)
	base := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	for i := range index {
		index[i] = base.AddDate(0, 0, i)
	}

	closes := frame.NewFrame(index, []string{"AAPL"})
	require.NoError(t, closes.SetColumn("AAPL", []float64{100, 100, 100, 100, 110, 90}))

	prices := frame.NewPriceTable(index, []string{"AAPL"})
	require.NoError(t, prices.SetField(frame.FieldClose, closes))

	strat := NewMovingAverageStrategy(&strategy.Params{Code: "ma"}, 3)

	signals, err := strat.PricesToSignals(prices)
	require.NoError(t, err)

	// No signal until the window fills.
	require.Equal(t, 0.0, signals.At(0, "AAPL"))
	require.Equal(t, 0.0, signals.At(1, "AAPL"))

	// Flat closes sit on the average, not above it.
	require.Equal(t, 0.0, signals.At(2, "AAPL"))
	require.Equal(t, 0.0, signals.At(3, "AAPL"))

	// 110 beats the trailing average; 90 does not.
	require.Equal(t, 1.0, signals.At(4, "AAPL"))
	require.Equal(t, 0.0, signals.At(5, "AAPL"))
}

func TestMovingAverageRequiresClose(t *testing.T) {
	index := []time.Time{time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)}
	prices := frame.NewPriceTable(index, []string{"AAPL"})

	strat := NewMovingAverageStrategy(&strategy.Params{Code: "ma"}, 3)

	_, err := strat.PricesToSignals(prices)
	require.ErrorIs(t, err, errMissingClose)
}

func TestLoadStrategyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`code: ma-demo
window: 20
sids: [AAPL, MSFT]
nlv:
  USD: 500000
slippage_bps: 5
commission:
  type: per_share
  per_share: 0.0035
  min_commission: 0.35
rebalance_threshold: 0.25
accounts:
  - account: U123
    allocation: 1.0
    balance: 500000
    currency: USD
`), 0644))

	config, err := LoadStrategyConfig(path)
	require.NoError(t, err)
	require.Equal(t, "ma-demo", config.Code)
	require.Equal(t, 20, config.Window)
	require.Equal(t, 500000.0, config.NLV["USD"])

	strat, err := config.BuildStrategy()
	require.NoError(t, err)
	require.Equal(t, "ma-demo", strat.Params().Code)
	require.Equal(t, 5.0, strat.Params().SlippageBPS)
	require.NotNil(t, strat.Params().Commission)

	allocations := config.Allocations()
	require.Equal(t, 1.0, allocations["U123"])

	balances := config.Balances()
	require.Equal(t, "USD", balances["U123"].Currency)
}

func TestLoadStrategyConfigRequiresCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: 20\n"), 0644))

	_, err := LoadStrategyConfig(path)
	require.Error(t, err)
}
