package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	results := newResults()
	results.add(ResultReturn, testFrame(t, dailyIndex(2), map[string][]float64{
		"AAPL": {0.05, -0.05},
		"MSFT": {0.05, 0},
	}))

	summary, err := results.Summary()
	require.NoError(t, err)

	// Portfolio returns are +10% then -5%.
	require.Equal(t, 2, summary.Bars)
	require.InDelta(t, 1.1*0.95-1, summary.CumulativeReturn, 1e-12)
	require.InDelta(t, -0.05, summary.MaxDrawdown, 1e-12)

	mean := 0.025
	stdDev := math.Sqrt(2 * 0.075 * 0.075)
	require.InDelta(t, mean/stdDev*math.Sqrt(252), summary.SharpeRatio, 1e-9)
	require.Greater(t, summary.CAGR, 0.0)
}

func TestSummaryRequiresReturns(t *testing.T) {
	_, err := newResults().Summary()
	require.Error(t, err)
}
