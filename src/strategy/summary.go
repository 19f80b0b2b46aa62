package strategy

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"sextant/src/frame"
)

const barsPerYear = 252

// Summary condenses a backtest's aggregate Return series into headline
// performance numbers.
type Summary struct {
	Bars             int
	CumulativeReturn float64
	CAGR             float64
	SharpeRatio      float64
	MaxDrawdown      float64
}

// Summary aggregates the per-instrument Return table into a portfolio return
// per bar and computes performance statistics over it.
func (r *Results) Summary() (*Summary, error) {
	returns := r.Returns()
	if returns == nil {
		return nil, fmt.Errorf("results contain no Return table")
	}

	var portfolioReturns []float64
	for row := 0; row < returns.NumRows(); row++ {
		barReturn := 0.0
		for _, sid := range returns.Columns() {
			v := returns.At(row, sid)
			if !frame.IsMissing(v) {
				barReturn += v
			}
		}
		portfolioReturns = append(portfolioReturns, barReturn)
	}

	if len(portfolioReturns) == 0 {
		return nil, fmt.Errorf("results contain no bars")
	}

	mean, err := stats.Mean(portfolioReturns)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean return: %w", err)
	}

	stdDev, err := stats.StandardDeviationSample(portfolioReturns)
	if err != nil {
		return nil, fmt.Errorf("failed to compute return volatility: %w", err)
	}

	sharpe := 0.0
	if stdDev > 0 {
		sharpe = mean / stdDev * math.Sqrt(barsPerYear)
	}

	cumulative := 1.0
	peak := 1.0
	maxDrawdown := 0.0
	for _, barReturn := range portfolioReturns {
		cumulative *= 1 + barReturn
		if cumulative > peak {
			peak = cumulative
		}
		if drawdown := cumulative/peak - 1; drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	years := float64(len(portfolioReturns)) / barsPerYear
	cagr := 0.0
	if years > 0 && cumulative > 0 {
		cagr = math.Pow(cumulative, 1/years) - 1
	}

	return &Summary{
		Bars:             len(portfolioReturns),
		CumulativeReturn: cumulative - 1,
		CAGR:             cagr,
		SharpeRatio:      sharpe,
		MaxDrawdown:      maxDrawdown,
	}, nil
}
