package slippage

import (
	"fmt"
	"math"

	"sextant/src/frame"
	"sextant/src/models"
)

const tradingDaysPerYear = 252

// BorrowFeeFetcher looks up annualized borrow fee rates (as decimals, e.g.
// 0.05 for 5% per year) aligned to the shape of the positions frame.
type BorrowFeeFetcher interface {
	BorrowFeesAlignedTo(positions *frame.Frame) (*frame.Frame, error)
}

// BorrowFeeSlippage assesses the daily cost of borrowing shares on short
// exposure. Long and flat positions pay nothing.
type BorrowFeeSlippage struct {
	Fees BorrowFeeFetcher
}

func (s BorrowFeeSlippage) Slippages(turnover, positions *frame.Frame, prices *frame.PriceTable) (*frame.Frame, error) {
	if s.Fees == nil {
		return nil, models.NewParameterErrorf("borrow fee slippage requires a borrow fee fetcher")
	}

	annualRates, err := s.Fees.BorrowFeesAlignedTo(positions)
	if err != nil {
		return nil, &models.ExternalError{
			Service: "borrow fee schedule",
			Err:     fmt.Errorf("failed to fetch borrow fees: %w", err),
		}
	}

	dailyRates := annualRates.MulScalar(1.0 / tradingDaysPerYear)

	shortExposure := positions.Apply(func(v float64) float64 {
		if v < 0 {
			return math.Abs(v)
		}
		return 0
	})

	return shortExposure.Mul(dailyRates), nil
}
