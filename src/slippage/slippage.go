package slippage

import (
	"sextant/src/frame"
)

// DefaultOneWaySlippage is 5 basis points per trade.
const DefaultOneWaySlippage = 0.0005

// Slippage computes the cost of market impact per bar as a fraction of
// account equity, matching the units of turnover.
type Slippage interface {
	Slippages(turnover, positions *frame.Frame, prices *frame.PriceTable) (*frame.Frame, error)
}

// FixedSlippage applies a flat one-way cost rate to each trade.
type FixedSlippage struct {
	OneWayRate float64
}

func (s FixedSlippage) Slippages(turnover, positions *frame.Frame, prices *frame.PriceTable) (*frame.Frame, error) {
	rate := s.OneWayRate
	if rate == 0 {
		rate = DefaultOneWaySlippage
	}
	return turnover.MulScalar(rate), nil
}

// FromBPS builds a FixedSlippage from a basis-point parameter.
func FromBPS(bps float64) FixedSlippage {
	return FixedSlippage{OneWayRate: bps / 10000.0}
}
