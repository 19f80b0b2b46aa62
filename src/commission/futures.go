package commission

import (
	"sextant/src/frame"
)

// FuturesCommission charges a fixed cost per contract: broker commission plus
// exchange/regulatory fees plus an overnight carrying fee, normalized by the
// contract value. Futures commissions have no minimum-commission floor.
type FuturesCommission struct {
	PerContract            float64
	ExchangeFeePerContract float64
	CarryingFeePerContract float64
}

func (c FuturesCommission) Commissions(contractValues, turnover, nlvs *frame.Frame) (*frame.Frame, error) {
	costPerContract := c.PerContract + c.ExchangeFeePerContract + c.CarryingFeePerContract

	rates := contractValues.Apply(func(cv float64) float64 { return costPerContract / cv })

	return rates.Mul(turnover), nil
}
