package commission

import (
	"sextant/src/frame"
)

// PercentageCommission charges a fixed percentage of trade value: a broker
// rate, optionally blended between two monthly volume tiers, plus an exchange
// fee rate. A minimum commission per trade can be declared as a currency
// amount; it is enforced only where NLVs are supplied.
type PercentageCommission struct {
	Rate            float64
	RateTier2       float64
	Tier2Ratio      float64
	ExchangeFeeRate float64
	MinCommission   float64
}

func (c PercentageCommission) Commissions(contractValues, turnover, nlvs *frame.Frame) (*frame.Frame, error) {
	rate := c.Rate
	if c.Tier2Ratio > 0 {
		rate = (1-c.Tier2Ratio)*c.Rate + c.Tier2Ratio*c.RateTier2
	}

	brokerCommissions := turnover.MulScalar(rate)

	if nlvs != nil && c.MinCommission > 0 {
		brokerCommissions = enforceMinCommissions(brokerCommissions, nlvs, c.MinCommission)
	}

	exchangeCommissions := turnover.MulScalar(c.ExchangeFeeRate)

	return brokerCommissions.Add(exchangeCommissions), nil
}
