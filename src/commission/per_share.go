package commission

import (
	"math"

	"sextant/src/frame"
)

// PerShareCommission charges a per-share broker rate (optionally blended
// between two monthly volume tiers), a flat per-share exchange fee, a
// maker/taker exchange fee blended by the maker ratio, a percentage of trade
// value, and a percentage of the broker commission itself. Per-share rates
// are divided by the contract value to normalize them to turnover-relative
// rates.
type PerShareCommission struct {
	PerShare                    float64
	PerShareTier2               float64
	Tier2Ratio                  float64
	ExchangeFeePerShare         float64
	MakerFeePerShare            float64
	TakerFeePerShare            float64
	MakerRatio                  float64
	PercentageFeeRate           float64
	CommissionPercentageFeeRate float64
	MinCommission               float64
}

func (c PerShareCommission) Commissions(contractValues, turnover, nlvs *frame.Frame) (*frame.Frame, error) {
	perShare := c.PerShare
	if c.Tier2Ratio > 0 {
		perShare = (1-c.Tier2Ratio)*c.PerShare + c.Tier2Ratio*c.PerShareTier2
	}

	takerRatio := 1 - c.MakerRatio
	exchangeFeePerShare := c.ExchangeFeePerShare +
		c.MakerRatio*c.MakerFeePerShare + takerRatio*c.TakerFeePerShare

	// Per-share rates become turnover-relative rates when divided by the
	// share price.
	brokerRates := contractValues.Apply(func(cv float64) float64 { return perShare / math.Abs(cv) })
	brokerCommissions := brokerRates.Mul(turnover)

	if nlvs != nil && c.MinCommission > 0 {
		brokerCommissions = enforceMinCommissions(brokerCommissions, nlvs, c.MinCommission)
	}

	commissionBasedFees := brokerCommissions.MulScalar(c.CommissionPercentageFeeRate)

	exchangeFeeRates := contractValues.Apply(func(cv float64) float64 { return exchangeFeePerShare / math.Abs(cv) })
	exchangeFees := exchangeFeeRates.Mul(turnover)

	valueBasedFees := turnover.MulScalar(c.PercentageFeeRate)

	commissions := brokerCommissions.
		Add(commissionBasedFees).
		Add(exchangeFees).
		Add(valueBasedFees)

	return commissions, nil
}
