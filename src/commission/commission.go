package commission

import (
	"sextant/src/frame"
)

// Commission computes the cost of trading as a fraction of account equity.
//
// contractValues is price adjusted by multiplier and price magnifier,
// turnover is the non-negative fraction of account equity turning over, and
// nlvs is the account balance in each instrument's currency. nlvs may be nil,
// in which case minimum commissions are not enforced.
type Commission interface {
	Commissions(contractValues, turnover, nlvs *frame.Frame) (*frame.Frame, error)
}

// NoCommission models free trading.
type NoCommission struct{}

func (NoCommission) Commissions(contractValues, turnover, nlvs *frame.Frame) (*frame.Frame, error) {
	return frame.NewConstantFrame(turnover.Index(), turnover.Columns(), 0), nil
}

// enforceMinCommissions raises each commission below the minimum to the
// minimum, expressed as a fraction of NLV. Zero commissions (no trade) are
// left alone.
func enforceMinCommissions(commissions, nlvs *frame.Frame, minCommission float64) *frame.Frame {
	out := commissions.Copy()
	for _, col := range out.Columns() {
		vals := out.Column(col)
		nlvVals := nlvs.Column(col)
		if nlvVals == nil {
			continue
		}

		for i := range vals {
			if i >= len(nlvVals) {
				break
			}

			minRate := minCommission / nlvVals[i]
			if vals[i] > 0 && vals[i] < minRate {
				vals[i] = minRate
			}
		}
	}
	return out
}
