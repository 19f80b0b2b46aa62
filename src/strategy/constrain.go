package strategy

import (
	"math"

	"sextant/src/frame"
	"sextant/src/models"
	"sextant/src/utils"
)

// constrainWeights clips target weights to the strategy's declared maximum
// long/short quantities. Weights are converted to whole quantities via
// quantity = round(weight * NLV / contractValue), clipped, and converted
// back. A nil limit on either side leaves that side unclipped; fully
// unconstrained limits return the input weights unchanged.
//
// When intraday prices feed a daily weight table, contract values and NLVs
// are sampled at each day's earliest available time so the constraint can't
// peek ahead of the weights it constrains.
func constrainWeights(weights *frame.Frame, prices *frame.PriceTable, securities map[string]*models.SecurityRecord, nlvs *frame.Frame, limits *models.PositionLimits, reference frame.Field) (*frame.Frame, error) {
	if limits.IsUnconstrained() {
		return weights, nil
	}

	if nlvs == nil {
		return nil, models.NewParameterErrorf("must provide NLVs to constrain weights by position limits")
	}

	cv, err := contractValues(prices, securities, reference)
	if err != nil {
		return nil, err
	}

	if prices.IsIntraday() && !frame.HasTimeComponent(weights.Index()) {
		cv = cv.FirstOfDay()
		nlvs = nlvs.FirstOfDay()
	}

	out := weights.Copy()
	for _, sid := range out.Columns() {
		weightVals := out.Column(sid)
		cvVals := cv.Column(sid)
		nlvVals := nlvs.Column(sid)

		var maxLongVals, maxShortVals []float64
		if limits.MaxLong != nil {
			maxLongVals = limits.MaxLong.Column(sid)
		}
		if limits.MaxShort != nil {
			maxShortVals = limits.MaxShort.Column(sid)
		}

		for i := range weightVals {
			w := weightVals[i]
			if frame.IsMissing(w) || w == 0 {
				continue
			}
			if cvVals == nil || nlvVals == nil || i >= len(cvVals) || i >= len(nlvVals) {
				continue
			}

			qty := utils.RoundQuantity(w * nlvVals[i] / cvVals[i])

			if qty > 0 && maxLongVals != nil && i < len(maxLongVals) && !frame.IsMissing(maxLongVals[i]) {
				qty = math.Min(qty, maxLongVals[i])
			}
			if qty < 0 && maxShortVals != nil && i < len(maxShortVals) && !frame.IsMissing(maxShortVals[i]) {
				qty = math.Max(qty, -maxShortVals[i])
			}

			weightVals[i] = qty * cvVals[i] / nlvVals[i]
		}
	}

	return out, nil
}
