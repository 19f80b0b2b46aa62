package strategy

import (
	"sextant/src/frame"
	"sextant/src/models"
)

// contractValues converts prices to the monetary value of one unit of each
// instrument: price / priceMagnifier * multiplier. Cash/FX instruments are
// pinned to a contract value of 1 regardless of the quoted price (1 EUR.USD
// is 1 EUR of notional, not 1 USD).
func contractValues(prices *frame.PriceTable, securities map[string]*models.SecurityRecord, reference frame.Field) (*frame.Frame, error) {
	var priceFrame *frame.Frame

	if reference != "" {
		f, found := prices.Field(reference)
		if !found {
			return nil, models.NewParameterErrorf("declared contract value reference field %s not present in prices", reference)
		}
		priceFrame = f
	} else {
		_, f, found := prices.FirstAvailableField(frame.ContractValuePriorityFields)
		if !found {
			return nil, models.NewParameterErrorf(
				"can't calculate contract values without one of Close, Open, Bid, Ask, High, Low")
		}
		priceFrame = f
	}

	out := priceFrame.Copy()
	for _, sid := range out.Columns() {
		security, found := securities[sid]
		if !found {
			return nil, models.NewParameterErrorf("no security record for %s", sid)
		}

		vals := out.Column(sid)

		if security.SecType == models.SecTypeCash {
			for i := range vals {
				vals[i] = 1
			}
			continue
		}

		magnifier := security.GetPriceMagnifier()
		multiplier := security.GetMultiplier()
		for i := range vals {
			vals[i] = vals[i] / magnifier * multiplier
		}
	}

	return out, nil
}
