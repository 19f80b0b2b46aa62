package slippage

import (
	"sextant/src/frame"
)

// CompositeSlippage sums any number of child slippage models plus an optional
// flat basis-point cost.
type CompositeSlippage struct {
	Children []Slippage
	FlatBPS  float64
}

func (s CompositeSlippage) Slippages(turnover, positions *frame.Frame, prices *frame.PriceTable) (*frame.Frame, error) {
	total := frame.NewConstantFrame(turnover.Index(), turnover.Columns(), 0)

	for _, child := range s.Children {
		childSlippage, err := child.Slippages(turnover, positions, prices)
		if err != nil {
			return nil, err
		}
		total = total.Add(childSlippage)
	}

	if s.FlatBPS > 0 {
		flatSlippage, err := FromBPS(s.FlatBPS).Slippages(turnover, positions, prices)
		if err != nil {
			return nil, err
		}
		total = total.Add(flatSlippage)
	}

	return total, nil
}
