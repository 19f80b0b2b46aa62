package strategy

import (
	"math"

	"sextant/src/frame"
)

// BaseStrategy provides the built-in weight allocation algorithms. Embed it
// in a strategy to use them from SignalsToTargetWeights.
type BaseStrategy struct{}

// AllocateEqualWeights scales each bar's signals by the bar's absolute signal
// sum, so the absolute weights never sum to more than the cap. Each bar is
// allocated independently of prior bars.
func (BaseStrategy) AllocateEqualWeights(signals *frame.Frame, cap float64) *frame.Frame {
	out := signals.Copy()
	for row := 0; row < out.NumRows(); row++ {
		// No signals: divide by 1 to leave the row as-is.
		divisor := out.RowAbsSum(row)
		if divisor == 0 {
			divisor = 1
		}

		for _, col := range out.Columns() {
			v := out.At(row, col)
			if !frame.IsMissing(v) {
				out.Set(row, col, v/divisor*cap)
			}
		}
	}
	return out
}

// AllocateFixedWeights applies the same fixed weight to every signal.
func (BaseStrategy) AllocateFixedWeights(signals *frame.Frame, weight float64) *frame.Frame {
	return signals.MulScalar(weight)
}

// AllocateFixedWeightsCapped applies fixed weights, falling back to equal
// weights on any bar where the fixed weights would exceed the cap.
func (s BaseStrategy) AllocateFixedWeightsCapped(signals *frame.Frame, weight, cap float64) *frame.Frame {
	equalWeighted := s.AllocateEqualWeights(signals, cap)
	fixedWeighted := s.AllocateFixedWeights(signals, weight)

	out := fixedWeighted.Copy()
	for row := 0; row < out.NumRows(); row++ {
		if fixedWeighted.RowAbsSum(row) <= cap {
			continue
		}

		for _, col := range out.Columns() {
			out.Set(row, col, equalWeighted.At(row, col))
		}
	}
	return out
}

// AllocateMarketNeutralFixedWeightsCapped applies fixed capped weights to the
// long and short sides separately, giving each side half the cap, then
// neutralizes any residual imbalance.
func (s BaseStrategy) AllocateMarketNeutralFixedWeightsCapped(signals *frame.Frame, weight, cap float64) *frame.Frame {
	longSignals := signals.WhereScalar(func(v float64) bool { return v > 0 }, 0)
	shortSignals := signals.WhereScalar(func(v float64) bool { return v < 0 }, 0)

	capPerSide := cap * 0.5
	longWeights := s.AllocateFixedWeightsCapped(longSignals, weight, capPerSide)
	shortWeights := s.AllocateFixedWeightsCapped(shortSignals, weight, capPerSide)

	weights := longWeights.Where(func(v float64) bool { return v > 0 }, shortWeights)
	return s.NeutralizeWeights(weights)
}

// NeutralizeWeights proportionately reduces whichever of the long or short
// side carries more total weight, bar by bar, so the two sides balance.
func (BaseStrategy) NeutralizeWeights(weights *frame.Frame) *frame.Frame {
	out := weights.Copy()
	for row := 0; row < out.NumRows(); row++ {
		totalLong := 0.0
		totalShort := 0.0
		for _, col := range out.Columns() {
			v := out.At(row, col)
			if frame.IsMissing(v) {
				continue
			}
			if v > 0 {
				totalLong += v
			} else {
				totalShort += math.Abs(v)
			}
		}

		if totalLong == totalShort {
			continue
		}

		for _, col := range out.Columns() {
			v := out.At(row, col)
			if frame.IsMissing(v) {
				continue
			}

			if v > 0 && totalLong > totalShort {
				out.Set(row, col, v*totalShort/totalLong)
			} else if v < 0 && totalShort > totalLong {
				out.Set(row, col, v*totalLong/totalShort)
			}
		}
	}
	return out
}
