package models

import "math"

// RebalancePolicy controls whether small adjustments to an existing
// same-direction position generate orders.
//
// The zero value always acts on the net quantity. Suppressed policies zero
// out the net quantity whenever the target and current quantities share the
// same sign; reversals and closes are always allowed. A positive threshold
// re-allows the order once |net / current| meets it.
type RebalancePolicy struct {
	suppress  bool
	threshold float64
}

// AllowRebalance always acts on the net quantity (the default).
func AllowRebalance() RebalancePolicy {
	return RebalancePolicy{}
}

// SuppressRebalance never adjusts an existing same-direction position.
func SuppressRebalance() RebalancePolicy {
	return RebalancePolicy{suppress: true}
}

// RebalanceThreshold suppresses same-direction adjustments smaller than the
// given fraction of the current position.
func RebalanceThreshold(fraction float64) RebalancePolicy {
	return RebalancePolicy{suppress: true, threshold: fraction}
}

func (p RebalancePolicy) Validate() error {
	if math.IsNaN(p.threshold) || p.threshold < 0 || p.threshold >= 1 {
		return NewParameterErrorf("rebalance threshold must be a fraction between 0 and 1, got %v", p.threshold)
	}
	return nil
}

// AdjustedNetQuantity applies the policy to a computed net quantity given the
// current and target quantities.
func (p RebalancePolicy) AdjustedNetQuantity(netQty, currentQty, targetQty float64) float64 {
	if !p.suppress || currentQty == 0 {
		return netQty
	}

	sameSign := (currentQty > 0) == (targetQty > 0)
	if targetQty == 0 || !sameSign {
		return netQty
	}

	if p.threshold > 0 && math.Abs(netQty/currentQty) >= p.threshold {
		return netQty
	}

	return 0
}
