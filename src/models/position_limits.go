package models

import "sextant/src/frame"

// PositionLimits caps target position sizes in whole quantities. A nil frame
// means no constraint on that side.
type PositionLimits struct {
	MaxLong  *frame.Frame
	MaxShort *frame.Frame
}

func (l *PositionLimits) IsUnconstrained() bool {
	return l == nil || (l.MaxLong == nil && l.MaxShort == nil)
}
