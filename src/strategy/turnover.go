package strategy

import (
	"sextant/src/frame"
)

// positionsToTurnover computes the non-negative fraction of account equity
// turning over each bar. With positionsClosedDaily the full position is
// entered and exited every bar, so turnover is 2 x |position| rather than a
// bar-over-bar diff; otherwise the first bar has no prior bar to diff
// against and is missing.
func positionsToTurnover(positions *frame.Frame, positionsClosedDaily bool) *frame.Frame {
	if positionsClosedDaily {
		return positions.Abs().MulScalar(2)
	}

	return positions.Diff().Abs()
}
