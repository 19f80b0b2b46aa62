package strategy

import (
	"time"

	"sextant/src/frame"
)

// Result field names, in assembly order.
const (
	ResultSignal        = "Signal"
	ResultWeight        = "Weight"
	ResultAbsWeight     = "AbsWeight"
	ResultNetExposure   = "NetExposure"
	ResultAbsExposure   = "AbsExposure"
	ResultTotalHoldings = "TotalHoldings"
	ResultTurnover      = "Turnover"
	ResultCommission    = "Commission"
	ResultSlippage      = "Slippage"
	ResultReturn        = "Return"
	ResultBenchmark     = "Benchmark"
)

// Results is a backtest's output: one sub-table per metric, all sharing the
// same date/time index.
type Results struct {
	names  []string
	frames map[string]*frame.Frame
}

func newResults() *Results {
	return &Results{frames: make(map[string]*frame.Frame)}
}

func (r *Results) add(name string, f *frame.Frame) {
	if _, found := r.frames[name]; !found {
		r.names = append(r.names, name)
	}
	r.frames[name] = f
}

// Names returns the metric names in assembly order.
func (r *Results) Names() []string {
	return r.names
}

func (r *Results) Frame(name string) (*frame.Frame, bool) {
	f, found := r.frames[name]
	return f, found
}

// Returns is a shorthand for the net Return table.
func (r *Results) Returns() *frame.Frame {
	return r.frames[ResultReturn]
}

func (r *Results) truncate(start time.Time) {
	if start.IsZero() {
		return
	}

	for name, f := range r.frames {
		r.frames[name] = f.Truncate(start)
	}
}
