package models

import (
	"time"

	"github.com/google/uuid"
)

// RunContext carries per-run state through the pipeline so that strategy
// instances stay re-entrant: mode flags, the inferred timezone, and the
// resolved signal date/time for live trading.
type RunContext struct {
	RunID      uuid.UUID
	IsBacktest bool
	IsTrade    bool
	Timezone   *time.Location
	SignalDate time.Time
}

func NewBacktestContext() *RunContext {
	return &RunContext{
		RunID:      uuid.New(),
		IsBacktest: true,
	}
}

func NewTradeContext() *RunContext {
	return &RunContext{
		RunID:   uuid.New(),
		IsTrade: true,
	}
}
