package strategy

import (
	"sextant/src/commission"
	"sextant/src/frame"
	"sextant/src/models"
	"sextant/src/slippage"
)

// DefaultLookbackWindow is the rolling-window buffer, in trading days,
// fetched ahead of the requested start date when none is declared.
const DefaultLookbackWindow = 252

const DefaultAccountBalanceField = "NetLiquidation"

// Params is the caller-visible configuration of a strategy, declared once and
// read-only during a run.
type Params struct {
	// Code identifies the strategy; it becomes the order ref on live orders.
	Code string

	// Universe filters passed through to the market data service.
	Sids             []string
	Universes        []string
	ExcludeSids      []string
	ExcludeUniverses []string

	// Fields to fetch; defaults to Open/High/Low/Close/Volume.
	Fields []frame.Field

	// Times restricts intraday queries to these times of day.
	Times []string

	// LookbackWindow is the rolling-window buffer in trading days. Zero
	// means DefaultLookbackWindow.
	LookbackWindow int

	// RebalanceIntervalDays extends the lookback buffer for strategies that
	// rebalance on a periodic interval longer than their rolling windows.
	RebalanceIntervalDays int

	// NLV maps currency to net liquidation value for backtests.
	NLV map[string]float64

	// Commission applies one cost model to the whole universe.
	Commission commission.Commission

	// CommissionGroups assigns a cost model per (sectype, exchange,
	// currency) group. Takes precedence over Commission when set.
	CommissionGroups commission.GroupMap

	Slippages   []slippage.Slippage
	SlippageBPS float64

	// Benchmark is the sid of a reference instrument carried alongside
	// results. BenchmarkDB sources it from a separate database instead of
	// the strategy's own price table; BenchmarkTime selects the time of day
	// used to cross-section intraday benchmark prices.
	Benchmark     string
	BenchmarkDB   string
	BenchmarkTime string

	// Timezone overrides the timezone inferred from the securities.
	Timezone string

	// CalendarExchange resolves signal dates against this venue's trading
	// calendar when set.
	CalendarExchange string

	// PositionsClosedDaily switches turnover from position-diffing to
	// 2 x |position|, for strategies that enter and exit every bar.
	PositionsClosedDaily bool

	Rebalance models.RebalancePolicy

	// ContractValueReference picks the price field used for contract
	// valuation. Empty means the first available of Close, Open, Bid, Ask,
	// High, Low.
	ContractValueReference frame.Field

	// AccountBalanceField is the balance field used to size live orders.
	AccountBalanceField string
}

func (p *Params) Validate() error {
	if p.Code == "" {
		return models.NewParameterErrorf("strategy code is required")
	}

	if err := p.Rebalance.Validate(); err != nil {
		return err
	}

	return nil
}

func (p *Params) fields() []frame.Field {
	if len(p.Fields) > 0 {
		return p.Fields
	}
	return []frame.Field{frame.FieldOpen, frame.FieldHigh, frame.FieldLow, frame.FieldClose, frame.FieldVolume}
}

func (p *Params) lookbackWindow() int {
	lookback := p.LookbackWindow
	if lookback == 0 {
		lookback = DefaultLookbackWindow
	}

	if p.RebalanceIntervalDays > lookback {
		lookback = p.RebalanceIntervalDays
	}

	return lookback
}

func (p *Params) accountBalanceField() string {
	if p.AccountBalanceField != "" {
		return p.AccountBalanceField
	}
	return DefaultAccountBalanceField
}
