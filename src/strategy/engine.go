package strategy

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"sextant/src/commission"
	"sextant/src/frame"
	"sextant/src/models"
	"sextant/src/services"
	"sextant/src/slippage"
)

// Engine drives the simulation pipeline. MarketData and Master are required;
// the remaining services are only consulted in trade mode or when the
// strategy declares a benchmark database, a trading calendar, or borrow-fee
// slippage.
type Engine struct {
	MarketData services.MarketDataService
	Master     services.MasterService
	Accounts   services.AccountService
	Broker     services.BrokerService
	Calendars  services.CalendarService
	Benchmarks services.BenchmarkService
}

func NewEngine(marketData services.MarketDataService, master services.MasterService) *Engine {
	return &Engine{
		MarketData: marketData,
		Master:     master,
	}
}

type BacktestOptions struct {
	Start      time.Time
	End        time.Time
	NLV        map[string]float64
	Allocation float64
	NoCache    bool
}

// Backtest simulates the strategy bar by bar over the requested window and
// returns the assembled result tables, truncated to the requested start date
// after the lookback buffer is consumed.
func (e *Engine) Backtest(ctx context.Context, strat Strategy, opts BacktestOptions) (*Results, error) {
	runCtx := models.NewBacktestContext()

	r, err := e.newRun(ctx, strat, runCtx, opts.Start, opts.End, opts.NLV, opts.NoCache)
	if err != nil {
		return nil, err
	}

	allocation := opts.Allocation
	if allocation == 0 {
		allocation = 1.0
	}

	weights := r.weights.MulScalar(allocation)

	var limits *models.PositionLimits
	if limiter, ok := strat.(PositionLimiter); ok {
		if limits, err = limiter.LimitPositionSizes(r.prices); err != nil {
			return nil, fmt.Errorf("failed to limit position sizes: %w", err)
		}
	}

	if weights, err = constrainWeights(weights, r.prices, r.securities, r.nlvs, limits, r.params.ContractValueReference); err != nil {
		return nil, err
	}

	positions, err := simulatePositions(r.strat, weights, r.prices)
	if err != nil {
		return nil, err
	}

	grossReturns, err := simulateGrossReturns(r.strat, positions, r.prices)
	if err != nil {
		return nil, err
	}

	turnover := positionsToTurnover(positions, r.params.PositionsClosedDaily)

	commissions, err := e.getCommissions(r, turnover)
	if err != nil {
		return nil, err
	}

	slippages, err := e.getSlippages(r, turnover, positions)
	if err != nil {
		return nil, err
	}

	netReturns := grossReturns.FillNA(0).Sub(commissions.FillNA(0)).Sub(slippages.FillNA(0))

	results := newResults()
	results.add(ResultSignal, r.signals)
	results.add(ResultWeight, weights)
	results.add(ResultAbsWeight, weights.Abs())
	results.add(ResultNetExposure, positions)
	results.add(ResultAbsExposure, positions.Abs())
	results.add(ResultTotalHoldings, positions.Apply(func(v float64) float64 {
		if !frame.IsMissing(v) && v != 0 {
			return 1
		}
		return 0
	}))
	results.add(ResultTurnover, turnover)
	results.add(ResultCommission, commissions)
	results.add(ResultSlippage, slippages)
	results.add(ResultReturn, netReturns)

	if r.params.Benchmark != "" {
		benchmark, err := e.getBenchmark(ctx, r, !frame.HasTimeComponent(weights.Index()))
		if err != nil {
			return nil, err
		}
		results.add(ResultBenchmark, benchmark)
	}

	if saver, ok := strat.(ResultsSaver); ok {
		for name, saved := range saver.SavedResults() {
			results.add(name, saved)
		}
	}

	results.truncate(opts.Start)

	log.Infof("backtest %s complete: %s, %d instruments", r.params.Code, runCtx.RunID, len(r.prices.Columns()))

	return results, nil
}

func simulatePositions(strat Strategy, weights *frame.Frame, prices *frame.PriceTable) (*frame.Frame, error) {
	if shifter, ok := strat.(PositionShifter); ok {
		positions, err := shifter.TargetWeightsToPositions(weights, prices)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate positions: %w", err)
		}
		return positions, nil
	}

	// Enter positions the bar after the weights are assigned.
	return weights.Shift(1), nil
}

func simulateGrossReturns(strat Strategy, positions *frame.Frame, prices *frame.PriceTable) (*frame.Frame, error) {
	if simulator, ok := strat.(ReturnSimulator); ok {
		grossReturns, err := simulator.PositionsToGrossReturns(positions, prices)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate gross returns: %w", err)
		}
		return grossReturns, nil
	}

	closes, found := prices.Field(frame.FieldClose)
	if !found {
		return nil, models.NewParameterErrorf("default gross return simulation requires the Close field")
	}

	return closes.PctChange().Mul(positions.Shift(1)), nil
}

func (e *Engine) getCommissions(r *run, turnover *frame.Frame) (*frame.Frame, error) {
	if len(r.params.CommissionGroups) > 0 {
		return r.params.CommissionGroups.Commissions(r.securities, r.cv, turnover, r.nlvs)
	}

	var model commission.Commission = commission.NoCommission{}
	if r.params.Commission != nil {
		model = r.params.Commission
	}

	return model.Commissions(r.cv, turnover, r.nlvs)
}

func (e *Engine) getSlippages(r *run, turnover, positions *frame.Frame) (*frame.Frame, error) {
	composite := slippage.CompositeSlippage{
		Children: r.params.Slippages,
		FlatBPS:  r.params.SlippageBPS,
	}

	slippages, err := composite.Slippages(turnover, positions, r.prices)
	if err != nil {
		return nil, err
	}

	return slippages, nil
}
