package strategy

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"sextant/src/frame"
	"sextant/src/models"
	"sextant/src/services"
)

// run bundles the immutable inputs and intermediate tables of one backtest
// or trade invocation. A fresh run is created per invocation, so strategy
// evaluation stays re-entrant.
type run struct {
	params     *Params
	strat      Strategy
	runCtx     *models.RunContext
	prices     *frame.PriceTable
	securities map[string]*models.SecurityRecord
	nlvs       *frame.Frame
	cv         *frame.Frame
	signals    *frame.Frame
	weights    *frame.Frame
}

// lookbackBuffer converts a lookback window in trading days to calendar
// days: ~235 trading days per 365 calendar days, plus a 10 day safety
// buffer.
func lookbackBuffer(lookbackWindow int) time.Duration {
	days := float64(lookbackWindow)*365.0/235.0 + 10
	return time.Duration(days*24) * time.Hour
}

// newRun fetches prices and reference data and runs the pipeline through
// weight generation (stages shared by backtest and trade modes).
func (e *Engine) newRun(ctx context.Context, strat Strategy, runCtx *models.RunContext, start, end time.Time, nlvOverride map[string]float64, noCache bool) (*run, error) {
	params := strat.Params()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	marketData := e.MarketData
	if noCache {
		if uncacheable, ok := marketData.(services.Uncacheable); ok {
			marketData = uncacheable.Uncached()
		}
	}

	query := services.PriceQuery{
		Fields:           params.fields(),
		End:              end,
		Sids:             params.Sids,
		Universes:        params.Universes,
		ExcludeSids:      params.ExcludeSids,
		ExcludeUniverses: params.ExcludeUniverses,
		Times:            params.Times,
	}
	if !start.IsZero() {
		query.Start = start.Add(-lookbackBuffer(params.lookbackWindow()))
	}

	prices, err := marketData.GetPrices(ctx, query)
	if err != nil {
		return nil, &models.ExternalError{Service: "market data", Err: fmt.Errorf("failed to get prices: %w", err)}
	}

	if len(prices.Index()) == 0 {
		return nil, &models.DataError{Msg: "no price data returned for the requested window"}
	}

	securities, err := e.Master.GetSecurityRecords(ctx, prices.Columns())
	if err != nil {
		return nil, &models.ExternalError{Service: "securities master", Err: fmt.Errorf("failed to get security records: %w", err)}
	}

	for _, sid := range prices.Columns() {
		if _, found := securities[sid]; !found {
			return nil, models.NewParameterErrorf("no security record for %s", sid)
		}
	}

	r := &run{
		params:     params,
		strat:      strat,
		runCtx:     runCtx,
		prices:     prices,
		securities: securities,
	}

	nlv := params.NLV
	if len(nlvOverride) > 0 {
		nlv = nlvOverride
	}
	if r.nlvs, err = nlvFrame(prices, securities, nlv); err != nil {
		return nil, err
	}

	if runCtx.Timezone, err = inferTimezone(params.Timezone, securities); err != nil {
		return nil, err
	}

	if r.cv, err = contractValues(prices, securities, params.ContractValueReference); err != nil {
		return nil, err
	}

	log.Debugf("run %s: %d bars, %d instruments", runCtx.RunID, len(prices.Index()), len(prices.Columns()))

	if r.signals, err = strat.PricesToSignals(prices); err != nil {
		return nil, fmt.Errorf("failed to generate signals: %w", err)
	}
	if err := validateSignals(r.signals, prices); err != nil {
		return nil, err
	}

	if allocator, ok := strat.(WeightAllocator); ok {
		if r.weights, err = allocator.SignalsToTargetWeights(r.signals, prices); err != nil {
			return nil, fmt.Errorf("failed to allocate weights: %w", err)
		}
	} else {
		r.weights = BaseStrategy{}.AllocateEqualWeights(r.signals, 1.0)
	}

	return r, nil
}

// validateSignals rejects user rules that return the wrong shape.
func validateSignals(signals *frame.Frame, prices *frame.PriceTable) error {
	if signals == nil || signals.NumRows() == 0 {
		return models.NewParameterErrorf("PricesToSignals returned an empty table")
	}

	known := make(map[string]bool, len(prices.Columns()))
	for _, sid := range prices.Columns() {
		known[sid] = true
	}
	for _, sid := range signals.Columns() {
		if !known[sid] {
			return models.NewParameterErrorf("PricesToSignals returned unknown instrument %s", sid)
		}
	}

	return nil
}

// nlvFrame broadcasts the currency->NLV map to a frame shaped like the
// prices, using each instrument's currency. Returns nil when no NLV is
// declared; errors when a declared map is missing a required currency.
func nlvFrame(prices *frame.PriceTable, securities map[string]*models.SecurityRecord, nlv map[string]float64) (*frame.Frame, error) {
	if len(nlv) == 0 {
		return nil, nil
	}

	missing := make(map[string]bool)
	out := frame.NewFrame(prices.Index(), prices.Columns())
	for _, sid := range prices.Columns() {
		currency := securities[sid].Currency
		value, found := nlv[currency]
		if !found {
			missing[currency] = true
			continue
		}

		vals := out.Column(sid)
		for i := range vals {
			vals[i] = value
		}
		nlvCopy := value
		securities[sid].Nlv = &nlvCopy
	}

	if len(missing) > 0 {
		var currencies []string
		for currency := range missing {
			currencies = append(currencies, currency)
		}
		sort.Strings(currencies)
		return nil, models.NewParameterErrorf("NLV is missing values for required currencies: %s", strings.Join(currencies, ", "))
	}

	return out, nil
}

// inferTimezone uses the declared timezone, or the single timezone shared by
// every security. Multiple timezones with none declared is a configuration
// error.
func inferTimezone(declared string, securities map[string]*models.SecurityRecord) (*time.Location, error) {
	if declared != "" {
		loc, err := time.LoadLocation(declared)
		if err != nil {
			return nil, models.NewParameterErrorf("invalid timezone %s: %v", declared, err)
		}
		return loc, nil
	}

	timezones := make(map[string]bool)
	for _, security := range securities {
		if security.Timezone != "" {
			timezones[security.Timezone] = true
		}
	}

	if len(timezones) > 1 {
		var names []string
		for name := range timezones {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, models.NewParameterErrorf(
			"cannot infer timezone because multiple timezones are present, please declare one (found: %s)",
			strings.Join(names, ", "))
	}

	for name := range timezones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, models.NewParameterErrorf("invalid timezone %s: %v", name, err)
		}
		return loc, nil
	}

	return time.UTC, nil
}
