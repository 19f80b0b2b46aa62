package strategy

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"sextant/src/frame"
	"sextant/src/models"
	"sextant/src/utils"
)

// Trade runs the pipeline through weight generation, converts the latest
// weights into currency-aware target quantities per account, diffs them
// against existing positions and open orders, and returns the minimal order
// delta. An empty delta is a well-defined no-op: Trade returns no orders and
// no error.
func (e *Engine) Trade(ctx context.Context, strat Strategy, allocations models.AccountAllocations, reviewDate *time.Time) ([]*models.Order, error) {
	if e.Accounts == nil || e.Broker == nil {
		return nil, models.NewParameterErrorf("trade mode requires account and broker services")
	}

	if err := allocations.Validate(); err != nil {
		return nil, err
	}

	runCtx := models.NewTradeContext()

	now := time.Now()
	if reviewDate != nil {
		now = *reviewDate
	}

	r, err := e.newRun(ctx, strat, runCtx, now, now, nil, false)
	if err != nil {
		return nil, err
	}

	now = now.In(runCtx.Timezone)

	signalRow, signalTs, err := e.resolveSignalRow(ctx, r, now)
	if err != nil {
		return nil, err
	}
	runCtx.SignalDate = signalTs

	accounts := allocations.Accounts()
	sort.Strings(accounts)

	balances, err := e.Accounts.GetAccountBalances(ctx, accounts, r.params.accountBalanceField())
	if err != nil {
		return nil, &models.ExternalError{Service: "account balances", Err: fmt.Errorf("failed to get account balances: %w", err)}
	}

	rates, err := e.getTradeCurrencyRates(ctx, r, balances)
	if err != nil {
		return nil, err
	}

	cvRow := r.cv.Row(signalRow)

	maxLongRow, maxShortRow, err := positionLimitRows(r, signalTs)
	if err != nil {
		return nil, err
	}

	currentQtys, err := e.Broker.GetOpenQuantities(ctx, r.params.Code, accounts, r.weights.Columns())
	if err != nil {
		return nil, &models.ExternalError{Service: "broker", Err: fmt.Errorf("failed to get open positions and orders: %w", err)}
	}

	var stubs []*models.OrderStub
	weightRow := r.weights.Row(signalRow)

	for _, sid := range r.weights.Columns() {
		weight := weightRow[sid]
		if frame.IsMissing(weight) {
			weight = 0
		}

		for _, account := range accounts {
			balance := balances[account]
			if balance == nil {
				return nil, models.NewParameterErrorf("no %s balance for account %s", r.params.accountBalanceField(), account)
			}

			targetQty := 0.0
			cv := cvRow[sid]
			if weight != 0 && !frame.IsMissing(cv) && cv != 0 {
				pair := models.CurrencyPair{Base: balance.Currency, Quote: r.securities[sid].TradeCurrency()}
				targetQty = utils.RoundQuantity(weight * allocations[account] * balance.Balance * rates[pair] / math.Abs(cv))
			}

			if maxLong, found := maxLongRow[sid]; found && targetQty > 0 {
				targetQty = math.Min(targetQty, maxLong)
			}
			if maxShort, found := maxShortRow[sid]; found && targetQty < 0 {
				targetQty = math.Max(targetQty, -maxShort)
			}

			currentQty := currentQtys[models.PositionKey{Sid: sid, Account: account}]
			netQty := r.params.Rebalance.AdjustedNetQuantity(targetQty-currentQty, currentQty, targetQty)
			if netQty == 0 {
				continue
			}

			action := models.OrderActionBuy
			if netQty < 0 {
				action = models.OrderActionSell
			}

			stubs = append(stubs, &models.OrderStub{
				Sid:           sid,
				Account:       account,
				Action:        action,
				OrderRef:      r.params.Code,
				TotalQuantity: math.Abs(netQty),
			})
		}
	}

	if len(stubs) == 0 {
		log.Infof("trade %s: target quantities match current positions, no orders to place", r.params.Code)
		return nil, nil
	}

	if finalizer, ok := strat.(OrderFinalizer); ok {
		orders, err := finalizer.OrderStubsToOrders(stubs, r.prices)
		if err != nil {
			return nil, fmt.Errorf("failed to finalize orders: %w", err)
		}
		return orders, nil
	}

	return defaultOrderStubsToOrders(stubs), nil
}

// resolveSignalRow selects the weight row that should drive today's trading:
// today's date in the account timezone, or the last session's date when a
// trading calendar is declared and the venue is closed; for intraday weight
// tables, the latest row strictly earlier than the review time. A missing
// expected date/time means the upstream data is stale and is surfaced with
// the expected and max available timestamps.
func (e *Engine) resolveSignalRow(ctx context.Context, r *run, now time.Time) (int, time.Time, error) {
	expectedDate := frame.DateOf(now)

	if r.params.CalendarExchange != "" {
		if e.Calendars == nil {
			return 0, time.Time{}, models.NewParameterErrorf("a trading calendar is declared but no calendar service is configured")
		}

		session, err := e.Calendars.LastSession(ctx, r.params.CalendarExchange, now)
		if err != nil {
			return 0, time.Time{}, &models.ExternalError{
				Service: fmt.Sprintf("trading calendar %s", r.params.CalendarExchange),
				Err:     fmt.Errorf("failed to resolve session: %w", err),
			}
		}
		expectedDate = frame.DateOf(session.MarketOpen)

		if session.IsBetweenMarketHours(now) {
			log.Infof("%s is open, trading session %s signals", r.params.CalendarExchange, session.Date)
		} else {
			log.Infof("%s is closed, trading last session %s signals", r.params.CalendarExchange, session.Date)
		}
	}

	index := r.weights.Index()
	maxAvailable := index[len(index)-1]

	if frame.HasTimeComponent(index) {
		selected := -1
		for i, ts := range index {
			if sameDay(ts, expectedDate) && frame.TimeOfDay(ts) < frame.TimeOfDay(now) {
				selected = i
			}
		}

		if selected < 0 {
			return 0, time.Time{}, &models.DataError{
				Msg:          "no signal time available for today's trading, is the data up to date?",
				Expected:     expectedDate,
				MaxAvailable: maxAvailable,
			}
		}
		return selected, index[selected], nil
	}

	for i, ts := range index {
		if sameDay(ts, expectedDate) {
			return i, ts, nil
		}
	}

	return 0, time.Time{}, &models.DataError{
		Msg:          "expected signal date not present in weights, is the data up to date?",
		Expected:     expectedDate,
		MaxAvailable: maxAvailable,
	}
}

// sameDay compares calendar dates, each timestamp in its own location.
func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// getTradeCurrencyRates fetches the exchange rate from each account's base
// currency to each instrument's trade currency. Same-currency pairs resolve
// to 1 without a lookup.
func (e *Engine) getTradeCurrencyRates(ctx context.Context, r *run, balances map[string]*models.AccountBalance) (map[models.CurrencyPair]float64, error) {
	out := make(map[models.CurrencyPair]float64)

	var pairs []models.CurrencyPair
	for _, balance := range balances {
		for _, sid := range r.weights.Columns() {
			pair := models.CurrencyPair{Base: balance.Currency, Quote: r.securities[sid].TradeCurrency()}
			if _, seen := out[pair]; seen {
				continue
			}

			if pair.Base == pair.Quote {
				out[pair] = 1
				continue
			}

			out[pair] = 0
			pairs = append(pairs, pair)
		}
	}

	if len(pairs) == 0 {
		return out, nil
	}

	rates, err := e.Accounts.GetExchangeRates(ctx, pairs)
	if err != nil {
		return nil, &models.ExternalError{Service: "exchange rates", Err: fmt.Errorf("failed to get exchange rates: %w", err)}
	}

	for pair, rate := range rates {
		out[pair] = rate
	}

	return out, nil
}

// positionLimitRows evaluates the strategy's position limits at the selected
// signal date/time.
func positionLimitRows(r *run, signalTs time.Time) (map[string]float64, map[string]float64, error) {
	maxLongRow := make(map[string]float64)
	maxShortRow := make(map[string]float64)

	limiter, ok := r.strat.(PositionLimiter)
	if !ok {
		return maxLongRow, maxShortRow, nil
	}

	limits, err := limiter.LimitPositionSizes(r.prices)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to limit position sizes: %w", err)
	}
	if limits.IsUnconstrained() {
		return maxLongRow, maxShortRow, nil
	}

	fillRow := func(f *frame.Frame, row map[string]float64) {
		if f == nil {
			return
		}

		selected := -1
		for i, ts := range f.Index() {
			if ts.After(signalTs) {
				continue
			}
			if sameDay(ts, signalTs) {
				selected = i
			}
		}
		if selected < 0 {
			return
		}

		for sid, v := range f.Row(selected) {
			if !frame.IsMissing(v) {
				row[sid] = v
			}
		}
	}

	fillRow(limits.MaxLong, maxLongRow)
	fillRow(limits.MaxShort, maxShortRow)

	return maxLongRow, maxShortRow, nil
}
