package services

import (
	"context"
	"time"

	"sextant/src/frame"
	"sextant/src/models"
)

// PriceQuery describes a request for a window of market data. The engine
// always extends Start backwards by the strategy's lookback buffer before
// querying.
type PriceQuery struct {
	Fields           []frame.Field
	Start            time.Time
	End              time.Time
	Sids             []string
	Universes        []string
	ExcludeSids      []string
	ExcludeUniverses []string
	Times            []string
}

// MarketDataService retrieves historical prices.
type MarketDataService interface {
	GetPrices(ctx context.Context, query PriceQuery) (*frame.PriceTable, error)
}

// Uncacheable is implemented by market data services that can hand out an
// uncached view of themselves, honoring a backtest's noCache flag.
type Uncacheable interface {
	Uncached() MarketDataService
}

// MasterService retrieves security reference data.
type MasterService interface {
	GetSecurityRecords(ctx context.Context, sids []string) (map[string]*models.SecurityRecord, error)
}

// AccountService retrieves account balances and exchange rates (trade mode
// only).
type AccountService interface {
	GetAccountBalances(ctx context.Context, accounts []string, field string) (map[string]*models.AccountBalance, error)
	GetExchangeRates(ctx context.Context, pairs []models.CurrencyPair) (map[models.CurrencyPair]float64, error)
}

// BrokerService retrieves the net open quantity (position plus open-order
// remaining quantity) per instrument and account for a strategy code.
type BrokerService interface {
	GetOpenQuantities(ctx context.Context, orderRef string, accounts []string, sids []string) (map[models.PositionKey]float64, error)
}

// CalendarService resolves trading sessions for signal-date selection.
type CalendarService interface {
	LastSession(ctx context.Context, exchange string, asOf time.Time) (*models.Calendar, error)
}

// BenchmarkService retrieves an end-of-day benchmark series from a separate
// declared database.
type BenchmarkService interface {
	GetBenchmarkPrices(ctx context.Context, db string, sid string, start, end time.Time) (*frame.Frame, error)
}
