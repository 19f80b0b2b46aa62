package services

import (
	"context"
	"fmt"
	"time"

	"sextant/src/frame"
	"sextant/src/models"
)

// StaticAccountService serves fixed balances and exchange rates. Same-currency
// pairs always resolve to 1 without a lookup.
type StaticAccountService struct {
	Balances map[string]*models.AccountBalance
	Rates    map[models.CurrencyPair]float64
}

func (s *StaticAccountService) GetAccountBalances(ctx context.Context, accounts []string, field string) (map[string]*models.AccountBalance, error) {
	out := make(map[string]*models.AccountBalance)
	for _, account := range accounts {
		balance, found := s.Balances[account]
		if !found {
			return nil, fmt.Errorf("no balance for account %s", account)
		}
		out[account] = balance
	}
	return out, nil
}

func (s *StaticAccountService) GetExchangeRates(ctx context.Context, pairs []models.CurrencyPair) (map[models.CurrencyPair]float64, error) {
	out := make(map[models.CurrencyPair]float64)
	for _, pair := range pairs {
		if pair.Base == pair.Quote {
			out[pair] = 1
			continue
		}

		rate, found := s.Rates[pair]
		if !found {
			return nil, fmt.Errorf("no exchange rate for %s.%s", pair.Base, pair.Quote)
		}
		out[pair] = rate
	}
	return out, nil
}

// StaticBrokerService serves fixed open quantities keyed by order ref.
type StaticBrokerService struct {
	Quantities map[string]map[models.PositionKey]float64
}

func (s *StaticBrokerService) GetOpenQuantities(ctx context.Context, orderRef string, accounts []string, sids []string) (map[models.PositionKey]float64, error) {
	out := make(map[models.PositionKey]float64)
	for key, qty := range s.Quantities[orderRef] {
		out[key] = qty
	}
	return out, nil
}

// StaticCalendarService serves a fixed list of trading sessions.
type StaticCalendarService struct {
	Sessions []*models.Calendar
}

func (s *StaticCalendarService) LastSession(ctx context.Context, exchange string, asOf time.Time) (*models.Calendar, error) {
	var last *models.Calendar
	for _, session := range s.Sessions {
		if session.MarketOpen.After(asOf) {
			continue
		}
		if last == nil || session.MarketOpen.After(last.MarketOpen) {
			last = session
		}
	}

	if last == nil {
		return nil, fmt.Errorf("no session on or before %s for exchange %s", asOf.Format("2006-01-02"), exchange)
	}

	return last, nil
}

// StaticBorrowFees serves a fixed annual borrow fee rate per instrument,
// satisfying slippage.BorrowFeeFetcher.
type StaticBorrowFees struct {
	AnnualRates map[string]float64
}

func (s *StaticBorrowFees) BorrowFeesAlignedTo(positions *frame.Frame) (*frame.Frame, error) {
	out := frame.NewConstantFrame(positions.Index(), positions.Columns(), 0)
	for sid, rate := range s.AnnualRates {
		if !out.HasColumn(sid) {
			continue
		}
		for i := 0; i < out.NumRows(); i++ {
			out.Set(i, sid, rate)
		}
	}
	return out, nil
}
