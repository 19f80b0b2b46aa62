package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sextant/src/models"
)

func TestStaticAccountService(t *testing.T) {
	service := &StaticAccountService{
		Balances: map[string]*models.AccountBalance{
			"U123": {Account: "U123", Balance: 100000, Currency: "USD"},
		},
		Rates: map[models.CurrencyPair]float64{
			{Base: "USD", Quote: "JPY"}: 155.0,
		},
	}

	t.Run("serves known balances", func(t *testing.T) {
		balances, err := service.GetAccountBalances(context.Background(), []string{"U123"}, "NetLiquidation")
		require.NoError(t, err)
		require.Equal(t, 100000.0, balances["U123"].Balance)
	})

	t.Run("errors on unknown accounts", func(t *testing.T) {
		_, err := service.GetAccountBalances(context.Background(), []string{"U999"}, "NetLiquidation")
		require.Error(t, err)
	})

	t.Run("same-currency pairs resolve to 1", func(t *testing.T) {
		pairs := []models.CurrencyPair{
			{Base: "USD", Quote: "USD"},
			{Base: "USD", Quote: "JPY"},
		}

		rates, err := service.GetExchangeRates(context.Background(), pairs)
		require.NoError(t, err)
		require.Equal(t, 1.0, rates[pairs[0]])
		require.Equal(t, 155.0, rates[pairs[1]])
	})

	t.Run("errors on unknown pairs", func(t *testing.T) {
		_, err := service.GetExchangeRates(context.Background(), []models.CurrencyPair{{Base: "USD", Quote: "EUR"}})
		require.Error(t, err)
	})
}

func TestStaticCalendarService(t *testing.T) {
	open := func(day int) time.Time {
		return time.Date(2024, 6, day, 14, 30, 0, 0, time.UTC)
	}

	service := &StaticCalendarService{
		Sessions: []*models.Calendar{
			{Date: "2024-06-03", MarketOpen: open(3), MarketClose: open(3).Add(7 * time.Hour)},
			{Date: "2024-06-04", MarketOpen: open(4), MarketClose: open(4).Add(7 * time.Hour)},
		},
	}

	t.Run("returns the latest session on or before the date", func(t *testing.T) {
		session, err := service.LastSession(context.Background(), "XNYS", open(4).AddDate(0, 0, 2))
		require.NoError(t, err)
		require.Equal(t, "2024-06-04", session.Date)
	})

	t.Run("errors when no session has started yet", func(t *testing.T) {
		_, err := service.LastSession(context.Background(), "XNYS", open(3).AddDate(0, 0, -1))
		require.Error(t, err)
	})
}
