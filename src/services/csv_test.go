package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sextant/src/frame"
	"sextant/src/models"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestCSVMarketData(t *testing.T) {
	path := writeTempFile(t, "prices.csv", `Sid,Date,Open,High,Low,Close,Volume
AAPL,2024-06-03,195,199,194,198,1000000
AAPL,2024-06-04,198,201,197,200,1100000
MSFT,2024-06-03,420,425,418,424,800000
MSFT,2024-06-04,424,430,423,429,900000
`)

	service := NewCSVMarketData(path)

	t.Run("pivots rows into a price table", func(t *testing.T) {
		prices, err := service.GetPrices(context.Background(), PriceQuery{})
		require.NoError(t, err)
		require.Equal(t, []string{"AAPL", "MSFT"}, prices.Columns())
		require.Len(t, prices.Index(), 2)

		closes, found := prices.Field(frame.FieldClose)
		require.True(t, found)
		require.Equal(t, 198.0, closes.At(0, "AAPL"))
		require.Equal(t, 429.0, closes.At(1, "MSFT"))
	})

	t.Run("filters by sid", func(t *testing.T) {
		prices, err := service.GetPrices(context.Background(), PriceQuery{Sids: []string{"AAPL"}})
		require.NoError(t, err)
		require.Equal(t, []string{"AAPL"}, prices.Columns())
	})

	t.Run("excludes sids", func(t *testing.T) {
		prices, err := service.GetPrices(context.Background(), PriceQuery{ExcludeSids: []string{"MSFT"}})
		require.NoError(t, err)
		require.Equal(t, []string{"AAPL"}, prices.Columns())
	})

	t.Run("bounds the window", func(t *testing.T) {
		start := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
		prices, err := service.GetPrices(context.Background(), PriceQuery{Start: start})
		require.NoError(t, err)
		require.Len(t, prices.Index(), 1)
	})

	t.Run("limits to the requested fields", func(t *testing.T) {
		prices, err := service.GetPrices(context.Background(), PriceQuery{Fields: []frame.Field{frame.FieldClose}})
		require.NoError(t, err)
		require.Len(t, prices.Fields(), 1)
	})

	t.Run("empty cells stay missing", func(t *testing.T) {
		gappy := writeTempFile(t, "gappy.csv", `Sid,Date,Open,High,Low,Close,Volume
AAPL,2024-06-03,195,199,194,198,1000000
MSFT,2024-06-03,,,,424,
`)

		prices, err := NewCSVMarketData(gappy).GetPrices(context.Background(), PriceQuery{})
		require.NoError(t, err)

		opens, found := prices.Field(frame.FieldOpen)
		require.True(t, found)
		require.True(t, frame.IsMissing(opens.At(0, "MSFT")))
		require.Equal(t, 195.0, opens.At(0, "AAPL"))
	})

	t.Run("intraday timestamps parse", func(t *testing.T) {
		intraday := writeTempFile(t, "intraday.csv", `Sid,Date,Close
AAPL,2024-06-03 10:00:00,198
AAPL,2024-06-03 15:00:00,199
`)

		prices, err := NewCSVMarketData(intraday).GetPrices(context.Background(), PriceQuery{Fields: []frame.Field{frame.FieldClose}})
		require.NoError(t, err)
		require.True(t, prices.IsIntraday())
	})

	t.Run("restricts to the requested times of day", func(t *testing.T) {
		intraday := writeTempFile(t, "intraday.csv", `Sid,Date,Close
AAPL,2024-06-03 10:00:00,198
AAPL,2024-06-03 15:00:00,199
AAPL,2024-06-04 10:00:00,200
AAPL,2024-06-04 15:00:00,201
`)

		prices, err := NewCSVMarketData(intraday).GetPrices(context.Background(), PriceQuery{
			Fields: []frame.Field{frame.FieldClose},
			Times:  []string{"15:00:00"},
		})
		require.NoError(t, err)
		require.Len(t, prices.Index(), 2)

		closes, found := prices.Field(frame.FieldClose)
		require.True(t, found)
		require.Equal(t, 199.0, closes.At(0, "AAPL"))
	})
}

func TestWriteOrdersCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")

	orders := []*models.Order{
		{
			OrderStub: models.OrderStub{
				Sid:           "AAPL",
				Account:       "U123",
				Action:        models.OrderActionBuy,
				OrderRef:      "demo",
				TotalQuantity: 500,
			},
			Exchange:  "SMART",
			OrderType: models.OrderTypeMarket,
			Tif:       models.OrderDurationDay,
		},
	}

	require.NoError(t, WriteOrdersCSV(path, orders))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "AAPL")
	require.Contains(t, string(contents), "BUY")
	require.Contains(t, string(contents), "500")
}

func TestCSVMaster(t *testing.T) {
	path := writeTempFile(t, "master.csv", `Sid,Symbol,SecType,Exchange,Currency,Multiplier,PriceMagnifier,Timezone
AAPL,AAPL,STK,NASDAQ,USD,,,America/New_York
ES,ESU4,FUT,CME,USD,50,,America/Chicago
`)

	service := NewCSVMaster(path)

	records, err := service.GetSecurityRecords(context.Background(), []string{"AAPL", "ES"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, "STK", records["AAPL"].SecType)
	require.Equal(t, 1.0, records["AAPL"].GetMultiplier())
	require.Equal(t, 50.0, records["ES"].GetMultiplier())
	require.Equal(t, "America/Chicago", records["ES"].Timezone)
}
