package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sextant/src/frame"
	"sextant/src/models"
	"sextant/src/services"
)

func dailyIndex(n int) []time.Time {
	index := make([]time.Time, n)
	base := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	for i := range index {
		index[i] = base.AddDate(0, 0, i)
	}
	return index
}

func testFrame(t *testing.T, index []time.Time, columns map[string][]float64) *frame.Frame {
	t.Helper()

	var names []string
	for col := range columns {
		names = append(names, col)
	}

	f := frame.NewFrame(index, names)
	for col, vals := range columns {
		require.NoError(t, f.SetColumn(col, vals))
	}
	return f
}

func testPriceTable(t *testing.T, index []time.Time, closes map[string][]float64) *frame.PriceTable {
	t.Helper()

	closeFrame := testFrame(t, index, closes)
	table := frame.NewPriceTable(index, closeFrame.Columns())
	require.NoError(t, table.SetField(frame.FieldClose, closeFrame))
	return table
}

func stockRecord(sid string) *models.SecurityRecord {
	return &models.SecurityRecord{
		Sid:      sid,
		Symbol:   sid,
		SecType:  models.SecTypeStock,
		Exchange: "NASDAQ",
		Currency: "USD",
	}
}

// staticMarketData serves a prebuilt price table regardless of the query.
type staticMarketData struct {
	prices *frame.PriceTable
}

func (s *staticMarketData) GetPrices(ctx context.Context, query services.PriceQuery) (*frame.PriceTable, error) {
	return s.prices, nil
}

// staticMaster serves prebuilt security records.
type staticMaster struct {
	records map[string]*models.SecurityRecord
}

func (s *staticMaster) GetSecurityRecords(ctx context.Context, sids []string) (map[string]*models.SecurityRecord, error) {
	return s.records, nil
}

// stubStrategy returns canned signals.
type stubStrategy struct {
	BaseStrategy

	params  *Params
	signals func(prices *frame.PriceTable) (*frame.Frame, error)
}

func (s *stubStrategy) Params() *Params {
	return s.params
}

func (s *stubStrategy) PricesToSignals(prices *frame.PriceTable) (*frame.Frame, error) {
	return s.signals(prices)
}

func constantSignals(value float64) func(prices *frame.PriceTable) (*frame.Frame, error) {
	return func(prices *frame.PriceTable) (*frame.Frame, error) {
		return frame.NewConstantFrame(prices.Index(), prices.Columns(), value), nil
	}
}

func newTestEngine(prices *frame.PriceTable, records map[string]*models.SecurityRecord) *Engine {
	return NewEngine(&staticMarketData{prices: prices}, &staticMaster{records: records})
}
