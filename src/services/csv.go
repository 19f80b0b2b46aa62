package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"sextant/src/frame"
	"sextant/src/models"
)

// CSVBarDTO is one row of a price fixture file.
type CSVBarDTO struct {
	Sid    string   `csv:"Sid"`
	Date   string   `csv:"Date"`
	Open   *float64 `csv:"Open"`
	High   *float64 `csv:"High"`
	Low    *float64 `csv:"Low"`
	Close  *float64 `csv:"Close"`
	Volume *float64 `csv:"Volume"`
	Bid    *float64 `csv:"Bid"`
	Ask    *float64 `csv:"Ask"`
}

func (d *CSVBarDTO) fieldValue(field frame.Field) *float64 {
	switch field {
	case frame.FieldOpen:
		return d.Open
	case frame.FieldHigh:
		return d.High
	case frame.FieldLow:
		return d.Low
	case frame.FieldClose:
		return d.Close
	case frame.FieldVolume:
		return d.Volume
	case frame.FieldBid:
		return d.Bid
	case frame.FieldAsk:
		return d.Ask
	}
	return nil
}

func parseBarDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", raw)
}

// includeTime applies an intraday time-of-day filter. An empty filter keeps
// every row.
func includeTime(ts time.Time, times []string) bool {
	if len(times) == 0 {
		return true
	}
	for _, timeOfDay := range times {
		if frame.TimeOfDay(ts) == timeOfDay {
			return true
		}
	}
	return false
}

// CSVMarketData serves prices from a single CSV file of bars, one row per
// (sid, timestamp).
type CSVMarketData struct {
	Path string
}

func NewCSVMarketData(path string) *CSVMarketData {
	return &CSVMarketData{Path: path}
}

func (s *CSVMarketData) GetPrices(ctx context.Context, query PriceQuery) (*frame.PriceTable, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file %s: %w", s.Path, err)
	}
	defer file.Close()

	var dtos []*CSVBarDTO
	if err := gocsv.UnmarshalFile(file, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse price file %s: %w", s.Path, err)
	}

	includeSid := func(sid string) bool {
		for _, excluded := range query.ExcludeSids {
			if sid == excluded {
				return false
			}
		}
		if len(query.Sids) == 0 {
			return true
		}
		for _, wanted := range query.Sids {
			if sid == wanted {
				return true
			}
		}
		return false
	}

	type bar struct {
		ts  time.Time
		dto *CSVBarDTO
	}

	seenSids := make(map[string]bool)
	seenTimestamps := make(map[time.Time]bool)
	var bars []bar

	for _, dto := range dtos {
		if !includeSid(dto.Sid) {
			continue
		}

		ts, err := parseBarDate(dto.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price file %s: %w", s.Path, err)
		}

		if !query.Start.IsZero() && ts.Before(query.Start) {
			continue
		}
		if !query.End.IsZero() && ts.After(query.End) {
			continue
		}
		if !includeTime(ts, query.Times) {
			continue
		}

		seenSids[dto.Sid] = true
		seenTimestamps[ts] = true
		bars = append(bars, bar{ts: ts, dto: dto})
	}

	var columns []string
	for sid := range seenSids {
		columns = append(columns, sid)
	}
	sort.Strings(columns)

	var index []time.Time
	for ts := range seenTimestamps {
		index = append(index, ts)
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })

	fields := query.Fields
	if len(fields) == 0 {
		fields = []frame.Field{frame.FieldOpen, frame.FieldHigh, frame.FieldLow, frame.FieldClose, frame.FieldVolume}
	}

	table := frame.NewPriceTable(index, columns)
	for _, field := range fields {
		f := frame.NewFrame(index, columns)
		for _, b := range bars {
			if value := b.dto.fieldValue(field); value != nil {
				f.Set(f.RowIndex(b.ts), b.dto.Sid, *value)
			}
		}
		if err := table.SetField(field, f); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// CSVMaster serves security reference data from a CSV file.
type CSVMaster struct {
	Path string
}

func NewCSVMaster(path string) *CSVMaster {
	return &CSVMaster{Path: path}
}

func (s *CSVMaster) GetSecurityRecords(ctx context.Context, sids []string) (map[string]*models.SecurityRecord, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open master file %s: %w", s.Path, err)
	}
	defer file.Close()

	var records []*models.SecurityRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("failed to parse master file %s: %w", s.Path, err)
	}

	wanted := make(map[string]bool, len(sids))
	for _, sid := range sids {
		wanted[sid] = true
	}

	out := make(map[string]*models.SecurityRecord)
	for _, record := range records {
		if len(sids) == 0 || wanted[record.Sid] {
			out[record.Sid] = record
		}
	}

	return out, nil
}
