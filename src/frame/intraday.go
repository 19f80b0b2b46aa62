package frame

import (
	"fmt"
	"time"
)

const timeOfDayLayout = "15:04:05"

// TimeOfDay formats the clock portion of a timestamp as HH:MM:SS.
func TimeOfDay(t time.Time) string {
	return t.Format(timeOfDayLayout)
}

// DateOf strips the clock portion of a timestamp, keeping its location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// HasTimeComponent reports whether any timestamp in the index carries a
// non-midnight clock, i.e. whether the index is intraday.
func HasTimeComponent(index []time.Time) bool {
	for _, ts := range index {
		if ts.Hour() != 0 || ts.Minute() != 0 || ts.Second() != 0 {
			return true
		}
	}
	return false
}

// CrossSectionAtTime selects the rows whose clock equals the given HH:MM:SS
// time of day, reindexed by date.
func (f *Frame) CrossSectionAtTime(timeOfDay string) (*Frame, error) {
	var dates []time.Time
	var rows []int
	for i, ts := range f.index {
		if TimeOfDay(ts) == timeOfDay {
			dates = append(dates, DateOf(ts))
			rows = append(rows, i)
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("time %s not present in the data", timeOfDay)
	}

	out := NewFrame(dates, f.columns)
	for _, col := range f.columns {
		src := f.data[col]
		dst := out.data[col]
		for i, row := range rows {
			dst[i] = src[row]
		}
	}
	return out, nil
}

// FirstOfDay collapses an intraday frame to one row per date, sampled at each
// day's earliest available row.
func (f *Frame) FirstOfDay() *Frame {
	var dates []time.Time
	var rows []int
	for i, ts := range f.index {
		date := DateOf(ts)
		if len(dates) == 0 || !dates[len(dates)-1].Equal(date) {
			dates = append(dates, date)
			rows = append(rows, i)
		}
	}

	out := NewFrame(dates, f.columns)
	for _, col := range f.columns {
		src := f.data[col]
		dst := out.data[col]
		for i, row := range rows {
			dst[i] = src[row]
		}
	}
	return out
}
