package frame

import (
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/copier"
)

// Frame is a two-dimensional table of float64 values indexed by timestamp
// rows and instrument id columns. Missing values are NaN, never zero.
type Frame struct {
	index   []time.Time
	columns []string
	data    map[string][]float64
}

func NewFrame(index []time.Time, columns []string) *Frame {
	f := &Frame{
		index:   index,
		columns: columns,
		data:    make(map[string][]float64, len(columns)),
	}

	for _, col := range columns {
		vals := make([]float64, len(index))
		for i := range vals {
			vals[i] = math.NaN()
		}
		f.data[col] = vals
	}

	return f
}

func NewConstantFrame(index []time.Time, columns []string, value float64) *Frame {
	f := NewFrame(index, columns)
	for _, col := range columns {
		vals := f.data[col]
		for i := range vals {
			vals[i] = value
		}
	}
	return f
}

func (f *Frame) Index() []time.Time {
	return f.index
}

func (f *Frame) Columns() []string {
	return f.columns
}

func (f *Frame) NumRows() int {
	return len(f.index)
}

func (f *Frame) HasColumn(col string) bool {
	_, found := f.data[col]
	return found
}

func (f *Frame) At(row int, col string) float64 {
	vals, found := f.data[col]
	if !found {
		return math.NaN()
	}
	return vals[row]
}

func (f *Frame) Set(row int, col string, value float64) {
	if vals, found := f.data[col]; found {
		vals[row] = value
	}
}

// SetColumn replaces an entire column. The column must already exist and the
// values must match the index length.
func (f *Frame) SetColumn(col string, values []float64) error {
	if _, found := f.data[col]; !found {
		return fmt.Errorf("SetColumn: column %s not found", col)
	}

	if len(values) != len(f.index) {
		return fmt.Errorf("SetColumn: expected %d values for column %s, got %d", len(f.index), col, len(values))
	}

	f.data[col] = values
	return nil
}

// Column returns the backing slice for a column, or nil if absent.
func (f *Frame) Column(col string) []float64 {
	return f.data[col]
}

// RowIndex returns the position of the given timestamp, or -1.
func (f *Frame) RowIndex(t time.Time) int {
	for i, ts := range f.index {
		if ts.Equal(t) {
			return i
		}
	}
	return -1
}

// LastIndex returns the final timestamp of the frame. The frame must be
// non-empty.
func (f *Frame) LastIndex() time.Time {
	return f.index[len(f.index)-1]
}

// Row returns the values of a single row keyed by column.
func (f *Frame) Row(row int) map[string]float64 {
	out := make(map[string]float64, len(f.columns))
	for _, col := range f.columns {
		out[col] = f.data[col][row]
	}
	return out
}

func (f *Frame) Copy() *Frame {
	out := &Frame{}
	copier.Copy(&out.index, f.index)
	copier.Copy(&out.columns, f.columns)
	out.data = make(map[string][]float64, len(f.data))
	for col, vals := range f.data {
		copied := make([]float64, len(vals))
		copy(copied, vals)
		out.data[col] = copied
	}
	return out
}

// Shift moves every column down by n rows, filling the vacated leading rows
// with NaN.
func (f *Frame) Shift(n int) *Frame {
	out := NewFrame(f.index, f.columns)
	for _, col := range f.columns {
		src := f.data[col]
		dst := out.data[col]
		for i := n; i < len(src); i++ {
			dst[i] = src[i-n]
		}
	}
	return out
}

// Diff returns the row-over-row difference. The first row is NaN.
func (f *Frame) Diff() *Frame {
	out := NewFrame(f.index, f.columns)
	for _, col := range f.columns {
		src := f.data[col]
		dst := out.data[col]
		for i := 1; i < len(src); i++ {
			dst[i] = src[i] - src[i-1]
		}
	}
	return out
}

// PctChange returns the row-over-row percentage change. The first row is NaN.
func (f *Frame) PctChange() *Frame {
	out := NewFrame(f.index, f.columns)
	for _, col := range f.columns {
		src := f.data[col]
		dst := out.data[col]
		for i := 1; i < len(src); i++ {
			dst[i] = (src[i] - src[i-1]) / src[i-1]
		}
	}
	return out
}

func (f *Frame) Abs() *Frame {
	return f.Apply(math.Abs)
}

func (f *Frame) Apply(fn func(float64) float64) *Frame {
	out := NewFrame(f.index, f.columns)
	for _, col := range f.columns {
		src := f.data[col]
		dst := out.data[col]
		for i := range src {
			dst[i] = fn(src[i])
		}
	}
	return out
}

// FillNA replaces missing values with the given value.
func (f *Frame) FillNA(value float64) *Frame {
	return f.Apply(func(v float64) float64 {
		if math.IsNaN(v) {
			return value
		}
		return v
	})
}

func (f *Frame) AddScalar(value float64) *Frame {
	return f.Apply(func(v float64) float64 { return v + value })
}

func (f *Frame) MulScalar(value float64) *Frame {
	return f.Apply(func(v float64) float64 { return v * value })
}

// zipWith combines two frames cell by cell, aligning columns by name and rows
// by position. Cells absent from the other frame combine with NaN.
func (f *Frame) zipWith(other *Frame, fn func(a, b float64) float64) *Frame {
	out := NewFrame(f.index, f.columns)
	for _, col := range f.columns {
		src := f.data[col]
		dst := out.data[col]
		otherVals := other.data[col]
		for i := range src {
			b := math.NaN()
			if otherVals != nil && i < len(otherVals) {
				b = otherVals[i]
			}
			dst[i] = fn(src[i], b)
		}
	}
	return out
}

func (f *Frame) Add(other *Frame) *Frame {
	return f.zipWith(other, func(a, b float64) float64 { return a + b })
}

func (f *Frame) Sub(other *Frame) *Frame {
	return f.zipWith(other, func(a, b float64) float64 { return a - b })
}

func (f *Frame) Mul(other *Frame) *Frame {
	return f.zipWith(other, func(a, b float64) float64 { return a * b })
}

func (f *Frame) Div(other *Frame) *Frame {
	return f.zipWith(other, func(a, b float64) float64 { return a / b })
}

// Where keeps each cell that satisfies cond and replaces the rest with the
// corresponding cell of other.
func (f *Frame) Where(cond func(v float64) bool, other *Frame) *Frame {
	return f.zipWith(other, func(a, b float64) float64 {
		if cond(a) {
			return a
		}
		return b
	})
}

// WhereScalar keeps each cell that satisfies cond and replaces the rest with
// the given value.
func (f *Frame) WhereScalar(cond func(v float64) bool, value float64) *Frame {
	return f.Apply(func(v float64) float64 {
		if cond(v) {
			return v
		}
		return value
	})
}

// RowAbsSum returns the sum of absolute values for a row, treating NaN as 0.
func (f *Frame) RowAbsSum(row int) float64 {
	sum := 0.0
	for _, col := range f.columns {
		v := f.data[col][row]
		if !math.IsNaN(v) {
			sum += math.Abs(v)
		}
	}
	return sum
}

// RowCountNonZero returns the number of non-zero, non-missing cells in a row.
func (f *Frame) RowCountNonZero(row int) int {
	count := 0
	for _, col := range f.columns {
		v := f.data[col][row]
		if !math.IsNaN(v) && v != 0 {
			count++
		}
	}
	return count
}

// Truncate drops all rows earlier than the given timestamp.
func (f *Frame) Truncate(start time.Time) *Frame {
	firstRow := len(f.index)
	for i, ts := range f.index {
		if !ts.Before(start) {
			firstRow = i
			break
		}
	}

	out := &Frame{
		index:   f.index[firstRow:],
		columns: f.columns,
		data:    make(map[string][]float64, len(f.columns)),
	}
	for _, col := range f.columns {
		out.data[col] = f.data[col][firstRow:]
	}
	return out
}

// SelectColumns returns a frame restricted to the given columns. Columns not
// present in the source are created as all-NaN.
func (f *Frame) SelectColumns(columns []string) *Frame {
	out := NewFrame(f.index, columns)
	for _, col := range columns {
		if src, found := f.data[col]; found {
			copy(out.data[col], src)
		}
	}
	return out
}

func IsMissing(v float64) bool {
	return math.IsNaN(v)
}
