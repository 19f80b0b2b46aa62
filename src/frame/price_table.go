package frame

import (
	"fmt"
	"time"
)

type Field string

const (
	FieldOpen   Field = "Open"
	FieldHigh   Field = "High"
	FieldLow    Field = "Low"
	FieldClose  Field = "Close"
	FieldVolume Field = "Volume"
	FieldBid    Field = "Bid"
	FieldAsk    Field = "Ask"
)

// ContractValuePriorityFields is the order in which price fields are tried
// when valuing a contract and no reference field is declared.
var ContractValuePriorityFields = []Field{
	FieldClose, FieldOpen, FieldBid, FieldAsk, FieldHigh, FieldLow,
}

// PriceTable holds one Frame per price field, all sharing the same index and
// instrument columns. It is the immutable source of truth for a run.
type PriceTable struct {
	fields  map[Field]*Frame
	index   []time.Time
	columns []string
}

func NewPriceTable(index []time.Time, columns []string) *PriceTable {
	return &PriceTable{
		fields:  make(map[Field]*Frame),
		index:   index,
		columns: columns,
	}
}

func (p *PriceTable) Index() []time.Time {
	return p.index
}

func (p *PriceTable) Columns() []string {
	return p.columns
}

func (p *PriceTable) Fields() []Field {
	out := make([]Field, 0, len(p.fields))
	for field := range p.fields {
		out = append(out, field)
	}
	return out
}

func (p *PriceTable) IsIntraday() bool {
	return HasTimeComponent(p.index)
}

func (p *PriceTable) SetField(field Field, f *Frame) error {
	if len(f.Index()) != len(p.index) {
		return fmt.Errorf("SetField: field %s has %d rows, price table has %d", field, len(f.Index()), len(p.index))
	}

	p.fields[field] = f
	return nil
}

func (p *PriceTable) Field(field Field) (*Frame, bool) {
	f, found := p.fields[field]
	return f, found
}

// FirstAvailableField returns the first field from the candidates that is
// present in the table.
func (p *PriceTable) FirstAvailableField(candidates []Field) (Field, *Frame, bool) {
	for _, candidate := range candidates {
		if f, found := p.fields[candidate]; found {
			return candidate, f, true
		}
	}
	return "", nil, false
}

// Truncate drops all rows earlier than the given timestamp from every field.
func (p *PriceTable) Truncate(start time.Time) *PriceTable {
	var index []time.Time
	for _, ts := range p.index {
		if !ts.Before(start) {
			index = append(index, ts)
		}
	}

	out := NewPriceTable(index, p.columns)
	for field, f := range p.fields {
		out.fields[field] = f.Truncate(start)
	}
	return out
}
