package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDataset is returned when the input holds no usable product rows.
var ErrEmptyDataset = errors.New("empty dataset: no product rows found")

// Record is a single product observation. Values are copied out of the
// Dataset, so holding a Record never exposes the underlying slice.
type Record struct {
	Name            string
	Category        string
	DiscountPercent int
	Revenue         int
}

// Dataset is an ordered, non-empty, read-only list of records.
type Dataset struct {
	source  string
	records []Record
	skipped int
}

// New builds a Dataset from already-parsed records. The slice is copied.
func New(source string, records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{source: source, records: cp}, nil
}

// Source is the base name of the file the records were read from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Skipped counts rows dropped because the product name was blank.
func (d *Dataset) Skipped() int { return d.skipped }

// Records returns a copy of the records in input order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Discounts returns discount percentages as float64 in input order.
func (d *Dataset) Discounts() []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = float64(r.DiscountPercent)
	}
	return out
}

// Revenues returns revenues as float64 in input order.
func (d *Dataset) Revenues() []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = float64(r.Revenue)
	}
	return out
}

// ParseError reports a discount or revenue cell that is not an integer.
type ParseError struct {
	Row    int // 1-based line in the source, header included
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingColumnError reports a required column absent from the header row.
type MissingColumnError struct {
	Column  string
	Aliases []string
	Header  []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing %s column (looked for %s; header has %s)",
		e.Column, strings.Join(e.Aliases, ", "), strings.Join(e.Header, ", "))
}
