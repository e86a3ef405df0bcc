package timeseries

import (
	"fmt"
	"time"
)

// Table is a date-indexed table of daily PnL values: one ordered date
// column and N named numeric columns of equal length. A Table is immutable
// once built; every derived view shares the backing arrays, so callers
// must not modify returned slices.
type Table struct {
	dates   []time.Time
	columns []string
	values  map[string][]float64
}

// New builds a Table after validating shape: every column must be aligned
// with the date sequence and dates must be strictly increasing.
func New(dates []time.Time, columns []string, values map[string][]float64) (*Table, error) {
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, fmt.Errorf("dates must be strictly increasing: %s >= %s",
				dates[i-1].Format("2006-01-02"), dates[i].Format("2006-01-02"))
		}
	}

	for _, col := range columns {
		vals, ok := values[col]
		if !ok {
			return nil, fmt.Errorf("column %q has no values", col)
		}
		if len(vals) != len(dates) {
			return nil, fmt.Errorf("column %q has %d values for %d dates", col, len(vals), len(dates))
		}
	}

	return &Table{dates: dates, columns: columns, values: values}, nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.dates)
}

// Empty reports whether the table has no rows
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Dates returns the ordered date column
func (t *Table) Dates() []time.Time {
	if t == nil {
		return nil
	}
	return t.dates
}

// Columns returns the column names in load order
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return t.columns
}

// Column returns the values of a named column
func (t *Table) Column(name string) ([]float64, bool) {
	if t == nil {
		return nil, false
	}
	vals, ok := t.values[name]
	return vals, ok
}

// HasColumn reports whether a column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Slice returns the [from, to) row range as a view sharing the backing arrays
func (t *Table) Slice(from, to int) *Table {
	if t == nil {
		return nil
	}
	if from < 0 {
		from = 0
	}
	if to > len(t.dates) {
		to = len(t.dates)
	}
	if from >= to {
		from, to = 0, 0
	}

	values := make(map[string][]float64, len(t.columns))
	for _, col := range t.columns {
		values[col] = t.values[col][from:to]
	}
	return &Table{dates: t.dates[from:to], columns: t.columns, values: values}
}
