package analytics

import (
	"github.com/wonny/tearsheet/internal/timeseries"
)

// ColumnSpec describes one column of a comparison table: a label, the
// resolved instrument (or strategy) columns it aggregates, and its funding
// baseline. A non-positive baseline falls back to the caller's default.
type ColumnSpec struct {
	Label          string
	Names          []string
	InitialCapital float64
}

// ComparisonRow is one metric across every comparison column.
type ComparisonRow struct {
	ID     MetricID `json:"id"`
	Metric string   `json:"metric"`
	Values []string `json:"values"`
}

// Comparison is a row-major metrics table with one value column per spec.
type Comparison struct {
	Columns []string        `json:"columns"`
	Rows    []ComparisonRow `json:"rows"`
}

// BuildComparison runs the series and metrics computations once per column
// spec and assembles the side-by-side table. Rows are joined on MetricID,
// never on display name or position; a column missing a row (which the
// fixed report shape should prevent) renders "—" for that cell.
func BuildComparison(t *timeseries.Table, specs []ColumnSpec, defaultCapital, rfAnnual float64) Comparison {
	columns := make([]string, len(specs))
	reports := make([]Report, len(specs))

	for i, spec := range specs {
		capital := spec.InitialCapital
		if capital <= 0 {
			capital = defaultCapital
		}
		columns[i] = spec.Label
		reports[i] = ComputeMetrics(ComputeSeriesFunded(t, spec.Names, capital), rfAnnual)
	}

	rows := make([]ComparisonRow, 0, len(metricOrder))
	for _, m := range metricOrder {
		row := ComparisonRow{ID: m.ID, Metric: m.Name, Values: make([]string, len(specs))}
		for i, report := range reports {
			value, ok := report.Value(m.ID)
			if !ok {
				value = Undefined
			}
			row.Values[i] = value
		}
		rows = append(rows, row)
	}

	return Comparison{Columns: columns, Rows: rows}
}
