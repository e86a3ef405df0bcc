package timeseries

import (
	"sort"
	"time"
)

// ApplyPositionSizes returns a copy of the table with each product column
// scaled by its configured size, or defaultSize when unsized.
func ApplyPositionSizes(t *Table, sizes map[string]float64, defaultSize float64) *Table {
	if t == nil || t.Empty() {
		return t
	}
	if len(sizes) == 0 && defaultSize == 1.0 {
		return t
	}

	values := make(map[string][]float64, len(t.columns))
	for _, col := range t.columns {
		size, ok := sizes[col]
		if !ok {
			size = defaultSize
		}
		src := t.values[col]
		scaled := make([]float64, len(src))
		for i, v := range src {
			scaled[i] = v * size
		}
		values[col] = scaled
	}

	return &Table{dates: t.dates, columns: t.columns, values: values}
}

// MergePortfolio builds the portfolio-level table: one column per selected
// strategy holding that strategy's summed product PnL, outer-joined on
// date with absent values filled with 0.0.
func MergePortfolio(tables map[string]*Table, selected []string) *Table {
	perStrategy := make(map[string]map[time.Time]float64, len(selected))
	dateSet := make(map[time.Time]struct{})
	columns := make([]string, 0, len(selected))

	for _, name := range selected {
		t, ok := tables[name]
		if !ok || t == nil {
			continue
		}
		byDate := make(map[time.Time]float64, t.Len())
		for i, d := range t.dates {
			var sum float64
			for _, col := range t.columns {
				sum += t.values[col][i]
			}
			byDate[d] += sum
			dateSet[d] = struct{}{}
		}
		perStrategy[name] = byDate
		columns = append(columns, name)
	}

	if len(columns) == 0 {
		return &Table{values: map[string][]float64{}}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	values := make(map[string][]float64, len(columns))
	for _, name := range columns {
		vals := make([]float64, len(dates))
		for i, d := range dates {
			vals[i] = perStrategy[name][d] // zero when the strategy has no row for d
		}
		values[name] = vals
	}

	return &Table{dates: dates, columns: columns, values: values}
}
