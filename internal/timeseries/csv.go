package timeseries

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Candidate names for the date column, checked in order.
var dateColumnNames = []string{"date", "Date", "datetime", "Timestamp", "Unnamed: 0"}

// Date layouts accepted by the loader.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// ReadCSV loads a strategy CSV into a Table. The file must carry a header
// row with a recognizable date column; every other column is treated as a
// numeric product column. Rows with unparseable dates are dropped, cells
// with unparseable or non-finite numerics are coerced to 0.0, rows are
// sorted by date and duplicate dates are collapsed by summing their PnL.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s is empty", path)
	}

	header := records[0]
	dateIdx := -1
	for _, candidate := range dateColumnNames {
		for i, name := range header {
			if strings.TrimSpace(name) == candidate {
				dateIdx = i
				break
			}
		}
		if dateIdx >= 0 {
			break
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("csv %s has no date column (columns: %v)", path, header)
	}

	var columns []string
	colIdx := make([]int, 0, len(header)-1)
	for i, name := range header {
		if i == dateIdx {
			continue
		}
		columns = append(columns, strings.TrimSpace(name))
		colIdx = append(colIdx, i)
	}

	type row struct {
		date time.Time
		vals []float64
	}

	rows := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if dateIdx >= len(rec) {
			continue
		}
		date, ok := parseDate(rec[dateIdx])
		if !ok {
			continue
		}

		vals := make([]float64, len(columns))
		for j, idx := range colIdx {
			if idx >= len(rec) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				// ParseFloat accepts "NaN"/"Inf" literals; a NaN cell would
				// poison every cumulative series downstream
				v = 0.0
			}
			vals[j] = v
		}
		rows = append(rows, row{date: date, vals: vals})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	// Collapse duplicate dates by summing
	dates := make([]time.Time, 0, len(rows))
	values := make(map[string][]float64, len(columns))
	for _, col := range columns {
		values[col] = make([]float64, 0, len(rows))
	}
	for _, rw := range rows {
		if n := len(dates); n > 0 && dates[n-1].Equal(rw.date) {
			for j, col := range columns {
				values[col][n-1] += rw.vals[j]
			}
			continue
		}
		dates = append(dates, rw.date)
		for j, col := range columns {
			values[col] = append(values[col], rw.vals[j])
		}
	}

	return New(dates, columns, values)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
