package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/wonny/tearsheet/internal/timeseries"
)

// SeasonalityMatrix is a year × calendar-month grid of monthly returns.
// Cells with no observation (or an undefined return) are NaN.
type SeasonalityMatrix struct {
	Years   []int       `json:"years"`
	Returns [][]float64 `json:"returns"` // one row per year, 12 columns Jan..Dec
}

// Empty reports whether the matrix has no rows.
func (m SeasonalityMatrix) Empty() bool {
	return len(m.Years) == 0
}

// At returns the monthly return for a year/month cell (NaN when absent).
func (m SeasonalityMatrix) At(year int, month time.Month) float64 {
	for i, y := range m.Years {
		if y == year {
			return m.Returns[i][month-1]
		}
	}
	return math.NaN()
}

// Seasonality aggregates PnL across the given columns, cumulates to
// equity, resamples to month-end and pivots the month-over-month returns
// into a year × month matrix. An empty or fully-unknown column list falls
// back to every column in the table. The first observed month is dropped:
// it has no prior month-end to compare against.
func Seasonality(t *timeseries.Table, names []string) SeasonalityMatrix {
	valid := make([]string, 0, len(names))
	for _, name := range names {
		if t.HasColumn(name) {
			valid = append(valid, name)
		}
	}
	if len(valid) == 0 {
		valid = t.Columns()
	}

	sp := ComputeSeries(t, valid)
	monthly := monthlyReturns(sp.Dates, sp.Equity, true)
	if len(monthly) == 0 {
		return SeasonalityMatrix{}
	}

	byYear := make(map[int][]float64)
	for _, m := range monthly {
		row, ok := byYear[m.year]
		if !ok {
			row = make([]float64, 12)
			for i := range row {
				row[i] = math.NaN()
			}
			byYear[m.year] = row
		}
		row[m.month-1] = m.ret
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	returns := make([][]float64, len(years))
	for i, y := range years {
		returns[i] = byYear[y]
	}

	return SeasonalityMatrix{Years: years, Returns: returns}
}
