package analytics

import (
	"math"
	"time"
)

type monthlyReturn struct {
	year  int
	month time.Month
	ret   float64 // NaN when undefined
}

// monthlyReturns resamples equity to month-end (last value per calendar
// month) and takes the percent-change between consecutive month-ends. The
// first month is dropped: it has no prior. A return is NaN when the prior
// month-end equity is zero or missing; with zeroAsMissing set, a zero
// month-end equity is itself treated as missing, which also blanks the
// return computed from it (the seasonality convention).
func monthlyReturns(dates []time.Time, equity []float64, zeroAsMissing bool) []monthlyReturn {
	type monthEnd struct {
		year  int
		month time.Month
		value float64
	}

	var ends []monthEnd
	for i, d := range dates {
		y, m := d.Year(), d.Month()
		v := equity[i]
		if zeroAsMissing && v == 0 {
			v = math.NaN()
		}
		if n := len(ends); n > 0 && ends[n-1].year == y && ends[n-1].month == m {
			ends[n-1].value = v
			continue
		}
		ends = append(ends, monthEnd{year: y, month: m, value: v})
	}

	if len(ends) < 2 {
		return nil
	}

	out := make([]monthlyReturn, 0, len(ends)-1)
	for i := 1; i < len(ends); i++ {
		prev, cur := ends[i-1].value, ends[i].value
		ret := math.NaN()
		if prev != 0 && !math.IsNaN(prev) && !math.IsNaN(cur) {
			ret = cur/prev - 1
		}
		out = append(out, monthlyReturn{year: ends[i].year, month: ends[i].month, ret: ret})
	}
	return out
}
