package analytics

import (
	"math"
	"time"

	"github.com/wonny/tearsheet/internal/timeseries"
)

// SeriesPack holds the five aligned sequences derived from a PnL table for
// one selection: per-period aggregate PnL, cumulative equity, running
// high-water-mark, drawdown (equity − hwm, always ≤ 0) and simple returns
// on prior equity. It is a plain value object, recomputed per query and
// never mutated.
type SeriesPack struct {
	Dates    []time.Time `json:"dates"`
	PnL      []float64   `json:"pnl"`
	Equity   []float64   `json:"equity"`
	HWM      []float64   `json:"hwm"`
	Drawdown []float64   `json:"drawdown"`
	Returns  []float64   `json:"returns"`
}

// Len returns the number of periods in the pack.
func (sp SeriesPack) Len() int {
	return len(sp.Dates)
}

// ComputeSeries derives a SeriesPack over the given columns with a zero
// funding baseline. Columns absent from the table contribute nothing; an
// empty column list yields an all-zero PnL series of the table's length.
func ComputeSeries(t *timeseries.Table, names []string) SeriesPack {
	return ComputeSeriesFunded(t, names, 0)
}

// ComputeSeriesFunded is ComputeSeries with an initial-capital baseline:
// equity starts at initialCapital instead of zero, which makes the
// return-on-prior-equity and CAGR computations meaningful for funded
// columns. The returns convention is pnl[i] / equity[i-1], guarded to 0.0
// when there is no prior period or prior equity is zero; it is
// intentionally fragile near zero equity and callers must tolerate return
// spikes there.
func ComputeSeriesFunded(t *timeseries.Table, names []string, initialCapital float64) SeriesPack {
	n := t.Len()

	pnl := make([]float64, n)
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		for i, v := range col {
			pnl[i] += v
		}
	}

	equity := make([]float64, n)
	hwm := make([]float64, n)
	drawdown := make([]float64, n)
	returns := make([]float64, n)

	run := initialCapital
	high := math.Inf(-1)
	for i := 0; i < n; i++ {
		run += pnl[i]
		equity[i] = run
		if run > high {
			high = run
		}
		hwm[i] = high
		drawdown[i] = run - high

		if i > 0 {
			prev := equity[i-1]
			if prev != 0 && !math.IsNaN(prev) {
				if r := pnl[i] / prev; !math.IsNaN(r) {
					returns[i] = r
				}
			}
		}
	}

	return SeriesPack{
		Dates:    t.Dates(),
		PnL:      pnl,
		Equity:   equity,
		HWM:      hwm,
		Drawdown: drawdown,
		Returns:  returns,
	}
}
