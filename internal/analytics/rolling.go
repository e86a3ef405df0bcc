package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/tearsheet/internal/timeseries"
)

// DefaultRollingWindow is the trailing window length for rolling stats.
const DefaultRollingWindow = 63

// AggregateLabel names the combined-selection line in rolling charts.
const AggregateLabel = "ALL (agg)"

// Line is one labelled series in a rolling-analytics result. Values are
// NaN until the trailing window fills.
type Line struct {
	Label  string      `json:"label"`
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}

// Capitals supplies the funding baseline per instrument plus the baseline
// of the combined selection.
type Capitals struct {
	ByName   map[string]float64
	Combined float64
}

// For returns the baseline for one instrument (0 when unknown).
func (c Capitals) For(name string) float64 {
	return c.ByName[name]
}

// RollingSharpe computes the trailing-window Sharpe ratio per instrument
// and/or for the combined selection: rolling mean of returns over rolling
// sample standard deviation (plus epsilon), scaled by sqrt of the
// annualization factor.
func RollingSharpe(t *timeseries.Table, names []string, caps Capitals, window int, includeIndividuals, includeAggregate bool) []Line {
	if window < 2 {
		window = DefaultRollingWindow
	}

	lines := make([]Line, 0, len(names)+1)

	if includeIndividuals {
		for _, name := range names {
			sp := ComputeSeriesFunded(t, []string{name}, caps.For(name))
			lines = append(lines, Line{
				Label:  name,
				Dates:  sp.Dates,
				Values: rollingSharpeValues(sp.Returns, window),
			})
		}
	}

	if includeAggregate && len(names) >= 1 {
		sp := ComputeSeriesFunded(t, names, caps.Combined)
		lines = append(lines, Line{
			Label:  AggregateLabel,
			Dates:  sp.Dates,
			Values: rollingSharpeValues(sp.Returns, window),
		})
	}

	return lines
}

// RollingCorrelation computes the trailing-window Pearson correlation for
// every unordered pair of instruments, each over its own independent
// return series. Fewer than two instruments yield an empty (but valid)
// result set.
func RollingCorrelation(t *timeseries.Table, names []string, caps Capitals, window int) []Line {
	if len(names) < 2 {
		return []Line{}
	}
	if window < 2 {
		window = DefaultRollingWindow
	}

	returns := make(map[string][]float64, len(names))
	for _, name := range names {
		sp := ComputeSeriesFunded(t, []string{name}, caps.For(name))
		returns[name] = sp.Returns
	}

	dates := t.Dates()
	lines := make([]Line, 0, len(names)*(len(names)-1)/2)
	for i, a := range names {
		for _, b := range names[i+1:] {
			lines = append(lines, Line{
				Label:  fmt.Sprintf("%s vs %s", a, b),
				Dates:  dates,
				Values: rollingCorrValues(returns[a], returns[b], window),
			})
		}
	}
	return lines
}

func rollingSharpeValues(returns []float64, window int) []float64 {
	n := len(returns)
	out := make([]float64, n)
	scale := math.Sqrt(Annualization)

	for i := 0; i < n; i++ {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		win := returns[i-window+1 : i+1]
		out[i] = mean(win) / (sampleStd(win) + eps) * scale
	}
	return out
}

func rollingCorrValues(a, b []float64, window int) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = pearson(a[i-window+1:i+1], b[i-window+1:i+1])
	}
	return out
}

// pearson is the sample correlation of two equal-length windows; NaN when
// either side has zero variance.
func pearson(a, b []float64) float64 {
	ma, mb := mean(a), mean(b)

	var cov, va, vb float64
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		cov += da * db
		va += da * da
		vb += db * db
	}

	if va == 0 || vb == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(va*vb)
}
