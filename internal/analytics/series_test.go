package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tearsheet/internal/timeseries"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func newTable(t *testing.T, dates []time.Time, columns []string, values map[string][]float64) *timeseries.Table {
	t.Helper()
	tbl, err := timeseries.New(dates, columns, values)
	require.NoError(t, err)
	return tbl
}

// twoInstrumentTable is the golden scenario: A=[10,-5,8], B=[0,0,0].
func twoInstrumentTable(t *testing.T) *timeseries.Table {
	t.Helper()
	return newTable(t,
		[]time.Time{d(2024, 1, 2), d(2024, 1, 3), d(2024, 1, 4)},
		[]string{"A", "B"},
		map[string][]float64{
			"A": {10, -5, 8},
			"B": {0, 0, 0},
		},
	)
}

func TestComputeSeriesGoldenScenario(t *testing.T) {
	sp := ComputeSeries(twoInstrumentTable(t), []string{"A", "B"})

	assert.Equal(t, []float64{10, -5, 8}, sp.PnL)
	assert.Equal(t, []float64{10, 5, 13}, sp.Equity)
	assert.Equal(t, []float64{10, 10, 13}, sp.HWM)
	assert.Equal(t, []float64{0, -5, 0}, sp.Drawdown)

	// returns[i] = pnl[i] / equity[i-1]; no prior period means 0
	require.Len(t, sp.Returns, 3)
	assert.Equal(t, 0.0, sp.Returns[0])
	assert.InDelta(t, -0.5, sp.Returns[1], 1e-12)
	assert.InDelta(t, 1.6, sp.Returns[2], 1e-12)
}

func TestComputeSeriesEmptySelection(t *testing.T) {
	sp := ComputeSeries(twoInstrumentTable(t), nil)

	assert.Equal(t, []float64{0, 0, 0}, sp.PnL)
	assert.Equal(t, []float64{0, 0, 0}, sp.Equity)
	assert.Equal(t, []float64{0, 0, 0}, sp.HWM)
	assert.Equal(t, []float64{0, 0, 0}, sp.Drawdown)
	assert.Equal(t, []float64{0, 0, 0}, sp.Returns)
}

func TestComputeSeriesUnknownColumnsContributeNothing(t *testing.T) {
	sp := ComputeSeries(twoInstrumentTable(t), []string{"A", "ghost"})
	assert.Equal(t, []float64{10, -5, 8}, sp.PnL)
}

func TestComputeSeriesSinglePeriod(t *testing.T) {
	tbl := newTable(t,
		[]time.Time{d(2024, 1, 2)},
		[]string{"A"},
		map[string][]float64{"A": {7}},
	)

	sp := ComputeSeries(tbl, []string{"A"})
	assert.Equal(t, 0.0, sp.Drawdown[0])
	assert.Equal(t, 0.0, sp.Returns[0])
}

func TestComputeSeriesEmptyTable(t *testing.T) {
	tbl := newTable(t, nil, []string{"A"}, map[string][]float64{"A": {}})

	sp := ComputeSeries(tbl, []string{"A"})
	assert.Equal(t, 0, sp.Len())
	assert.Empty(t, sp.PnL)
	assert.Empty(t, sp.Equity)
	assert.Empty(t, sp.Returns)
}

func TestComputeSeriesZeroPriorEquityGuard(t *testing.T) {
	tbl := newTable(t,
		[]time.Time{d(2024, 1, 2), d(2024, 1, 3), d(2024, 1, 4)},
		[]string{"A"},
		map[string][]float64{"A": {10, -10, 5}},
	)

	sp := ComputeSeries(tbl, []string{"A"})
	assert.Equal(t, []float64{10, 0, 5}, sp.Equity)
	// equity[1] is exactly zero, so returns[2] is pinned to 0 instead of Inf
	assert.Equal(t, 0.0, sp.Returns[2])
}

func TestComputeSeriesFunded(t *testing.T) {
	sp := ComputeSeriesFunded(twoInstrumentTable(t), []string{"A", "B"}, 100)

	assert.Equal(t, []float64{110, 105, 113}, sp.Equity)
	assert.Equal(t, []float64{110, 110, 113}, sp.HWM)
	assert.InDelta(t, -5.0/110, sp.Returns[1], 1e-12)
	assert.InDelta(t, 8.0/105, sp.Returns[2], 1e-12)
}

func TestComputeSeriesInvariants(t *testing.T) {
	tbl := newTable(t,
		[]time.Time{d(2024, 1, 2), d(2024, 1, 3), d(2024, 1, 4), d(2024, 1, 5), d(2024, 1, 8), d(2024, 1, 9)},
		[]string{"A", "B"},
		map[string][]float64{
			"A": {3, -7, 2, 2, -1, 9},
			"B": {-1, 0.5, 0, -4, 2, 2},
		},
	)

	sp := ComputeSeries(tbl, []string{"A", "B"})

	var cum float64
	high := sp.Equity[0]
	for i := 0; i < sp.Len(); i++ {
		cum += sp.PnL[i]
		assert.InDelta(t, cum, sp.Equity[i], 1e-12, "equity is the running PnL sum")

		if sp.Equity[i] > high {
			high = sp.Equity[i]
		}
		assert.Equal(t, high, sp.HWM[i], "hwm is the running equity max")
		assert.Equal(t, sp.Equity[i]-sp.HWM[i], sp.Drawdown[i])
		assert.LessOrEqual(t, sp.Drawdown[i], 0.0)

		if i > 0 {
			assert.GreaterOrEqual(t, sp.HWM[i], sp.HWM[i-1], "hwm is non-decreasing")
		}
		if sp.Equity[i] == sp.HWM[i] {
			assert.Equal(t, 0.0, sp.Drawdown[i])
		}
	}
}

func TestComputeSeriesIdempotent(t *testing.T) {
	tbl := twoInstrumentTable(t)

	first := ComputeSeries(tbl, []string{"A", "B"})
	second := ComputeSeries(tbl, []string{"A", "B"})
	assert.Equal(t, first, second)
}
