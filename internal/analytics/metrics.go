package analytics

import (
	"math"
	"strconv"
)

// Annualization is the fixed periods-per-year factor applied to every
// ratio. Daily data is assumed; the factor is deliberately not inferred
// from observed date spacing, so weekly or monthly input is mispriced.
const Annualization = 252

// eps guards the Sharpe/Sortino/rolling-Sharpe denominators. A strict
// zero-check instead would turn a near-zero-variance series from a very
// large finite ratio into "—", changing observable output.
const eps = 1e-12

// MetricID is the stable identifier a metric row is joined on. Display
// names may change; IDs may not.
type MetricID string

const (
	MetricTotalPnL       MetricID = "total_pnl"
	MetricFinalEquity    MetricID = "final_equity"
	MetricInitialCapital MetricID = "initial_capital"
	MetricCAGR           MetricID = "cagr"
	MetricVolatility     MetricID = "volatility"
	MetricSharpe         MetricID = "sharpe"
	MetricSortino        MetricID = "sortino"
	MetricMaxDrawdown    MetricID = "max_drawdown"
	MetricCalmar         MetricID = "calmar"
	MetricHitRate        MetricID = "hit_rate"
	MetricProfitFactor   MetricID = "profit_factor"
	MetricAvgWin         MetricID = "avg_win"
	MetricAvgLoss        MetricID = "avg_loss"
	MetricBestDay        MetricID = "best_day"
	MetricWorstDay       MetricID = "worst_day"
	MetricMedianDaily    MetricID = "median_daily"
	MetricStdDaily       MetricID = "std_daily"
	MetricAvgMonthly     MetricID = "avg_monthly_return"
	MetricMonthlyVol     MetricID = "monthly_return_vol"
	MetricSkew           MetricID = "skew"
	MetricKurtosis       MetricID = "kurtosis"
	MetricExpectancy     MetricID = "expectancy"
	MetricMaxDDDuration  MetricID = "max_dd_duration"
	MetricAnnualization  MetricID = "annualization"
)

// metricOrder fixes the row set and its display order. Every report
// carries exactly these rows so that multi-column tables can be zipped by
// ID without alignment checks.
var metricOrder = []struct {
	ID   MetricID
	Name string
}{
	{MetricTotalPnL, "Total PnL"},
	{MetricFinalEquity, "Final Equity"},
	{MetricInitialCapital, "Initial Capital"},
	{MetricCAGR, "CAGR"},
	{MetricVolatility, "Volatility"},
	{MetricSharpe, "Sharpe"},
	{MetricSortino, "Sortino"},
	{MetricMaxDrawdown, "Max Drawdown"},
	{MetricCalmar, "Calmar"},
	{MetricHitRate, "Hit Rate"},
	{MetricProfitFactor, "Profit Factor"},
	{MetricAvgWin, "Avg Win"},
	{MetricAvgLoss, "Avg Loss"},
	{MetricBestDay, "Best Day PnL"},
	{MetricWorstDay, "Worst Day PnL"},
	{MetricMedianDaily, "Median Daily PnL"},
	{MetricStdDaily, "Std Daily PnL"},
	{MetricAvgMonthly, "Avg Monthly Return"},
	{MetricMonthlyVol, "Monthly Return Vol"},
	{MetricSkew, "Skew (returns)"},
	{MetricKurtosis, "Kurtosis (returns)"},
	{MetricExpectancy, "Expectancy (per day)"},
	{MetricMaxDDDuration, "Max DD Duration (bars)"},
	{MetricAnnualization, "Annualization"},
}

// MetricCount is the fixed number of rows in every report.
var MetricCount = len(metricOrder)

// Row is one named, formatted metric.
type Row struct {
	ID    MetricID `json:"id"`
	Name  string   `json:"name"`
	Value string   `json:"value"`
}

// Report is the full ordered metric row list.
type Report []Row

// Value looks up a row's formatted value by ID.
func (r Report) Value(id MetricID) (string, bool) {
	for _, row := range r {
		if row.ID == id {
			return row.Value, true
		}
	}
	return "", false
}

// ComputeMetrics derives the full summary-statistics report from a series
// pack. Degenerate inputs never fail the report: each statistic that does
// not exist renders as "—", and the row set is always complete.
func ComputeMetrics(sp SeriesPack, rfAnnual float64) Report {
	n := sp.Len()

	// Excess returns over the compound per-period risk-free rate.
	rfPeriod := math.Pow(1+rfAnnual, 1.0/Annualization) - 1
	ex := make([]float64, n)
	for i, r := range sp.Returns {
		ex[i] = r - rfPeriod
	}

	meanR := mean(ex)
	stdR := 0.0
	if n > 1 {
		stdR = sampleStd(ex)
	}
	downsideStd := downsideDeviation(ex)

	sharpe := math.NaN()
	if stdR > 0 {
		sharpe = meanR / (stdR + eps) * math.Sqrt(Annualization)
	}
	sortino := math.NaN()
	if downsideStd > 0 {
		sortino = meanR / (downsideStd + eps) * math.Sqrt(Annualization)
	}

	maxDD := minOf(sp.Drawdown)

	totalPnL := 0.0
	if n > 0 {
		totalPnL = sum(sp.PnL)
	}

	initial, finalEq := math.NaN(), math.NaN()
	if n > 0 {
		initial = sp.Equity[0] - sp.PnL[0]
		finalEq = sp.Equity[n-1]
	}

	cagr := math.NaN()
	if initial > 0 && finalEq > 0 && n > 1 {
		years := sp.Dates[n-1].Sub(sp.Dates[0]).Hours() / 24 / 365.25
		if years < 1e-9 {
			years = 1e-9
		}
		cagr = math.Pow(finalEq/initial, 1/years) - 1
	}

	calmar := math.NaN()
	if !math.IsNaN(cagr) && maxDD < 0 {
		calmar = cagr / math.Abs(maxDD)
	}

	hitRate := math.NaN()
	avgWin, avgLoss := math.NaN(), math.NaN()
	profitFactor := math.NaN()
	if n > 0 {
		var sumWin, sumLoss float64
		var countWin, countLoss int
		for _, p := range sp.PnL {
			if p > 0 {
				sumWin += p
				countWin++
			} else if p < 0 {
				sumLoss += p
				countLoss++
			}
		}
		hitRate = float64(countWin) / float64(n)
		if countWin > 0 {
			avgWin = sumWin / float64(countWin)
		}
		if countLoss > 0 {
			avgLoss = sumLoss / float64(countLoss)
		}
		if sumLoss < 0 {
			profitFactor = sumWin / math.Abs(sumLoss)
		}
	}

	vol := math.NaN()
	if stdR > 0 {
		vol = stdR * math.Sqrt(Annualization)
	}

	// Longest streak of equity strictly below the high-water-mark.
	maxDur, cur := 0, 0
	for i := 0; i < n; i++ {
		if sp.Equity[i] < sp.HWM[i] {
			cur++
			if cur > maxDur {
				maxDur = cur
			}
		} else {
			cur = 0
		}
	}

	monthly := monthlyReturns(sp.Dates, sp.Equity, false)
	var monthlyDefined []float64
	for _, m := range monthly {
		if !math.IsNaN(m.ret) {
			monthlyDefined = append(monthlyDefined, m.ret)
		}
	}
	avgMonthly, monthlyVol := math.NaN(), math.NaN()
	if len(monthlyDefined) > 0 {
		avgMonthly = mean(monthlyDefined)
	}
	if len(monthlyDefined) > 1 {
		monthlyVol = sampleStd(monthlyDefined)
	}

	expectancy := math.NaN()
	stdDaily := math.NaN()
	if n > 0 {
		expectancy = mean(sp.PnL)
	}
	if n > 1 {
		stdDaily = sampleStd(sp.PnL)
	}

	values := map[MetricID]string{
		MetricTotalPnL:       FormatCash(totalPnL),
		MetricFinalEquity:    FormatCash(finalEq),
		MetricInitialCapital: FormatCash(initial),
		MetricCAGR:           FormatPercent(cagr),
		MetricVolatility:     FormatPercent(vol),
		MetricSharpe:         FormatRatio(sharpe),
		MetricSortino:        FormatRatio(sortino),
		MetricMaxDrawdown:    FormatPercent(maxDD),
		MetricCalmar:         FormatRatio(calmar),
		MetricHitRate:        FormatPercent(hitRate),
		MetricProfitFactor:   FormatRatio(profitFactor),
		MetricAvgWin:         FormatCash(avgWin),
		MetricAvgLoss:        FormatCash(avgLoss),
		MetricBestDay:        FormatCash(maxOf(sp.PnL)),
		MetricWorstDay:       FormatCash(minOf(sp.PnL)),
		MetricMedianDaily:    FormatCash(median(sp.PnL)),
		MetricStdDaily:       FormatCash(stdDaily),
		MetricAvgMonthly:     FormatPercent(avgMonthly),
		MetricMonthlyVol:     FormatPercent(monthlyVol),
		MetricSkew:           FormatRatio(skewness(ex)),
		MetricKurtosis:       FormatRatio(kurtosis(ex)),
		MetricExpectancy:     FormatCash(expectancy),
		MetricMaxDDDuration:  strconv.Itoa(maxDur),
		MetricAnnualization:  strconv.Itoa(Annualization),
	}

	report := make(Report, 0, len(metricOrder))
	for _, m := range metricOrder {
		report = append(report, Row{ID: m.ID, Name: m.Name, Value: values[m.ID]})
	}
	return report
}
