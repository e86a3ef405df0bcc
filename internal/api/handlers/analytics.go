package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/tearsheet/internal/analytics"
	"github.com/wonny/tearsheet/internal/strategyset"
	"github.com/wonny/tearsheet/internal/timeseries"
	"github.com/wonny/tearsheet/pkg/config"
	"github.com/wonny/tearsheet/pkg/logger"
)

// AnalyticsHandler serves the tearsheet analytics endpoints over the loaded
// strategy snapshot. The snapshot is immutable, so handlers are safe for
// concurrent use without locking.
type AnalyticsHandler struct {
	snap   *strategyset.Snapshot
	config *config.Config
	logger *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(snap *strategyset.Snapshot, cfg *config.Config, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{snap: snap, config: cfg, logger: log}
}

// scope is a fully resolved query: the (range-filtered) table to compute
// over, the concrete column list and the funding baselines.
type scope struct {
	table *timeseries.Table
	names []string
	caps  analytics.Capitals
}

// strategyScope resolves a product-level query against one strategy.
func (h *AnalyticsHandler) strategyScope(name, productsParam string, key analytics.RangeKey) (scope, error) {
	table, ok := h.snap.Strategy(name)
	if !ok {
		return scope{}, fmt.Errorf("unknown strategy %q", name)
	}

	names := parseSelection(productsParam).Resolve(table.Columns())
	byProduct := h.snap.CapitalByProduct(name)

	return scope{
		table: analytics.FilterRange(table, key),
		names: names,
		caps: analytics.Capitals{
			ByName:   byProduct,
			Combined: h.snap.CapitalFor(name, names),
		},
	}, nil
}

// portfolioScope resolves a strategy-level query against the merged
// portfolio table (one column per strategy).
func (h *AnalyticsHandler) portfolioScope(strategiesParam string, key analytics.RangeKey) scope {
	names := parseSelection(strategiesParam).Resolve(h.snap.Names())
	table := h.snap.Portfolio(names)

	byStrategy := make(map[string]float64, len(names))
	for _, name := range names {
		byStrategy[name] = h.snap.CapitalFor(name, nil)
	}

	return scope{
		table: analytics.FilterRange(table, key),
		names: names,
		caps: analytics.Capitals{
			ByName:   byStrategy,
			Combined: h.snap.CombinedCapital(names),
		},
	}
}

// parseSelection maps a comma-separated query parameter onto a Selection;
// an absent parameter selects everything.
func parseSelection(param string) analytics.Selection {
	if param == "" {
		return analytics.All()
	}

	parts := strings.Split(param, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return analytics.Pick(names...)
}

func (h *AnalyticsHandler) window(r *http.Request) int {
	if s := r.URL.Query().Get("window"); s != "" {
		if w, err := strconv.Atoi(s); err == nil && w >= 2 {
			return w
		}
	}
	return h.config.RollingWindow
}

func rangeKey(r *http.Request) analytics.RangeKey {
	return analytics.RangeKey(r.URL.Query().Get("range"))
}

// --- payload builders (shared with the websocket handler) ---

type seriesResponse struct {
	Dates    []string  `json:"dates"`
	PnL      []float64 `json:"pnl"`
	Equity   []float64 `json:"equity"`
	HWM      []float64 `json:"hwm"`
	Drawdown []float64 `json:"drawdown"`
	Returns  []float64 `json:"returns"`
}

type lineResponse struct {
	Label  string     `json:"label"`
	Dates  []string   `json:"dates"`
	Values []*float64 `json:"values"`
}

type seasonalityResponse struct {
	Years   []int        `json:"years"`
	Returns [][]*float64 `json:"returns"`
}

func (h *AnalyticsHandler) seriesPayload(sc scope) seriesResponse {
	sp := analytics.ComputeSeriesFunded(sc.table, sc.names, sc.caps.Combined)
	return seriesResponse{
		Dates:    formatDates(sp.Dates),
		PnL:      sp.PnL,
		Equity:   sp.Equity,
		HWM:      sp.HWM,
		Drawdown: sp.Drawdown,
		Returns:  sp.Returns,
	}
}

func (h *AnalyticsHandler) metricsPayload(sc scope) analytics.Report {
	sp := analytics.ComputeSeriesFunded(sc.table, sc.names, sc.caps.Combined)
	return analytics.ComputeMetrics(sp, h.config.RiskFreeRate)
}

func (h *AnalyticsHandler) comparisonPayload(sc scope) analytics.Comparison {
	specs := make([]analytics.ColumnSpec, 0, len(sc.names)+1)
	for _, name := range sc.names {
		specs = append(specs, analytics.ColumnSpec{
			Label:          name,
			Names:          []string{name},
			InitialCapital: sc.caps.For(name),
		})
	}
	specs = append(specs, analytics.ColumnSpec{
		Label:          analytics.AggregateLabel,
		Names:          sc.names,
		InitialCapital: sc.caps.Combined,
	})

	return analytics.BuildComparison(sc.table, specs, h.snap.DefaultCapital(), h.config.RiskFreeRate)
}

func (h *AnalyticsHandler) rollingSharpePayload(sc scope, window int) []lineResponse {
	lines := analytics.RollingSharpe(sc.table, sc.names, sc.caps, window, true, len(sc.names) > 1)
	return toLineResponses(lines)
}

func (h *AnalyticsHandler) rollingCorrelationPayload(sc scope, window int) []lineResponse {
	lines := analytics.RollingCorrelation(sc.table, sc.names, sc.caps, window)
	return toLineResponses(lines)
}

func (h *AnalyticsHandler) seasonalityPayload(sc scope) seasonalityResponse {
	m := analytics.Seasonality(sc.table, sc.names)
	return seasonalityResponse{
		Years:   m.Years,
		Returns: nullableMatrix(m.Returns),
	}
}

func toLineResponses(lines []analytics.Line) []lineResponse {
	out := make([]lineResponse, len(lines))
	for i, line := range lines {
		out[i] = lineResponse{
			Label:  line.Label,
			Dates:  formatDates(line.Dates),
			Values: nullable(line.Values),
		}
	}
	return out
}

// --- strategy-scoped endpoints ---

// StrategyInfo is one entry of the strategy listing.
type StrategyInfo struct {
	Name     string   `json:"name"`
	Products []string `json:"products"`
}

// ListStrategies returns the loaded strategies and their products.
// GET /api/v1/strategies
func (h *AnalyticsHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	names := h.snap.Names()
	result := make([]StrategyInfo, len(names))
	for i, name := range names {
		result[i] = StrategyInfo{Name: name, Products: h.snap.Products(name)}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": result,
	})
}

// GetProducts returns one strategy's product columns.
// GET /api/v1/strategies/{name}/products
func (h *AnalyticsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	products := h.snap.Products(name)
	if products == nil {
		respondError(w, http.StatusNotFound, "unknown strategy")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategy": name,
		"products": products,
		"capital":  h.snap.CapitalByProduct(name),
	})
}

// GetSeries returns the equity/drawdown series for a strategy selection.
// GET /api/v1/strategies/{name}/series?products=ES,NQ&range=1M
func (h *AnalyticsHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	sc, err := h.strategyScope(mux.Vars(r)["name"], r.URL.Query().Get("products"), rangeKey(r))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.seriesPayload(sc))
}

// GetMetrics returns the summary metrics report for a strategy selection.
// GET /api/v1/strategies/{name}/metrics?products=&range=
func (h *AnalyticsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	sc, err := h.strategyScope(mux.Vars(r)["name"], r.URL.Query().Get("products"), rangeKey(r))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows": h.metricsPayload(sc),
	})
}

// GetComparison returns the per-product metrics comparison table.
// GET /api/v1/strategies/{name}/comparison?products=&range=
func (h *AnalyticsHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	sc, err := h.strategyScope(mux.Vars(r)["name"], r.URL.Query().Get("products"), rangeKey(r))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.comparisonPayload(sc))
}

// GetRollingSharpe returns trailing-window Sharpe lines.
// GET /api/v1/strategies/{name}/rolling/sharpe?products=&range=&window=
func (h *AnalyticsHandler) GetRollingSharpe(w http.ResponseWriter, r *http.Request) {
	sc, err := h.strategyScope(mux.Vars(r)["name"], r.URL.Query().Get("products"), rangeKey(r))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"lines": h.rollingSharpePayload(sc, h.window(r)),
	})
}

// GetRollingCorrelation returns trailing-window pairwise correlation lines.
// GET /api/v1/strategies/{name}/rolling/correlation?products=&range=&window=
func (h *AnalyticsHandler) GetRollingCorrelation(w http.ResponseWriter, r *http.Request) {
	sc, err := h.strategyScope(mux.Vars(r)["name"], r.URL.Query().Get("products"), rangeKey(r))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"lines": h.rollingCorrelationPayload(sc, h.window(r)),
	})
}

// GetSeasonality returns the year × month monthly-return matrix.
// GET /api/v1/strategies/{name}/seasonality?products=&range=
func (h *AnalyticsHandler) GetSeasonality(w http.ResponseWriter, r *http.Request) {
	sc, err := h.strategyScope(mux.Vars(r)["name"], r.URL.Query().Get("products"), rangeKey(r))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.seasonalityPayload(sc))
}

// GetRanges returns the range enumeration and the next key in the cycle.
// GET /api/v1/ranges?current=1M
func (h *AnalyticsHandler) GetRanges(w http.ResponseWriter, r *http.Request) {
	current := analytics.RangeKey(r.URL.Query().Get("current"))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ranges": analytics.RangeKeys,
		"next":   analytics.NextRangeKey(current),
	})
}
