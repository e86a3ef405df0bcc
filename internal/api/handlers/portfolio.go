package handlers

import (
	"net/http"
)

// Portfolio endpoints mirror the strategy-scoped ones over the merged
// portfolio table: columns are strategies instead of products, selected
// with ?strategies=A,B.

// GetPortfolioSeries returns the portfolio equity/drawdown series.
// GET /api/v1/portfolio/series?strategies=&range=
func (h *AnalyticsHandler) GetPortfolioSeries(w http.ResponseWriter, r *http.Request) {
	sc := h.portfolioScope(r.URL.Query().Get("strategies"), rangeKey(r))
	respondJSON(w, http.StatusOK, h.seriesPayload(sc))
}

// GetPortfolioMetrics returns the portfolio summary metrics report.
// GET /api/v1/portfolio/metrics?strategies=&range=
func (h *AnalyticsHandler) GetPortfolioMetrics(w http.ResponseWriter, r *http.Request) {
	sc := h.portfolioScope(r.URL.Query().Get("strategies"), rangeKey(r))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows": h.metricsPayload(sc),
	})
}

// GetPortfolioComparison returns the per-strategy metrics comparison table.
// GET /api/v1/portfolio/comparison?strategies=&range=
func (h *AnalyticsHandler) GetPortfolioComparison(w http.ResponseWriter, r *http.Request) {
	sc := h.portfolioScope(r.URL.Query().Get("strategies"), rangeKey(r))
	respondJSON(w, http.StatusOK, h.comparisonPayload(sc))
}

// GetPortfolioRollingSharpe returns trailing-window Sharpe lines per strategy.
// GET /api/v1/portfolio/rolling/sharpe?strategies=&range=&window=
func (h *AnalyticsHandler) GetPortfolioRollingSharpe(w http.ResponseWriter, r *http.Request) {
	sc := h.portfolioScope(r.URL.Query().Get("strategies"), rangeKey(r))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"lines": h.rollingSharpePayload(sc, h.window(r)),
	})
}

// GetPortfolioRollingCorrelation returns pairwise strategy correlation lines.
// GET /api/v1/portfolio/rolling/correlation?strategies=&range=&window=
func (h *AnalyticsHandler) GetPortfolioRollingCorrelation(w http.ResponseWriter, r *http.Request) {
	sc := h.portfolioScope(r.URL.Query().Get("strategies"), rangeKey(r))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"lines": h.rollingCorrelationPayload(sc, h.window(r)),
	})
}

// GetPortfolioSeasonality returns the portfolio monthly-return matrix.
// GET /api/v1/portfolio/seasonality?strategies=&range=
func (h *AnalyticsHandler) GetPortfolioSeasonality(w http.ResponseWriter, r *http.Request) {
	sc := h.portfolioScope(r.URL.Query().Get("strategies"), rangeKey(r))
	respondJSON(w, http.StatusOK, h.seasonalityPayload(sc))
}
