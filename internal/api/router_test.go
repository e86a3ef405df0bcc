package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/wonny/tearsheet/internal/api/handlers"
	"github.com/wonny/tearsheet/internal/strategyset"
	"github.com/wonny/tearsheet/pkg/config"
	"github.com/wonny/tearsheet/pkg/logger"
)

const testManifest = `strategies:
  - name: Trend
    csv: trend.csv
    initial_capital:
      ES: 60
      NQ: 40
  - name: MeanRev
    csv: meanrev.csv
`

const testTrendCSV = `date,ES,NQ
2024-01-02,10,0
2024-01-03,-5,0
2024-01-04,8,0
`

const testMeanrevCSV = `date,CL
2024-01-03,4
2024-01-05,-1
`

func testRouter(t *testing.T, limiter *rate.Limiter) http.Handler {
	t.Helper()

	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("strategies.yaml", testManifest)
	write("trend.csv", testTrendCSV)
	write("meanrev.csv", testMeanrevCSV)

	cfg := &config.Config{
		Port:                  "0",
		Env:                   "development",
		DataDir:               dir,
		StrategiesFile:        filepath.Join(dir, "strategies.yaml"),
		RollingWindow:         3,
		DefaultInitialCapital: 100,
		DefaultPositionSize:   1.0,
		RateLimitRPS:          1000,
	}

	log := logger.NewWriter(io.Discard)
	snap, err := strategyset.Load(cfg, log)
	require.NoError(t, err)

	h := handlers.NewAnalyticsHandler(snap, cfg, log)
	ws := handlers.NewWSHandler(h, log)
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), int(cfg.RateLimitRPS))
	}
	return NewRouter(h, ws, log, limiter)
}

func getJSON(t *testing.T, router http.Handler, path string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	var body map[string]string
	code := getJSON(t, router, "/health", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestListStrategies(t *testing.T) {
	router := testRouter(t, nil)

	var body struct {
		Strategies []struct {
			Name     string   `json:"name"`
			Products []string `json:"products"`
		} `json:"strategies"`
	}
	code := getJSON(t, router, "/api/v1/strategies", &body)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Strategies, 2)
	assert.Equal(t, "Trend", body.Strategies[0].Name)
	assert.Equal(t, []string{"ES", "NQ"}, body.Strategies[0].Products)
}

func TestGetSeriesGoldenScenario(t *testing.T) {
	router := testRouter(t, nil)

	var body struct {
		Dates  []string  `json:"dates"`
		PnL    []float64 `json:"pnl"`
		Equity []float64 `json:"equity"`
		HWM    []float64 `json:"hwm"`
	}
	code := getJSON(t, router, "/api/v1/strategies/Trend/series?products=ES,NQ", &body)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, []string{"2024-01-02", "2024-01-03", "2024-01-04"}, body.Dates)
	assert.Equal(t, []float64{10, -5, 8}, body.PnL)
	// funded with the summed per-product capital of 100
	assert.Equal(t, []float64{110, 105, 113}, body.Equity)
	assert.Equal(t, []float64{110, 110, 113}, body.HWM)
}

func TestGetMetricsRowCount(t *testing.T) {
	router := testRouter(t, nil)

	var body struct {
		Rows []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"rows"`
	}
	code := getJSON(t, router, "/api/v1/strategies/Trend/metrics", &body)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Rows, 24)
	assert.Equal(t, "total_pnl", body.Rows[0].ID)
	assert.Equal(t, "13.00", body.Rows[0].Value)
}

func TestGetComparisonColumns(t *testing.T) {
	router := testRouter(t, nil)

	var body struct {
		Columns []string `json:"columns"`
		Rows    []struct {
			ID     string   `json:"id"`
			Values []string `json:"values"`
		} `json:"rows"`
	}
	code := getJSON(t, router, "/api/v1/strategies/Trend/comparison", &body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"ES", "NQ", "ALL (agg)"}, body.Columns)
	require.Len(t, body.Rows, 24)
	for _, row := range body.Rows {
		assert.Len(t, row.Values, 3)
	}
}

func TestUnknownStrategyIs404(t *testing.T) {
	router := testRouter(t, nil)
	assert.Equal(t, http.StatusNotFound, getJSON(t, router, "/api/v1/strategies/ghost/series", nil))
	assert.Equal(t, http.StatusNotFound, getJSON(t, router, "/api/v1/strategies/ghost/products", nil))
}

func TestRollingCorrelationSingleProduct(t *testing.T) {
	router := testRouter(t, nil)

	var body struct {
		Lines []json.RawMessage `json:"lines"`
	}
	code := getJSON(t, router, "/api/v1/strategies/Trend/rolling/correlation?products=ES", &body)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body.Lines)
}

func TestRollingSharpeNullsBeforeWindowFills(t *testing.T) {
	router := testRouter(t, nil)

	var body struct {
		Lines []struct {
			Label  string     `json:"label"`
			Values []*float64 `json:"values"`
		} `json:"lines"`
	}
	code := getJSON(t, router, "/api/v1/strategies/Trend/rolling/sharpe?products=ES&window=3", &body)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Lines, 1)
	require.Len(t, body.Lines[0].Values, 3)
	assert.Nil(t, body.Lines[0].Values[0])
	assert.Nil(t, body.Lines[0].Values[1])
	assert.NotNil(t, body.Lines[0].Values[2])
}

func TestGetPortfolioSeries(t *testing.T) {
	router := testRouter(t, nil)

	var body struct {
		Dates []string  `json:"dates"`
		PnL   []float64 `json:"pnl"`
	}
	code := getJSON(t, router, "/api/v1/portfolio/series", &body)
	require.Equal(t, http.StatusOK, code)

	// outer join of Trend (Jan 2-4) and MeanRev (Jan 3, 5)
	assert.Equal(t, []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}, body.Dates)
	assert.Equal(t, []float64{10, -1, 8, -1}, body.PnL)
}

func TestGetRangesCycles(t *testing.T) {
	router := testRouter(t, nil)

	var body struct {
		Ranges []string `json:"ranges"`
		Next   string   `json:"next"`
	}
	code := getJSON(t, router, "/api/v1/ranges?current=All", &body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"1M", "3M", "YTD", "1Y", "All"}, body.Ranges)
	assert.Equal(t, "1M", body.Next)
}

func TestRateLimitMiddleware(t *testing.T) {
	router := testRouter(t, rate.NewLimiter(rate.Limit(0.001), 1))

	assert.Equal(t, http.StatusOK, getJSON(t, router, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, getJSON(t, router, "/health", nil))
}

func TestWebsocketPanelRequests(t *testing.T) {
	ts := httptest.NewServer(testRouter(t, nil))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"panel":    "series",
		"strategy": "Trend",
		"products": []string{"ES", "NQ"},
	}))

	var resp struct {
		Panel string `json:"panel"`
		Data  struct {
			Equity []float64 `json:"equity"`
		} `json:"data"`
		Error string `json:"error"`
	}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "series", resp.Panel)
	assert.Empty(t, resp.Error)
	assert.Equal(t, []float64{110, 105, 113}, resp.Data.Equity)

	// unknown strategy answers with an error payload, not a closed socket
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"panel":    "metrics",
		"strategy": "ghost",
	}))
	var errResp struct {
		Error string `json:"error"`
	}
	require.NoError(t, conn.ReadJSON(&errResp))
	assert.NotEmpty(t, errResp.Error)
}
