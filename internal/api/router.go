package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/tearsheet/internal/api/handlers"
	"github.com/wonny/tearsheet/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(h *handlers.AnalyticsHandler, ws *handlers.WSHandler, log *logger.Logger, limiter *rate.Limiter) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Interactive dashboard socket
	r.HandleFunc("/ws", ws.Serve).Methods("GET")

	// API v1
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/strategies", h.ListStrategies).Methods("GET")
	api.HandleFunc("/strategies/{name}/products", h.GetProducts).Methods("GET")
	api.HandleFunc("/strategies/{name}/series", h.GetSeries).Methods("GET")
	api.HandleFunc("/strategies/{name}/metrics", h.GetMetrics).Methods("GET")
	api.HandleFunc("/strategies/{name}/comparison", h.GetComparison).Methods("GET")
	api.HandleFunc("/strategies/{name}/rolling/sharpe", h.GetRollingSharpe).Methods("GET")
	api.HandleFunc("/strategies/{name}/rolling/correlation", h.GetRollingCorrelation).Methods("GET")
	api.HandleFunc("/strategies/{name}/seasonality", h.GetSeasonality).Methods("GET")

	api.HandleFunc("/portfolio/series", h.GetPortfolioSeries).Methods("GET")
	api.HandleFunc("/portfolio/metrics", h.GetPortfolioMetrics).Methods("GET")
	api.HandleFunc("/portfolio/comparison", h.GetPortfolioComparison).Methods("GET")
	api.HandleFunc("/portfolio/rolling/sharpe", h.GetPortfolioRollingSharpe).Methods("GET")
	api.HandleFunc("/portfolio/rolling/correlation", h.GetPortfolioRollingCorrelation).Methods("GET")
	api.HandleFunc("/portfolio/seasonality", h.GetPortfolioSeasonality).Methods("GET")

	api.HandleFunc("/ranges", h.GetRanges).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(rateLimitMiddleware(limiter))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "tearsheet-api",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware applies a process-wide request budget.
func rateLimitMiddleware(limiter *rate.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
