package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/wonny/tearsheet/internal/api"
	"github.com/wonny/tearsheet/internal/api/handlers"
	"github.com/wonny/tearsheet/internal/strategyset"
	"github.com/wonny/tearsheet/pkg/config"
	"github.com/wonny/tearsheet/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the tearsheet API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /health                                       - Health check
  GET  /api/v1/strategies                            - Loaded strategies
  GET  /api/v1/strategies/{name}/series              - Equity/drawdown series
  GET  /api/v1/strategies/{name}/metrics             - Summary metrics
  GET  /api/v1/strategies/{name}/comparison          - Per-product comparison
  GET  /api/v1/strategies/{name}/rolling/sharpe      - Rolling Sharpe
  GET  /api/v1/strategies/{name}/rolling/correlation - Rolling correlation
  GET  /api/v1/strategies/{name}/seasonality         - Monthly-return matrix
  GET  /api/v1/portfolio/...                         - Strategy-level equivalents
  GET  /api/v1/ranges                                - Range enumeration
  GET  /ws                                           - Interactive dashboard socket

Example:
  go run ./cmd/tearsheet api
  go run ./cmd/tearsheet api --port 8089`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port":       cfg.Port,
		"env":        cfg.Env,
		"strategies": cfg.StrategiesFile,
	}).Info("Initializing API server")

	// 3. Load the strategy snapshot
	snap, err := strategyset.Load(cfg, log)
	if err != nil {
		return fmt.Errorf("load strategies: %w", err)
	}

	// 4. Create handlers and router
	h := handlers.NewAnalyticsHandler(snap, cfg, log)
	ws := handlers.NewWSHandler(h, log)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), int(cfg.RateLimitRPS))
	router := api.NewRouter(h, ws, log, limiter)

	// 5. Create server
	server := api.New(cfg, log, router)

	// 6. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
