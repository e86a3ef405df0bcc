package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Data
	DataDir        string
	StrategiesFile string

	// Analytics defaults
	RiskFreeRate          float64 // annual, e.g. 0.02 for 2%
	RollingWindow         int     // trailing periods for rolling stats
	DefaultInitialCapital float64 // fallback funding baseline per column
	DefaultPositionSize   float64 // multiplier for unsized products

	// API
	RateLimitRPS float64

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		DataDir:        getEnv("DATA_DIR", "./data"),
		StrategiesFile: getEnv("STRATEGIES_FILE", "./strategies.yaml"),

		RiskFreeRate:          getEnvAsFloat("RISK_FREE_RATE", 0.0),
		RollingWindow:         getEnvAsInt("ROLLING_WINDOW", 63),
		DefaultInitialCapital: getEnvAsFloat("DEFAULT_INITIAL_CAPITAL", 100.0),
		DefaultPositionSize:   getEnvAsFloat("DEFAULT_POSITION_SIZE", 1.0),

		RateLimitRPS: getEnvAsFloat("RATE_LIMIT_RPS", 50),

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.StrategiesFile == "" {
		return fmt.Errorf("STRATEGIES_FILE is required")
	}

	if c.RollingWindow < 2 {
		return fmt.Errorf("ROLLING_WINDOW must be at least 2")
	}

	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
