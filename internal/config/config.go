// Package config loads engine configuration from environment variables
// (SPEC_FULL.md §6.6), following the teacher's env-with-fallback convention.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable named in spec.md §6.6, plus ambient server/data
// settings the distilled spec left implicit.
type Config struct {
	DataDir string
	Port    int
	LogLevel string
	Pretty   bool

	EVThreshold           float64
	KellyFraction         float64
	MinStakeUnits         float64
	MaxStakeUnits         float64
	BankrollUnitPct       float64
	CommissionRate        float64
	RollingWindowMonths   int
	CaptureIntervalMinutes int
	HTTPTimeoutSeconds    int
	DefaultRank           int
	DefaultElo            float64

	ExchangeBaseURL  string
	ExchangeAppKey   string
	ExchangeUsername string
	ExchangePassword string

	CloudMirrorEnabled bool
	CloudMirrorBucket  string
	CloudMirrorRegion  string

	NotifyWebhookURL string

	// AutoMode makes the analyze command (POST /analyze) add a Bet for
	// every suggester candidate that clears a model gate, rather than only
	// returning candidates for a human to act on. The scheduled capture job
	// does not run the suggester and never places bets.
	AutoMode bool
}

// Load reads configuration from the environment, falling back to the
// defaults spec.md §6.6 names. A .env file is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:  getEnv("DATA_DIR", "./data"),
		Port:     getEnvAsInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Pretty:   getEnvAsBool("LOG_PRETTY", false),

		EVThreshold:            getEnvAsFloat("EV_THRESHOLD", 0.05),
		KellyFraction:          getEnvAsFloat("KELLY_FRACTION", 0.25),
		MinStakeUnits:          getEnvAsFloat("MIN_STAKE_UNITS", 0.5),
		MaxStakeUnits:          getEnvAsFloat("MAX_STAKE_UNITS", 3),
		BankrollUnitPct:        getEnvAsFloat("BANKROLL_UNIT_PCT", 0.05),
		CommissionRate:         getEnvAsFloat("COMMISSION_RATE", 0.05),
		RollingWindowMonths:    getEnvAsInt("ROLLING_WINDOW_MONTHS", 12),
		CaptureIntervalMinutes: getEnvAsInt("CAPTURE_INTERVAL_MINUTES", 30),
		HTTPTimeoutSeconds:     getEnvAsInt("HTTP_TIMEOUT_SECONDS", 15),
		DefaultRank:            getEnvAsInt("DEFAULT_RANK", 1500),
		DefaultElo:             getEnvAsFloat("DEFAULT_ELO", 1200),

		ExchangeBaseURL:  getEnv("EXCHANGE_BASE_URL", "https://api.exchange.example.com"),
		ExchangeAppKey:   getEnv("EXCHANGE_APP_KEY", ""),
		ExchangeUsername: getEnv("EXCHANGE_USERNAME", ""),
		ExchangePassword: getEnv("EXCHANGE_PASSWORD", ""),

		CloudMirrorEnabled: getEnvAsBool("CLOUD_MIRROR_ENABLED", false),
		CloudMirrorBucket:  getEnv("CLOUD_MIRROR_BUCKET", ""),
		CloudMirrorRegion:  getEnv("CLOUD_MIRROR_REGION", "auto"),

		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),

		AutoMode: getEnvAsBool("AUTO_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks invariants on the loaded configuration.
func (c *Config) Validate() error {
	if c.MinStakeUnits <= 0 || c.MaxStakeUnits < c.MinStakeUnits {
		return fmt.Errorf("invalid stake bounds: min=%v max=%v", c.MinStakeUnits, c.MaxStakeUnits)
	}
	if c.KellyFraction <= 0 || c.KellyFraction > 1 {
		return fmt.Errorf("invalid kelly fraction: %v", c.KellyFraction)
	}
	if c.BankrollUnitPct <= 0 || c.BankrollUnitPct > 1 {
		return fmt.Errorf("invalid bankroll unit pct: %v", c.BankrollUnitPct)
	}
	if c.CommissionRate < 0 || c.CommissionRate >= 1 {
		return fmt.Errorf("invalid commission rate: %v", c.CommissionRate)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
