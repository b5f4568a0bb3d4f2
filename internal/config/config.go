package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MetricsAddr           string
	AuditLogPath          string
	AuditSigningKey       string
	DefaultMinimumBalance float64
	SavingsInterestRate   float64
	CardInterestRate      float64
}

// Load reads an optional .env file, then environment variables, falling
// back to defaults. A missing .env is not an error.
func Load(logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.Default()
	}

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file loaded, using environment and defaults")
	}

	return Config{
		MetricsAddr:           getEnv("METRICS_ADDR", ":9090"),
		AuditLogPath:          getEnv("AUDIT_LOG_PATH", "bank_system.log"),
		AuditSigningKey:       getEnv("AUDIT_SIGNING_KEY", ""),
		DefaultMinimumBalance: getEnvFloat("DEFAULT_MINIMUM_BALANCE", 100, logger),
		SavingsInterestRate:   getEnvFloat("SAVINGS_INTEREST_RATE", 0.01, logger),
		CardInterestRate:      getEnvFloat("CARD_INTEREST_RATE", 0.02, logger),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64, logger *slog.Logger) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn("Invalid numeric value in environment, using default",
			slog.String("key", key),
			slog.String("value", v))
		return fallback
	}
	return f
}
