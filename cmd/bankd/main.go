package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mashwaniT/banking-system/internal/audit"
	"github.com/mashwaniT/banking-system/internal/bank"
	"github.com/mashwaniT/banking-system/internal/config"
	"github.com/mashwaniT/banking-system/pkg/crypto"
	"github.com/mashwaniT/banking-system/pkg/metrics"
)

const appName = "bankd"

func main() {
	logger := setupLogger()
	logger.Info("Starting application", slog.String("name", appName))

	cfg := config.Load(logger)

	var signer *crypto.Signer
	if cfg.AuditSigningKey != "" {
		signer = crypto.NewSigner(cfg.AuditSigningKey, logger)
	}

	sink, auditFile, err := audit.Open(cfg.AuditLogPath, signer)
	if err != nil {
		logger.Error("Failed to open audit log", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer auditFile.Close()

	collector := metrics.NewCollector(logger)
	ledger := bank.New(bank.Config{
		DefaultMinimumBalance: cfg.DefaultMinimumBalance,
		SavingsInterestRate:   cfg.SavingsInterestRate,
	}, sink, collector, logger)

	metricsServer := collector.StartMetricsServer(cfg.MetricsAddr)

	logger.Info("Bank registry ready",
		slog.Int("accounts", len(ledger.Accounts())),
		slog.String("audit_log", cfg.AuditLogPath))

	waitForShutdown(logger, metricsServer, collector)
	logger.Info("Application shutdown complete")
}

func setupLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

func waitForShutdown(logger *slog.Logger, metricsServer *http.Server, collector *metrics.Collector) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
	}
	if err := collector.Shutdown(ctx); err != nil {
		logger.Error("Metrics collector shutdown failed", slog.String("error", err.Error()))
	}
}
