package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry            *prometheus.Registry
	depositsTotal       prometheus.Counter
	withdrawalsTotal    prometheus.Counter
	withdrawalFailures  prometheus.Counter
	cardPayments        prometheus.Counter
	cardPaymentFailures prometheus.Counter
	interestApplied     prometheus.Counter
	loanPayments        prometheus.Counter
	transactionAmount   prometheus.Histogram
	accountBalance      *prometheus.GaugeVec
	mu                  sync.RWMutex
	logger              *slog.Logger
}

func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	collector := &Collector{
		registry: registry,
		depositsTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_deposits_total",
			Help: "Total number of successful deposits",
		}),
		withdrawalsTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_withdrawals_total",
			Help: "Total number of successful withdrawals",
		}),
		withdrawalFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_withdrawal_failures_total",
			Help: "Total number of rejected withdrawals",
		}),
		cardPayments: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_card_payments_total",
			Help: "Total number of successful card payments",
		}),
		cardPaymentFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_card_payment_failures_total",
			Help: "Total number of card payments absorbed as failures",
		}),
		interestApplied: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_interest_applied_total",
			Help: "Total number of interest applications",
		}),
		loanPayments: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_loan_payments_total",
			Help: "Total number of loan and mortgage payments",
		}),
		transactionAmount: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_transaction_amount",
			Help:    "Distribution of transaction amounts",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000},
		}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "ledger_account_balance",
			Help: "Current account balance",
		}, []string{"account_number"}),
		logger: logger,
	}

	return collector
}

func (c *Collector) RecordDeposit(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.depositsTotal.Inc()
	c.transactionAmount.Observe(amount)
}

func (c *Collector) RecordWithdrawal(amount float64, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if success {
		c.withdrawalsTotal.Inc()
		c.transactionAmount.Observe(amount)
	} else {
		c.withdrawalFailures.Inc()
	}
}

func (c *Collector) RecordCardPayment(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if success {
		c.cardPayments.Inc()
	} else {
		c.cardPaymentFailures.Inc()
	}
}

func (c *Collector) RecordInterest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interestApplied.Inc()
}

func (c *Collector) RecordLoanPayment(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loanPayments.Inc()
	c.transactionAmount.Observe(amount)
}

func (c *Collector) SetAccountBalance(accountNumber string, balance float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountBalance.WithLabelValues(accountNumber).Set(balance)
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		c.logger.Info("Starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}

func (c *Collector) Shutdown(ctx context.Context) error {
	c.logger.Info("Metrics collector shutdown complete")
	return nil
}
