package card

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mashwaniT/banking-system/internal/audit"
	"github.com/mashwaniT/banking-system/internal/domain"
	"github.com/mashwaniT/banking-system/pkg/metrics"
)

const DefaultCardInterestRate = 0.02

var (
	ErrCreditLimitExceeded = errors.New("charge would exceed credit limit")
	ErrInvalidCreditLimit  = errors.New("credit limit must not be negative")
)

// Card is a debit card over a linked account. It does not own the
// account and must not outlive it.
type Card struct {
	number  string
	account domain.Account
	audit   audit.Sink
	metrics *metrics.Collector
	logger  *slog.Logger
}

func NewCard(number string, account domain.Account, sink audit.Sink, collector *metrics.Collector, logger *slog.Logger) *Card {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = audit.Nop{}
	}
	if collector == nil {
		collector = metrics.NewCollector(logger)
	}
	if number == "" {
		number = uuid.NewString()
	}

	return &Card{
		number:  number,
		account: account,
		audit:   sink,
		metrics: collector,
		logger:  logger,
	}
}

func (c *Card) Number() string                { return c.number }
func (c *Card) LinkedAccount() domain.Account { return c.account }

// PayWithCard delegates to the linked account's withdrawal. A failed
// payment is absorbed here: it is logged and counted, never returned, so
// callers cannot distinguish it from success without the audit log.
func (c *Card) PayWithCard(amount float64) {
	if err := c.account.Withdraw(amount); err != nil {
		c.metrics.RecordCardPayment(false)
		c.audit.Event(slog.LevelError, "Card payment failed",
			slog.String("card_number", c.number),
			slog.String("account_number", c.account.Number()),
			slog.Float64("amount", amount),
			slog.String("error", err.Error()))
		return
	}

	c.metrics.RecordCardPayment(true)
	c.audit.Event(slog.LevelInfo, "Card payment completed",
		slog.String("card_number", c.number),
		slog.String("account_number", c.account.Number()),
		slog.Float64("amount", amount))
}

// ChangePin accepts any pin unconditionally. The pin itself is never
// stored or logged.
func (c *Card) ChangePin(newPin string) {
	c.audit.Event(slog.LevelInfo, "PIN changed",
		slog.String("card_number", c.number))
}

// CreditCard adds a credit limit and a carried balance: debt charged to
// the card, tracked separately from the linked account.
type CreditCard struct {
	Card
	mu             sync.Mutex
	creditLimit    float64
	carriedBalance float64
	interestRate   float64
}

func NewCreditCard(number string, account domain.Account, creditLimit float64, sink audit.Sink, collector *metrics.Collector, logger *slog.Logger) *CreditCard {
	cc := &CreditCard{
		creditLimit:  max(creditLimit, 0),
		interestRate: DefaultCardInterestRate,
	}
	cc.Card = *NewCard(number, account, sink, collector, logger)
	return cc
}

func (c *CreditCard) CreditLimit() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creditLimit
}

func (c *CreditCard) CarriedBalance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.carriedBalance
}

func (c *CreditCard) SetCreditLimit(limit float64) error {
	if limit < 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidCreditLimit, limit)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.creditLimit = limit
	c.audit.Event(slog.LevelInfo, "Credit limit changed",
		slog.String("card_number", c.number),
		slog.Float64("credit_limit", limit))
	return nil
}

// Charge adds debt to the carried balance, up to the credit limit.
func (c *CreditCard) Charge(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: charge of %.2f", domain.ErrInvalidAmount, amount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.carriedBalance+amount > c.creditLimit {
		return fmt.Errorf("%w: carried %.2f, charge %.2f, limit %.2f",
			ErrCreditLimitExceeded, c.carriedBalance, amount, c.creditLimit)
	}

	c.carriedBalance += amount
	c.audit.Event(slog.LevelInfo, "Card charged",
		slog.String("card_number", c.number),
		slog.Float64("amount", amount),
		slog.Float64("carried_balance", c.carriedBalance))
	return nil
}

// PayDown reduces the carried balance. Like loan payments it has no
// overpayment floor.
func (c *CreditCard) PayDown(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: payment of %.2f", domain.ErrInvalidAmount, amount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.carriedBalance -= amount
	c.audit.Event(slog.LevelInfo, "Card balance paid down",
		slog.String("card_number", c.number),
		slog.Float64("amount", amount),
		slog.Float64("carried_balance", c.carriedBalance))
	return nil
}

// ChargeInterest adds interest on a positive carried balance and returns
// the interest charged; a zero or credit balance accrues nothing.
func (c *CreditCard) ChargeInterest() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.carriedBalance <= 0 {
		return 0
	}

	interest := c.carriedBalance * c.interestRate
	c.carriedBalance += interest
	c.metrics.RecordInterest()
	c.audit.Event(slog.LevelInfo, "Card interest charged",
		slog.String("card_number", c.number),
		slog.Float64("interest", interest),
		slog.Float64("carried_balance", c.carriedBalance))
	return interest
}

// SetInterestRate overrides the default card interest rate.
func (c *CreditCard) SetInterestRate(rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rate >= 0 {
		c.interestRate = rate
	}
}
