package bank

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mashwaniT/banking-system/internal/audit"
	"github.com/mashwaniT/banking-system/internal/domain"
	"github.com/mashwaniT/banking-system/pkg/metrics"
	"github.com/mashwaniT/banking-system/pkg/validator"
)

type Config struct {
	DefaultMinimumBalance float64
	SavingsInterestRate   float64
}

// Bank owns every account, loan and mortgage for the life of the process
// and is the sole creation point for all of them. The registry mutex
// guards the maps; each entity carries its own lock so check-then-mutate
// stays atomic per account.
type Bank struct {
	mu        sync.RWMutex
	accounts  map[string]domain.Account
	loans     map[string]*domain.Loan
	mortgages map[string]*domain.Mortgage
	cfg       Config
	validator *validator.LedgerValidator
	audit     audit.Sink
	metrics   *metrics.Collector
	logger    *slog.Logger
}

func New(cfg Config, sink audit.Sink, collector *metrics.Collector, logger *slog.Logger) *Bank {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = audit.Nop{}
	}
	if collector == nil {
		collector = metrics.NewCollector(logger)
	}
	if cfg.DefaultMinimumBalance <= 0 {
		cfg.DefaultMinimumBalance = domain.DefaultMinimumBalance
	}
	if cfg.SavingsInterestRate <= 0 {
		cfg.SavingsInterestRate = domain.DefaultSavingsInterestRate
	}

	return &Bank{
		accounts:  make(map[string]domain.Account),
		loans:     make(map[string]*domain.Loan),
		mortgages: make(map[string]*domain.Mortgage),
		cfg:       cfg,
		validator: validator.NewLedgerValidator(),
		audit:     sink,
		metrics:   collector,
		logger:    logger,
	}
}

// CreateAccount constructs the variant named by accountType and registers
// it. The initial deposit becomes the starting balance directly; it is
// not routed through Deposit and leaves no transaction record.
func (b *Bank) CreateAccount(accountType domain.AccountType, number, holder string, initialDeposit float64) (domain.Account, error) {
	if err := b.validator.ValidateIdentifier(number); err != nil {
		return nil, err
	}
	if err := b.validator.ValidateHolderName(holder); err != nil {
		return nil, err
	}
	if err := b.validator.ValidateOpeningBalance(initialDeposit); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.accounts[number]; exists {
		return nil, fmt.Errorf("%w: account %s", domain.ErrDuplicateID, number)
	}

	var account domain.Account
	switch accountType {
	case domain.AccountSavings:
		account = b.newSavings(number, holder, initialDeposit)
	case domain.AccountChecking:
		account = domain.NewCheckingAccount(number, holder, initialDeposit)
	case domain.AccountTFSA:
		tfsa := domain.NewTaxFreeSavingsAccount(number, holder, initialDeposit, b.cfg.DefaultMinimumBalance)
		tfsa.SetInterestRate(b.cfg.SavingsInterestRate)
		account = tfsa
	case domain.AccountRRSP:
		rrsp := domain.NewRegisteredRetirementAccount(number, holder, initialDeposit, b.cfg.DefaultMinimumBalance, 0)
		rrsp.SetInterestRate(b.cfg.SavingsInterestRate)
		account = rrsp
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAccountType, accountType)
	}

	b.accounts[number] = account
	b.metrics.SetAccountBalance(number, initialDeposit)
	b.audit.Event(slog.LevelInfo, "Account created",
		slog.String("account_number", number),
		slog.String("holder", holder),
		slog.String("type", string(accountType)))
	b.logger.Info("Account created",
		slog.String("account_number", number),
		slog.String("type", string(accountType)))

	return account, nil
}

func (b *Bank) newSavings(number, holder string, balance float64) *domain.SavingsAccount {
	account := domain.NewSavingsAccount(number, holder, balance, b.cfg.DefaultMinimumBalance)
	account.SetInterestRate(b.cfg.SavingsInterestRate)
	return account
}

func (b *Bank) GetAccount(number string) (domain.Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	account, exists := b.accounts[number]
	if !exists {
		return nil, fmt.Errorf("%w: account %s", domain.ErrAccountNotFound, number)
	}
	return account, nil
}

// Accounts returns the projection of every registered account.
func (b *Bank) Accounts() []domain.AccountDetails {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.AccountDetails, 0, len(b.accounts))
	for _, account := range b.accounts {
		out = append(out, account.Details())
	}
	return out
}

func (b *Bank) CreateLoan(id, borrower string, principal, interestRate float64, termYears int) (*domain.Loan, error) {
	if err := b.validator.ValidateIdentifier(id); err != nil {
		return nil, err
	}
	if err := b.validator.ValidateHolderName(borrower); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.loans[id]; exists {
		return nil, fmt.Errorf("%w: loan %s", domain.ErrDuplicateID, id)
	}

	loan, err := domain.NewLoan(id, borrower, principal, interestRate, termYears)
	if err != nil {
		return nil, err
	}

	b.loans[id] = loan
	b.audit.Event(slog.LevelInfo, "Loan created",
		slog.String("loan_id", id),
		slog.String("borrower", borrower),
		slog.Float64("principal", principal))
	b.logger.Info("Loan created", slog.String("loan_id", id))

	return loan, nil
}

func (b *Bank) CreateMortgage(id, borrower string, principal, interestRate float64, termYears int, propertyAddress string) (*domain.Mortgage, error) {
	if err := b.validator.ValidateIdentifier(id); err != nil {
		return nil, err
	}
	if err := b.validator.ValidateHolderName(borrower); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.mortgages[id]; exists {
		return nil, fmt.Errorf("%w: mortgage %s", domain.ErrDuplicateID, id)
	}

	mortgage, err := domain.NewMortgage(id, borrower, principal, interestRate, termYears, propertyAddress)
	if err != nil {
		return nil, err
	}

	b.mortgages[id] = mortgage
	b.audit.Event(slog.LevelInfo, "Mortgage created",
		slog.String("mortgage_id", id),
		slog.String("borrower", borrower),
		slog.String("property_address", propertyAddress),
		slog.Float64("principal", principal))
	b.logger.Info("Mortgage created", slog.String("mortgage_id", id))

	return mortgage, nil
}

func (b *Bank) GetLoan(id string) (*domain.Loan, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	loan, exists := b.loans[id]
	if !exists {
		return nil, fmt.Errorf("%w: loan %s", domain.ErrLoanNotFound, id)
	}
	return loan, nil
}

func (b *Bank) GetMortgage(id string) (*domain.Mortgage, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	mortgage, exists := b.mortgages[id]
	if !exists {
		return nil, fmt.Errorf("%w: mortgage %s", domain.ErrMortgageNotFound, id)
	}
	return mortgage, nil
}
