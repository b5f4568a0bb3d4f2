package domain

import (
	"fmt"
	"sync"
)

type AccountType string

const (
	AccountSavings  AccountType = "savings"
	AccountChecking AccountType = "checking"
	AccountTFSA     AccountType = "tfsa"
	AccountRRSP     AccountType = "rrsp"
)

const (
	DefaultMinimumBalance      = 100.0
	DefaultSavingsInterestRate = 0.01
)

// AccountDetails is the read-only projection handed to presentation layers.
type AccountDetails struct {
	AccountNumber string  `json:"account_number"`
	HolderName    string  `json:"holder_name"`
	Balance       float64 `json:"balance"`
}

// Account is the capability surface shared by all account variants.
// Mutators check their invariant and leave state untouched on failure.
type Account interface {
	Number() string
	Holder() string
	Balance() float64
	Type() AccountType
	Deposit(amount float64) error
	Withdraw(amount float64) error
	Details() AccountDetails
	History() []Transaction
}

// BaseAccount carries the state and rules common to every variant.
// The opening balance is set directly at construction and has no
// transaction record; History therefore reflects mutations only.
type BaseAccount struct {
	mu          sync.Mutex
	accountType AccountType
	number      string
	holder      string
	balance     float64
	history     []Transaction
}

func (a *BaseAccount) Number() string    { return a.number }
func (a *BaseAccount) Holder() string    { return a.holder }
func (a *BaseAccount) Type() AccountType { return a.accountType }

func (a *BaseAccount) Balance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *BaseAccount) Deposit(amount float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if amount <= 0 {
		return fmt.Errorf("%w: deposit of %.2f", ErrInvalidAmount, amount)
	}

	a.balance += amount
	a.history = append(a.history, NewTransaction(TypeDeposit, amount))
	return nil
}

func (a *BaseAccount) Withdraw(amount float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawLocked(amount)
}

func (a *BaseAccount) withdrawLocked(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdrawal of %.2f", ErrInvalidAmount, amount)
	}
	if amount > a.balance {
		return fmt.Errorf("%w: withdrawal of %.2f from balance %.2f", ErrInsufficientFunds, amount, a.balance)
	}

	a.balance -= amount
	a.history = append(a.history, NewTransaction(TypeWithdrawal, amount))
	return nil
}

func (a *BaseAccount) Details() AccountDetails {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AccountDetails{
		AccountNumber: a.number,
		HolderName:    a.holder,
		Balance:       a.balance,
	}
}

// History returns a snapshot copy of the transaction log.
func (a *BaseAccount) History() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// SavingsAccount enforces a minimum balance floor on withdrawals and
// accrues interest on demand.
type SavingsAccount struct {
	BaseAccount
	minimumBalance float64
	interestRate   float64
}

func NewSavingsAccount(number, holder string, balance, minimumBalance float64) *SavingsAccount {
	return &SavingsAccount{
		BaseAccount: BaseAccount{
			accountType: AccountSavings,
			number:      number,
			holder:      holder,
			balance:     balance,
		},
		minimumBalance: max(minimumBalance, 0),
		interestRate:   DefaultSavingsInterestRate,
	}
}

func (s *SavingsAccount) MinimumBalance() float64 { return s.minimumBalance }

func (s *SavingsAccount) SetInterestRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rate >= 0 {
		s.interestRate = rate
	}
}

// Withdraw applies the minimum-balance rule before the base
// insufficient-funds rule, so a withdrawal that would cross the floor is
// always rejected as a minimum-balance violation.
func (s *SavingsAccount) Withdraw(amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 {
		return fmt.Errorf("%w: withdrawal of %.2f", ErrInvalidAmount, amount)
	}
	if s.balance-amount < s.minimumBalance {
		return fmt.Errorf("%w: balance %.2f, withdrawal %.2f, minimum %.2f",
			ErrBelowMinimumBalance, s.balance, amount, s.minimumBalance)
	}
	return s.withdrawLocked(amount)
}

// ApplyInterest credits the account with balance * rate and returns the
// interest added.
func (s *SavingsAccount) ApplyInterest() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	interest := s.balance * s.interestRate
	if interest <= 0 {
		return 0
	}
	s.balance += interest
	s.history = append(s.history, NewTransaction(TypeInterest, interest))
	return interest
}

// CheckingAccount uses the base rules and can send e-transfers to an
// external recipient.
type CheckingAccount struct {
	BaseAccount
}

func NewCheckingAccount(number, holder string, balance float64) *CheckingAccount {
	return &CheckingAccount{
		BaseAccount: BaseAccount{
			accountType: AccountChecking,
			number:      number,
			holder:      holder,
			balance:     balance,
		},
	}
}

// SendETransfer debits the account in favour of an external recipient.
// The recipient side is not modeled; only the debit is recorded.
func (c *CheckingAccount) SendETransfer(recipientAccountNumber string, amount float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount <= 0 {
		return fmt.Errorf("%w: e-transfer of %.2f", ErrInvalidAmount, amount)
	}
	if amount > c.balance {
		return fmt.Errorf("%w: e-transfer of %.2f from balance %.2f", ErrInsufficientFunds, amount, c.balance)
	}

	c.balance -= amount
	c.history = append(c.history, NewTransaction(TypeTransfer, amount))
	return nil
}

// TaxFreeSavingsAccount is a savings account under a tax-free label; it
// adds no behavior of its own.
type TaxFreeSavingsAccount struct {
	SavingsAccount
}

func NewTaxFreeSavingsAccount(number, holder string, balance, minimumBalance float64) *TaxFreeSavingsAccount {
	return &TaxFreeSavingsAccount{
		SavingsAccount: SavingsAccount{
			BaseAccount: BaseAccount{
				accountType: AccountTFSA,
				number:      number,
				holder:      holder,
				balance:     balance,
			},
			minimumBalance: max(minimumBalance, 0),
			interestRate:   DefaultSavingsInterestRate,
		},
	}
}

// RegisteredRetirementAccount is a savings account that additionally
// tracks contribution room. The room is informational only and is not
// decremented by deposits.
type RegisteredRetirementAccount struct {
	SavingsAccount
	contributionRoom float64
}

func NewRegisteredRetirementAccount(number, holder string, balance, minimumBalance, contributionRoom float64) *RegisteredRetirementAccount {
	return &RegisteredRetirementAccount{
		SavingsAccount: SavingsAccount{
			BaseAccount: BaseAccount{
				accountType: AccountRRSP,
				number:      number,
				holder:      holder,
				balance:     balance,
			},
			minimumBalance: max(minimumBalance, 0),
			interestRate:   DefaultSavingsInterestRate,
		},
		contributionRoom: max(contributionRoom, 0),
	}
}

func (r *RegisteredRetirementAccount) ContributionRoom() float64 { return r.contributionRoom }

var (
	_ Account = (*SavingsAccount)(nil)
	_ Account = (*CheckingAccount)(nil)
	_ Account = (*TaxFreeSavingsAccount)(nil)
	_ Account = (*RegisteredRetirementAccount)(nil)
)
