package domain

import (
	"fmt"
	"sync"
)

// LoanDetails is the read-only projection of a loan.
type LoanDetails struct {
	LoanID       string  `json:"loan_id"`
	BorrowerName string  `json:"borrower_name"`
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interest_rate"`
	TermYears    int     `json:"term_years"`
	Balance      float64 `json:"balance"`
}

// Loan tracks an outstanding balance that starts at the principal and
// decreases with payments. Payments are deliberately permissive: there is
// no overpayment floor, so the balance may go negative.
type Loan struct {
	mu           sync.Mutex
	id           string
	borrower     string
	principal    float64
	interestRate float64
	termYears    int
	balance      float64
}

func NewLoan(id, borrower string, principal, interestRate float64, termYears int) (*Loan, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("%w: principal %.2f must be positive", ErrInvalidTerm, principal)
	}
	if interestRate < 0 {
		return nil, fmt.Errorf("%w: interest rate %.4f must not be negative", ErrInvalidTerm, interestRate)
	}
	if termYears <= 0 {
		return nil, fmt.Errorf("%w: term %d years must be positive", ErrInvalidTerm, termYears)
	}

	return &Loan{
		id:           id,
		borrower:     borrower,
		principal:    principal,
		interestRate: interestRate,
		termYears:    termYears,
		balance:      principal,
	}, nil
}

func (l *Loan) ID() string            { return l.id }
func (l *Loan) Borrower() string      { return l.borrower }
func (l *Loan) Principal() float64    { return l.principal }
func (l *Loan) InterestRate() float64 { return l.interestRate }
func (l *Loan) TermYears() int        { return l.termYears }

func (l *Loan) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

func (l *Loan) MakePayment(amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return fmt.Errorf("%w: payment of %.2f", ErrInvalidAmount, amount)
	}

	l.balance -= amount
	return nil
}

func (l *Loan) Details() LoanDetails {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoanDetails{
		LoanID:       l.id,
		BorrowerName: l.borrower,
		Principal:    l.principal,
		InterestRate: l.interestRate,
		TermYears:    l.termYears,
		Balance:      l.balance,
	}
}

// Mortgage is a loan secured against a property.
type Mortgage struct {
	Loan
	propertyAddress string
}

func NewMortgage(id, borrower string, principal, interestRate float64, termYears int, propertyAddress string) (*Mortgage, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("%w: principal %.2f must be positive", ErrInvalidTerm, principal)
	}
	if interestRate < 0 {
		return nil, fmt.Errorf("%w: interest rate %.4f must not be negative", ErrInvalidTerm, interestRate)
	}
	if termYears <= 0 {
		return nil, fmt.Errorf("%w: term %d years must be positive", ErrInvalidTerm, termYears)
	}

	return &Mortgage{
		Loan: Loan{
			id:           id,
			borrower:     borrower,
			principal:    principal,
			interestRate: interestRate,
			termYears:    termYears,
			balance:      principal,
		},
		propertyAddress: propertyAddress,
	}, nil
}

func (m *Mortgage) PropertyAddress() string { return m.propertyAddress }
