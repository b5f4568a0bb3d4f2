package bank

import (
	"fmt"
	"log/slog"

	"github.com/mashwaniT/banking-system/internal/domain"
)

// Deposit credits an account through the registry, recording the outcome
// in the audit log and metrics.
func (b *Bank) Deposit(number string, amount float64) error {
	account, err := b.GetAccount(number)
	if err != nil {
		return err
	}

	if err := account.Deposit(amount); err != nil {
		b.audit.Event(slog.LevelError, "Deposit rejected",
			slog.String("account_number", number),
			slog.Float64("amount", amount),
			slog.String("error", err.Error()))
		return err
	}

	b.metrics.RecordDeposit(amount)
	b.metrics.SetAccountBalance(number, account.Balance())
	b.audit.Event(slog.LevelInfo, "Deposit completed",
		slog.String("account_number", number),
		slog.Float64("amount", amount))
	return nil
}

// Withdraw debits an account through the registry. Invariant violations
// (insufficient funds, minimum balance) propagate to the caller with the
// account state unchanged.
func (b *Bank) Withdraw(number string, amount float64) error {
	account, err := b.GetAccount(number)
	if err != nil {
		return err
	}

	if err := account.Withdraw(amount); err != nil {
		b.metrics.RecordWithdrawal(amount, false)
		b.audit.Event(slog.LevelError, "Withdrawal rejected",
			slog.String("account_number", number),
			slog.Float64("amount", amount),
			slog.String("error", err.Error()))
		return err
	}

	b.metrics.RecordWithdrawal(amount, true)
	b.metrics.SetAccountBalance(number, account.Balance())
	b.audit.Event(slog.LevelInfo, "Withdrawal completed",
		slog.String("account_number", number),
		slog.Float64("amount", amount))
	return nil
}

// SendETransfer debits a checking account in favour of an external
// recipient. Non-checking accounts cannot send e-transfers.
func (b *Bank) SendETransfer(number, recipientAccountNumber string, amount float64) error {
	account, err := b.GetAccount(number)
	if err != nil {
		return err
	}

	checking, ok := account.(*domain.CheckingAccount)
	if !ok {
		return fmt.Errorf("%w: account %s cannot send e-transfers", domain.ErrUnsupportedOp, number)
	}

	if err := checking.SendETransfer(recipientAccountNumber, amount); err != nil {
		b.audit.Event(slog.LevelError, "E-transfer rejected",
			slog.String("account_number", number),
			slog.String("recipient", recipientAccountNumber),
			slog.Float64("amount", amount),
			slog.String("error", err.Error()))
		return err
	}

	b.metrics.SetAccountBalance(number, checking.Balance())
	b.audit.Event(slog.LevelInfo, "E-transfer sent",
		slog.String("account_number", number),
		slog.String("recipient", recipientAccountNumber),
		slog.Float64("amount", amount))
	return nil
}

// interestBearing is satisfied by the savings family of accounts.
type interestBearing interface {
	ApplyInterest() float64
}

// ApplyInterest credits interest on a savings-style account and returns
// the interest added.
func (b *Bank) ApplyInterest(number string) (float64, error) {
	account, err := b.GetAccount(number)
	if err != nil {
		return 0, err
	}

	bearing, ok := account.(interestBearing)
	if !ok {
		return 0, fmt.Errorf("%w: account %s does not bear interest", domain.ErrUnsupportedOp, number)
	}

	interest := bearing.ApplyInterest()
	b.metrics.RecordInterest()
	b.metrics.SetAccountBalance(number, account.Balance())
	b.audit.Event(slog.LevelInfo, "Interest applied",
		slog.String("account_number", number),
		slog.Float64("interest", interest),
		slog.Float64("new_balance", account.Balance()))
	return interest, nil
}

func (b *Bank) MakeLoanPayment(id string, amount float64) error {
	loan, err := b.GetLoan(id)
	if err != nil {
		return err
	}
	return b.payLoan(loan, "loan_id", id, amount)
}

func (b *Bank) MakeMortgagePayment(id string, amount float64) error {
	mortgage, err := b.GetMortgage(id)
	if err != nil {
		return err
	}
	return b.payLoan(&mortgage.Loan, "mortgage_id", id, amount)
}

func (b *Bank) payLoan(loan *domain.Loan, idKey, id string, amount float64) error {
	if err := loan.MakePayment(amount); err != nil {
		b.audit.Event(slog.LevelError, "Payment rejected",
			slog.String(idKey, id),
			slog.Float64("amount", amount),
			slog.String("error", err.Error()))
		return err
	}

	b.metrics.RecordLoanPayment(amount)
	b.audit.Event(slog.LevelInfo, "Payment completed",
		slog.String(idKey, id),
		slog.Float64("amount", amount),
		slog.Float64("new_balance", loan.Balance()))
	return nil
}
