package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
	TypeInterest   TransactionType = "interest_applied"
)

// Transaction is a single recorded monetary event on an account.
// Amount is always positive; the direction comes from the type.
type Transaction struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	Amount    float64         `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewTransaction(txType TransactionType, amount float64) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Type:      txType,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

// Signed returns the amount with the sign implied by the transaction type:
// deposits and interest credit the account, withdrawals and transfers debit it.
func (t Transaction) Signed() float64 {
	switch t.Type {
	case TypeWithdrawal, TypeTransfer:
		return -t.Amount
	default:
		return t.Amount
	}
}
