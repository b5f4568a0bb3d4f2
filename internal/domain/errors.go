package domain

import "errors"

var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrBelowMinimumBalance = errors.New("withdrawal would bring balance below minimum")
	ErrAccountNotFound     = errors.New("account not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrMortgageNotFound    = errors.New("mortgage not found")
	ErrUnknownAccountType  = errors.New("unknown account type")
	ErrDuplicateID         = errors.New("duplicate identifier")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidTerm         = errors.New("invalid loan terms")
	ErrUnsupportedOp       = errors.New("operation not supported for account type")
)
