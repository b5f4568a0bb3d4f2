package validator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidHolderName = errors.New("invalid holder name")
)

// LedgerValidator checks the primitive inputs handed to the registry by
// the presentation layer before they reach the domain model.
type LedgerValidator struct {
	identifierRegex *regexp.Regexp
}

func NewLedgerValidator() *LedgerValidator {
	return &LedgerValidator{
		identifierRegex: regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,31}$`),
	}
}

func (v *LedgerValidator) ValidateIdentifier(id string) error {
	if !v.identifierRegex.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return nil
}

func (v *LedgerValidator) ValidateHolderName(name string) error {
	if name == "" {
		return ErrInvalidHolderName
	}
	return nil
}

func (v *LedgerValidator) ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidAmount, amount)
	}
	return nil
}

// ValidateOpeningBalance allows zero: accounts may be opened empty.
func (v *LedgerValidator) ValidateOpeningBalance(balance float64) error {
	if math.IsNaN(balance) || math.IsInf(balance, 0) || balance < 0 {
		return fmt.Errorf("%w: opening balance %v", ErrInvalidAmount, balance)
	}
	return nil
}
