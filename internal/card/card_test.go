package card

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/mashwaniT/banking-system/internal/audit"
	"github.com/mashwaniT/banking-system/internal/domain"
)

func TestCard_PayWithCard(t *testing.T) {
	capture := audit.NewCapture()
	account := domain.NewCheckingAccount("C1", "Bob", 200)
	c := NewCard("4111-0000", account, capture, nil, nil)

	c.PayWithCard(50)

	if account.Balance() != 150 {
		t.Errorf("expected balance 150, got %f", account.Balance())
	}
	last, ok := capture.Last()
	if !ok || last.Message != "Card payment completed" {
		t.Errorf("expected success audit event, got %+v", last)
	}
}

func TestCard_PayWithCardSwallowsFailure(t *testing.T) {
	capture := audit.NewCapture()
	account := domain.NewCheckingAccount("C1", "Bob", 20)
	c := NewCard("4111-0000", account, capture, nil, nil)

	// The failure must not propagate; it is only visible in the audit log.
	c.PayWithCard(500)

	if account.Balance() != 20 {
		t.Errorf("balance changed on failed payment: %f", account.Balance())
	}

	last, ok := capture.Last()
	if !ok {
		t.Fatal("expected an audit event for the failed payment")
	}
	if last.Message != "Card payment failed" || last.Level != slog.LevelError {
		t.Errorf("expected error-level failure event, got %+v", last)
	}
	if last.Attrs["card_number"] != "4111-0000" {
		t.Errorf("expected card number in event, got %+v", last.Attrs)
	}
}

func TestCard_PayWithCardRespectsMinimumBalance(t *testing.T) {
	capture := audit.NewCapture()
	account := domain.NewSavingsAccount("S1", "Alice", 500, 100)
	c := NewCard("", account, capture, nil, nil)

	c.PayWithCard(450)

	if account.Balance() != 500 {
		t.Errorf("balance changed on rejected payment: %f", account.Balance())
	}
	last, _ := capture.Last()
	if last.Message != "Card payment failed" {
		t.Errorf("expected failure event, got %+v", last)
	}
}

func TestCard_GeneratedNumber(t *testing.T) {
	account := domain.NewCheckingAccount("C1", "Bob", 0)

	c := NewCard("", account, nil, nil, nil)

	if c.Number() == "" {
		t.Error("expected a generated card number")
	}
}

func TestCard_ChangePinDoesNotLogPin(t *testing.T) {
	capture := audit.NewCapture()
	account := domain.NewCheckingAccount("C1", "Bob", 0)
	c := NewCard("4111-0000", account, capture, nil, nil)

	c.ChangePin("9876")

	last, ok := capture.Last()
	if !ok || last.Message != "PIN changed" {
		t.Fatalf("expected PIN changed event, got %+v", last)
	}
	for k, v := range last.Attrs {
		if v == "9876" {
			t.Errorf("pin value leaked into audit attribute %s", k)
		}
	}
}

func TestCreditCard_ChargeAndLimit(t *testing.T) {
	account := domain.NewCheckingAccount("C1", "Bob", 0)
	cc := NewCreditCard("5500-0000", account, 1000, audit.NewCapture(), nil, nil)

	if err := cc.Charge(600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cc.CarriedBalance() != 600 {
		t.Errorf("expected carried balance 600, got %f", cc.CarriedBalance())
	}

	err := cc.Charge(500)
	if !errors.Is(err, ErrCreditLimitExceeded) {
		t.Fatalf("expected ErrCreditLimitExceeded, got %v", err)
	}
	if cc.CarriedBalance() != 600 {
		t.Errorf("carried balance changed on rejected charge: %f", cc.CarriedBalance())
	}

	// The linked account is untouched by card debt.
	if account.Balance() != 0 {
		t.Errorf("card charges must not touch the linked account, balance=%f", account.Balance())
	}
}

func TestCreditCard_SetCreditLimit(t *testing.T) {
	account := domain.NewCheckingAccount("C1", "Bob", 0)
	cc := NewCreditCard("5500-0000", account, 1000, nil, nil, nil)

	if err := cc.SetCreditLimit(2000); err != nil {
		t.Fatal(err)
	}
	if cc.CreditLimit() != 2000 {
		t.Errorf("expected limit 2000, got %f", cc.CreditLimit())
	}

	if err := cc.SetCreditLimit(-1); !errors.Is(err, ErrInvalidCreditLimit) {
		t.Errorf("expected ErrInvalidCreditLimit, got %v", err)
	}
}

func TestCreditCard_ChargeInterest(t *testing.T) {
	account := domain.NewCheckingAccount("C1", "Bob", 0)
	cc := NewCreditCard("5500-0000", account, 1000, audit.NewCapture(), nil, nil)

	if interest := cc.ChargeInterest(); interest != 0 {
		t.Errorf("expected no interest on zero debt, got %f", interest)
	}

	_ = cc.Charge(500)
	interest := cc.ChargeInterest()

	if interest != 10 {
		t.Errorf("expected interest 10, got %f", interest)
	}
	if cc.CarriedBalance() != 510 {
		t.Errorf("expected carried balance 510, got %f", cc.CarriedBalance())
	}
}

func TestCreditCard_PayDown(t *testing.T) {
	account := domain.NewCheckingAccount("C1", "Bob", 0)
	cc := NewCreditCard("5500-0000", account, 1000, nil, nil, nil)
	_ = cc.Charge(300)

	if err := cc.PayDown(200); err != nil {
		t.Fatal(err)
	}
	if cc.CarriedBalance() != 100 {
		t.Errorf("expected carried balance 100, got %f", cc.CarriedBalance())
	}

	if err := cc.PayDown(-1); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}
