package domain

import (
	"errors"
	"testing"
)

func sumSigned(history []Transaction) float64 {
	var total float64
	for _, tx := range history {
		total += tx.Signed()
	}
	return total
}

func TestSavingsAccount_WithdrawBelowMinimum(t *testing.T) {
	acc := NewSavingsAccount("S1", "Alice", 500, 100)

	err := acc.Withdraw(450)

	if !errors.Is(err, ErrBelowMinimumBalance) {
		t.Fatalf("expected ErrBelowMinimumBalance, got %v", err)
	}
	if acc.Balance() != 500 {
		t.Errorf("balance changed on rejected withdrawal: %f", acc.Balance())
	}
	if len(acc.History()) != 0 {
		t.Errorf("rejected withdrawal must not be recorded, history=%v", acc.History())
	}
}

func TestSavingsAccount_WithdrawWithinMinimum(t *testing.T) {
	acc := NewSavingsAccount("S1", "Alice", 500, 100)

	err := acc.Withdraw(300)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Balance() != 200 {
		t.Errorf("expected balance 200, got %f", acc.Balance())
	}
}

func TestSavingsAccount_MinimumRuleCheckedBeforeInsufficientFunds(t *testing.T) {
	// A withdrawal that would leave the balance negative but is also a
	// minimum-balance violation must report the minimum-balance error.
	acc := NewSavingsAccount("S2", "Alice", 50, 100)

	err := acc.Withdraw(80)

	if !errors.Is(err, ErrBelowMinimumBalance) {
		t.Fatalf("expected ErrBelowMinimumBalance to take precedence, got %v", err)
	}
}

func TestCheckingAccount_DepositAndWithdraw(t *testing.T) {
	acc := NewCheckingAccount("C1", "Bob", 0)

	if err := acc.Deposit(100); err != nil {
		t.Fatalf("unexpected error on Deposit: %v", err)
	}
	if acc.Balance() != 100 {
		t.Errorf("expected balance 100, got %f", acc.Balance())
	}

	history := acc.History()
	if len(history) != 1 || history[0].Type != TypeDeposit || history[0].Amount != 100 {
		t.Errorf("expected history [Deposit:100], got %+v", history)
	}

	err := acc.Withdraw(150)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if acc.Balance() != 100 {
		t.Errorf("balance changed on rejected withdrawal: %f", acc.Balance())
	}
}

func TestAccount_DepositRejectsNonPositive(t *testing.T) {
	acc := NewCheckingAccount("C1", "Bob", 10)

	for _, amount := range []float64{0, -5} {
		if err := acc.Deposit(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%f): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if acc.Balance() != 10 {
		t.Errorf("balance changed on rejected deposit: %f", acc.Balance())
	}
}

func TestAccount_DepositWithdrawRoundTrip(t *testing.T) {
	acc := NewCheckingAccount("C1", "Bob", 250)

	if err := acc.Deposit(75); err != nil {
		t.Fatal(err)
	}
	if err := acc.Withdraw(75); err != nil {
		t.Fatal(err)
	}
	if acc.Balance() != 250 {
		t.Errorf("round trip changed balance: %f", acc.Balance())
	}
}

func TestAccount_BalanceEqualsInitialPlusSignedHistory(t *testing.T) {
	acc := NewSavingsAccount("S1", "Alice", 500, 100)

	_ = acc.Deposit(200)
	_ = acc.Withdraw(150)
	_ = acc.Withdraw(9999) // rejected, must not appear in history
	acc.ApplyInterest()
	_ = acc.Deposit(30)

	want := 500 + sumSigned(acc.History())
	if got := acc.Balance(); got != want {
		t.Errorf("balance %f != initial + signed history %f", got, want)
	}
}

func TestSavingsAccount_ApplyInterest(t *testing.T) {
	acc := NewSavingsAccount("S1", "Alice", 1000, 0)

	interest := acc.ApplyInterest()

	if interest != 10 {
		t.Errorf("expected interest 10, got %f", interest)
	}
	if acc.Balance() != 1010 {
		t.Errorf("expected balance 1010, got %f", acc.Balance())
	}

	history := acc.History()
	if len(history) != 1 || history[0].Type != TypeInterest {
		t.Errorf("expected one interest_applied record, got %+v", history)
	}
}

func TestSavingsAccount_ApplyInterestOnEmptyAccount(t *testing.T) {
	acc := NewSavingsAccount("S1", "Alice", 0, 0)

	if interest := acc.ApplyInterest(); interest != 0 {
		t.Errorf("expected no interest on zero balance, got %f", interest)
	}
	if len(acc.History()) != 0 {
		t.Errorf("zero interest must not be recorded")
	}
}

func TestCheckingAccount_SendETransfer(t *testing.T) {
	acc := NewCheckingAccount("C1", "Bob", 300)

	if err := acc.SendETransfer("EXT-9", 120); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Balance() != 180 {
		t.Errorf("expected balance 180, got %f", acc.Balance())
	}

	history := acc.History()
	if len(history) != 1 || history[0].Type != TypeTransfer || history[0].Amount != 120 {
		t.Errorf("expected transfer record, got %+v", history)
	}

	err := acc.SendETransfer("EXT-9", 999)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if acc.Balance() != 180 {
		t.Errorf("balance changed on rejected e-transfer: %f", acc.Balance())
	}
}

func TestHistory_ReturnsSnapshot(t *testing.T) {
	acc := NewCheckingAccount("C1", "Bob", 0)
	_ = acc.Deposit(10)

	history := acc.History()
	_ = acc.Deposit(20)

	if len(history) != 1 {
		t.Errorf("snapshot mutated by later deposits: %+v", history)
	}
	history[0].Amount = 9999
	if acc.History()[0].Amount != 10 {
		t.Errorf("mutating the snapshot must not affect the account")
	}
}

func TestTaxFreeSavingsAccount_BehavesAsSavings(t *testing.T) {
	acc := NewTaxFreeSavingsAccount("T1", "Alice", 500, 100)

	if acc.Type() != AccountTFSA {
		t.Errorf("expected type tfsa, got %s", acc.Type())
	}
	if err := acc.Withdraw(450); !errors.Is(err, ErrBelowMinimumBalance) {
		t.Errorf("expected minimum balance rule on TFSA, got %v", err)
	}
}

func TestRegisteredRetirementAccount_ContributionRoomInert(t *testing.T) {
	acc := NewRegisteredRetirementAccount("R1", "Alice", 0, 0, 5000)

	_ = acc.Deposit(1000)

	if acc.ContributionRoom() != 5000 {
		t.Errorf("contribution room must not change on deposit, got %f", acc.ContributionRoom())
	}
	if acc.Type() != AccountRRSP {
		t.Errorf("expected type rrsp, got %s", acc.Type())
	}
}

func TestAccount_Details(t *testing.T) {
	acc := NewSavingsAccount("S1", "Alice", 500, 100)

	details := acc.Details()

	if details.AccountNumber != "S1" || details.HolderName != "Alice" || details.Balance != 500 {
		t.Errorf("unexpected details: %+v", details)
	}
}
