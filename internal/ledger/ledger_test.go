package ledger

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRegisterStartsEmpty(t *testing.T) {
	l := New()
	handle, err := l.Register("Asha", "1234")
	if err != nil {
		t.Fatal(err)
	}
	if handle == "" {
		t.Fatal("empty session handle")
	}

	bal, err := l.Balance(handle)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.IsZero() {
		t.Fatalf("new account balance=%s want=0", bal)
	}
	hist, err := l.History(handle, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 0 {
		t.Fatalf("new account history len=%d want=0", len(hist))
	}
}

func TestRegisterValidatesCredentialFormat(t *testing.T) {
	l := New()
	cases := []struct{ name, pin string }{
		{"", "1234"},
		{"A", ""},
		{"A", "123"},
		{"A", "12345"},
		{"A", "12a4"},
		{"A", "12.4"},
		{"A", "١٢٣٤"}, // digits must be ASCII
	}
	for _, c := range cases {
		if _, err := l.Register(c.name, c.pin); !errors.Is(err, ErrInvalidCredentialFormat) {
			t.Errorf("Register(%q, %q) err=%v want ErrInvalidCredentialFormat", c.name, c.pin, err)
		}
	}
}

func TestRegisterDuplicateKeepsFirstAccount(t *testing.T) {
	l := New()
	handle, err := l.Register("Asha", "1234")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Deposit(handle, decimal.NewFromInt(500)); err != nil {
		t.Fatal(err)
	}

	if _, err := l.Register("Asha", "9999"); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("err=%v want ErrDuplicateAccount", err)
	}

	// first account untouched, original pin still authenticates
	bal, err := l.Balance(handle)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("balance=%s want=500", bal)
	}
	if _, err := l.Authenticate("Asha", "1234"); err != nil {
		t.Fatalf("original pin no longer works: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	l := New()
	if _, err := l.Register("Asha", "1234"); err != nil {
		t.Fatal(err)
	}

	if _, err := l.Authenticate("Nobody", "1234"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("unknown name err=%v want ErrAccountNotFound", err)
	}
	handle, err := l.Authenticate("Asha", "4321")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong pin err=%v want ErrInvalidCredentials", err)
	}
	if handle != "" {
		t.Fatal("failed authentication must not return a handle")
	}
	// names are case-sensitive
	if _, err := l.Authenticate("asha", "1234"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("case variant err=%v want ErrAccountNotFound", err)
	}

	if _, err := l.Authenticate("Asha", "1234"); err != nil {
		t.Fatal(err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	l := New()
	handle, err := l.Register("Asha", "1234")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Account(handle); err != nil {
		t.Fatal(err)
	}

	l.Logout(handle)
	l.Logout(handle) // idempotent

	if _, err := l.Account(handle); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err=%v want ErrNotAuthenticated", err)
	}
	if _, err := l.Deposit(handle, decimal.NewFromInt(10)); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("deposit after logout err=%v want ErrNotAuthenticated", err)
	}
	if _, err := l.Account("no-such-handle"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err=%v want ErrNotAuthenticated", err)
	}

	// a fresh login works after logout
	if _, err := l.Authenticate("Asha", "1234"); err != nil {
		t.Fatal(err)
	}
}

// TestAshaScenario walks the worked example: deposit 500, fail to withdraw
// 700, withdraw 200, end with balance 300 and two history entries.
func TestAshaScenario(t *testing.T) {
	l := New()
	handle, err := l.Register("Asha", "1234")
	if err != nil {
		t.Fatal(err)
	}

	bal, err := l.Deposit(handle, decimal.NewFromInt(500))
	if err != nil {
		t.Fatal(err)
	}
	if !bal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("balance=%s want=500", bal)
	}

	if _, err := l.Withdraw(handle, decimal.NewFromInt(700)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err=%v want ErrInsufficientFunds", err)
	}
	bal, err = l.Balance(handle)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("balance after failed withdraw=%s want=500", bal)
	}

	bal, err = l.Withdraw(handle, decimal.NewFromInt(200))
	if err != nil {
		t.Fatal(err)
	}
	if !bal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("balance=%s want=300", bal)
	}

	hist, err := l.History(handle, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("history len=%d want=2", len(hist))
	}
	// newest first
	if hist[0].Kind != Withdraw || !hist[0].Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("hist[0]=%v %s", hist[0].Kind, hist[0].Amount)
	}
	if hist[1].Kind != Deposit || !hist[1].Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("hist[1]=%v %s", hist[1].Kind, hist[1].Amount)
	}
}

// TestConcurrentWithdrawals fires more withdrawals than the balance can
// cover; only the affordable subset may succeed and the balance must never
// go negative.
func TestConcurrentWithdrawals(t *testing.T) {
	l := New()
	handle, err := l.Register("Asha", "1234")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Deposit(handle, decimal.NewFromInt(100)); err != nil {
		t.Fatal(err)
	}

	const workers = 25
	amount := decimal.NewFromInt(10)

	var ok int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := l.Withdraw(handle, amount); err == nil {
				atomic.AddInt64(&ok, 1)
			}
		}()
	}
	wg.Wait()

	if ok != 10 {
		t.Fatalf("successful withdrawals=%d want=10", ok)
	}
	bal, err := l.Balance(handle)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.IsZero() {
		t.Fatalf("balance=%s want=0", bal)
	}
	if bal.Sign() < 0 {
		t.Fatal("balance went negative")
	}
	hist, err := l.History(handle, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 11 { // 1 deposit + 10 withdrawals
		t.Fatalf("history len=%d want=11", len(hist))
	}
}

// TestConcurrentRegisterSameName: the check-and-insert is one critical
// section, so exactly one of N racing registrations wins.
func TestConcurrentRegisterSameName(t *testing.T) {
	l := New()

	const workers = 16
	var ok, dup int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := l.Register("Asha", "1234")
			switch {
			case err == nil:
				atomic.AddInt64(&ok, 1)
			case errors.Is(err, ErrDuplicateAccount):
				atomic.AddInt64(&dup, 1)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || dup != workers-1 {
		t.Fatalf("ok=%d dup=%d want 1/%d", ok, dup, workers-1)
	}
}

func TestHashedVerifierLedger(t *testing.T) {
	l := NewWithVerifier(HashedPINVerifier{})
	if _, err := l.Register("Asha", "1234"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Authenticate("Asha", "1234"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Authenticate("Asha", "4321"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err=%v want ErrInvalidCredentials", err)
	}
}
