package ledger

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// Ledger owns the account registry and all active sessions. It is the only
// way callers obtain an account: register or authenticate, get back an
// opaque session handle, then run banking operations against that handle.
// There is no global "current user"; each caller carries its own handle.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*Account
	sessions map[string]*Account
	verifier PINVerifier
}

// New builds a ledger with verbatim pin storage, matching the original
// system's semantics.
func New() *Ledger {
	return NewWithVerifier(PlainPINVerifier{})
}

// NewWithVerifier builds a ledger with a specific credential scheme.
func NewWithVerifier(v PINVerifier) *Ledger {
	return &Ledger{
		accounts: make(map[string]*Account),
		sessions: make(map[string]*Account),
		verifier: v,
	}
}

// Register creates a new account with zero balance and empty history, and
// returns a session handle bound to it. Names are case-sensitive and unique;
// the existence check and the insert happen in one critical section so two
// concurrent registrations of the same name cannot both succeed.
func (l *Ledger) Register(name, pin string) (string, error) {
	if name == "" || !pinPattern.MatchString(pin) {
		return "", ErrInvalidCredentialFormat
	}
	sealed, err := l.verifier.Seal(pin)
	if err != nil {
		return "", fmt.Errorf("seal pin: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[name]; ok {
		return "", ErrDuplicateAccount
	}
	a := newAccount(name, sealed)
	l.accounts[name] = a
	handle := uuid.NewString()
	l.sessions[handle] = a
	return handle, nil
}

// Authenticate checks name and pin and returns a fresh session handle.
// A failed attempt creates no session and mutates nothing.
func (l *Ledger) Authenticate(name, pin string) (string, error) {
	if name == "" || !pinPattern.MatchString(pin) {
		return "", ErrInvalidCredentialFormat
	}
	l.mu.RLock()
	a, ok := l.accounts[name]
	l.mu.RUnlock()
	if !ok {
		return "", ErrAccountNotFound
	}
	if !l.verifier.Verify(pin, a.credential) {
		return "", ErrInvalidCredentials
	}
	handle := uuid.NewString()
	l.mu.Lock()
	l.sessions[handle] = a
	l.mu.Unlock()
	return handle, nil
}

// Account resolves a session handle to its account. Unknown or revoked
// handles fail with ErrNotAuthenticated.
func (l *Ledger) Account(handle string) (*Account, error) {
	l.mu.RLock()
	a, ok := l.sessions[handle]
	l.mu.RUnlock()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return a, nil
}

// Logout revokes a session handle. Revoking an unknown handle is a no-op.
func (l *Ledger) Logout(handle string) {
	l.mu.Lock()
	delete(l.sessions, handle)
	l.mu.Unlock()
}

// Deposit credits the session's account and returns the new balance.
func (l *Ledger) Deposit(handle string, amount decimal.Decimal) (decimal.Decimal, error) {
	a, err := l.Account(handle)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Deposit(amount)
}

// Withdraw debits the session's account and returns the new balance.
func (l *Ledger) Withdraw(handle string, amount decimal.Decimal) (decimal.Decimal, error) {
	a, err := l.Account(handle)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Withdraw(amount)
}

// Balance returns the session account's current balance.
func (l *Ledger) Balance(handle string) (decimal.Decimal, error) {
	a, err := l.Account(handle)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Balance(), nil
}

// History returns the session account's most recent transactions, newest
// first. limit <= 0 returns everything.
func (l *Ledger) History(handle string, limit int) ([]Transaction, error) {
	a, err := l.Account(handle)
	if err != nil {
		return nil, err
	}
	return a.History(limit), nil
}
