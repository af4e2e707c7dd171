// Package ledger implements the in-memory banking engine: account
// registration and authentication, balance mutation and append-only
// transaction history. It has no HTTP or storage dependencies; hosting
// layers call in through the Ledger and session handles.
package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Kind labels the direction of a transaction.
type Kind string

const (
	Deposit  Kind = "Deposit"
	Withdraw Kind = "Withdraw"
)

// Transaction is an immutable record of one balance-affecting event.
type Transaction struct {
	Time   time.Time       `json:"time"`
	Kind   Kind            `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// Account holds one user's monetary state. Every mutation runs under the
// account's own mutex, so concurrent withdrawals against the same account
// cannot both pass the balance check; different accounts mutate in parallel.
type Account struct {
	mu           sync.Mutex
	name         string
	credential   string // sealed pin, format depends on the ledger's verifier
	balance      decimal.Decimal
	transactions []Transaction
}

func newAccount(name, credential string) *Account {
	return &Account{name: name, credential: credential, balance: decimal.Zero}
}

// Name returns the account's immutable identifier.
func (a *Account) Name() string {
	return a.name
}

// Deposit adds a positive amount to the balance and appends a history entry.
func (a *Account) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	a.transactions = append(a.transactions, Transaction{Time: time.Now(), Kind: Deposit, Amount: amount})
	return a.balance, nil
}

// Withdraw removes a positive amount from the balance. When the amount
// exceeds the balance it fails with ErrInsufficientFunds and neither the
// balance nor the history changes.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.GreaterThan(a.balance) {
		return a.balance, ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	a.transactions = append(a.transactions, Transaction{Time: time.Now(), Kind: Withdraw, Amount: amount})
	return a.balance, nil
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// History returns up to limit of the most recent transactions, newest
// first. limit <= 0 returns the full history. The stored order stays
// chronological; the returned slice is a copy the caller may keep.
func (a *Account) History(limit int) []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.transactions)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, a.transactions[i])
	}
	return out
}

// checkAmount enforces positive amounts at currency granularity (no
// fractions of a cent).
func checkAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(2)) {
		return ErrInvalidAmount
	}
	return nil
}
