package ledger

import "errors"

// Domain errors. These belong to the business layer; the HTTP handlers map
// them to status codes, the engine itself never touches HTTP.
var (
	// ErrInvalidCredentialFormat means the name is empty or the pin is not
	// exactly 4 numeric digits.
	ErrInvalidCredentialFormat = errors.New("name must be non-empty and pin exactly 4 digits")

	// ErrDuplicateAccount means registration was attempted with a name that
	// already exists.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrAccountNotFound means authentication against a name that was never
	// registered.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredentials means the pin did not match on authentication.
	ErrInvalidCredentials = errors.New("invalid name or pin")

	// ErrNotAuthenticated means a banking operation was attempted with no
	// active session behind the handle.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInsufficientFunds means a withdrawal exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount means a non-positive amount, or one finer than
	// currency granularity (two decimal places).
	ErrInvalidAmount = errors.New("amount must be positive with at most 2 decimal places")
)
