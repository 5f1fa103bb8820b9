// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrInvalidInput         = errors.New("invalid input provided")
	ErrCapacityExceeded     = errors.New("user capacity exceeded")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidPassType      = errors.New("invalid pass type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrLedgerFull           = errors.New("transaction ledger full")
)

// IsError reports whether err matches target, unwrapping as needed.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
