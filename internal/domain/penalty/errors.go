package penalty

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the penalty id does not resolve
	ErrNotFound = errors.New("penalty not found")

	// ErrAccountNotFound is returned when the violator account does not exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrAlreadyPaid is returned when paying a penalty that is already paid.
	// The record keeps only the first payment.
	ErrAlreadyPaid = errors.New("penalty already paid")

	// ErrCancelled is returned when paying or cancelling a cancelled penalty
	ErrCancelled = errors.New("penalty cancelled")

	// ErrInvalidAmount is returned when the fine amount is <= 0
	ErrInvalidAmount = errors.New("invalid amount: must be greater than 0")

	// ErrInvalidViolationType is returned for unknown violation types
	ErrInvalidViolationType = errors.New("invalid violation type")

	ErrInternal = errors.New("internal error")
)

// InsufficientPaymentError is returned when the payment does not cover the
// fine. Both amounts are carried so the caller can surface them.
type InsufficientPaymentError struct {
	Required decimal.Decimal
	Received decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: required %s, received %s", e.Required, e.Received)
}
