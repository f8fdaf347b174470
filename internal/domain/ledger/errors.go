package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound is returned when the account id does not resolve
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountSuspended is returned when the target account is suspended
	ErrAccountSuspended = errors.New("account suspended")

	// ErrInvalidGrade is returned when the quality grade is not A, B, C or D
	ErrInvalidGrade = errors.New("invalid quality grade")

	// ErrInvalidQuantity is returned when the processed quantity is negative
	ErrInvalidQuantity = errors.New("invalid quantity: must not be negative")

	// ErrInvalidScore is returned when the segregation score is outside [0,100]
	ErrInvalidScore = errors.New("invalid segregation score: must be in [0,100]")

	// ErrInvalidPoints is returned when the redemption amount is <= 0
	ErrInvalidPoints = errors.New("invalid points: must be greater than 0")

	// ErrInvalidRewardType is returned for unknown reward types
	ErrInvalidRewardType = errors.New("invalid reward type")

	ErrInternal = errors.New("internal error")
)

// InsufficientPointsError is a recoverable, expected outcome: the caller must
// be able to surface both the available and the requested amounts.
type InsufficientPointsError struct {
	Available int
	Requested int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: available %d, requested %d", e.Available, e.Requested)
}
