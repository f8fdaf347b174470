package account

import "errors"

var (
	// ErrNotFound is returned when the account id does not resolve
	ErrNotFound = errors.New("account not found")

	// ErrSuspended is returned when an operation targets a suspended account
	ErrSuspended = errors.New("account suspended")

	// ErrInvalidStatus is returned for unknown status values
	ErrInvalidStatus = errors.New("invalid account status")

	ErrInternal = errors.New("internal error")
)
