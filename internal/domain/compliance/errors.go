package compliance

import "errors"

var (
	// ErrAccountNotFound is returned when the account id does not resolve
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidQuality is returned for unknown pickup quality values
	ErrInvalidQuality = errors.New("invalid pickup quality")

	// ErrInvalidSeverity is returned for unknown severity values
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrInvalidViolationType is returned for unknown violation types
	ErrInvalidViolationType = errors.New("invalid violation type")

	// ErrInvalidScore is returned when an assessment score is outside [0,100]
	ErrInvalidScore = errors.New("invalid score: must be in [0,100]")

	ErrInternal = errors.New("internal error")
)
