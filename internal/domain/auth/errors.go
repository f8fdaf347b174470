package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaffNotFound      = errors.New("staff not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStaffInactive      = errors.New("staff account deactivated")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInternal           = errors.New("internal error")
)
