package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoTenantContext    = errors.New("tenant context required but no tenant resolved")
)
