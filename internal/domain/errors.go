package domain

import "errors"

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrHashingFailed      = errors.New("password hashing failed")
	ErrTokenIssuance      = errors.New("token issuance failed")
	ErrPersistence        = errors.New("persistence failed")
)
