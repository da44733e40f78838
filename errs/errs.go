// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint violation (username or serial number).
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so login failures are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a malformed, mis-signed or expired session token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrSelfDeletion indicates an admin attempting to delete their own account.
	ErrSelfDeletion = errors.New("cannot delete own account")
)
