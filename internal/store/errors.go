package store

import "errors"

// Tagged errors of the gateway. Callers branch with errors.Is; the HTTP layer
// maps each one to a user-displayable message and status code.
var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrDuplicateLogin     = errors.New("login is already taken")
	ErrReferencedByTrip   = errors.New("record is referenced by a trip")
	ErrDanglingReference  = errors.New("referenced record does not exist")
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("record not found")
	ErrPermissionDenied   = errors.New("permission denied")
)
