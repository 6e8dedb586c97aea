package domain

import "errors"

// Sentinel errors returned by the reservation, session and suspension services.
// Callers match them with errors.Is; services wrap them with context.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBayConflict       = errors.New("bay conflict")
	ErrTimeWindowInvalid = errors.New("invalid time window")
	ErrValidation        = errors.New("validation failed")
	ErrPolicyViolation   = errors.New("policy violation")
	ErrConcurrentUpdate  = errors.New("concurrent update")
	ErrAlreadyExists     = errors.New("already exists")
)
