package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrCampaignClosed = errors.New("campaign no longer accepting funds")
	ErrConflict       = errors.New("version conflict")
	ErrValidation     = errors.New("validation failed")
)

// ValidationError reports a malformed field on creation input. It unwraps to
// ErrValidation so callers can match the class without the field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
