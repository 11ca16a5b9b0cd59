package apperror

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound signals an unknown session id. Reported distinctly
// from SessionTerminalError so clients can tell "never existed" from
// "already closed".
var ErrSessionNotFound = errors.New("session not found")

// ValidationError carries per-field messages for malformed input.
// Recoverable: the caller fixes the request and resubmits.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// SessionTerminalError signals an operation on an ended session. The
// frozen integrity score rides along so a duplicate end() stays idempotent
// from the caller's point of view.
type SessionTerminalError struct {
	IntegrityScore int
}

func (e *SessionTerminalError) Error() string {
	return "session already ended"
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsSessionTerminal(err error) bool {
	var te *SessionTerminalError
	return errors.As(err, &te)
}
