package domain

import "errors"

// Domain errors
var (
	ErrMissingText            = errors.New("missing text")
	ErrNotPDF                 = errors.New("file is not a PDF")
	ErrNoTextExtracted        = errors.New("no text extracted from PDF")
	ErrInvalidModelResponse   = errors.New("invalid model response")
	ErrModelNotConfigured     = errors.New("language model not configured")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInvalidToken           = errors.New("invalid token")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
