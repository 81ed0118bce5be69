package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable error category exposed to API clients so they
// can branch on recoverability (retry generation/persistence failures, do not
// retry unknown-session or validation failures).
type Kind string

const (
	KindClassification   Kind = "CLASSIFICATION_ERROR"
	KindGeneration       Kind = "GENERATION_ERROR"
	KindSessionNotFound  Kind = "SESSION_NOT_FOUND"
	KindDuplicateSession Kind = "DUPLICATE_SESSION"
	KindPersistence      Kind = "PERSISTENCE_ERROR"
	KindValidation       Kind = "VALIDATION_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func Classification(message string, cause error) *Error {
	return New(KindClassification, message, cause)
}

func Generation(message string, cause error) *Error {
	return New(KindGeneration, message, cause)
}

func SessionNotFound(sessionId string) *Error {
	return New(KindSessionNotFound, fmt.Sprintf("session %s not found", sessionId), nil)
}

func DuplicateSession(sessionId string) *Error {
	return New(KindDuplicateSession, fmt.Sprintf("session %s already active", sessionId), nil)
}

func Persistence(message string, cause error) *Error {
	return New(KindPersistence, message, cause)
}

func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

// KindOf extracts the Kind from an error chain, or "" if the error does not
// carry one.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
