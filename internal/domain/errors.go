package domain

import (
	"fmt"
	"net/http"
)

// ErrorKind tags a service failure so the transport layer can map it
// to a status code without inspecting wrapped causes.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindRateLimit   ErrorKind = "rate_limit"
	KindPersistence ErrorKind = "persistence"
	KindDelivery    ErrorKind = "delivery"
	KindUnknown     ErrorKind = "unknown"
)

// Error is a service failure with an HTTP status and a client-safe
// message. The wrapped cause carries full detail for server-side logs.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError rejects a malformed email or code at the boundary,
// before the request reaches the service.
func ValidationError(msg string) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: msg,
	}
}

// RateLimitError rejects an issuance request over the per-email budget.
func RateLimitError() *Error {
	return &Error{
		Kind:    KindRateLimit,
		Status:  http.StatusTooManyRequests,
		Message: "Too many verification requests. Please try again later.",
	}
}

// UnknownError is the catch-all for failures no other kind claims; the
// client sees a generic message, the cause goes to the server log.
func UnknownError(err error) *Error {
	return &Error{
		Kind:    KindUnknown,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
	}
}

// PersistenceError wraps a storage failure. code is the storage-layer
// error code when the driver exposes one (e.g. a Postgres SQLSTATE).
func PersistenceError(code string, err error) *Error {
	msg := "Database error"
	if code != "" {
		msg = "Database error: " + code
	}
	return &Error{
		Kind:    KindPersistence,
		Status:  http.StatusInternalServerError,
		Message: msg,
		Err:     err,
	}
}

// DeliveryError wraps a notifier failure. The verification record is
// already persisted when this happens; the next issuance or the sweep
// cleans it up.
func DeliveryError(err error) *Error {
	return &Error{
		Kind:    KindDelivery,
		Status:  http.StatusInternalServerError,
		Message: "Failed to send verification email",
		Err:     err,
	}
}
