package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for the error taxonomy surfaced to the UI. Validation errors are
// reported per-field by the validator and never travel as HTTPError.
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }

	ErrNotFound        = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	ErrVehicleNotFound = func() *HTTPError { return NewHTTPError(http.StatusNotFound, "vehicle not found") }
	ErrBookingNotFound = func() *HTTPError { return NewHTTPError(http.StatusNotFound, "booking not found") }

	// Operation attempted against a payment in the wrong state. Rejected
	// with no partial effect.
	ErrInvalidPaymentState = func(current string) *HTTPError {
		return NewHTTPError(http.StatusConflict, "invalid payment state: "+current)
	}
	ErrRefundExceedsBalance = func() *HTTPError {
		return NewHTTPError(http.StatusConflict, "refund amount exceeds remaining refundable balance")
	}
	ErrAuthorizationNotReady = func(status string) *HTTPError {
		return NewHTTPError(http.StatusBadRequest, "payment not authorized. Status: "+status)
	}
)
