package apperror

import "net/http"

// Kind is a machine-readable error code. The set of kinds is closed:
// clients switch on these values, so new kinds are additions to the wire
// contract and existing ones never change meaning.
type Kind string

const (
	KindUnauthorized            Kind = "UNAUTHORIZED"
	KindInvalidToken            Kind = "INVALID_TOKEN"
	KindTokenExpired            Kind = "TOKEN_EXPIRED"
	KindInsufficientPermissions Kind = "INSUFFICIENT_PERMISSIONS"
	KindInvalidInput            Kind = "INVALID_INPUT"
	KindMissingRequiredField    Kind = "MISSING_REQUIRED_FIELD"
	KindInvalidEmail            Kind = "INVALID_EMAIL"
	KindInvalidPhone            Kind = "INVALID_PHONE"
	KindNotFound                Kind = "NOT_FOUND"
	KindAlreadyExists           Kind = "ALREADY_EXISTS"
	KindConflict                Kind = "CONFLICT"
	KindRateLimitExceeded       Kind = "RATE_LIMIT_EXCEEDED"
	KindDatabaseError           Kind = "DATABASE_ERROR"
	KindTransactionFailed       Kind = "TRANSACTION_FAILED"
	KindFirebaseError           Kind = "FIREBASE_ERROR"
	KindPaymentFailed           Kind = "PAYMENT_FAILED"
	KindInternalError           Kind = "INTERNAL_ERROR"
	KindServiceUnavailable      Kind = "SERVICE_UNAVAILABLE"
	KindBadRequest              Kind = "BAD_REQUEST"
)

// Error is a structured application error. It is a value type: the With*
// modifiers return copies, so predefined errors are safe to share.
//
// Operational marks errors whose message is meant for the caller verbatim.
// Non-operational errors are internal faults; the translator redacts their
// detail in production.
type Error struct {
	Status      int            `json:"-"`
	Code        Kind           `json:"code"`
	Message     string         `json:"message"`
	Operational bool           `json:"-"`
	Details     map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e Error) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e Error) WithDetails(details map[string]any) Error {
	e.Details = details
	return e
}

// WithError returns a copy of the error with the cause recorded in details.
func (e Error) WithError(err error) Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

// New creates an operational error with an explicit kind, message, and status.
func New(code Kind, message string, status int) Error {
	return Error{
		Status:      status,
		Code:        code,
		Message:     message,
		Operational: true,
	}
}

// Internal creates a non-operational error wrapping an internal fault.
// Its message is redacted by the translator in production.
func Internal(message string) Error {
	return Error{
		Status:      http.StatusInternalServerError,
		Code:        KindInternalError,
		Message:     message,
		Operational: false,
	}
}

// Predefined operational errors, one per kind.
var (
	ErrUnauthorized            = New(KindUnauthorized, "Unauthorized", http.StatusUnauthorized)
	ErrInvalidToken            = New(KindInvalidToken, "Invalid authentication token", http.StatusUnauthorized)
	ErrTokenExpired            = New(KindTokenExpired, "Authentication token expired", http.StatusUnauthorized)
	ErrInsufficientPermissions = New(KindInsufficientPermissions, "Insufficient permissions", http.StatusForbidden)
	ErrInvalidInput            = New(KindInvalidInput, "Invalid input", http.StatusBadRequest)
	ErrMissingRequiredField    = New(KindMissingRequiredField, "Missing required field", http.StatusBadRequest)
	ErrInvalidEmail            = New(KindInvalidEmail, "Invalid email address", http.StatusBadRequest)
	ErrInvalidPhone            = New(KindInvalidPhone, "Invalid phone number", http.StatusBadRequest)
	ErrNotFound                = New(KindNotFound, "Resource not found", http.StatusNotFound)
	ErrAlreadyExists           = New(KindAlreadyExists, "Resource already exists", http.StatusConflict)
	ErrConflict                = New(KindConflict, "Conflict", http.StatusConflict)
	ErrRateLimitExceeded       = New(KindRateLimitExceeded, "Too many requests, please try again later", http.StatusTooManyRequests)
	ErrDatabaseError           = New(KindDatabaseError, "Database operation failed", http.StatusInternalServerError)
	ErrTransactionFailed       = New(KindTransactionFailed, "Transaction failed", http.StatusInternalServerError)
	ErrFirebaseError           = New(KindFirebaseError, "Identity provider error", http.StatusInternalServerError)
	ErrPaymentFailed           = New(KindPaymentFailed, "Payment failed", http.StatusBadRequest)
	ErrInternalError           = Error{Status: http.StatusInternalServerError, Code: KindInternalError, Message: "Internal server error"}
	ErrServiceUnavailable      = New(KindServiceUnavailable, "Service temporarily unavailable", http.StatusServiceUnavailable)
	ErrBadRequest              = New(KindBadRequest, "Bad request", http.StatusBadRequest)
)
