package apperrors

import (
	"net/http"
)

// Factories and predefined variables for the marketplace domain. Repository
// sentinel errors (gorm.ErrRecordNotFound and friends) get wrapped here so the
// HTTP layer only ever sees AppError.

// ErrNotFound wraps a repository not-found error (404).
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict wraps a uniqueness or state conflict (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation marks an operation the current state does not permit (400).
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus marks an unknown or unacceptable status value (400).
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrPaymentFailed carries a processor-reported failure message (400).
// Processor errors are surfaced verbatim so the caller sees the decline reason.
func ErrPaymentFailed(err error, message string) *AppError {
	return Wrap(err, CodePaymentFailed, "payment", message, http.StatusBadRequest)
}

// ErrExternalService wraps a transport-level failure talking to the processor (502).
func ErrExternalService(err error, domain string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, "External service unavailable", http.StatusBadGateway)
}

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"A user with this email already exists",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Refresh token is invalid or expired",
	http.StatusUnauthorized,
)

// --- Jobs ---

var ErrJobNotOpen = New(
	CodeInvalidStatus,
	"job",
	"Job is not open for quotes",
	http.StatusBadRequest,
)

var ErrJobNotCompleted = New(
	CodeInvalidStatus,
	"job",
	"Job must be completed before it can be reviewed",
	http.StatusBadRequest,
)

// --- Quotes ---

var ErrDuplicateQuote = New(
	CodeConflict,
	"quote",
	"You have already submitted a quote for this job",
	http.StatusConflict,
)

var ErrQuoteAlreadyDecided = New(
	CodeInvalidStatus,
	"quote",
	"Quote has already been accepted or rejected",
	http.StatusBadRequest,
)

var ErrJobAlreadyHasAcceptedQuote = New(
	CodeConflict,
	"quote",
	"Another quote has already been accepted for this job",
	http.StatusConflict,
)

// --- Payments ---

var ErrNoAssignedProfessional = New(
	CodeInvalidOperation,
	"payment",
	"Job has no assigned professional",
	http.StatusBadRequest,
)

var ErrNoPaymentProfile = New(
	CodeInvalidOperation,
	"payment",
	"Professional has not linked a payment method",
	http.StatusBadRequest,
)

var ErrNoAcceptedQuote = New(
	CodeInvalidOperation,
	"payment",
	"Job has no accepted quote or is not in a chargeable status",
	http.StatusBadRequest,
)

var ErrNoCardOnFile = New(
	CodeInvalidOperation,
	"payment",
	"Professional has no card on file with the payment processor",
	http.StatusBadRequest,
)
