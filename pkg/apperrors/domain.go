package apperrors

import (
	"net/http"
)

// Factories for errors that wrap a repository failure.

// ErrNotFound converts a storage miss (gorm.ErrRecordNotFound and friends)
// into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrExternalService wraps a third-party API failure. The upstream message
// is carried to the client per the uniform error shape.
func ErrExternalService(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusBadGateway)
}

// Predefined errors for the frequent static cases.

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"auth",
	"Invalid role for this operation",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken covers session tokens and company bearer tokens alike:
// the caller learns nothing beyond "invalid or expired".
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrInvalidVerificationToken is the verify endpoint's rejection. A bad or
// expired email token is a bad request, not a failed authentication.
var ErrInvalidVerificationToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired verification token",
	http.StatusBadRequest,
)

var ErrEmailNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email before logging in",
	http.StatusForbidden,
)

var ErrNotOwner = New(
	CodeForbidden,
	"auth",
	"You do not own this resource",
	http.StatusForbidden,
)

var ErrAlreadyApplied = New(
	CodeConflict,
	"application",
	"You have already applied for this internship",
	http.StatusConflict,
)

var ErrNoCompany = New(
	CodeNotFound,
	"company",
	"No company profile associated with this recruiter account",
	http.StatusNotFound,
)
