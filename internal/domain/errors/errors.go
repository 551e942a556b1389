package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrOTPExpired         = errors.New("verification code expired")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrTooManyRequests    = errors.New("too many requests")
	ErrNotEmployer        = errors.New("account is not an employer")
	ErrJobClosed          = errors.New("job is closed")
)

// Machine-checkable error codes
const (
	CodeInvalidInput       = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	CodePendingApproval    = "PENDING_APPROVAL"
	CodeInvalidCode        = "INVALID_CODE"
	CodeOTPExpired         = "OTP_EXPIRED"
	CodeAlreadyVerified    = "ALREADY_VERIFIED"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeJobClosed          = "JOB_CLOSED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

// Validation reports the first violated rule for a field
func Validation(field, message string) *AppError {
	e := NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
	e.Field = field
	return e
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func TooManyRequests(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeTooManyRequests, message, ErrTooManyRequests)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

type mapping struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters: the first matching sentinel wins.
var mappings = []mapping{
	{ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password"},
	{ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized, "Authentication required"},
	{ErrEmailNotVerified, http.StatusForbidden, CodeEmailNotVerified, "Email address has not been verified"},
	{ErrPendingApproval, http.StatusForbidden, CodePendingApproval, "Employer account is pending admin approval"},
	{ErrForbidden, http.StatusForbidden, CodeForbidden, "Insufficient permissions"},
	{ErrAccountNotFound, http.StatusNotFound, CodeAccountNotFound, "Account not found"},
	{ErrNotFound, http.StatusNotFound, CodeNotFound, "Resource not found"},
	{ErrEmailTaken, http.StatusConflict, CodeEmailTaken, "Email already registered"},
	{ErrAlreadyVerified, http.StatusConflict, CodeAlreadyVerified, "Account is already verified"},
	{ErrAlreadyExists, http.StatusConflict, CodeConflict, "Resource already exists"},
	{ErrInvalidCode, http.StatusBadRequest, CodeInvalidCode, "Invalid verification code"},
	{ErrOTPExpired, http.StatusBadRequest, CodeOTPExpired, "Verification code has expired"},
	{ErrTooManyRequests, http.StatusTooManyRequests, CodeTooManyRequests, "Too many attempts, try again later"},
	{ErrJobClosed, http.StatusBadRequest, CodeJobClosed, "Job is no longer accepting applications"},
	{ErrNotEmployer, http.StatusBadRequest, CodeInvalidInput, "Account is not an employer"},
	{ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput, "Invalid input"},
}

// FromError converts any error into an AppError. Unknown errors become a generic 500.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return NewAppError(m.status, m.code, m.message, err)
		}
	}
	return InternalError(err)
}
