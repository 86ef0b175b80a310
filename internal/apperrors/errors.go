package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode is a stable machine-readable error kind.
type ErrorCode string

// AppError is the application error carried from services to the HTTP boundary.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two AppErrors by code, so sentinel comparisons
// keep working after WithDetails/WithError copies.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if stderrors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy carrying extra structured details.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithError returns a copy wrapping an underlying cause.
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors
var (
	// Authentication
	ErrInvalidCredentials   = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrAccountDeactivated   = New(CodeAccountDeactivated, "Account deactivated. Recover your account before logging in", http.StatusForbidden)
	ErrAuthRequired         = New(CodeUnauthenticated, "Authentication required", http.StatusUnauthorized)
	ErrTokenExpired         = New(CodeTokenExpired, "Access token has expired", http.StatusUnauthorized)
	ErrTokenMalformed       = New(CodeTokenMalformed, "Access token is malformed", http.StatusUnauthorized)
	ErrTokenBadSignature    = New(CodeTokenBadSignature, "Access token signature verification failed", http.StatusUnauthorized)
	ErrTokenRevoked         = New(CodeTokenRevoked, "Session invalidated due to logout, deactivation, or password change", http.StatusUnauthorized)
	ErrInvalidUserRole      = New(CodeInvalidUserRole, "Access token carries an unknown role", http.StatusUnauthorized)
	ErrSessionNotFound      = New(CodeSessionNotFound, "Session token not found", http.StatusUnauthorized)
	ErrSessionExpired       = New(CodeSessionExpired, "Session has expired, please log in again", http.StatusUnauthorized)
	ErrSessionRevoked       = New(CodeSessionRevoked, "Session has been revoked, please log in again", http.StatusUnauthorized)
	ErrInvalidRecoveryToken = New(CodeInvalidRecoveryToken, "Invalid or expired recovery token", http.StatusUnauthorized)

	// Authorization and state machines
	ErrUnauthorizedAction     = New(CodeUnauthorized, "You are not allowed to perform this action", http.StatusForbidden)
	ErrIllegalStateTransition = New(CodeIllegalStateTransition, "Operation not allowed in the entity's current state", http.StatusForbidden)
	ErrRepostRateLimited      = New(CodeRateLimited, "Job repost cooldown has not elapsed yet", http.StatusTooManyRequests)

	// Resources
	ErrUserNotFound         = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrCompanyNotFound      = New(CodeCompanyNotFound, "Company not found", http.StatusNotFound)
	ErrJobNotFound          = New(CodeJobNotFound, "Job not found", http.StatusNotFound)
	ErrApplicationNotFound  = New(CodeApplicationNotFound, "Application not found", http.StatusNotFound)
	ErrDuplicateApplication = New(CodeDuplicateResource, "You have already applied to this job", http.StatusConflict)
	ErrEmailAlreadyExists   = New(CodeEmailAlreadyExists, "Email already in use", http.StatusConflict)
	ErrEmailDeactivated     = New(CodeEmailDeactivated, "An account with this email was deactivated. Recover it instead of signing up again", http.StatusConflict)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
	ErrWeakPassword     = New(CodeWeakPassword, "Password does not meet the strength requirements", http.StatusBadRequest)
)

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusForbidden)
}

func NewConflictError(message string) *AppError {
	return New(CodeDuplicateResource, message, http.StatusConflict)
}

func IllegalTransition(from, to string) *AppError {
	return New(CodeIllegalStateTransition,
		fmt.Sprintf("Transition from %s to %s is not allowed", from, to),
		http.StatusForbidden)
}
