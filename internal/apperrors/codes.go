package apperrors

// Error codes grouped by domain. Codes are part of the API contract:
// clients match on them, messages are for humans.
const (
	// Authentication
	CodeInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	CodeAccountDeactivated   ErrorCode = "ACCOUNT_DEACTIVATED"
	CodeUnauthenticated      ErrorCode = "AUTHENTICATION_REQUIRED"
	CodeTokenExpired         ErrorCode = "ACCESS_TOKEN_EXPIRED"
	CodeTokenMalformed       ErrorCode = "ACCESS_TOKEN_MALFORMED"
	CodeTokenBadSignature    ErrorCode = "ACCESS_TOKEN_BAD_SIGNATURE"
	CodeTokenRevoked         ErrorCode = "ACCESS_TOKEN_REVOKED"
	CodeSessionNotFound      ErrorCode = "SESSION_NOT_FOUND"
	CodeSessionExpired       ErrorCode = "SESSION_EXPIRED"
	CodeSessionRevoked       ErrorCode = "SESSION_REVOKED"
	CodeInvalidRecoveryToken ErrorCode = "INVALID_RECOVERY_TOKEN"

	// Authorization and state machines
	CodeUnauthorized           ErrorCode = "UNAUTHORIZED"
	CodeIllegalStateTransition ErrorCode = "ILLEGAL_STATE_TRANSITION"
	CodeRateLimited            ErrorCode = "RATE_LIMITED"

	// Resources
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeCompanyNotFound     ErrorCode = "COMPANY_NOT_FOUND"
	CodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"
	CodeDuplicateResource   ErrorCode = "DUPLICATE_RESOURCE"
	CodeEmailAlreadyExists  ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeEmailDeactivated    ErrorCode = "EMAIL_DEACTIVATED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Internal
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
