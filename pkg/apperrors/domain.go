package apperrors

import (
	"net/http"
)

// Factories and predefined variables for common business-logic errors.

// ErrNotFound converts a repository "not found" error (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation creates a 400 for operations a resource state does not allow.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus creates a 400 for invalid status transitions.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password does not meet complexity requirements",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"account",
	"Email already exists",
	http.StatusConflict,
)

var ErrPhoneAlreadyExists = New(
	CodeAlreadyExists,
	"account",
	"Phone number already exists",
	http.StatusConflict,
)

// ErrInvalidUserRole is used when an operation is not defined for the user's role.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// --- Accounts / verification ---

// ErrVerificationCodeInvalid covers both unknown and expired phone codes; the
// two cases are deliberately indistinguishable to the caller.
var ErrVerificationCodeInvalid = New(
	CodeValidationFailed,
	"account",
	"Invalid or expired verification code",
	http.StatusBadRequest,
)

// --- Jobs & applications ---

var ErrJobNotOpen = New(
	CodeInvalidStatus,
	"job",
	"Job is not open for applications",
	http.StatusBadRequest,
)

var ErrJobNotDraft = New(
	CodeInvalidStatus,
	"job",
	"Job is not in draft status",
	http.StatusBadRequest,
)

var ErrAlreadyApplied = New(
	CodeAlreadyExists,
	"application",
	"You have already applied to this job",
	http.StatusConflict,
)

var ErrApplicationFinal = New(
	CodeInvalidStatus,
	"application",
	"Application is in a final state and cannot be changed",
	http.StatusBadRequest,
)

// --- Interviews ---

var ErrInterviewNotCancellable = New(
	CodeInvalidStatus,
	"interview",
	"Cannot cancel this interview",
	http.StatusBadRequest,
)

var ErrFeedbackAlreadyLeft = New(
	CodeAlreadyExists,
	"interview",
	"Feedback has already been submitted for this interview",
	http.StatusConflict,
)

// --- Uploads & files ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
