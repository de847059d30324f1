package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation decisions: validation and
// authorization failures are terminal and must cause no store mutation,
// persistence and conflict failures are retryable.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindAuthorization Kind = "AUTHORIZATION"
	KindPersistence   Kind = "PERSISTENCE"
	KindConsistency   Kind = "CONSISTENCY"
	KindConflict      Kind = "CONFLICT"
)

type Error struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Authorization(code, message string) *Error {
	return &Error{Kind: KindAuthorization, Code: code, Message: message}
}

func Persistence(code, message string, cause error) *Error {
	return &Error{Kind: KindPersistence, Code: code, Message: message, cause: cause}
}

func Consistency(code, message string) *Error {
	return &Error{Kind: KindConsistency, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

// IsRetryable reports whether retrying the failed operation can succeed.
// Unclassified errors are treated as persistence failures.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindPersistence, KindConflict:
		return true
	default:
		return false
	}
}

// HTTPStatus maps an error kind to the response status controllers use.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return 400
	case KindNotFound:
		return 404
	case KindAuthorization:
		return 403
	case KindConflict:
		return 409
	case KindPersistence:
		return 503
	default:
		return 500
	}
}

// Stable error codes used across features.
const (
	CodeProjectNotFound      = "PROJECT_NOT_FOUND"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeObservationRequired  = "OBSERVATION_REQUIRED"
	CodeInvalidStatus        = "INVALID_STATUS"
	CodeInvalidBudget        = "INVALID_BUDGET"
	CodeMissingField         = "MISSING_FIELD"
	CodeStudentNotFound      = "STUDENT_NOT_FOUND"
	CodeInsufficientRole     = "INSUFFICIENT_ROLE"
	CodeWrongInstitution     = "WRONG_INSTITUTION"
	CodeStatusDiverged       = "STATUS_DIVERGED"
	CodeVersionConflict      = "VERSION_CONFLICT"
	CodeChangeKeyReused      = "CHANGE_KEY_REUSED"
	CodeStoreFailure         = "STORE_FAILURE"
	CodeDescriptionRequired  = "DESCRIPTION_REQUIRED"
	CodeRateLimitExceeded    = "RATE_LIMIT_EXCEEDED"
	CodeRegistrationDisabled = "REGISTRATION_DISABLED"
	CodeEmailTaken           = "EMAIL_TAKEN"
	CodeGradeRequired        = "GRADE_REQUIRED"
)
