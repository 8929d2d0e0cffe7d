package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidPhone = errors.New("invalid_phone")
	ErrEmailExists  = errors.New("email_exists")
	ErrPhoneExists  = errors.New("phone_exists")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// For external service failures (e.g., Twilio, SendGrid, Stripe)
	ErrExternalServiceFailure = errors.New("external_service_failure")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// ReferenceError rejects a payment-account write whose association list
// names a property that does not exist or has been soft-deleted.
type ReferenceError struct {
	PropertyID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced property %s does not exist or has been deleted", e.PropertyID)
}

// HandleAppError centralizes responding to AppErrors, ReferenceErrors
// and duplicate-key ConflictErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		RespondErrorWithCode(w, conflictErr.StatusCode, ErrCodeDuplicateKey, conflictErr.Message, conflictErr.ErrorMessages, conflictErr)
		return
	}
	var refErr *ReferenceError
	if errors.As(err, &refErr) {
		RespondErrorWithCode(w, http.StatusUnprocessableEntity, ErrCodeStaleReference, refErr.Error(), nil, refErr)
		return
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}
	// Fallback for unexpected error types
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
}
