// Package errors provides unified error handling for the meetscribe service.
// It implements a structured error type with machine-readable codes, HTTP
// status mapping, and retryable detection for collaborator failures.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// --- Common Error Constructors ---

// InvalidAudio creates a new AppError for missing or unusable audio input.
func InvalidAudio(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidAudio, Message: fmt.Sprintf("Audio input is invalid: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// CollaboratorFailed creates a new AppError for a failed external model call.
// The stage identifies which collaborator failed ("diarization",
// "transcription", "export").
func CollaboratorFailed(stage string, cause error) *AppError {
	code := ErrCodeCollaboratorFailed
	switch stage {
	case "diarization":
		code = ErrCodeDiarizationFailed
	case "transcription":
		code = ErrCodeTranscriptionFailed
	case "export":
		code = ErrCodeExportFailed
	}
	return &AppError{
		Code: code, Message: fmt.Sprintf("The %s stage failed.", stage),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"stage": stage},
		Cause:   cause,
	}
}

// SummarizationDegraded creates a new AppError recording that summarization
// fell back to truncation. It is recoverable and never surfaced as fatal.
func SummarizationDegraded(scope string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSummarizationDegraded, Message: fmt.Sprintf("Summarization for %s degraded to a truncated fallback.", scope),
		HTTPStatus: http.StatusOK, Retryable: false,
		Details: map[string]any{"scope": scope},
		Cause:   cause,
	}
}

// NotFound creates a new AppError for a missing resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("%s not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"resource": resource},
	}
}

// Unauthorized creates a new AppError for failed authentication.
func Unauthorized(reason string) *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// Validation creates a new AppError for a rejected request payload.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeValidation, Message: message,
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
	}
}

// Internal creates a new AppError for an unexpected internal failure.
func Internal(message string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: message,
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Cause: cause,
	}
}
