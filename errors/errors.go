// Package errors defines the application error type and constructors for
// every failure class the pipeline can surface.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode is a stable machine-readable failure class
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	// Pipeline
	ErrorCode_VALIDATION       ErrorCode = 2000
	ErrorCode_INVALID_ANALYSIS ErrorCode = 2001
	ErrorCode_GENERATION       ErrorCode = 2002

	// Ingest
	ErrorCode_INGEST_UPLOAD        ErrorCode = 3000
	ErrorCode_INGEST_TRANSCRIPTION ErrorCode = 3001
)

// String returns the code's symbolic name
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_INVALID_PAYLOAD:
		return "INVALID_PAYLOAD"
	case ErrorCode_VALIDATION:
		return "VALIDATION"
	case ErrorCode_INVALID_ANALYSIS:
		return "INVALID_ANALYSIS"
	case ErrorCode_GENERATION:
		return "GENERATION"
	case ErrorCode_INGEST_UPLOAD:
		return "INGEST_UPLOAD"
	case ErrorCode_INGEST_TRANSCRIPTION:
		return "INGEST_TRANSCRIPTION"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int32(c))
	}
}

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid request payload",
	}
}

// Pipeline Errors
func ErrEmptyTranscript() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_VALIDATION,
		Message:  "Transcript is empty",
	}
}

func ErrValidation(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_VALIDATION,
		Message:  message,
	}
}

// ErrInvalidAnalysis marks classifier output that failed shape or taxonomy
// validation at the named pipeline stage.
func ErrInvalidAnalysis(stage string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_INVALID_ANALYSIS,
		Message:  "Model returned invalid analysis",
	}.WithDetail("stage", stage)
}

func ErrGeneration(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_GENERATION,
		Message:  "Draft generation failed",
	}
}

// Ingest Errors
func ErrMemoUpload(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INGEST_UPLOAD,
		Message:  "Failed to store voice memo",
	}
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_INGEST_TRANSCRIPTION,
		Message:  "Voice memo transcription failed",
	}
}
