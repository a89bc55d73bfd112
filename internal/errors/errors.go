package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrorType classifies application errors. The taxonomy drives both
// transport mapping (validation -> rejected request, database ->
// server failure) and how failures degrade (external / timeout errors
// from the narrative collaborator are logged and swallowed).
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError is an application error with a type, a stable code and an
// optional wrapped cause.
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches AppErrors by type and code.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// LogFields returns structured logging fields.
func (e *AppError) LogFields() []any {
	fields := []any{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
	}
	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}
	return fields
}

// New creates a new AppError.
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{Type: errorType, Code: code, Message: message}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{Type: errorType, Code: code, Message: message, Internal: err}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ErrorTypeValidation
}

// Handler logs errors according to their type.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs an error with severity matching its type.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
		return
	}

	switch appErr.Type {
	case ErrorTypeValidation:
		h.logger.WarnContext(ctx, "Validation error", appErr.LogFields()...)
	case ErrorTypeExternal, ErrorTypeTimeout:
		h.logger.WarnContext(ctx, "Collaborator error", appErr.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Critical error", appErr.LogFields()...)
	}
}

// Convenience constructors for the common cases.
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

func NewExternalAPIError(err error, api string) *AppError {
	return Wrap(err, ErrorTypeExternal, "EXTERNAL_API", fmt.Sprintf("%s API error", api))
}

func NewTimeoutError(operation string) *AppError {
	return New(ErrorTypeTimeout, "TIMEOUT", fmt.Sprintf("%s operation timed out", operation))
}
