package errors

import (
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
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

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
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

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// FileAccess creates an AppError for a file that could not be opened or read.
func FileAccess(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeFileAccess, Message: fmt.Sprintf("cannot read %s", path),
		Details: map[string]any{"path": path}, Cause: cause,
	}
}

// SchemaConflict creates an AppError for a column whose sampled values
// cannot be reconciled. column may be empty for file-level conflicts.
func SchemaConflict(column, reason string) *AppError {
	details := make(map[string]any)
	if column != "" {
		details["column"] = column
	}
	return &AppError{
		Code: ErrCodeSchemaConflict, Message: fmt.Sprintf("schema conflict: %s", reason),
		Details: details,
	}
}

// RowParse creates an AppError for a row that does not match the schema.
// line is 1-based and counts the header line when present.
func RowParse(line int, reason string) *AppError {
	return &AppError{
		Code: ErrCodeRowParse, Message: fmt.Sprintf("line %d: %s", line, reason),
		Details: map[string]any{"line": line},
	}
}

// StageFit creates an AppError for a stage that failed while fitting.
func StageFit(stage string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStageFit, Message: fmt.Sprintf("stage %q failed to fit", stage),
		Details: map[string]any{"stage": stage}, Cause: cause,
	}
}

// StageTransform creates an AppError for a stage that failed while transforming.
func StageTransform(stage string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStageTransform, Message: fmt.Sprintf("stage %q failed to transform", stage),
		Details: map[string]any{"stage": stage}, Cause: cause,
	}
}

// NotFitted creates an AppError for a pipeline used before Fit succeeded.
func NotFitted(what string) *AppError {
	return &AppError{
		Code: ErrCodeNotFitted, Message: fmt.Sprintf("%s has not been fitted", what),
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}
