package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeFileAccess indicates a source file could not be opened or read.
	ErrCodeFileAccess ErrorCode = "FILE_ACCESS"
	// ErrCodeSchemaConflict indicates sampled values cannot be reconciled into a schema.
	ErrCodeSchemaConflict ErrorCode = "SCHEMA_CONFLICT"
	// ErrCodeRowParse indicates a row does not match the schema.
	ErrCodeRowParse ErrorCode = "ROW_PARSE"
)

// Stage errors
const (
	// ErrCodeStageFit indicates a pipeline stage failed while fitting.
	ErrCodeStageFit ErrorCode = "STAGE_FIT"
	// ErrCodeStageTransform indicates a pipeline stage failed while transforming or predicting.
	ErrCodeStageTransform ErrorCode = "STAGE_TRANSFORM"
	// ErrCodeNotFitted indicates a trained pipeline was required.
	ErrCodeNotFitted ErrorCode = "NOT_FITTED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)
