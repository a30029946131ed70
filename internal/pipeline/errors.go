package pipeline

import (
	"fmt"
)

// ErrorType represents the type of pipeline error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeConnection ErrorType = "connection"
	ErrorTypeExecution  ErrorType = "execution"
	ErrorTypeExport     ErrorType = "export"
)

// PipelineError represents a fatal, run-aborting error. Row-level findings
// are never represented as errors; they live on the rows themselves.
type PipelineError struct {
	Type    ErrorType
	Stage   string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e == nil {
		return "unknown pipeline error"
	}
	if e.Stage != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Stage, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewValidationError creates an error for a rejected pipeline request.
func NewValidationError(message string, cause error) *PipelineError {
	return &PipelineError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// NewInputError creates an error for a malformed input workbook.
func NewInputError(stage string, cause error) *PipelineError {
	return &PipelineError{
		Type:    ErrorTypeInput,
		Stage:   stage,
		Message: "malformed input file",
		Cause:   cause,
	}
}

// NewConnectionError creates an error for a failed reference database call.
func NewConnectionError(stage string, cause error) *PipelineError {
	return &PipelineError{
		Type:    ErrorTypeConnection,
		Stage:   stage,
		Message: "reference database query failed",
		Cause:   cause,
	}
}

// NewExecutionError creates an error for a failed stage.
func NewExecutionError(stage string, cause error) *PipelineError {
	return &PipelineError{
		Type:    ErrorTypeExecution,
		Stage:   stage,
		Message: "stage execution failed",
		Cause:   cause,
	}
}

// NewExportError creates an error for a failed output workbook write.
func NewExportError(cause error) *PipelineError {
	return &PipelineError{
		Type:    ErrorTypeExport,
		Stage:   StageExport,
		Message: "failed to write output workbook",
		Cause:   cause,
	}
}
