// Package errors provides a lightweight structured error type (SovriumError)
// for category-based classification across the schema loader, generation
// pipeline and CLI.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCategory represents the category of a SovriumError for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategorySchema     ErrorCategory = "schema"

	// Generation pipeline errors
	CategoryRoute      ErrorCategory = "route"
	CategoryRender     ErrorCategory = "render"
	CategoryAsset      ErrorCategory = "asset"
	CategoryDeploy     ErrorCategory = "deploy"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// SovriumError is a structured error with category, severity, and context
type SovriumError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for SovriumError
type ContextFields map[string]any

// Error implements the error interface. Context fields are rendered in sorted
// key order so the message always identifies the offending page, path or
// field even when the error travels through opaque wrappers.
func (e *SovriumError) Error() string {
	msg := fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		msg += " [" + strings.Join(pairs, ", ") + "]"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *SovriumError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *SovriumError) WithContext(key string, value any) *SovriumError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new SovriumError
func New(category ErrorCategory, severity ErrorSeverity, message string) *SovriumError {
	return &SovriumError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new SovriumError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *SovriumError {
	return &SovriumError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error (or any error it wraps) belongs to a category
func IsCategory(err error, category ErrorCategory) bool {
	var se *SovriumError
	if stderrors.As(err, &se) {
		return se.Category == category
	}
	return false
}

// IsFatal reports whether the error carries fatal severity.
func IsFatal(err error) bool {
	var se *SovriumError
	if stderrors.As(err, &se) {
		return se.Severity == SeverityFatal
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a SovriumError
func GetCategory(err error) ErrorCategory {
	var se *SovriumError
	if stderrors.As(err, &se) {
		return se.Category
	}
	return CategoryInternal
}
