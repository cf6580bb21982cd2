package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error. The error
// may wrap the SovriumError arbitrarily deep (pipeline stages add their own
// wrappers).
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var se *SovriumError
	if stderrors.As(err, &se) {
		switch se.Category {
		case CategoryValidation:
			return 2
		case CategoryConfig, CategorySchema:
			return 7
		case CategoryRoute, CategoryRender, CategoryAsset, CategoryDeploy, CategoryFileSystem:
			return 3
		default:
			return 1
		}
	}
	return 1
}

// Report logs the error with structured context and returns the exit code.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return 0
	}
	var se *SovriumError
	if stderrors.As(err, &se) {
		attrs := []any{slog.String("category", string(se.Category))}
		for k, v := range se.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		a.logger.Error(se.Message, attrs...)
		if a.verbose && se.Cause != nil {
			fmt.Fprintf(os.Stderr, "caused by: %v\n", se.Cause)
		}
	} else {
		a.logger.Error(err.Error())
	}
	return a.ExitCodeFor(err)
}
