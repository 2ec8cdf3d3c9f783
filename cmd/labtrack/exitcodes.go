package main

import (
	"errors"
	"fmt"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/catalog"
	"github.com/davetashner/labtrack/internal/store"
)

// Exit codes for the labtrack CLI.
const (
	ExitOK          = 0 // Command succeeded.
	ExitInvalidArgs = 1 // Invalid arguments, unknown report or parameter.
	ExitConflict    = 2 // A parameter name collides with an existing one.
	ExitFailure     = 3 // Data or config could not be read or written.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitConflict:
			msg = "labtrack: name conflict"
		case ExitFailure:
			msg = "labtrack: operation failed"
		default:
			msg = "labtrack: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// classify maps a domain error to its exit code.
func classify(err error) *exitCodeError {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return ece
	}
	code := ExitFailure
	switch {
	case errors.Is(err, catalog.ErrDuplicateParameter):
		code = ExitConflict
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, catalog.ErrEmptyName),
		errors.Is(err, store.ErrReportNotFound),
		errors.Is(err, store.ErrInvalidReport),
		errors.Is(err, store.ErrInvalidDocument),
		errors.Is(err, store.ErrUnknownFormat),
		errors.Is(err, analysis.ErrUnknownParameter):
		code = ExitInvalidArgs
	}
	return exitError(code, "labtrack: %v", err)
}
