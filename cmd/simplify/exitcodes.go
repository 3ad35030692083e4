package main

import (
	"errors"
	"fmt"

	"github.com/gabrielchua/descriptive-theory/internal/models"
)

// Exit codes for the simplify CLI.
const (
	ExitOK          = 0
	ExitError       = 1 // Invalid input or unexpected failure.
	ExitNotMedical  = 2 // Guardrail rejected the text.
	ExitUnavailable = 3 // Completion service unavailable.
)

type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

func (e *exitCodeError) ExitCode() int { return e.code }

func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}

// exitErrorFor maps a pipeline error onto the CLI exit code.
func exitErrorFor(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotMedical):
		return exitError(ExitNotMedical, "%s", models.MessageNotMedical)
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return exitError(ExitUnavailable, "%s", models.MessageUnavailable)
	case models.IsValidation(err):
		return exitError(ExitError, "invalid input: %v", err)
	default:
		return exitError(ExitError, "%s %v", models.MessageUnexpected, err)
	}
}
