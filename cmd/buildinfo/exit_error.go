// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/buildinfo/internal/buildinfo"
	"github.com/invowk/buildinfo/internal/config"
	"github.com/invowk/buildinfo/internal/issue"
	"github.com/invowk/buildinfo/pkg/nearest"
	"github.com/invowk/buildinfo/pkg/types"
	"github.com/invowk/buildinfo/pkg/version"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
	// Message is the text shown to the user. Empty means Err.Error().
	Message string
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor classifies err into a process exit code.
func exitCodeFor(err error) types.ExitCode {
	var exitErr *ExitError
	switch {
	case err == nil:
		return types.ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, version.ErrInvalidTag),
		errors.Is(err, version.ErrInvalidDescribe),
		errors.Is(err, buildinfo.ErrUnknownFormat),
		errors.Is(err, config.ErrInvalidBackend):
		return types.ExitInvalidInput
	case errors.Is(err, nearest.ErrNoCandidates):
		return types.ExitNoCandidates
	default:
		return types.ExitFailure
	}
}

// withExitCode wraps err in an ExitError carrying its exit code and the
// display text, so callers of Execute only see one line of output per failure.
func withExitCode(err error, verbose bool) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{
		Code:    exitCodeFor(err),
		Err:     err,
		Message: formatErrorForDisplay(err, verbose),
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method and, in
// verbose mode, appends the linked catalog page.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		msg := ae.Format(verbose)
		if verbose && ae.Issue != 0 {
			if page := issue.RenderPlain(ae.Issue); page != "" {
				msg += "\n" + page
			}
		}
		return msg
	}
	return err.Error()
}
