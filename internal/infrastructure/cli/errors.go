package cli

import (
	"errors"
	"fmt"

	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/prioritization"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, application.ErrNotInitialized):
		return NewCLIError("workspace not initialized", "Run 'compass init <org> <product>' first", err)
	case errors.Is(err, application.ErrIdeaNotFound):
		return NewCLIError("idea not found", "Run 'compass idea list' to see available ideas", err)
	case errors.Is(err, application.ErrFeatureNotFound):
		return NewCLIError("feature not found", "Run 'compass feature list' to see available features", err)
	case errors.Is(err, application.ErrReleaseNotFound):
		return NewCLIError("release not found", "Run 'compass release list' to see available releases", err)
	case errors.Is(err, application.ErrReleaseAlreadyCut):
		return NewCLIError("release already cut", "Compose a new draft with 'compass release compose'", err)
	case errors.Is(err, application.ErrSprintNotFound):
		return NewCLIError("sprint not found", "Run 'compass sprint list' to see available sprints", err)
	case errors.Is(err, application.ErrNoActiveSprint):
		return NewCLIError("no active sprint", "Start one with 'compass sprint start'", err)
	case errors.Is(err, application.ErrFlagNotFound):
		return NewCLIError("flag not found", "Run 'compass flag list' to see configured flags", err)
	case errors.Is(err, application.ErrInterviewNotFound):
		return NewCLIError("interview not found", "Run 'compass interview list' to see recorded interviews", err)
	case errors.Is(err, prioritization.ErrZeroEffort):
		return NewCLIError("effort must be greater than zero", "Pass --effort with a value of 1 or more", err)
	case errors.Is(err, prioritization.ErrZeroJobSize):
		return NewCLIError("job size must be greater than zero", "Pass --job-size with a value of 1 or more", err)
	case errors.Is(err, org.ErrForbidden):
		return NewCLIError("permission denied", "Ask an organization admin to change your role", err)
	case errors.Is(err, org.ErrNotAMember):
		return NewCLIError("not a member of this organization", "Ask an admin to add you with 'compass org member add'", err)
	}

	return err
}
