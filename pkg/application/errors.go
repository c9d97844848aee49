package application

import "errors"

var (
	// ErrNotInitialized is returned when a command runs outside a compass
	// workspace.
	ErrNotInitialized = errors.New("workspace not initialized (run 'compass init' first)")

	// ErrIdeaNotFound is returned when an idea ID does not exist.
	ErrIdeaNotFound = errors.New("idea not found")

	// ErrFeatureNotFound is returned when a feature ID does not exist.
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrReleaseNotFound is returned when a release ID does not exist.
	ErrReleaseNotFound = errors.New("release not found")

	// ErrReleaseAlreadyCut is returned when cutting a release twice.
	ErrReleaseAlreadyCut = errors.New("release already cut")

	// ErrSprintNotFound is returned when a sprint ID does not exist.
	ErrSprintNotFound = errors.New("sprint not found")

	// ErrNoActiveSprint is returned when no sprint window contains now.
	ErrNoActiveSprint = errors.New("no active sprint")

	// ErrFlagNotFound is returned when a flag key does not exist.
	ErrFlagNotFound = errors.New("flag not found")

	// ErrInterviewNotFound is returned when an interview ID does not exist.
	ErrInterviewNotFound = errors.New("interview not found")

	// ErrNoProduct is returned when the workspace has no product configured.
	ErrNoProduct = errors.New("no product configured")
)
