package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrIncomplete is returned when required fields are still empty after
	// the allowed number of attempts.
	ErrIncomplete = errors.New("tui: required fields left empty")
)
