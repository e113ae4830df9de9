package tui

import "errors"

var (
	// ErrInputCancelled is returned when the operator closes the input form
	ErrInputCancelled = errors.New("input cancelled")
	// ErrNoRunner is returned when the progress view is started without an orchestrator
	ErrNoRunner = errors.New("scan runner is required")
	// ErrView is returned when a terminal view cannot run
	ErrView = errors.New("terminal view failed")
)
