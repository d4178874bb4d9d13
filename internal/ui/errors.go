package ui

import "errors"

var (
	// ErrCancelled indicates the user aborted an interactive prompt.
	ErrCancelled = errors.New("cancelled by user")

	// ErrHeadlessNoDefaults indicates a headless run lacked a required answer.
	ErrHeadlessNoDefaults = errors.New("headless mode requires a default value")
)
