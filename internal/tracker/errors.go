package tracker

import "errors"

var (
	ErrAlreadyRunning = errors.New("the timer is already running")
	ErrNotRunning     = errors.New("the timer is not running")

	// ErrStorageUnavailable is wrapped by StateStore implementations around
	// any read or write failure.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
