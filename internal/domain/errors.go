package domain

import "errors"

// Domain errors represent error conditions in the stickmap domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("stickmap: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("stickmap: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("stickmap: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("stickmap: invalid configuration")

	// ErrInvalidAirframe is returned when airframe gains are out of range.
	ErrInvalidAirframe = errors.New("stickmap: invalid airframe")

	// ErrMalformedFrame is returned by frame decoders when a payload does not
	// have the shape of a channel frame.
	ErrMalformedFrame = errors.New("stickmap: malformed channel frame")

	// ErrDisarmFailed is returned when the final disable could not be sent.
	ErrDisarmFailed = errors.New("stickmap: final disarm failed")

	// ErrInstanceRunning is returned when the pidfile is owned by another live process.
	ErrInstanceRunning = errors.New("stickmap: another instance is running")
)
