package input

import "errors"

var (
	// ErrUnsupportedPlatform is returned when key injection is not implemented for this OS
	ErrUnsupportedPlatform = errors.New("input injection not supported on this platform")

	// ErrUnknownKey is returned when an action does not name a known key
	ErrUnknownKey = errors.New("unknown key")

	// ErrPermissionDenied is returned when the OS refuses synthetic input
	// (e.g. missing macOS accessibility trust)
	ErrPermissionDenied = errors.New("input injection permission denied")

	// ErrNoDisplay is returned when there is no display session to send keys to
	ErrNoDisplay = errors.New("no display session available")

	// ErrToolNotFound is returned when the required external tool is not found
	ErrToolNotFound = errors.New("required tool not found")

	// ErrInjectionFailed is returned when the platform API reports a failure
	ErrInjectionFailed = errors.New("key injection failed")
)
