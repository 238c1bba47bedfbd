package dispatcher

import "errors"

// Reasons reported to clients
const (
	ReasonGestureMissing = "gesture not provided"
	ReasonNoAction       = "no action defined for this gesture"
)

var (
	// ErrPanic indicates the injector or lookup panicked while handling a gesture
	ErrPanic = errors.New("dispatcher: panic while handling gesture")
)
