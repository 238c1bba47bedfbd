package gesture

import "errors"

var (
	// ErrEmptyGesture is returned when a mapping entry has a blank gesture name
	ErrEmptyGesture = errors.New("gesture name is empty")

	// ErrEmptyAction is returned when a gesture is mapped to an empty action
	ErrEmptyAction = errors.New("action is empty")

	// ErrUnknownAction is returned when a mapped action is not a key the injector understands
	ErrUnknownAction = errors.New("unknown action")
)
