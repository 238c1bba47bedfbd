// Package input provides cross-platform key injection for gesture actions.
package input

import "context"

// InputInjector presses the host key named by action.
// Implementations must be safe for concurrent use; calls are not
// serialized, so concurrent presses race at the OS level.
type InputInjector interface {
	Inject(ctx context.Context, action string) error
}

// Key describes a named host key
type Key struct {
	// Name is the action name used in the gesture table (e.g. "space", "nexttrack")
	Name string `json:"name"`

	// VK is the Windows virtual-key code. It is the canonical code other
	// platforms translate from.
	VK uint16 `json:"vk"`

	// Keysym is the X11 keysym name used by xdotool
	Keysym string `json:"keysym"`

	// Extended marks keys that need KEYEVENTF_EXTENDEDKEY on Windows
	Extended bool `json:"extended,omitempty"`

	// Media marks media-control keys (play, track, volume)
	Media bool `json:"media,omitempty"`
}
