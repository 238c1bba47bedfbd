//go:build linux

package input

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Linux implementation of key injection via xdotool (X11 / XWayland)

// Injector represents a Linux key injector
type Injector struct {
	tool string
}

// NewInjector creates a new key injector for Linux
func NewInjector() *Injector {
	return &Injector{tool: "xdotool"}
}

// Inject presses and releases the key named by action
func (i *Injector) Inject(ctx context.Context, action string) error {
	k, err := resolve(action)
	if err != nil {
		return err
	}
	if os.Getenv("DISPLAY") == "" {
		return ErrNoDisplay
	}

	path, err := exec.LookPath(i.tool)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, i.tool)
	}

	out, err := exec.CommandContext(ctx, path, "key", "--clearmodifiers", k.Keysym).CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrInjectionFailed, msg)
	}
	return nil
}
