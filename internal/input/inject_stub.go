//go:build !darwin && !windows && !linux

package input

import (
	"context"
)

// Stub implementation for platforms without key injection

// Injector represents a stub key injector
type Injector struct{}

// NewInjector creates a new stub injector
func NewInjector() *Injector {
	return &Injector{}
}

// Inject validates the key name and reports that injection is unsupported
func (i *Injector) Inject(ctx context.Context, action string) error {
	if _, err := resolve(action); err != nil {
		return err
	}
	return ErrUnsupportedPlatform
}
