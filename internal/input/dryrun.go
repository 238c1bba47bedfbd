package input

import (
	"context"

	"github.com/charmbracelet/log"
)

// DryRunInjector resolves keys like a real injector but only logs them.
// Useful on headless machines and when wiring up a new gesture client.
type DryRunInjector struct {
	logger *log.Logger
}

// NewDryRunInjector creates a dry-run injector logging to logger
func NewDryRunInjector(logger *log.Logger) *DryRunInjector {
	if logger == nil {
		logger = log.Default()
	}
	return &DryRunInjector{logger: logger}
}

// Inject logs the key that would have been pressed
func (d *DryRunInjector) Inject(ctx context.Context, action string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k, err := resolve(action)
	if err != nil {
		return err
	}
	d.logger.Info("dry-run key press", "key", k.Name, "vk", k.VK, "media", k.Media)
	return nil
}
