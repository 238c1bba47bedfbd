package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gesturify/internal/autostart"
	"gesturify/internal/config"
	"gesturify/internal/gesture"
	"gesturify/internal/input"
	"gesturify/internal/logging"
)

var stdout io.Writer = os.Stdout

// KeysCmd lists the key catalogue
type KeysCmd struct{}

func (c *KeysCmd) Run() error {
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVK\tKEYSYM\tMEDIA")
	for _, k := range input.Keys() {
		fmt.Fprintf(tw, "%s\t0x%02X\t%s\t%v\n", k.Name, k.VK, k.Keysym, k.Media)
	}
	return tw.Flush()
}

// GesturesCmd prints the effective mapping table
type GesturesCmd struct{}

func (c *GesturesCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}
	table, err := gesture.NewTable(cfg.Gestures)
	if err != nil {
		return err
	}
	return printTable(stdout, table)
}

func printTable(w io.Writer, table *gesture.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GESTURE\tACTION\t")
	for _, e := range table.Entries() {
		note := ""
		if !input.KnownKey(e.Action) {
			note = "(unknown key)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Gesture, e.Action, note)
	}
	return tw.Flush()
}

// PressCmd presses a single key through the same injector the server uses
type PressCmd struct {
	Key    string `arg:"" help:"Action key name, e.g. space or volumeup."`
	DryRun bool   `name:"dry-run" help:"Log the key press instead of injecting it."`
}

func (c *PressCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}
	logger, err := g.logger(cfg)
	if err != nil {
		return err
	}
	if !input.KnownKey(c.Key) {
		return fmt.Errorf("%w: %q (see 'gesturify keys')", input.ErrUnknownKey, c.Key)
	}

	var injector input.InputInjector = input.NewInjector()
	if c.DryRun || cfg.Injection.DryRun {
		injector = input.NewDryRunInjector(logging.Component(logger, "dry-run"))
	}

	ctx := context.Background()
	if cfg.Injection.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Injection.Timeout)
		defer cancel()
	}
	if err := injector.Inject(ctx, c.Key); err != nil {
		return err
	}
	logger.Info("key pressed", "key", c.Key)
	return nil
}

// ConfigCmd groups configuration file commands
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write the default configuration file."`
	Path ConfigPathCmd `cmd:"" help:"Print the configuration file path."`
}

// ConfigInitCmd writes the default configuration
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing file."`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	mgr, err := config.NewManager(g.ConfigPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(mgr.Path()); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", mgr.Path())
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := mgr.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", mgr.Path())
	return nil
}

// ConfigPathCmd prints the configuration path
type ConfigPathCmd struct{}

func (c *ConfigPathCmd) Run(g *Globals) error {
	mgr, err := config.NewManager(g.ConfigPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, mgr.Path())
	return nil
}

// AutostartCmd groups login auto-start commands
type AutostartCmd struct {
	Enable  AutostartEnableCmd  `cmd:"" help:"Start gesturify on login."`
	Disable AutostartDisableCmd `cmd:"" help:"Stop starting gesturify on login."`
	Status  AutostartStatusCmd  `cmd:"" help:"Show whether auto-start is enabled."`
}

type AutostartEnableCmd struct{}

func (c *AutostartEnableCmd) Run() error {
	if err := autostart.Enable(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Auto-start enabled")
	return nil
}

type AutostartDisableCmd struct{}

func (c *AutostartDisableCmd) Run() error {
	if err := autostart.Disable(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Auto-start disabled")
	return nil
}

type AutostartStatusCmd struct{}

func (c *AutostartStatusCmd) Run() error {
	if autostart.IsEnabled() {
		fmt.Fprintln(stdout, "enabled")
	} else {
		fmt.Fprintln(stdout, "disabled")
	}
	return nil
}
