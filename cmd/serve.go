package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"gesturify/internal/api"
	"gesturify/internal/config"
	"gesturify/internal/dispatcher"
	"gesturify/internal/gesture"
	"gesturify/internal/input"
	"gesturify/internal/logging"
	"gesturify/internal/osutils"
	"gesturify/internal/tray"
)

// ServeCmd runs the command server
type ServeCmd struct {
	Addr   string `help:"Listen address (overrides config), e.g. 0.0.0.0:5000."`
	DryRun bool   `name:"dry-run" help:"Log key presses instead of injecting them."`
	Tray   bool   `help:"Show a system tray icon."`
}

// Run starts the server and blocks until SIGINT/SIGTERM or tray Quit
func (c *ServeCmd) Run(g *Globals) error {
	cfg, mgr, err := g.load()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}
	if c.DryRun {
		cfg.Injection.DryRun = true
	}
	if c.Tray {
		cfg.Tray.Enabled = true
	}

	logger, err := g.logger(cfg)
	if err != nil {
		return err
	}
	logger.Info("gesturify starting", "version", version, "config", mgr.Path(), "dry_run", cfg.Injection.DryRun)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := api.NewMetrics()
	hooks := []dispatcher.InjectHook{metrics.ObserveInjection}

	var t *tray.Tray
	var listenID int
	if cfg.Tray.Enabled {
		t = tray.New("Gesturify", "Gesturify - gesture command server", stop)
		listenID = t.AddInfoItem("Listening on " + cfg.Server.Addr)
		lastID := t.AddInfoItem("Last action: none")
		hooks = append(hooks, func(action string, _ time.Duration, err error) {
			if err != nil {
				t.SetItemTitle(lastID, fmt.Sprintf("Last action: %s (failed)", action))
				return
			}
			t.SetItemTitle(lastID, "Last action: "+action)
		})
	}

	d, err := newDispatcher(cfg, logger, hooks...)
	if err != nil {
		return err
	}

	if cfg.Firewall.Manage && runtime.GOOS == "windows" {
		go func() {
			port, err := osutils.PortFromAddr(cfg.Server.Addr)
			if err != nil {
				logger.Warn("cannot manage firewall rule", "err", err)
				return
			}
			if err := osutils.EnsureFirewallRule(logging.Component(logger, "firewall"), port); err != nil {
				logger.Warn("firewall rule not applied", "err", err)
			}
		}()
	}

	listenInfo := "Listening on " + cfg.Server.Addr
	if url, err := osutils.ReachableURL(cfg.Server.Addr); err == nil {
		logger.Info("gesture endpoint", "url", url+"/command")
		listenInfo = "Listening on " + url
	}

	server := api.NewServer(cfg.Server, d, d.Table(), logging.Component(logger, "api"), metrics)

	if t == nil {
		return server.Start(ctx)
	}

	t.SetItemTitle(listenID, listenInfo)

	// systray must own the main goroutine on macOS
	for _, e := range d.Table().Entries() {
		t.AddInfoItem(fmt.Sprintf("%s → %s", e.Gesture, e.Action))
	}
	t.AddSeparator()
	t.AddMenuItem("Quit", t.Stop)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx)
		// Quit before the loop is up is not reliable on every platform
		<-t.Ready()
		t.Stop()
	}()
	t.Run()
	stop()
	return <-errCh
}

// newDispatcher builds the gesture table, validates it against the key
// catalogue and wires the configured injector.
func newDispatcher(cfg *config.Config, logger *log.Logger, hooks ...dispatcher.InjectHook) (*dispatcher.Dispatcher, error) {
	table, err := gesture.NewTable(cfg.Gestures)
	if err != nil {
		return nil, fmt.Errorf("gesture table: %w", err)
	}
	if err := table.Validate(input.KnownKey); err != nil {
		return nil, fmt.Errorf("gesture table: %w", err)
	}

	var injector input.InputInjector
	if cfg.Injection.DryRun {
		injector = input.NewDryRunInjector(logging.Component(logger, "dry-run"))
	} else {
		injector = input.NewInjector()
	}

	opts := []dispatcher.Option{
		dispatcher.WithLogger(logging.Component(logger, "dispatcher")),
		dispatcher.WithInjectTimeout(cfg.Injection.Timeout),
	}
	for _, h := range hooks {
		opts = append(opts, dispatcher.WithInjectHook(h))
	}
	return dispatcher.New(table, injector, opts...), nil
}
