// Gesturify - gesture command server
// Receives recognized hand gestures over HTTP and presses the mapped host key.
package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"gesturify/internal/config"
	"gesturify/internal/logging"
)

var version = "0.1.0"

// Globals are flags shared by every command
type Globals struct {
	ConfigPath string `name:"config" short:"c" help:"Path to config file (default: per-user config dir)." type:"path" env:"GESTURIFY_CONFIG"`
	LogLevel   string `name:"log-level" help:"Override log level (debug, info, warn, error)."`
}

// CLI is the command-line interface
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version."`

	Serve     ServeCmd     `cmd:"" default:"1" help:"Run the gesture command server (default)."`
	Keys      KeysCmd      `cmd:"" help:"List action key names the injector understands."`
	Gestures  GesturesCmd  `cmd:"" help:"Print the effective gesture mapping table."`
	Press     PressCmd     `cmd:"" help:"Press one key directly to check the injection path."`
	Config    ConfigCmd    `cmd:"" help:"Manage the configuration file."`
	Autostart AutostartCmd `cmd:"" help:"Start the server on login."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gesturify"),
		kong.Description("Translate gesture events into host key presses."),
		kong.UsageOnError(),
		kong.Vars{"version": "gesturify version " + version},
		kong.Bind(&cli.Globals),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// load reads the configuration and applies global overrides
func (g *Globals) load() (*config.Config, *config.Manager, error) {
	mgr, err := config.NewManager(g.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := mgr.Load()
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	return cfg, mgr, nil
}

// logger builds the process logger from cfg
func (g *Globals) logger(cfg *config.Config) (*log.Logger, error) {
	return logging.New(nil, logging.Options{
		Level:      cfg.Log.Level,
		TimeFormat: cfg.Log.TimeFormat,
		ShowCaller: cfg.Log.Caller,
	})
}
