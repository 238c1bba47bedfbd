// Package config provides configuration management for the gesture command server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"gesturify/internal/gesture"
)

// FileName is the configuration file name inside the config directory
const FileName = "config.yaml"

// Config represents the application configuration
type Config struct {
	// Server contains HTTP transport settings
	Server ServerConfig `yaml:"server"`

	// Log contains logging settings
	Log LogConfig `yaml:"log"`

	// Injection contains key injection settings
	Injection InjectionConfig `yaml:"injection"`

	// Tray contains system tray settings
	Tray TrayConfig `yaml:"tray"`

	// Firewall contains firewall rule settings (Windows only)
	Firewall FirewallConfig `yaml:"firewall"`

	// Gestures maps gesture names to action keys. When present in the
	// file it replaces the built-in table entirely and must not be empty.
	Gestures map[string]string `yaml:"gestures"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address (default: "0.0.0.0:5000")
	Addr string `yaml:"addr" env:"ADDR"`

	// Token is an optional bearer token required on every request but /health
	Token string `yaml:"token,omitempty" env:"TOKEN"`

	// AllowedOrigins lists CORS origins; "*" allows any origin
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`

	// RateLimit is the sustained /command rate in requests per second (0 disables)
	RateLimit float64 `yaml:"rate_limit" env:"RATE_LIMIT"`

	// RateBurst is the burst size for RateLimit
	RateBurst int `yaml:"rate_burst" env:"RATE_BURST"`

	// MaxBodyBytes caps the request body size
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// LogConfig contains logging settings
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" env:"LOG_LEVEL"`

	// TimeFormat is the Go time layout for log timestamps
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT"`

	// Caller adds the calling file:line to log lines
	Caller bool `yaml:"caller" env:"LOG_CALLER"`
}

// InjectionConfig contains key injection settings
type InjectionConfig struct {
	// DryRun logs key presses instead of injecting them
	DryRun bool `yaml:"dry_run" env:"DRY_RUN"`

	// Timeout bounds a single injection (0 = no bound)
	Timeout time.Duration `yaml:"timeout" env:"INJECT_TIMEOUT"`
}

// TrayConfig contains system tray settings
type TrayConfig struct {
	Enabled bool `yaml:"enabled" env:"TRAY"`
}

// FirewallConfig contains firewall settings
type FirewallConfig struct {
	// Manage adds an inbound rule for the server port at startup (Windows)
	Manage bool `yaml:"manage" env:"MANAGE_FIREWALL"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "0.0.0.0:5000",
			AllowedOrigins:  []string{"*"},
			RateLimit:       0,
			RateBurst:       10,
			MaxBodyBytes:    4096,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			TimeFormat: "15:04:05",
		},
		Injection: InjectionConfig{
			Timeout: 2 * time.Second,
		},
		Gestures: gesture.DefaultMappings(),
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must be >= 0, got %v", c.Server.RateLimit))
	}
	if c.Server.RateBurst < 0 {
		errs = append(errs, fmt.Errorf("server.rate_burst must be >= 0, got %d", c.Server.RateBurst))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be > 0, got %d", c.Server.MaxBodyBytes))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if len(c.Gestures) == 0 {
		errs = append(errs, errors.New("gestures is empty"))
	}
	if c.Injection.Timeout < 0 {
		errs = append(errs, fmt.Errorf("injection.timeout must be >= 0, got %v", c.Injection.Timeout))
	}
	return errors.Join(errs...)
}

// Manager handles loading and saving configuration
type Manager struct {
	configPath string
}

// NewManager creates a configuration manager for path. An empty path
// selects the per-user default location.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Manager{configPath: path}, nil
}

// Path returns the configuration file path
func (m *Manager) Path() string {
	return m.configPath
}

// DefaultPath returns the per-user configuration file path
func DefaultPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "gesturify")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "gesturify")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(configDir, "gesturify")
	}

	return filepath.Join(configDir, FileName), nil
}

// Load reads the configuration: defaults, then the file, then
// GESTURIFY_* environment variables. The result is validated.
func (m *Manager) Load() (*Config, error) {
	cfg := DefaultConfig()
	defaults := cfg.Gestures
	cfg.Gestures = nil

	data, err := os.ReadFile(m.configPath)
	switch {
	case os.IsNotExist(err):
		// No config file, use defaults
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", m.configPath, err)
		}
	}
	if cfg.Gestures == nil {
		cfg.Gestures = defaults
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to disk, creating the config directory if needed
func (m *Manager) Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(m.configPath, data, 0644)
}
