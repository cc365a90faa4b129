// Package config loads and validates the tdsdose configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/tdsdose/internal/dosing"
)

// Output formats.
const (
	OutputFormatTable  = "table"
	OutputFormatJSON   = "json"
	OutputFormatNDJSON = "ndjson"
)

// outputTypeFile is the logging output name used when a log file is set.
const outputTypeFile = "file"

// configFileName is the name of the config file inside a config directory.
const configFileName = "config.yaml"

// Default values.
const (
	defaultServerAddr = ":8080"
	defaultAppID      = "com.swissquest.tdsdose"
	defaultAppName    = "SwissQuest TDS Dosing"
	defaultWebDir     = "dist"
)

// Config is the complete tdsdose configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Form    FormConfig    `yaml:"form"    json:"form"`
	Server  ServerConfig  `yaml:"server"  json:"server"`
	App     AppConfig     `yaml:"app"     json:"app"`

	// path is where the config was loaded from; empty for defaults.
	path string
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"defaultFormat"`
}

// FormConfig controls the dosing form.
type FormConfig struct {
	// Variant is "basic" or "chemical".
	Variant string `yaml:"variant" json:"variant"`
	// Defaults presets field values by field name.
	Defaults map[string]string `yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// AppConfig is the mobile packaging descriptor. It is metadata only: the
// HTTP surface uses AppName as its title and serves WebDir as static assets.
type AppConfig struct {
	AppID        string            `yaml:"app_id"                  json:"appId"`
	AppName      string            `yaml:"app_name"                json:"appName"`
	WebDir       string            `yaml:"web_dir"                 json:"webDir"`
	Server       AppServerConfig   `yaml:"server,omitempty"        json:"server,omitempty"`
	SplashScreen *SplashScreenConf `yaml:"splash_screen,omitempty" json:"splashScreen,omitempty"`
	StatusBar    *StatusBarConf    `yaml:"status_bar,omitempty"    json:"statusBar,omitempty"`
}

// AppServerConfig points the mobile shell at a remote dev server.
type AppServerConfig struct {
	URL       string `yaml:"url,omitempty"       json:"url,omitempty"`
	Cleartext bool   `yaml:"cleartext,omitempty" json:"cleartext,omitempty"`
}

// SplashScreenConf configures the mobile splash screen.
type SplashScreenConf struct {
	LaunchShowDuration int    `yaml:"launch_show_duration" json:"launchShowDuration"`
	BackgroundColor    string `yaml:"background_color"     json:"backgroundColor"`
}

// StatusBarConf configures the mobile status bar.
type StatusBarConf struct {
	Style           string `yaml:"style"            json:"style"`
	BackgroundColor string `yaml:"background_color" json:"backgroundColor"`
}

// New returns the configuration with defaults applied, overlaid by the user
// config file when present and by environment variables. Load errors fall
// back to defaults; use Load to observe them.
func New() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = Default()
		cfg.applyEnv()
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{DefaultFormat: OutputFormatTable},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Form: FormConfig{
			Variant: string(dosing.DefaultVariant),
		},
		Server: ServerConfig{Addr: defaultServerAddr},
		App: AppConfig{
			AppID:   defaultAppID,
			AppName: defaultAppName,
			WebDir:  defaultWebDir,
		},
	}
}

// Load reads the user config file on top of the defaults, then applies
// environment overrides. A missing user config file is not an error.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads path on top of the defaults and applies environment
// overrides. Unlike Load, the file must exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	cfg.path = path
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string { return c.path }

// applyEnv applies TDSDOSE_* environment overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("TDSDOSE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TDSDOSE_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("TDSDOSE_OUTPUT_FORMAT"); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv("TDSDOSE_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Variant returns the configured form variant.
func (c *Config) Variant() (dosing.Variant, error) {
	return dosing.ParseVariant(c.Form.Variant)
}

// Validate checks the values that have a closed set of options.
func (c *Config) Validate() error {
	var errs []error

	switch c.Output.DefaultFormat {
	case OutputFormatTable, OutputFormatJSON, OutputFormatNDJSON:
	default:
		errs = append(errs, fmt.Errorf("output.default_format: unsupported format %q", c.Output.DefaultFormat))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled", "":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unsupported level %q", c.Logging.Level))
	}

	if _, err := c.Variant(); err != nil {
		errs = append(errs, fmt.Errorf("form.variant: %w", err))
	}

	if _, err := dosing.ResolveFields(c.Form.Defaults); err != nil {
		errs = append(errs, fmt.Errorf("form.defaults: %w", err))
	}

	if c.App.AppID == "" {
		errs = append(errs, errors.New("app.app_id: must not be empty"))
	}

	return errors.Join(errs...)
}

// Save writes the configuration to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// DefaultConfigPath returns the path of the user config file.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
