package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/hashroute/internal/errors"
)

const (
	// JSONFileName and YAMLFileName are the configuration files Load
	// looks for, in that order.
	JSONFileName = "hashroute.json"
	YAMLFileName = "hashroute.yaml"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPrefix is the default router token prefix.
	DefaultPrefix = "#"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `json:"server,omitempty" yaml:"server,omitempty"`
	Router  RouterConfig  `json:"router,omitempty" yaml:"router,omitempty"`
	Log     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Bridge  BridgeConfig  `json:"bridge,omitempty" yaml:"bridge,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// RouterConfig contains router settings.
type RouterConfig struct {
	// Prefix is stripped from URL fragments before parsing.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`

	// Subsystem replaces the "router" metric name segment when set.
	Subsystem string `json:"subsystem,omitempty" yaml:"subsystem,omitempty"`

	// Buckets are the route change duration histogram bounds in seconds,
	// strictly increasing. Empty keeps the router defaults.
	Buckets []float64 `json:"buckets,omitempty" yaml:"buckets,omitempty"`
}

// BridgeConfig contains WebSocket session limits.
type BridgeConfig struct {
	EventsPerSecond float64 `json:"eventsPerSecond,omitempty" yaml:"eventsPerSecond,omitempty"`
	Burst           int     `json:"burst,omitempty" yaml:"burst,omitempty"`
	ReadLimit       int64   `json:"readLimit,omitempty" yaml:"readLimit,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	enabled := true
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Router: RouterConfig{
			Prefix: DefaultPrefix,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: &enabled,
			Path:    DefaultMetricsPath,
		},
		Bridge: BridgeConfig{
			EventsPerSecond: 20,
			Burst:           10,
			ReadLimit:       64 << 10,
		},
	}
}

// Load reads configuration from dir, trying hashroute.json and then
// hashroute.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("C001").
		WithDetail("No " + JSONFileName + " or " + YAMLFileName + " found in " + dir)
}

// LoadFile reads configuration from path. Files ending in .yaml or .yml
// are parsed as YAML, anything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid " + formatName(path)).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to path in the format its extension
// selects.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C002").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Router.Prefix == "" {
		c.Router.Prefix = d.Router.Prefix
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Enabled == nil {
		c.Metrics.Enabled = d.Metrics.Enabled
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Bridge.EventsPerSecond == 0 {
		c.Bridge.EventsPerSecond = d.Bridge.EventsPerSecond
	}
	if c.Bridge.Burst == 0 {
		c.Bridge.Burst = d.Bridge.Burst
	}
	if c.Bridge.ReadLimit == 0 {
		c.Bridge.ReadLimit = d.Bridge.ReadLimit
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return errors.New("C003").
			WithDetail("server.port must be between 0 and 65535")
	case strings.Contains(c.Router.Prefix, "?"):
		return errors.New("C003").
			WithDetail("router.prefix must not contain '?'")
	case c.MetricsEnabled() && !strings.HasPrefix(c.Metrics.Path, "/"):
		return errors.New("C003").
			WithDetail("metrics.path must start with '/'")
	case c.Bridge.EventsPerSecond < 0 || c.Bridge.Burst < 0 || c.Bridge.ReadLimit < 0:
		return errors.New("C003").
			WithDetail("bridge limits must not be negative")
	}
	for i := 1; i < len(c.Metrics.Buckets); i++ {
		if c.Metrics.Buckets[i] <= c.Metrics.Buckets[i-1] {
			return errors.New("C003").
				WithDetail("metrics.buckets must be strictly increasing")
		}
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if f := c.Log.Format; f != "text" && f != "json" {
		return errors.New("C003").
			WithDetailf("log.format %q is not text or json", f)
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// MetricsEnabled reports whether the metrics endpoint is served.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("C003").
			WithDetailf("log.level %q is not debug, info, warn or error", c.Log.Level).
			Wrap(err)
	}
	return level, nil
}

// Exists reports whether dir holds a configuration file.
func Exists(dir string) bool {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func formatName(path string) string {
	if isYAML(path) {
		return "YAML"
	}
	return "JSON"
}
