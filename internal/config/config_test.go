package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/hashroute/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Router.Prefix != DefaultPrefix {
		t.Errorf("Router.Prefix = %q, want %q", cfg.Router.Prefix, DefaultPrefix)
	}
	if !cfg.MetricsEnabled() {
		t.Error("MetricsEnabled() = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if errors.Code(err) != "C001" {
		t.Errorf("Load(empty dir) code = %q, want C001", errors.Code(err))
	}

	configJSON := `{
  "server": {"host": "0.0.0.0", "port": 9090},
  "router": {"prefix": "#!"},
  "log": {"level": "debug", "format": "json"},
  "metrics": {"enabled": false}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, JSONFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := cfg.Address(); got != "0.0.0.0:9090" {
		t.Errorf("Address() = %q, want 0.0.0.0:9090", got)
	}
	if cfg.Router.Prefix != "#!" {
		t.Errorf("Router.Prefix = %q, want #!", cfg.Router.Prefix)
	}
	if cfg.MetricsEnabled() {
		t.Error("MetricsEnabled() = true, want false")
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want default", cfg.Metrics.Path)
	}
	if cfg.Bridge.Burst != 10 {
		t.Errorf("Bridge.Burst = %d, want default 10", cfg.Bridge.Burst)
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v; want debug", level, err)
	}
	if cfg.Path() != filepath.Join(tmpDir, JSONFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `server:
  port: 7000
log:
  format: json
bridge:
  eventsPerSecond: 5
  burst: 2
metrics:
  subsystem: nav
  buckets: [0.001, 0.01]
`
	if err := os.WriteFile(filepath.Join(tmpDir, YAMLFileName), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
	if cfg.Bridge.EventsPerSecond != 5 || cfg.Bridge.Burst != 2 {
		t.Errorf("Bridge = %+v, want 5/2", cfg.Bridge)
	}
	if cfg.Metrics.Subsystem != "nav" || len(cfg.Metrics.Buckets) != 2 {
		t.Errorf("Metrics = %+v, want nav with 2 buckets", cfg.Metrics)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, JSONFileName), []byte(`{"server":{"port":1111}}`), 0644)
	os.WriteFile(filepath.Join(tmpDir, YAMLFileName), []byte("server:\n  port: 2222\n"), 0644)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 1111 {
		t.Errorf("Server.Port = %d, want 1111 from JSON", cfg.Server.Port)
	}
}

func TestLoadFileParseError(t *testing.T) {
	tmpDir := t.TempDir()
	for name, content := range map[string]string{
		"bad.json": `{"server": `,
		"bad.yaml": "server: [unclosed",
	} {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFile(path)
		if errors.Code(err) != "C002" {
			t.Errorf("LoadFile(%s) code = %q, want C002", name, errors.Code(err))
		}
		if err != nil && !strings.Contains(err.Error(), name) {
			t.Errorf("LoadFile(%s) error = %q, want file name in detail", name, err)
		}
	}

	if _, err := LoadFile(filepath.Join(tmpDir, "missing.json")); errors.Code(err) != "C001" {
		t.Errorf("LoadFile(missing) code = %q, want C001", errors.Code(err))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, false},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, false},
		{"prefix with question mark", func(c *Config) { c.Router.Prefix = "#?" }, false},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, false},
		{"metrics path ignored when disabled", func(c *Config) {
			off := false
			c.Metrics.Enabled = &off
			c.Metrics.Path = "metrics"
		}, true},
		{"negative burst", func(c *Config) { c.Bridge.Burst = -1 }, false},
		{"increasing buckets", func(c *Config) { c.Metrics.Buckets = []float64{.001, .01, .1} }, true},
		{"unsorted buckets", func(c *Config) { c.Metrics.Buckets = []float64{.01, .001} }, false},
		{"duplicate buckets", func(c *Config) { c.Metrics.Buckets = []float64{.01, .01} }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"warn level", func(c *Config) { c.Log.Level = "warn" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if code := errors.Code(err); code != "C003" {
					t.Errorf("code = %q, want C003", code)
				}
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{JSONFileName, YAMLFileName} {
		cfg := New()
		cfg.Server.Port = 4321
		cfg.Router.Prefix = "#!"
		path := filepath.Join(tmpDir, name)

		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("SaveTo(%s): %v", name, err)
		}
		loaded, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s): %v", name, err)
		}
		if loaded.Server.Port != 4321 || loaded.Router.Prefix != "#!" {
			t.Errorf("%s round trip = %+v", name, loaded)
		}
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Error("Exists(empty) = true")
	}
	os.WriteFile(filepath.Join(tmpDir, YAMLFileName), []byte("{}\n"), 0644)
	if !Exists(tmpDir) {
		t.Error("Exists() = false with hashroute.yaml present")
	}
}
