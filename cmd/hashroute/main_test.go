package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/hashroute/internal/config"
	"github.com/vango-dev/hashroute/internal/errors"
	"github.com/vango-dev/hashroute/pkg/bridge"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode", "foo[0][a]=1&foo[1][b]=2&q=x")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	want := `{"foo":[{"a":"1"},{"b":"2"}],"q":"x"}`
	compact, _ := json.Marshal(got)
	if string(compact) != want {
		t.Errorf("decode = %s, want %s", compact, want)
	}
}

func TestDecodeCommandModes(t *testing.T) {
	out, err := run(t, "decode", "?foo[]=1&foo[]=2&flag", "--debug")
	if err != nil {
		t.Fatalf("decode --debug: %v", err)
	}
	if strings.TrimSpace(out) != `{foo ["1" "2"], flag nil}` {
		t.Errorf("debug output = %q", out)
	}

	out, err = run(t, "decode", "b=1&a=&n", "--encode")
	if err != nil {
		t.Fatalf("decode --encode: %v", err)
	}
	if strings.TrimSpace(out) != "b=1&a=" {
		t.Errorf("encode output = %q, want b=1&a=", out)
	}

	if _, err := run(t, "decode"); err == nil {
		t.Error("decode without argument succeeded")
	}
}

func TestMatchCommand(t *testing.T) {
	out, err := run(t, "match", "#/about?from=home", "--html")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	for _, want := range []string{"/about", "default: false", `{from "home"}`, "<h1>About</h1>"} {
		if !strings.Contains(out, want) {
			t.Errorf("match output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "match", "#/nowhere")
	if err != nil {
		t.Fatalf("match default: %v", err)
	}
	if !strings.Contains(out, "default: true") {
		t.Errorf("match output = %q, want default: true", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") = %v", err)
	}
	if cfg.Server.Port != config.DefaultPort {
		t.Errorf("Server.Port = %d, want default", cfg.Server.Port)
	}

	path := filepath.Join(t.TempDir(), "custom.yaml")
	os.WriteFile(path, []byte("server:\n  port: 9999\n"), 0644)
	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig(%s): %v", path, err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "none.json")); errors.Code(err) != "C001" {
		t.Errorf("missing config code = %q, want C001", errors.Code(err))
	}
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	_, err := run(t, "serve", "--port", "70000")
	if code := errors.Code(err); code != "C003" {
		t.Errorf("serve --port 70000 code = %q, want C003", code)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info logged at warn level")
	}
	if !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Errorf("json output = %q", buf.String())
	}

	if _, err := newLogger(config.LogConfig{Level: "nope"}, &buf); err == nil {
		t.Error("newLogger accepted an invalid level")
	}
}

func newTestApp(t *testing.T) (*httptest.Server, *app) {
	t.Helper()
	a := newApp(config.New(), slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	srv := httptest.NewServer(a.mux)
	t.Cleanup(srv.Close)
	return srv, a
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestShellAndHealth(t *testing.T) {
	srv, _ := newTestApp(t)

	status, body := get(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("GET / status = %d", status)
	}
	if !strings.Contains(body, `<div id="`+bridge.RootID+`"></div>`) {
		t.Errorf("shell missing root element:\n%s", body)
	}
	if !strings.Contains(body, bridge.Path) {
		t.Errorf("shell missing client script")
	}

	status, body = get(t, srv.URL+"/healthz")
	if status != http.StatusOK || body != "ok\n" {
		t.Errorf("GET /healthz = %d %q", status, body)
	}
}

func TestBridgeAndMetrics(t *testing.T) {
	srv, a := newTestApp(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + bridge.Path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(bridge.Message{Type: bridge.TypeHello, Hash: "#/about?from=home"}); err != nil {
		t.Fatal(err)
	}
	var msg bridge.Message
	for msg.Type != bridge.TypeRender {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
	}
	if !strings.Contains(msg.HTML, "About") {
		t.Errorf("render html = %q", msg.HTML)
	}
	if n := a.bridge.SessionCount(); n != 1 {
		t.Errorf("SessionCount() = %d, want 1", n)
	}

	status, body := get(t, srv.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", status)
	}
	if !strings.Contains(body, `hashroute_router_route_changes_total{status="matched"} 1`) {
		t.Errorf("metrics missing route change counter:\n%s", body)
	}
}

func TestMetricsSubsystemFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Subsystem = "nav"
	cfg.Metrics.Buckets = []float64{.001, .01}
	a := newApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	srv := httptest.NewServer(a.mux)
	defer srv.Close()

	status, body := get(t, srv.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", status)
	}
	if !strings.Contains(body, "# TYPE hashroute_nav_route_change_duration_seconds histogram") {
		t.Errorf("metrics missing nav subsystem:\n%s", body)
	}
	if strings.Contains(body, "hashroute_router_") {
		t.Errorf("default subsystem still registered:\n%s", body)
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.New()
	off := false
	cfg.Metrics.Enabled = &off
	a := newApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	srv := httptest.NewServer(a.mux)
	defer srv.Close()

	if status, _ := get(t, srv.URL+"/metrics"); status != http.StatusNotFound {
		t.Errorf("GET /metrics status = %d, want 404", status)
	}
}
