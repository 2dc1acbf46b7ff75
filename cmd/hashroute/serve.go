package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/hashroute/internal/config"
	"github.com/vango-dev/hashroute/internal/errors"
	"github.com/vango-dev/hashroute/internal/pages"
	"github.com/vango-dev/hashroute/pkg/bridge"
	"github.com/vango-dev/hashroute/pkg/render"
	"github.com/vango-dev/hashroute/pkg/router"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		configPath string
		host       string
		port       int
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application",
		Long: `Serve the demo application over HTTP.

Configuration is read from --config, or from hashroute.json or
hashroute.yaml in the working directory when present. Flags override
the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd, "Serving on http://%s", cfg.Address())
			return runServer(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file")
	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		return config.LoadFile(path)
	case config.Exists("."):
		return config.Load(".")
	default:
		return config.New(), nil
	}
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app := newApp(cfg, logger, prometheus.NewRegistry())
	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           app.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return errors.New("X001").WithDetail(err.Error()).Wrap(err)
		}
		return nil

	case <-ctx.Done():
		logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		app.bridge.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
			return err
		}
		logger.Info("server shutdown complete")
		return nil
	}
}

type app struct {
	mux    *chi.Mux
	bridge *bridge.Handler
}

// newApp wires the HTTP routes.
func newApp(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry) *app {
	opts := []router.MetricsOption{router.WithRegistry(reg)}
	if cfg.Metrics.Subsystem != "" {
		opts = append(opts, router.WithSubsystem(cfg.Metrics.Subsystem))
	}
	if len(cfg.Metrics.Buckets) > 0 {
		opts = append(opts, router.WithBuckets(cfg.Metrics.Buckets))
	}
	metrics := router.NewMetrics(opts...)
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bh := bridge.NewHandler(bridge.Config{
		Routes:          func(r *router.Router) router.Table { return pages.Routes(r) },
		Prefix:          cfg.Router.Prefix,
		EventsPerSecond: cfg.Bridge.EventsPerSecond,
		Burst:           cfg.Bridge.Burst,
		ReadLimit:       cfg.Bridge.ReadLimit,
		Logger:          logger,
		Metrics:         metrics,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", shellHandler(logger))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, bridge.Path, bh)
	if cfg.MetricsEnabled() {
		r.Method(http.MethodGet, cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	return &app{mux: r, bridge: bh}
}

const shellStyles = `body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem}
a[aria-current=page]{font-weight:bold}
pre{background:#f4f4f4;padding:.75rem;border-radius:4px}`

// shellHandler serves the empty page the client script renders into.
func shellHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := render.NewRenderer(render.RendererConfig{}).RenderPage(w, render.PageData{
			Title:        "hashroute",
			Body:         vdom.Main(bridge.Root()),
			Styles:       []string{shellStyles},
			ClientScript: bridge.ClientScript,
		})
		if err != nil {
			logger.Error("render shell", "error", err)
		}
	}
}
