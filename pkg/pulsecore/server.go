// Package pulsecore provides the base HTTP server, CLI flags, middleware
// chain, and response helpers for the pulseboard service.
package pulsecore

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the server configuration, parsed from CLI flags and an
// optional YAML config file.
type Config struct {
	Port     int
	Latency  time.Duration
	FailRate float64
	SeedFile string
	Verbose  bool
	Name     string // service name for logging
}

// ParseFlags parses CLI flags and returns a Config. When -config points at a
// YAML file, file values fill in any field left at its zero value by flags.
func ParseFlags(name string) *Config {
	cfg := &Config{Name: name}
	var configFile string
	flag.IntVar(&cfg.Port, "port", 0, "HTTP listen port (default: auto-assigned)")
	flag.DurationVar(&cfg.Latency, "latency", 0, "Simulated backend latency per request")
	flag.Float64Var(&cfg.FailRate, "fail-rate", 0.0, "Random failure rate 0.0-1.0")
	flag.StringVar(&cfg.SeedFile, "seed-file", "", "Path to JSON fixture replacing the default data set")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable request/response logging")
	flag.StringVar(&configFile, "config", "", "Path to YAML config file")
	flag.Parse()

	if configFile != "" {
		if err := cfg.applyFile(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}

	if cfg.Port == 0 {
		if p := os.Getenv("PORT"); p != "" {
			fmt.Sscanf(p, "%d", &cfg.Port)
		}
	}

	return cfg
}

// App is the pulseboard HTTP server. It wraps a chi router with the common
// middleware stack and provides lifecycle management.
type App struct {
	Config *Config
	Router *chi.Mux
	Logger *slog.Logger
	mw     *Middleware
	mu     sync.RWMutex // protects Config fields during runtime updates
}

// New creates a new App with the given config.
func New(cfg *Config) *App {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	r := chi.NewRouter()
	mw := NewMiddleware(cfg, logger)

	// Latency and failure middleware are always mounted so they take effect
	// immediately when config is updated at runtime; both guard internally on
	// the current config values.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.CORS)
	r.Use(mw.RequestLog)
	r.Use(mw.Metrics)
	r.Use(mw.LatencyInjection)
	r.Use(mw.RandomFailure)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return &App{
		Config: cfg,
		Router: r,
		Logger: logger,
		mw:     mw,
	}
}

// Middleware returns the middleware instance for external access
// (e.g. fault injection from the admin plane).
func (a *App) Middleware() *Middleware {
	return a.mw
}

// GetConfig returns the current runtime configuration as a map.
// This implements the admin.ConfigProvider interface.
func (a *App) GetConfig() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return map[string]any{
		"name":      a.Config.Name,
		"port":      a.Config.Port,
		"latency":   a.Config.Latency.String(),
		"fail_rate": a.Config.FailRate,
		"verbose":   a.Config.Verbose,
	}
}

// UpdateConfig updates runtime configuration fields from a map.
// Only latency, fail_rate, and verbose can be changed at runtime.
// All fields are validated before any are applied, ensuring atomicity.
func (a *App) UpdateConfig(updates map[string]any) error {
	var (
		latency  *time.Duration
		failRate *float64
		verbose  *bool
	)

	for k, v := range updates {
		switch k {
		case "latency":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("latency must be a duration string")
			}
			d, err := time.ParseDuration(s)
			if err != nil {
				return fmt.Errorf("invalid latency duration: %w", err)
			}
			if d < 0 {
				return fmt.Errorf("latency must not be negative")
			}
			latency = &d
		case "fail_rate":
			f, ok := v.(float64)
			if !ok {
				return fmt.Errorf("fail_rate must be a number")
			}
			if f < 0 || f > 1 {
				return fmt.Errorf("fail_rate must be between 0.0 and 1.0")
			}
			failRate = &f
		case "verbose":
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("verbose must be a boolean")
			}
			verbose = &b
		case "name", "port":
			return fmt.Errorf("%s cannot be changed at runtime", k)
		default:
			return fmt.Errorf("unknown config key: %s", k)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if latency != nil {
		a.Config.Latency = *latency
	}
	if failRate != nil {
		a.Config.FailRate = *failRate
	}
	if verbose != nil {
		a.Config.Verbose = *verbose
	}
	return nil
}

// Serve starts the HTTP server and blocks until a shutdown signal.
func (a *App) Serve() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      a.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		a.Logger.Info("starting server", "name", a.Config.Name, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	a.Logger.Info("shutting down", "name", a.Config.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// ServeHTTP implements http.Handler so App can be used directly in tests.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Router.ServeHTTP(w, r)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    http.StatusText(status),
			"code":    status,
		},
	})
}
