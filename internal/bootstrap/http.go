package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/timetracker/config"
	httpx "github.com/target/timetracker/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config       *config.AppConfig
	Services     ServiceContainer
	HealthChecks []httpx.HealthCheck
	Logger       *slog.Logger
	// ErrCh receives the listener error if the server stops unexpectedly.
	ErrCh chan<- error
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	server := newServer(appCfg.HTTP, BuildHTTPHandler(cfg.Services, appCfg, cfg.HealthChecks, logger))

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if cfg.ErrCh != nil {
				cfg.ErrCh <- err
			}
		}
	}()

	return server
}

// BuildHTTPHandler maps the service container onto the router.
func BuildHTTPHandler(
	svcs ServiceContainer,
	cfg *config.AppConfig,
	checks []httpx.HealthCheck,
	logger *slog.Logger,
) http.Handler {
	rs := httpx.RouterServices{
		Auth:         svcs.Auth,
		Accounts:     svcs.Accounts,
		Entries:      svcs.Entries,
		Users:        svcs.Users,
		Codec:        svcs.Codec,
		Renderer:     svcs.Renderer,
		CookieSecure: cfg.Session.CookieSecure,
		CookieDomain: cfg.Session.CookieDomain,
		HealthChecks: checks,
		Logger:       logger,
	}
	if svcs.Metrics != nil {
		rs.Metrics = svcs.Metrics
	}
	return httpx.NewRouter(rs)
}

func newServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
