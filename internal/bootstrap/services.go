package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/target/timetracker/config"
	"github.com/target/timetracker/internal/adapters/cookiesession"
	redisadapter "github.com/target/timetracker/internal/adapters/redis"
	"github.com/target/timetracker/internal/data"
	httpx "github.com/target/timetracker/internal/http"
	"github.com/target/timetracker/internal/observability/statsd"
	"github.com/target/timetracker/internal/ports"
	"github.com/target/timetracker/internal/service"
)

// ServiceContainer holds everything the HTTP layer is built from.
type ServiceContainer struct {
	Auth     *service.AuthService
	Accounts *service.AccountService
	Entries  *service.EntryService
	Users    *service.UserService

	Codec    *cookiesession.Codec
	Renderer *httpx.TemplateRenderer
	Metrics  *statsd.Client // nil when metrics are not configured
}

// ServiceDeps contains the infrastructure services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient // Optional: nil disables login throttling
	Metrics     *statsd.Client        // Optional
	Logger      *slog.Logger
}

type serviceRepositories struct {
	Users          *data.UserRepo
	TimeEntries    *data.TimeEntryRepo
	AbsenceEntries *data.AbsenceEntryRepo
}

func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Users:          data.NewUserRepo(db),
		TimeEntries:    data.NewTimeEntryRepo(db),
		AbsenceEntries: data.NewAbsenceEntryRepo(db),
	}
}

// newLoginThrottle falls back to a no-op throttle when Redis is not configured.
//
//nolint:ireturn // callers only need the port.
func newLoginThrottle(client redis.UniversalClient, cfg config.LoginThrottleConfig) (ports.LoginThrottle, error) {
	if client == nil {
		return redisadapter.NoopLoginThrottle{}, nil
	}
	t, err := redisadapter.NewLoginThrottle(client, redisadapter.LoginThrottleOptions{
		MaxAttempts: cfg.MaxAttempts,
		Window:      cfg.Window,
	})
	if err != nil {
		return nil, fmt.Errorf("login throttle: %w", err)
	}
	return t, nil
}

// NewServices wires repositories, services, the session codec and the renderer.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil || deps.DB == nil {
		return ServiceContainer{}, errors.New("config and database are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := buildRepositories(deps.DB)

	throttle, err := newLoginThrottle(deps.RedisClient, deps.Config.LoginThrottle)
	if err != nil {
		return ServiceContainer{}, err
	}

	codec, err := cookiesession.NewCodec([]byte(deps.Config.Session.SecretKey), httpx.SessionCookieName)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("session codec: %w", err)
	}

	renderer, err := httpx.NewTemplateRenderer(httpx.TemplateRendererConfig{Logger: logger})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("template renderer: %w", err)
	}

	entries := service.NewEntryService(service.EntryServiceOptions{
		TimeEntries:    repos.TimeEntries,
		AbsenceEntries: repos.AbsenceEntries,
		Logger:         logger,
	})

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users:    repos.Users,
			Throttle: throttle,
			Logger:   logger,
		}),
		Accounts: service.NewAccountService(service.AccountServiceOptions{Users: repos.Users, Logger: logger}),
		Entries:  entries,
		Users: service.NewUserService(service.UserServiceOptions{
			Users:   repos.Users,
			Entries: entries,
			Logger:  logger,
		}),
		Codec:    codec,
		Renderer: renderer,
		Metrics:  deps.Metrics,
	}, nil
}

// HealthChecks returns the readiness probes for the given infrastructure.
func HealthChecks(db *sql.DB, client redis.UniversalClient) []httpx.HealthCheck {
	var checks []httpx.HealthCheck
	if db != nil {
		checks = append(checks, httpx.HealthCheck{Name: "database", Check: db.PingContext})
	}
	if client != nil {
		checks = append(checks, httpx.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	}
	return checks
}

// ServiceOrchestrationConfig contains everything needed to run the server until a signal arrives.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and blocks until SIGINT/SIGTERM
// or a server failure, then shuts down gracefully.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:       cfg.Config,
		Services:     cfg.Services,
		HealthChecks: HealthChecks(cfg.DB, cfg.RedisClient),
		Logger:       logger,
		ErrCh:        errCh,
	})

	return waitForShutdown(shutdownConfig{
		errCh:  errCh,
		server: server,
		cfg:    cfg.Config.HTTP,
		logger: logger,
	})
}

type shutdownConfig struct {
	errCh  <-chan error
	server *http.Server
	cfg    config.HTTPConfig
	logger *slog.Logger
}

func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		cfg.logger.Info("shutting down", "signal", sig.String())
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  cfg.server,
			Timeout: cfg.cfg.ShutdownTimeout,
			Logger:  cfg.logger,
		})
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		return err
	}
}
