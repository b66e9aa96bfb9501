package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library, once at process start, and passed
// to the components that need it. See individual domain config files
// for details on available environment variables:
//   - session.go: Session cookie and login throttle configuration
//   - database.go: Postgres and Redis configuration
//   - http.go: HTTP server configuration
//   - observability.go: StatsD metrics
type AppConfig struct {
	// IsDev controls development mode behavior (text logs at debug level).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Session       SessionConfig       `envPrefix:"SESSION_"`
	LoginThrottle LoginThrottleConfig `envPrefix:"LOGIN_"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	StatsD StatsDConfig `envPrefix:"STATSD_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Postgres.Sanitize()
	c.LoginThrottle.Sanitize()
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.detectDevMode()
}

// Validate reports configuration that the process cannot start with.
func (c *AppConfig) Validate() error {
	var errs []error
	if err := c.Session.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.URI) == "" && !c.Redis.UseSentinel {
		errs = append(errs, errors.New("REDIS_URI is required when REDIS_ENABLED=true"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
