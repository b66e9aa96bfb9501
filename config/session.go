package config

import (
	"errors"
	"fmt"
	"time"
)

// MinSessionSecretLength is the shortest accepted SESSION_SECRET_KEY.
const MinSessionSecretLength = 32

// SessionConfig configures the encrypted session cookie.
type SessionConfig struct {
	// SecretKey seeds the cookie encryption key. Rotating it logs everyone out.
	SecretKey string `env:"SECRET_KEY"`

	// CookieSecure marks the cookie Secure; enable behind TLS.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"COOKIE_DOMAIN" envDefault:""`
}

// Validate rejects a missing or short secret.
func (s SessionConfig) Validate() error {
	if s.SecretKey == "" {
		return errors.New("SESSION_SECRET_KEY is required")
	}
	if len(s.SecretKey) < MinSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET_KEY must be at least %d bytes", MinSessionSecretLength)
	}
	return nil
}

// LoginThrottleConfig limits failed logins per username. Only active with Redis.
type LoginThrottleConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS"   envDefault:"5"`
	Window      time.Duration `env:"LOCKOUT_WINDOW" envDefault:"15m"`
}

// Sanitize clamps the throttle to usable values.
func (l *LoginThrottleConfig) Sanitize() {
	if l.MaxAttempts < 1 {
		l.MaxAttempts = 1
	}
	if l.Window < time.Second {
		l.Window = time.Second
	}
}
