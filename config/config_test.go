package config

import (
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET_KEY", strings.Repeat("k", 40))
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_URI", "redis://cache:6379/0")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("LOGIN_LOCKOUT_WINDOW", "2m")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("STATSD_ENABLED", "true")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 6543, cfg.Postgres.Port)
	assert.Equal(t, "timetracker", cfg.Postgres.Name)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.LoginThrottle.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.LoginThrottle.Window)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.True(t, cfg.StatsD.Enabled)
	assert.Equal(t, "timetracker", cfg.StatsD.Prefix)
	require.NoError(t, cfg.Validate())
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*AppConfig) {}},
		{name: "missing secret", mutate: func(c *AppConfig) { c.Session.SecretKey = "" }, wantErr: "SESSION_SECRET_KEY is required"},
		{name: "short secret", mutate: func(c *AppConfig) { c.Session.SecretKey = "short" }, wantErr: "at least 32 bytes"},
		{name: "redis without uri", mutate: func(c *AppConfig) { c.Redis.Enabled = true; c.Redis.URI = " " }, wantErr: "REDIS_URI"},
		{name: "bad log level", mutate: func(c *AppConfig) { c.LogLevel = "loud" }, wantErr: "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{LogLevel: "info", Session: SessionConfig{SecretKey: strings.Repeat("s", MinSessionSecretLength)}}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAppConfig_Sanitize(t *testing.T) {
	cfg := AppConfig{
		LogLevel:      " DEBUG ",
		LoginThrottle: LoginThrottleConfig{MaxAttempts: 0, Window: 0},
		Postgres:      DBConfig{MaxOpenConns: 2, MaxIdleConns: 10},
	}
	cfg.Sanitize()

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1, cfg.LoginThrottle.MaxAttempts)
	assert.Equal(t, time.Second, cfg.LoginThrottle.Window)
	assert.Equal(t, 2, cfg.Postgres.MaxIdleConns)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
