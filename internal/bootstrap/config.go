package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/target/timetracker/config"
)

// logLevel backs the default logger so the level can follow configuration loaded after InitLogger.
var logLevel = new(slog.LevelVar)

// logOutput is where every logger built here writes.
var logOutput io.Writer = os.Stdout

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// ConfigureLogger applies the configured level and returns the logger to use from here on.
// Dev mode switches to text output at debug level; otherwise logger is returned as is.
func ConfigureLogger(cfg *config.AppConfig, logger *slog.Logger) *slog.Logger {
	if cfg == nil {
		return logger
	}
	if cfg.IsDev {
		logLevel.Set(slog.LevelDebug)
		dev := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(dev)
		return dev
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		lvl = slog.LevelInfo
	}
	logLevel.Set(lvl)
	return logger
}

// LoadConfig loads configuration from environment variables.
// It does not validate; the server calls AppConfig.Validate, admin commands skip it.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}
