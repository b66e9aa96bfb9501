package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/target/timetracker/config"
	"github.com/target/timetracker/internal/observability/statsd"
)

// NewMetrics dials StatsD when enabled. It returns nil when metrics are off,
// including when STATSD_ENABLED is set with a blank address.
func NewMetrics(cfg config.StatsDConfig, logger *slog.Logger) (*statsd.Client, error) {
	if !cfg.Enabled {
		return nil, nil //nolint:nilnil // nil client means metrics are off.
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Address,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("statsd: %w", err)
	}
	if !client.Enabled() {
		if logger != nil {
			logger.Warn("statsd enabled without an address; metrics are off")
		}
		return nil, nil //nolint:nilnil // nil client means metrics are off.
	}
	if logger != nil {
		logger.Info("statsd metrics enabled", "addr", cfg.Address, "prefix", cfg.Prefix)
	}
	return client, nil
}
