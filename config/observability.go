package config

// StatsDConfig controls request and login metrics.
type StatsDConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Address string `env:"ADDRESS" envDefault:"127.0.0.1:8125"`
	Prefix  string `env:"PREFIX"  envDefault:"timetracker"`
}
