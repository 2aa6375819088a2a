// Package config holds runtime settings for the teamkeeper shell.
package config

import "time"

// Config fields:
//   - DatabaseDSN: path/DSN of the local sqlite database.
//   - BootstrapTimeout: upper bound imposed on the bootstrap observation
//     (team reconstruction has no internal timeout; expiry is treated as
//     a load failure).
//   - DeviceName: display name for this installation's device; empty
//     means "use the OS hostname".
type Config struct {
	DatabaseDSN      string
	BootstrapTimeout time.Duration
	DeviceName       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "teamkeeper.db"
	c.BootstrapTimeout = 30 * time.Second
	c.DeviceName = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
