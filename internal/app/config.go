package app

import (
	"netpulse/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug forces debug logging regardless of the configured level
	Debug bool

	// Transport overrides, empty/zero keeps the configured value
	Transport string
	Host      string
	Port      int

	// Version is the build version, reported to MCP clients and downstream
	Version string

	// Netpulse configuration, filled by NewApplication
	NetpulseConfig *config.NetpulseConfig
}

// NewConfig creates a new application configuration
func NewConfig(transport string, debug bool, version string) *Config {
	return &Config{
		Transport: transport,
		Debug:     debug,
		Version:   version,
	}
}

// applyOverrides copies the command line overrides onto cfg.
func (c *Config) applyOverrides(cfg *config.NetpulseConfig) {
	if c.Transport != "" {
		cfg.Server.Transport = config.Transport(c.Transport)
	}
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.Debug {
		cfg.Logging.Level = "debug"
	}
}
