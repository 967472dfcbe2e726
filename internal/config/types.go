package config

import (
	"errors"
	"fmt"
	"strings"
)

// NetpulseConfig is the top-level configuration structure for netpulse.
type NetpulseConfig struct {
	API     APISettings     `yaml:"api"`
	Server  ServerSettings  `yaml:"server"`
	Logging LoggingSettings `yaml:"logging"`
}

// APISettings describes the downstream GraphQL endpoint.
type APISettings struct {
	// Host is the API host, with or without scheme. A bare host is reached over https.
	Host string `yaml:"host"`
	// Key is sent as the x-api-key header.
	Key string `yaml:"key"`
	// AccountID becomes the default accountID argument of every tool.
	AccountID string `yaml:"accountID,omitempty"`
	// MaxResponseLength caps the size of a tool response in bytes.
	MaxResponseLength int `yaml:"maxResponseLength,omitempty"`
}

// Transport names an MCP transport.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportSSE   Transport = "sse"
)

// ServerSettings configures the MCP transport.
type ServerSettings struct {
	Transport Transport `yaml:"transport,omitempty"`
	Host      string    `yaml:"host,omitempty"`
	Port      int       `yaml:"port,omitempty"`
}

// LoggingSettings configures the log level.
type LoggingSettings struct {
	Level string `yaml:"level,omitempty"`
}

// Validate reports every setting that keeps the server from starting.
func (c NetpulseConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.Host) == "" {
		errs = append(errs, fmt.Errorf("API host is not set (api.host or %s)", EnvAPIHost))
	}
	if strings.TrimSpace(c.API.Key) == "" {
		errs = append(errs, fmt.Errorf("API key is not set (api.key or %s)", EnvAPIKey))
	}
	switch c.Server.Transport {
	case TransportStdio, TransportSSE:
	default:
		errs = append(errs, fmt.Errorf("unknown transport %q (expected stdio or sse)", c.Server.Transport))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Server.Port))
	}
	return errors.Join(errs...)
}
