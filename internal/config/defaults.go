package config

import "netpulse/internal/pipeline"

// GetDefaultConfig returns the configuration used when no file or environment
// variable overrides a setting. It carries no API credentials.
func GetDefaultConfig() NetpulseConfig {
	return NetpulseConfig{
		API: APISettings{
			MaxResponseLength: pipeline.DefaultMaxResponseLength,
		},
		Server: ServerSettings{
			Transport: TransportStdio,
			Host:      "localhost",
			Port:      8080,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}
