package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"netpulse/internal/config"
	"netpulse/pkg/logging"
)

// For mocking in tests
var loadConfig = config.LoadConfig

// Application is the main application structure that bootstraps and runs netpulse
type Application struct {
	config   *Config
	services *Services

	stdin  io.Reader
	stdout io.Writer
}

// NewApplication loads and validates the configuration, sets up logging and
// initializes every service. Logs go to stderr; stdout belongs to the stdio
// transport.
func NewApplication(cfg *Config) (*Application, error) {
	netpulseCfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load netpulse configuration: %w", err)
	}
	cfg.applyOverrides(&netpulseCfg)

	logging.Init(logging.ParseLevel(netpulseCfg.Logging.Level), os.Stderr)

	if err := netpulseCfg.Validate(); err != nil {
		logging.Error("Bootstrap", err, "Invalid configuration")
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Debug("Bootstrap", "Loaded configuration for %s", netpulseCfg.API.Host)

	cfg.NetpulseConfig = &netpulseCfg

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}, nil
}

// Services returns the initialized services.
func (a *Application) Services() *Services {
	return a.services
}

// Run serves MCP on the configured transport until ctx is cancelled or the
// process receives SIGINT/SIGTERM.
func (a *Application) Run(ctx context.Context) error {
	if a.config.NetpulseConfig.Server.Transport == config.TransportSSE {
		return runSSEMode(ctx, a.services)
	}
	return runStdioMode(ctx, a.services, a.stdin, a.stdout)
}
