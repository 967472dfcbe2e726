package app

import (
	"fmt"

	"netpulse/internal/catalog"
	"netpulse/internal/graphql"
	"netpulse/internal/pipeline"
	"netpulse/internal/server"
	"netpulse/internal/tool"
)

// Services holds all the initialized services
type Services struct {
	Registry *tool.Registry
	Client   *graphql.Client
	Invoker  *pipeline.Invoker
	Server   *server.Server
}

// InitializeServices builds the tool registry, the downstream client, the
// invocation pipeline and the MCP server from a loaded configuration.
func InitializeServices(cfg *Config) (*Services, error) {
	nc := cfg.NetpulseConfig
	if nc == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	registry, err := catalog.New(nc.API.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool catalog: %w", err)
	}

	client, err := graphql.New(nc.API.Host, nc.API.Key, graphql.WithVersion(cfg.Version))
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	invoker := pipeline.NewInvoker(registry, client, pipeline.NewFinalizer(nc.API.MaxResponseLength))

	srv := server.New(invoker, server.Config{
		Version: cfg.Version,
		Host:    nc.Server.Host,
		Port:    nc.Server.Port,
	})

	return &Services{
		Registry: registry,
		Client:   client,
		Invoker:  invoker,
		Server:   srv,
	}, nil
}
