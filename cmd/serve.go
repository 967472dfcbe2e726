package cmd

import (
	"context"
	"fmt"

	"netpulse/internal/app"

	"github.com/spf13/cobra"
)

// serveOptions holds the flags of the serve command.
type serveOptions struct {
	transport string
	host      string
	port      int
	debug     bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the netpulse MCP server",
		Long: `Starts the MCP server and registers every catalog tool.

Two transports are available:

1. stdio (default):
   - JSON-RPC on stdin/stdout, for assistants that launch netpulse as a subprocess.
   - Logs go to stderr.

2. sse (--transport sse):
   - HTTP server-sent events on http://<host>:<port>/sse, messages on /message.
   - Runs until interrupted (Ctrl+C).

Configuration:
  netpulse loads ~/.config/netpulse/config.yaml, then ./.netpulse/config.yaml,
  then the NETPULSE_* environment variables. NETPULSE_API_HOST and
  NETPULSE_API_KEY are required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", "", "Transport to serve on: stdio or sse (default from config)")
	cmd.Flags().StringVar(&opts.host, "host", "", "Listen host for the sse transport")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Listen port for the sse transport")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	return cmd
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg := app.NewConfig(opts.transport, opts.debug, rootCmd.Version)
	cfg.Host = opts.host
	cfg.Port = opts.port

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}
