package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"netpulse/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// runStdioMode serves JSON-RPC over in/out.
func runStdioMode(ctx context.Context, services *Services, in io.Reader, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return services.Server.ServeStdio(ctx, in, out)
}

// runSSEMode serves the SSE transport until a signal arrives.
func runSSEMode(ctx context.Context, services *Services) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return services.Server.ServeSSE(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("CLI", "Shutting down")
		return nil
	})
	return g.Wait()
}
