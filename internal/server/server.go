package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"netpulse/internal/pipeline"
	"netpulse/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

const serverName = "netpulse"

// Config holds the transport settings of the MCP server.
type Config struct {
	Version string
	Host    string
	Port    int
}

// Server exposes every catalog tool over MCP.
type Server struct {
	config  Config
	invoker *pipeline.Invoker
	mcp     *server.MCPServer
}

// New registers one MCP tool per catalog entry.
func New(invoker *pipeline.Invoker, config Config) *Server {
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Version == "" {
		config.Version = "dev"
	}

	s := &Server{
		config:  config,
		invoker: invoker,
		mcp: server.NewMCPServer(
			serverName,
			config.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}

	for _, d := range invoker.Registry().List() {
		s.mcp.AddTool(d.Tool, s.handler(d.Name()))
	}
	logging.Debug("Server", "Registered %d tools", invoker.Registry().Len())
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// handler converts every invocation error into an error result so a failing
// tool never breaks the session.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := s.invoker.Invoke(ctx, name, req.GetArguments())
		if err != nil {
			logging.Error("Server", err, "Tool %s failed", name)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// ServeStdio serves JSON-RPC on in/out until ctx is cancelled or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	logging.Info("Server", "Serving %d tools on stdio", s.invoker.Registry().Len())
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

// Addr returns the host:port the SSE transport listens on.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// ServeSSE serves the SSE transport until ctx is cancelled, then shuts it down.
func (s *Server) ServeSSE(ctx context.Context) error {
	sse := server.NewSSEServer(
		s.mcp,
		server.WithBaseURL("http://"+s.Addr()),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server", "Serving %d tools on http://%s/sse", s.invoker.Registry().Len(), s.Addr())
		if err := sse.Start(s.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("sse transport: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Server", "Shutting down SSE transport")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sse.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "Error shutting down SSE transport")
		}
		return nil
	})
	return g.Wait()
}
