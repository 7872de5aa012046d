package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/matrixdeck"
	"github.com/aretw0/matrixdeck/internal/logging"
	"github.com/aretw0/matrixdeck/pkg/domain"
)

// StateURI names the resource holding the current snapshot.
const StateURI = "matrixdeck://state"

// Navigator is the presenter surface the MCP tools drive.
// Every call must be safe from arbitrary goroutines.
type Navigator interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Advance(ctx context.Context) (domain.Snapshot, error)
	Retreat(ctx context.Context) (domain.Snapshot, error)
	GoTo(ctx context.Context, n int) (domain.Snapshot, error)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// Server exposes a Navigator as an MCP server so agents can drive the presentation.
type Server struct {
	nav       Navigator
	logger    *slog.Logger
	mcpServer *server.MCPServer
	http      *http.Server
}

// NewServer registers the navigation tools for nav.
func NewServer(nav Navigator, opts ...Option) *Server {
	s := &Server{
		nav:       nav,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("matrixdeck", matrixdeck.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio serves on stdin and stdout. It cannot share a terminal with the presenter.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Handler returns the streamable HTTP endpoint mounted at /mcp.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s.mcpServer))
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	})(mux)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening", "addr", addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop mcp server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("next",
		mcp.WithDescription("Advance to the next slide. At the last slide nothing changes."),
		mcp.WithOutputSchema[domain.Snapshot](),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, err := s.nav.Advance(ctx)
		return s.result("next", snap, err)
	})

	s.mcpServer.AddTool(mcp.NewTool("prev",
		mcp.WithDescription("Go back to the previous slide. At the first slide nothing changes."),
		mcp.WithOutputSchema[domain.Snapshot](),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, err := s.nav.Retreat(ctx)
		return s.result("prev", snap, err)
	})

	s.mcpServer.AddTool(mcp.NewTool("goto",
		mcp.WithDescription("Jump to a slide by its 1-based position. Out-of-range positions are an error."),
		mcp.WithNumber("n", mcp.Required(), mcp.Description("1-based slide position")),
		mcp.WithOutputSchema[domain.Snapshot](),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := request.RequireInt("n")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		snap, err := s.nav.GoTo(ctx, n)
		return s.result("goto", snap, err)
	})

	s.mcpServer.AddTool(mcp.NewTool("state",
		mcp.WithDescription("Report the current slide, the counter and which controls are enabled."),
		mcp.WithOutputSchema[domain.Snapshot](),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, err := s.nav.Snapshot(ctx)
		return s.result("state", snap, err)
	})
}

func (s *Server) result(op string, snap domain.Snapshot, err error) (*mcp.CallToolResult, error) {
	switch {
	case err == nil:
		jsonBytes, _ := json.Marshal(snap)
		return mcp.NewToolResultStructured(snap, string(jsonBytes)), nil
	case errors.Is(err, domain.ErrInvalidSlideIndex):
		return mcp.NewToolResultError(err.Error()), nil
	default:
		s.logger.Error("mcp tool failed", "op", op, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", op, err)), nil
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(StateURI, "Current slide",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snap, err := s.nav.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read state: %w", err)
		}
		jsonBytes, _ := json.Marshal(snap)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      StateURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
