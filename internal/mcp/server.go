package mcp

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfeed/internal/api"
	"github.com/honeycarbs/jobfeed/internal/config"
	"github.com/honeycarbs/jobfeed/pkg/logging"
)

const streamPath = "/mcp/stream"

// Server serves the REST feed API and the MCP stream from one listener
type Server struct {
	logger *logging.Logger
	config config.Config

	srv     *http.Server
	started atomic.Bool

	cleanup     func()
	cleanupOnce sync.Once
}

// NewServer builds the HTTP server. cleanup releases the resources and runs
// once, after the listener has drained.
func NewServer(log *logging.Logger, cfg config.Config, res *Resources, cleanup func()) *Server {
	impl := &sdkmcp.Implementation{
		Name:    "jobfeed",
		Version: "0.1.0",
	}

	mcpServer := sdkmcp.NewServer(impl, nil)
	NewToolRegistry(log).RegisterAll(mcpServer, res)

	stream := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(streamPath, stream)
	mux.Handle("/", api.NewHandler(res.Feed, log))

	if cleanup == nil {
		cleanup = func() {}
	}

	return &Server{
		logger: log,
		config: cfg,
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		cleanup: cleanup,
	}
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("job feed server listening", "addr", s.srv.Addr, "mcp", streamPath)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for job feed server")
	err := s.srv.Shutdown(ctx)
	s.cleanupOnce.Do(s.cleanup)
	if err != nil {
		s.logger.Warn("job feed server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("job feed server shutdown complete")
	return nil
}
