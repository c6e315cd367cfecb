package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
	"github.com/chatbridge-dev/chatbridge/pkg/auth"
	"github.com/chatbridge-dev/chatbridge/pkg/observability"
	"github.com/chatbridge-dev/chatbridge/pkg/transport"
)

// Server wraps an http.Server with the transport adapter and manages the
// full lifecycle including startup and graceful shutdown.
type Server struct {
	httpServer *http.Server
	adapter    *Adapter
	config     ServerConfig
	logger     *slog.Logger
}

// ServerConfig holds configuration for the transport server.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxBodySize     int64
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	MetricsEnabled  bool
	MetricsPath     string
	DefaultModel    string
	Logger          *slog.Logger
}

// DefaultServerConfig returns a ServerConfig with sensible defaults. The
// long write timeout leaves room for slow synthetic streams.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    120 * time.Second,
		MaxBodySize:     10 << 20, // 10 MB
		ShutdownTimeout: 30 * time.Second,
		AllowedOrigins:  []string{"*"},
		MetricsEnabled:  true,
		MetricsPath:     "/metrics",
		Logger:          slog.Default(),
	}
}

// NewServer creates a transport server around the given handler. Default
// handler middleware (recovery, request ID, logging) and HTTP middleware
// (metrics, credential passthrough) are applied automatically.
func NewServer(handler transport.CompletionHandler, cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	adapterCfg := Config{
		Addr:           cfg.Addr,
		MaxBodySize:    cfg.MaxBodySize,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.DefaultModel != "" {
		adapterCfg.Models = []api.Model{
			{ID: cfg.DefaultModel, Object: "model", OwnedBy: "chatbridge"},
		}
	}

	adapter := NewAdapter(handler, adapterCfg,
		transport.Recovery(),
		transport.RequestID(),
		transport.Logging(cfg.Logger),
	)

	mux := http.NewServeMux()
	mux.Handle("/", adapter.Handler())
	if cfg.MetricsEnabled {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, promhttp.Handler())
	}

	var h http.Handler = mux
	h = auth.Middleware(auth.DefaultBypassEndpoints)(h)
	h = observability.MetricsMiddleware(h)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      h,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		adapter: adapter,
		config:  cfg,
		logger:  cfg.Logger,
	}
}

// Handler returns the fully composed http.Handler, for tests and for
// embedding into another server.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the server and blocks until ctx is cancelled or
// the listener fails. On cancellation the server shuts down gracefully
// within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", "addr", s.config.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
