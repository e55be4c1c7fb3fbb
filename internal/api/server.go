package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/strangerlabs/hawkins-core/internal/infrastructure/config"
	"github.com/strangerlabs/hawkins-core/internal/infrastructure/logging"
	"github.com/strangerlabs/hawkins-core/internal/world"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config     config.ServerConfig
	Security   config.SecurityConfig
	UpsideDown config.UpsideDownConfig
	WS         config.WebSocketConfig
	Logger     *logging.Logger
	World      *world.World
	Version    string
}

// Server is the HTTP API server for Hawkins Lab Core.
//
// It manages the HTTP listener, routes, middleware, and the WebSocket
// log-stream hub. Create with New() and start with Start().
type Server struct {
	cfg     config.ServerConfig
	secCfg  config.SecurityConfig
	udCfg   config.UpsideDownConfig
	wsCfg   config.WebSocketConfig
	logger  *logging.Logger
	world   *world.World
	version string
	server  *http.Server
	hub     *Hub
	cancel  context.CancelFunc
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.World == nil {
		return nil, fmt.Errorf("world state is required")
	}

	return &Server{
		cfg:     deps.Config,
		secCfg:  deps.Security,
		udCfg:   deps.UpsideDown,
		wsCfg:   deps.WS,
		logger:  deps.Logger,
		world:   deps.World,
		version: deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub and launches the HTTP listener in a
// background goroutine. The server can be stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if s.hub == nil {
		s.hub = NewHub(s.wsCfg, s.logger)
		go s.hub.Run(srvCtx)
	}

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       s.cfg.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.ReadTimeout(),
		WriteTimeout:      s.cfg.WriteTimeout(),
		IdleTimeout:       s.cfg.IdleTimeout(),
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("Hawkins Lab online", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the API server, waiting up to 10 seconds
// for in-flight requests to complete.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
