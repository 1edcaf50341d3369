package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"voyager/internal/api/health"
	"voyager/internal/metrics"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
)

// ServerConfig contains configuration for HTTP server
type ServerConfig struct {
	Host        string
	Port        int
	ServiceName string
	Version     string
}

// Handlers bundles the route handlers the server mounts
type Handlers struct {
	Health    *health.Handler
	Users     *UserHandler
	Chat      *ChatHandler
	Sessions  *SessionHandler
	AgentInfo *AgentInfoHandler
}

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures HTTP server with all routes
func NewServer(cfg ServerConfig, h Handlers, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	// Health check endpoints (Kubernetes probes)
	mux.HandleFunc("GET /health", h.Health.HandleHealth)
	mux.HandleFunc("GET /ready", h.Health.HandleReadiness)
	mux.HandleFunc("GET /live", h.Health.HandleLiveness)

	// Prometheus metrics endpoint
	mux.Handle("GET /metrics", metrics.Handler())

	// Conversational endpoint
	mux.HandleFunc("POST /chat", h.Chat.HandleChat)

	// Session management
	mux.HandleFunc("GET /sessions", h.Sessions.HandleList)
	mux.HandleFunc("GET /sessions/{id}", h.Sessions.HandleGet)
	mux.HandleFunc("DELETE /sessions/{id}", h.Sessions.HandleDelete)

	// User profile management
	mux.HandleFunc("POST /users", h.Users.HandleCreate)
	mux.HandleFunc("GET /users", h.Users.HandleList)
	mux.HandleFunc("GET /users/{id}", h.Users.HandleGet)
	mux.HandleFunc("PUT /users/{id}", h.Users.HandleUpdate)
	mux.HandleFunc("DELETE /users/{id}", h.Users.HandleDelete)
	mux.HandleFunc("GET /users/{id}/summary", h.Users.HandleSummary)
	mux.HandleFunc("POST /users/{id}/onboarding/complete", h.Users.HandleCompleteOnboarding)

	// Agent tree topology
	mux.HandleFunc("GET /agent/info", h.AgentInfo.HandleInfo)

	// Root endpoint (service info)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"service": cfg.ServiceName,
			"version": cfg.Version,
			"status":  "running",
		})
	})

	port := 8080
	if cfg.Port > 0 {
		port = cfg.Port
	}

	log.Infof("HTTP server configured on port %d", port)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, port),
		Handler:      withCORS(withMetrics(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // agent turns can run long
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Handler exposes the routed handler for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("✓ HTTP server stopped")
	return nil
}
