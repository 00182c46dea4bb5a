// Package server exposes the TexQuill language service over stdio and
// WebSocket transports.
package server

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/texquill/texquill/config"
	"github.com/texquill/texquill/errors"
	"github.com/texquill/texquill/logger"
	"github.com/texquill/texquill/lsp"
)

// Server serves the TexQuill language service to editor clients
type Server struct {
	service     *lsp.Service
	cfg         *config.Config
	logger      *zap.SugaredLogger
	connections atomic.Int64
}

// NewServer creates a server around an LSP service
func NewServer(service *lsp.Service, cfg *config.Config) *Server {
	return &Server{
		service: service,
		cfg:     cfg,
		logger:  logger.Named("server"),
	}
}

// Start listens for WebSocket connections on the given port.
// Blocks until the listener fails.
func (s *Server) Start(port int) error {
	actualPort, err := findAvailablePort(port)
	if err != nil {
		return errors.Wrap(err, "failed to find available port")
	}

	if actualPort != port {
		s.logger.Infow("Port in use, using alternative",
			"requested_port", port,
			"actual_port", actualPort,
		)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.logger.Infow("Server ready",
		"url", fmt.Sprintf("ws://localhost:%d/lsp", actualPort),
		"port", actualPort,
	)

	addr := fmt.Sprintf(":%d", actualPort)
	return http.ListenAndServe(addr, mux)
}

// registerRoutes wires the HTTP endpoints
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/lsp", s.corsMiddleware(s.HandleLSPWebSocket)) // LSP protocol (path completions)
	mux.HandleFunc("/health", s.corsMiddleware(s.HandleHealth))
}

// corsMiddleware adds CORS headers for configured origins
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}
