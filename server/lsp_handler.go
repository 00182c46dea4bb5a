package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/texquill/texquill/lsp"
)

const serverName = "TexQuill Language Server"

// upgrader validates origins the same way as the HTTP endpoints
func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Direct WebSocket clients and tests send no origin header
			if origin == "" {
				return true
			}
			return s.originAllowed(origin)
		},
	}
}

// protocolHandler builds a GLSP protocol handler around a fresh per-connection
// document cache
func (s *Server) protocolHandler() *protocol.Handler {
	glspHandler := lsp.NewGLSPHandler(s.service, s.logger)

	return &protocol.Handler{
		Initialize:             glspHandler.Initialize,
		Initialized:            glspHandler.Initialized,
		Shutdown:               glspHandler.Shutdown,
		TextDocumentDidOpen:    glspHandler.TextDocumentDidOpen,
		TextDocumentDidChange:  glspHandler.TextDocumentDidChange,
		TextDocumentDidClose:   glspHandler.TextDocumentDidClose,
		TextDocumentCompletion: glspHandler.TextDocumentCompletion,
	}
}

// HandleLSPWebSocket upgrades HTTP to WebSocket and serves LSP protocol
func (s *Server) HandleLSPWebSocket(w http.ResponseWriter, r *http.Request) {
	s.logger.Infow("LSP WebSocket connection request", "remote", r.RemoteAddr)

	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("Failed to upgrade WebSocket", "error", err)
		return
	}

	s.connections.Add(1)
	defer s.connections.Add(-1)

	glspServer := glspserver.NewServer(s.protocolHandler(), serverName, false)

	s.logger.Infow("Serving LSP over WebSocket", "remote", r.RemoteAddr)

	// Serve GLSP over this WebSocket connection
	// This blocks until the connection closes
	glspServer.ServeWebSocket(conn)

	s.logger.Infow("LSP WebSocket connection closed", "remote", r.RemoteAddr)
}

// RunStdio serves the LSP protocol over stdin/stdout.
// This is the transport most editors use; log output goes to stderr.
func (s *Server) RunStdio() error {
	glspServer := glspserver.NewServer(s.protocolHandler(), serverName, false)

	s.logger.Infow("Serving LSP over stdio")
	return glspServer.RunStdio()
}
