package server

import (
	"net/http"

	"github.com/texquill/texquill/version"
)

// HandleHealth serves a liveness probe with build information
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	health := map[string]interface{}{
		"status":      "ok",
		"version":     versionInfo.Version,
		"commit":      versionInfo.CommitHash,
		"build_time":  versionInfo.BuildTime,
		"connections": s.connections.Load(),
	}

	writeJSON(w, http.StatusOK, health)
}
