package api

import (
	"net/http"
	"time"

	"github.com/strangerlabs/hawkins-core/internal/world"
)

// handleHealth returns the liveness status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "operational",
		"message":   "Hawkins Lab is online",
		"version":   s.version,
		"timestamp": time.Now().UTC(),
	})
}

// handleRoot returns the service banner and endpoint index.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to Stranger APIs - Hawkins Lab Mission Control",
		"version": s.version,
		"endpoints": map[string]string{
			"health":         "/health",
			"auth":           "/auth/login",
			"session":        "/auth/session",
			"map":            "/hawkins/map",
			"portal":         "/hawkins/open",
			"evidence":       "/hawkins/evidence/{evidenceId}",
			"experiments":    "/hawkins/experiments",
			"inventory":      "/inventory",
			"useItem":        "/inventory/use-item",
			"monsters":       "/monsters/{id}",
			"gate":           "/gate/{gateId}",
			"uploadEvidence": "/lab/upload-evidence",
			"glitch":         "/upside-down/glitch",
			"worldState":     "/world-state",
			"detailedLogs":   "/logs/detailed",
			"logStream":      "/logs/stream",
		},
	})
}

// handleWorldState returns the dashboard snapshot: gate, monsters,
// spikes, and the summary view of the request log.
func (s *Server) handleWorldState(w http.ResponseWriter, _ *http.Request) {
	doc, err := s.world.State()
	if err != nil {
		s.logger.Error("world state read failed", "error", err)
		writeInternalError(w, "failed to read world state")
		return
	}

	logs, err := s.world.RecentLogs(world.SummaryLogLimit)
	if err != nil {
		s.logger.Error("log read failed", "error", err)
		writeInternalError(w, "failed to read request logs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"gateOpen":     doc.GateOpen,
		"monsters":     doc.Monsters,
		"energySpikes": doc.EnergySpikes,
		"logs":         logs,
	})
}

// handleDetailedLogs returns the detailed view of the request log.
func (s *Server) handleDetailedLogs(w http.ResponseWriter, _ *http.Request) {
	logs, err := s.world.RecentLogs(world.DetailedLogLimit)
	if err != nil {
		s.logger.Error("log read failed", "error", err)
		writeInternalError(w, "failed to read request logs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"logs":    logs,
		"count":   len(logs),
		"message": "Detailed request logs retrieved",
	})
}
