package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware. The capture stage runs innermost so it sees
	// the route parameters chi resolved and the final status code.
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)
	r.Use(s.captureMiddleware)

	// Liveness and info (no gates)
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	// Dashboard reads
	r.Get("/world-state", s.handleWorldState)
	r.Get("/logs/detailed", s.handleDetailedLogs)

	// Live log stream (API-key gate)
	r.With(s.requireAPIKey).Get("/logs/stream", s.handleLogStream)

	// Auth flows
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/session", s.handleSession)
	})

	// Hawkins town surface
	r.Route("/hawkins", func(r chi.Router) {
		r.Get("/map", s.handleMap)
		r.Post("/open", s.handleOpenPortal)
		r.Get("/evidence/{evidenceId}", s.handleGetEvidence)
		r.Post("/experiments", s.handleCreateExperiment)
	})

	// Inventory
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", s.handleListInventory)
		r.With(s.requireAgent).Post("/use-item", s.handleUseItem)
	})

	// Monsters
	r.Patch("/monsters/{id}", s.handleDamageMonster)

	// Gate control (bearer gate)
	r.With(s.requireAgent).Delete("/gate/{gateId}", s.handleCloseGate)

	// Evidence upload (lab-ID gate)
	r.With(s.requireLabID).Post("/lab/upload-evidence", s.handleUploadEvidence)

	// Flaky endpoint for retry practice
	r.Get("/upside-down/glitch", s.handleGlitch)

	return r
}
