package api

import (
	"math/rand"
	"net/http"
	"time"
)

// handleGlitch randomly fails with 503 at the configured rate. It
// exists so API clients can practise retry logic against a genuinely
// flaky endpoint.
func (s *Server) handleGlitch(w http.ResponseWriter, _ *http.Request) {
	if rand.Float64()*100 < s.udCfg.GlitchFailureRate {
		writeError(w, http.StatusServiceUnavailable, errKindUnavailable,
			"The Upside Down is glitching. Try again later.", map[string]any{
				"glitch":    true,
				"timestamp": time.Now().UTC(),
			})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Connection stable. No glitches detected.",
		"glitch":    false,
		"timestamp": time.Now().UTC(),
	})
}
