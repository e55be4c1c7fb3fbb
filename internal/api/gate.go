package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleCloseGate closes the gate. Bearer-gated.
//
// Any gate identifier is accepted and echoed back without validation.
// There is conceptually one gate; the permissive id is a documented
// quirk of the playground, kept as-is.
func (s *Server) handleCloseGate(w http.ResponseWriter, r *http.Request) {
	gateID := chi.URLParam(r, "gateId")

	if err := s.world.SetGate(false); err != nil {
		s.logger.Error("gate close failed", "error", err)
		writeInternalError(w, "failed to close gate")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf("Gate %s has been closed. The Upside Down is sealed.", gateID),
		"gateOpen": false,
	})
}
