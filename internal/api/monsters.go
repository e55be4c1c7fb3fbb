package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/strangerlabs/hawkins-core/internal/world"
)

// handleDamageMonster applies damage to a monster. Health floors at
// zero; already-dead monsters accept further damage as a no-op.
func (s *Server) handleDamageMonster(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid monster id. Must be a number.")
		return
	}

	var req struct {
		Damage any `json:"damage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	damage, ok := req.Damage.(float64)
	if !ok || damage <= 0 {
		writeBadRequest(w, "Valid damage value (positive number) is required")
		return
	}

	monster, err := s.world.DamageMonster(id, int(damage))
	if err != nil {
		if errors.Is(err, world.ErrMonsterNotFound) {
			writeNotFound(w, "Monster not found", nil)
			return
		}
		s.logger.Error("monster damage failed", "error", err)
		writeInternalError(w, "failed to damage monster")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%s took %d damage", monster.Name, int(damage)),
		"monster": monster,
	})
}
