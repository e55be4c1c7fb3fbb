package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/strangerlabs/hawkins-core/internal/world"
)

// handleListInventory returns all inventory items.
func (s *Server) handleListInventory(w http.ResponseWriter, _ *http.Request) {
	items, err := s.world.Inventory()
	if err != nil {
		s.logger.Error("inventory read failed", "error", err)
		writeInternalError(w, "failed to read inventory")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":   items,
		"message": "Inventory retrieved successfully",
	})
}

// handleUseItem decrements an item's quantity. Bearer-gated.
func (s *Server) handleUseItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID any `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	id, ok := intFromAny(req.ItemID)
	if !ok {
		writeError(w, http.StatusBadRequest, errKindBadRequest, "item_id is required", map[string]any{
			"field": "item_id",
		})
		return
	}

	item, err := s.world.UseItem(id)
	if err != nil {
		switch {
		case errors.Is(err, world.ErrItemNotFound):
			writeNotFound(w, fmt.Sprintf("Item with ID %d not found", id), map[string]any{
				"item_id": id,
			})
		case errors.Is(err, world.ErrOutOfStock):
			writeError(w, http.StatusBadRequest, errKindBadRequest, "Out of stock", map[string]any{
				"item_id": id,
			})
		default:
			s.logger.Error("item use failed", "error", err)
			writeInternalError(w, "failed to use item")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":           fmt.Sprintf("Used %s", item.Name),
		"item":              item,
		"remainingQuantity": item.Quantity,
	})
}

// intFromAny coerces a decoded JSON value (number or numeric string)
// into an int. Clients practising the API send both.
func intFromAny(v any) (int, bool) {
	switch value := v.(type) {
	case float64:
		return int(value), true
	case string:
		id, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
