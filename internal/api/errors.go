package api

import (
	"encoding/json"
	"net/http"
)

// Error kinds shared by every error envelope. The envelope shape is
// {error, message, ...context}; context carries the offending field or
// identifier where one exists.
const (
	errKindBadRequest       = "Bad Request"
	errKindValidation       = "Validation Error"
	errKindUnauthorized     = "Unauthorized"
	errKindForbidden        = "Forbidden"
	errKindNotFound         = "Not Found"
	errKindPayloadTooLarge  = "Payload Too Large"
	errKindUnsupportedMedia = "Unsupported Media Type"
	errKindUnavailable      = "Service Unavailable"
	errKindInternal         = "Internal Server Error"
)

// fieldError is one entry of a validation failure's details array.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error envelope with optional context
// fields merged in.
func writeError(w http.ResponseWriter, status int, kind, message string, extra map[string]any) {
	envelope := map[string]any{
		"error":   kind,
		"message": message,
	}
	for k, v := range extra {
		envelope[k] = v
	}
	writeJSON(w, status, envelope)
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, errKindBadRequest, message, nil)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string, extra map[string]any) {
	writeError(w, http.StatusNotFound, errKindNotFound, message, extra)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, errKindUnauthorized, message, nil)
}

// writeValidationError writes a 422 response with per-field details.
func writeValidationError(w http.ResponseWriter, details []fieldError) {
	writeError(w, http.StatusUnprocessableEntity, errKindValidation, "Invalid request data", map[string]any{
		"details": details,
	})
}

// writeInternalError writes a 500 error response. No internal detail is
// leaked to the client; the cause belongs in the server log.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, errKindInternal, message, nil)
}
