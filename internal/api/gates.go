package api

import (
	"context"
	"net/http"

	"github.com/strangerlabs/hawkins-core/internal/auth"
)

// Context keys for values the gates attach for downstream handlers.
const (
	// ctxKeyAgent holds the *auth.Claims of the verified bearer token.
	ctxKeyAgent contextKey = "agent"

	// ctxKeyLabID holds the verified X-Hawkins-Lab-ID header value.
	ctxKeyLabID contextKey = "lab_id"
)

// Header names accepted by the static gates.
const (
	headerAPIKey        = "X-API-Key"
	headerHawkinsAPIKey = "X-Hawkins-API-Key"
	headerLabID         = "X-Hawkins-Lab-ID"
)

// requireAgent is the bearer-token gate. It extracts and verifies the
// JWT from the Authorization header and attaches the claims to the
// request context. Absent, malformed, tampered, and expired tokens all
// fail with 401.
func (s *Server) requireAgent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.ExtractBearer(r.Header.Get("Authorization"))
		if token == "" {
			writeUnauthorized(w, "No token provided. Please login first.")
			return
		}

		claims, err := auth.ParseToken(token, s.secCfg.JWT.Secret)
		if err != nil {
			writeUnauthorized(w, "Invalid or expired token.")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyAgent, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAPIKey is the static API-key gate. The key is accepted under
// either header name and compared against the one configured secret,
// with distinct messages for missing vs invalid.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(headerAPIKey)
		if key == "" {
			key = r.Header.Get(headerHawkinsAPIKey)
		}

		if key == "" {
			writeError(w, http.StatusUnauthorized, errKindUnauthorized, "Missing API key", map[string]any{
				"details": "This endpoint requires an API key in the X-API-Key or X-Hawkins-API-Key header.",
			})
			return
		}
		if key != s.secCfg.APIKey {
			writeError(w, http.StatusUnauthorized, errKindUnauthorized, "Invalid API key", map[string]any{
				"details": "The provided API key is not valid.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireLabID is the static custom-header gate: the lab-ID header must
// be present (400 otherwise) and match the configured value (403
// otherwise). The verified value is attached to the context.
func (s *Server) requireLabID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		labID := r.Header.Get(headerLabID)
		if labID == "" {
			writeError(w, http.StatusBadRequest, errKindBadRequest, "Missing required header: X-Hawkins-Lab-ID", map[string]any{
				"details": "This endpoint requires the X-Hawkins-Lab-ID header to be present.",
			})
			return
		}
		if labID != s.secCfg.LabID {
			writeError(w, http.StatusForbidden, errKindForbidden, "Invalid X-Hawkins-Lab-ID header value", map[string]any{
				"details": "Expected format: " + s.secCfg.LabID,
			})
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyLabID, labID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// agentFrom returns the verified claims the bearer gate attached, or
// nil when the route was not gated.
func agentFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ctxKeyAgent).(*auth.Claims)
	return claims
}

// labIDFrom returns the verified lab ID the lab gate attached.
func labIDFrom(ctx context.Context) string {
	labID, _ := ctx.Value(ctxKeyLabID).(string)
	return labID
}
