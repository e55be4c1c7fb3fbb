package api

import (
	"encoding/json"
	"net/http"

	"github.com/strangerlabs/hawkins-core/internal/auth"
)

// sessionCookieName is the cookie set by POST /auth/session.
const sessionCookieName = "hawkins_session"

// credentialsRequest is the body for both login and session issuance.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// checkCredentials validates the request body against the configured
// credential pair, writing the error response itself on failure.
func (s *Server) checkCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return req, false
	}

	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "Username and password are required")
		return req, false
	}

	if req.Username != s.secCfg.Credentials.Username || req.Password != s.secCfg.Credentials.Password {
		writeUnauthorized(w, "Invalid credentials")
		return req, false
	}

	return req, true
}

// handleLogin authenticates the configured credential pair and returns
// a signed bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := s.checkCredentials(w, r)
	if !ok {
		return
	}

	token, err := auth.GenerateToken(req.Username, auth.RoleAgent, s.secCfg.JWT.Secret, s.secCfg.TokenTTL())
	if err != nil {
		s.logger.Error("token generation failed", "error", err)
		writeInternalError(w, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"message": "Authentication successful. Welcome to Hawkins Lab.",
	})
}

// handleSession performs the identical credential check but delivers
// the token as an http-only, same-site-strict cookie instead of the
// body: the cookie twin of handleLogin.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	req, ok := s.checkCredentials(w, r)
	if !ok {
		return
	}

	token, err := auth.GenerateToken(req.Username, auth.RoleAgent, s.secCfg.JWT.Secret, s.secCfg.TokenTTL())
	if err != nil {
		s.logger.Error("token generation failed", "error", err)
		writeInternalError(w, "failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.secCfg.TokenTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Session created successfully. Cookie set.",
		"sessionActive": true,
	})
}
