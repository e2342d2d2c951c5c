package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/quixlabs/lead-capture/internal/adapters/auth"
	"github.com/quixlabs/lead-capture/internal/core"
	"github.com/quixlabs/lead-capture/internal/utils"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 20

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *WebServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *WebServer) handleAnalyzeEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	record, err := s.service.Enrich(r.Context(), core.EnrichmentRequest{
		Email:       req.Email,
		RequestedBy: usernameFrom(r.Context()),
	})
	if err != nil {
		s.writeEnrichError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// writeEnrichError maps the core error taxonomy onto the response bodies the
// frontend expects. Diagnostics are redacted; the API key never appears.
func (s *WebServer) writeEnrichError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrEmailRequired) {
		writeJSONError(w, http.StatusBadRequest, "Email is required")
		return
	}

	var transportErr *core.ProviderTransportError
	if errors.As(err, &transportErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":       "Failed to analyze email",
			"status_code": transportErr.StatusCode,
			"details":     utils.RedactSecrets(transportErr.Details),
		})
		return
	}

	var parseErr *core.ParseError
	if errors.As(err, &parseErr) {
		body := map[string]interface{}{
			"error":   "Error parsing API response",
			"details": parseErr.Details,
		}
		if json.Valid(parseErr.Raw) {
			body["raw_response"] = json.RawMessage(parseErr.Raw)
		} else {
			body["raw_response"] = string(parseErr.Raw)
		}
		writeJSON(w, http.StatusInternalServerError, body)
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"error":   "An error occurred",
		"details": utils.RedactSecrets(err.Error()),
	})
}

func (s *WebServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.history == nil {
		writeJSONError(w, http.StatusNotFound, "history is not enabled")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := s.history.List(r.Context(), usernameFrom(r.Context()), limit)
	if err != nil {
		s.logger.Error("Failed to list analysis history", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	results := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		results = append(results, map[string]interface{}{
			"id":                  entry.ID,
			"email":               entry.Email,
			"requested_by":        entry.RequestedBy,
			"company_domain":      entry.CompanyDomain,
			"linkedin_profile":    entry.LinkedinProfile,
			"cheat_sheet_bullets": entry.CheatSheetBullets,
			"created_at":          entry.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": results})
}

func (s *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.renderPage(w, indexTemplate, indexData{
		Username:       usernameFrom(r.Context()),
		HistoryEnabled: s.history != nil,
	})
}

func (s *WebServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderPage(w, loginTemplate, loginData{})

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			s.renderPage(w, loginTemplate, loginData{Flash: "Invalid form submission"})
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		identity, err := s.identity.Authenticate(r.Context(), username, password)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidCredentials) {
				s.logger.Error("Authentication failed", zap.Error(err))
			}
			s.renderPage(w, loginTemplate, loginData{Flash: "Invalid username or password"})
			return
		}

		token := s.sessions.Issue(identity.Username)
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		s.logger.Info("User logged in", zap.String("username", identity.Username))
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *WebServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.Revoke(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
