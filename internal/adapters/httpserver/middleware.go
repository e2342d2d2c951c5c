package httpserver

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type contextKey string

// identityKey carries the authenticated username through the request context
const identityKey contextKey = "identity"

const sessionCookieName = "session"

// usernameFrom returns the authenticated username placed in the context by
// the auth middleware
func usernameFrom(ctx context.Context) string {
	if username, ok := ctx.Value(identityKey).(string); ok {
		return username
	}
	return ""
}

// authenticate resolves the session cookie to a username
func (s *WebServer) authenticate(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	return s.sessions.Resolve(cookie.Value)
}

// requireAPI wraps API handlers: unauthenticated calls get 401 JSON
func (s *WebServer) requireAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := s.authenticate(r)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), identityKey, username)))
	}
}

// requirePage wraps page handlers: unauthenticated requests redirect to /login
func (s *WebServer) requirePage(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := s.authenticate(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), identityKey, username)))
	}
}

func (s *WebServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *WebServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
