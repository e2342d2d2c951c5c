package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/quixlabs/lead-capture/internal/adapters/auth"
	"github.com/quixlabs/lead-capture/internal/core"
	"github.com/quixlabs/lead-capture/internal/ports"
	"go.uber.org/zap"
)

// WebServer serves the login pages and the analysis API over HTTP
type WebServer struct {
	service     *core.EnrichmentService
	identity    ports.IdentityProvider
	sessions    *auth.SessionStore
	history     core.HistoryRepository
	logger      *zap.Logger
	listenAddr  string
	corsEnabled bool
	server      *http.Server
}

// NewWebServer creates a new web server. history may be nil when the history
// store is disabled; the history route then answers 404.
func NewWebServer(
	service *core.EnrichmentService,
	identity ports.IdentityProvider,
	sessions *auth.SessionStore,
	history core.HistoryRepository,
	logger *zap.Logger,
	listenAddr string,
	corsEnabled bool,
) *WebServer {
	return &WebServer{
		service:     service,
		identity:    identity,
		sessions:    sessions,
		history:     history,
		logger:      logger,
		listenAddr:  listenAddr,
		corsEnabled: corsEnabled,
	}
}

// handler builds the route table with the middleware chain applied
func (s *WebServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.requirePage(s.handleIndex))
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/analyze-email", s.requireAPI(s.handleAnalyzeEmail))
	mux.HandleFunc("/api/history", s.requireAPI(s.handleHistory))

	var handler http.Handler = mux
	if s.corsEnabled {
		handler = s.corsMiddleware(handler)
	}
	handler = s.loggingMiddleware(handler)

	return handler
}

// Start starts the web server
func (s *WebServer) Start() error {
	s.server = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	s.logger.Info("Web server starting", zap.String("address", s.listenAddr))

	// Start the server in a goroutine
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the web server down gracefully
func (s *WebServer) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
