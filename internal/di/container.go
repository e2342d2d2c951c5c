package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/quixlabs/lead-capture/internal/adapters/auth"
	"github.com/quixlabs/lead-capture/internal/adapters/httpserver"
	"github.com/quixlabs/lead-capture/internal/adapters/webhook"
	"github.com/quixlabs/lead-capture/internal/config"
	"github.com/quixlabs/lead-capture/internal/core"
	"github.com/quixlabs/lead-capture/internal/factory"
	"github.com/quixlabs/lead-capture/internal/logging"
	"github.com/quixlabs/lead-capture/internal/ports"
)

// sessionCleanupFreq is how often expired sessions are swept
const sessionCleanupFreq = 15 * time.Minute

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewHistoryFactory); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register history repository (nil when disabled)
	if err := container.Provide(func(f *factory.HistoryFactory) (core.HistoryRepository, error) {
		return f.CreateHistoryRepository()
	}); err != nil {
		return nil, err
	}

	// Register webhook forwarder
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.WebhookForwarder, error) {
		webhookCfg, err := cfg.GetWebhook()
		if err != nil {
			return nil, err
		}
		if webhookCfg.URL != "" {
			logger.Info("Analysis webhook configured", zap.String("url", webhookCfg.URL))
		}
		return webhook.NewForwarder(webhookCfg.URL, webhookCfg.Timeout, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register identity provider
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (ports.IdentityProvider, error) {
		authCfg, err := cfg.GetAuth()
		if err != nil {
			return nil, err
		}
		return auth.NewMemoryProvider(authCfg.Users, authCfg.AdminPassword, logger)
	}); err != nil {
		return nil, err
	}

	// Register session store
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (*auth.SessionStore, error) {
		authCfg, err := cfg.GetAuth()
		if err != nil {
			return nil, err
		}
		return auth.NewSessionStore(authCfg.SecretKey, authCfg.SessionTTL, sessionCleanupFreq, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register enrichment service
	if err := container.Provide(core.NewEnrichmentService); err != nil {
		return nil, err
	}

	// Register web server
	if err := container.Provide(func(
		service *core.EnrichmentService,
		identity ports.IdentityProvider,
		sessions *auth.SessionStore,
		history core.HistoryRepository,
		cfg *config.Config,
		logger *zap.Logger,
	) ports.WebServer {
		serverCfg := cfg.GetServer()
		return httpserver.NewWebServer(
			service,
			identity,
			sessions,
			history,
			logger,
			serverCfg.ListenAddress,
			serverCfg.CORSEnabled,
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
