package anthropic

import (
	"fmt"

	"github.com/quixlabs/lead-capture/internal/config"
	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
)

// Factory creates Anthropic LLM clients
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Anthropic client factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new Messages API client from configuration
func (f *Factory) CreateClient() (core.LLMClient, error) {
	anthropicCfg, err := f.cfg.GetAnthropic()
	if err != nil {
		return nil, fmt.Errorf("invalid anthropic configuration: %w", err)
	}

	if anthropicCfg.APIKey == "" {
		// Startup still succeeds so the login surface stays reachable; the
		// provider rejects calls until a key is configured.
		f.logger.Warn("Anthropic API key is not configured")
	}

	return NewClient(
		anthropicCfg.APIKey,
		anthropicCfg.BaseURL,
		anthropicCfg.Model,
		anthropicCfg.MaxTokens,
		anthropicCfg.Timeout,
		anthropicCfg.RateLimitRPS,
		f.logger,
	), nil
}
