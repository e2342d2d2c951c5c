package factory

import (
	"fmt"

	"github.com/quixlabs/lead-capture/internal/adapters/anthropic"
	"github.com/quixlabs/lead-capture/internal/config"
	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
)

// LLMFactory creates LLM clients
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateLLMClient creates a new LLM client based on the configuration.
// Anthropic is the only supported provider: the analysis contract is written
// against its exact wire format.
func (f *LLMFactory) CreateLLMClient() (core.LLMClient, error) {
	provider := f.cfg.GetString("llm.provider")

	switch provider {
	case "anthropic":
		factory := anthropic.NewFactory(f.cfg, f.logger)
		return factory.CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
