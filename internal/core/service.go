package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EnrichmentService is the core service producing sales cheat sheets
type EnrichmentService struct {
	llm       LLMClient
	forwarder WebhookForwarder
	history   HistoryRepository
	logger    *zap.Logger
}

// NewEnrichmentService creates a new enrichment service. history may be nil
// when the history store is disabled.
func NewEnrichmentService(
	llm LLMClient,
	forwarder WebhookForwarder,
	history HistoryRepository,
	logger *zap.Logger,
) *EnrichmentService {
	return &EnrichmentService{
		llm:       llm,
		forwarder: forwarder,
		history:   history,
		logger:    logger,
	}
}

// Enrich runs one request end to end: prompt, completion call, parse, merge,
// webhook dispatch. Every failure is terminal for the request; nothing is
// retried.
func (s *EnrichmentService) Enrich(ctx context.Context, req EnrichmentRequest) (Record, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, ErrEmailRequired
	}

	prompt := BuildPrompt(req.Email)

	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		var transportErr *ProviderTransportError
		if errors.As(err, &transportErr) {
			s.logger.Error("Provider rejected completion call",
				zap.Int("status_code", transportErr.StatusCode),
				zap.String("details", transportErr.Details))
		} else {
			s.logger.Error("Completion call failed", zap.Error(err))
		}
		return nil, err
	}

	record, err := ParseCompletion(raw)
	if err != nil {
		s.logger.Error("Failed to parse completion", zap.Error(err))
		return nil, err
	}

	record[FieldEmail] = req.Email
	record[FieldRequestedBy] = req.RequestedBy

	// The record is read-only from here on, so handing it to the detached
	// delivery goroutine is safe.
	go s.deliver(record)

	s.recordHistory(ctx, req, record)

	return record, nil
}

// deliver dispatches the webhook without tying its outcome to the caller's
// response. The forwarder logs and discards its own failures; the fresh
// context keeps delivery alive after the request handler returns.
func (s *EnrichmentService) deliver(record Record) {
	s.forwarder.Forward(context.Background(), record)
}

// recordHistory appends the analysis to the history store when one is
// configured. Best-effort: a store failure never fails the request.
func (s *EnrichmentService) recordHistory(ctx context.Context, req EnrichmentRequest, record Record) {
	if s.history == nil {
		return
	}

	entry := &AnalysisEntry{
		ID:                uuid.NewString(),
		Email:             req.Email,
		RequestedBy:       req.RequestedBy,
		CompanyDomain:     record.StringField(FieldCompanyDomain),
		LinkedinProfile:   record.StringField(FieldLinkedinProfile),
		CheatSheetBullets: record.StringField(FieldCheatSheetBullets),
		CreatedAt:         time.Now(),
	}
	if err := s.history.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to record analysis history", zap.Error(err))
	}
}
