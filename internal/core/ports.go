package core

import (
	"context"
)

// LLMClient defines the interface for the completion provider
type LLMClient interface {
	// Complete sends one prompt and returns the provider's raw response
	// envelope. Non-success statuses surface as *ProviderTransportError.
	Complete(ctx context.Context, prompt string) ([]byte, error)
}

// WebhookForwarder delivers enriched records downstream. Delivery is
// best-effort; implementations log failures and never propagate them.
type WebhookForwarder interface {
	Forward(ctx context.Context, record Record)
}

// HistoryRepository stores completed analyses
type HistoryRepository interface {
	// Save appends one completed analysis
	Save(ctx context.Context, entry *AnalysisEntry) error

	// List returns the most recent analyses for a user, newest first
	List(ctx context.Context, requestedBy string, limit int) ([]*AnalysisEntry, error)

	// Cleanup removes entries older than the retention window
	Cleanup(ctx context.Context) error
}
