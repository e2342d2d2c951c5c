package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
)

// Forwarder is an implementation of the WebhookForwarder interface posting
// enriched records to a configured URL. Delivery is fire-and-forget: every
// failure is logged and discarded, and the bounded client timeout caps how
// long a delivery attempt can run.
type Forwarder struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewForwarder creates a new webhook forwarder. An empty URL disables
// forwarding entirely.
func NewForwarder(url string, timeout time.Duration, logger *zap.Logger) *Forwarder {
	return &Forwarder{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Forward posts the record as JSON. Never returns an error: the outcome of a
// delivery must not influence the primary response path.
func (f *Forwarder) Forward(ctx context.Context, record core.Record) {
	if f.url == "" {
		return
	}

	body, err := json.Marshal(record)
	if err != nil {
		f.logger.Warn("Failed to marshal webhook payload", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		f.logger.Warn("Failed to build webhook request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn("Webhook delivery failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("Webhook delivery rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.String("url", f.url))
		return
	}

	f.logger.Debug("Webhook delivered", zap.String("url", f.url))
}
