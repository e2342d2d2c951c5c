package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	messagesPath = "/v1/messages"

	// apiVersion is a protocol requirement of the Messages API; the remote
	// side rejects calls without it.
	apiVersion = "2023-06-01"

	roleUser = "user"
)

// Client is an implementation of the LLMClient interface speaking the
// Anthropic Messages wire format
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	limiter    *rate.Limiter
	logger     *zap.Logger
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

// NewClient creates a new Messages API client. rateLimitRPS <= 0 disables the
// outbound limiter.
func NewClient(
	apiKey string,
	baseURL string,
	model string,
	maxTokens int,
	timeout time.Duration,
	rateLimitRPS float64,
	logger *zap.Logger,
) *Client {
	var limiter *rate.Limiter
	if rateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateLimitRPS), 1)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		maxTokens:  maxTokens,
		limiter:    limiter,
		logger:     logger,
	}
}

// Complete sends one prompt as a single user message and returns the raw
// response envelope. One attempt per call: retries are a policy decision that
// belongs to whoever wraps this client.
func (c *Client) Complete(ctx context.Context, prompt string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	payload, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []message{{Role: roleUser, Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("anthropic-version", apiVersion)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		details := strings.TrimSpace(string(body))
		if details == "" {
			details = "No error details available"
		}
		return nil, &core.ProviderTransportError{
			StatusCode: resp.StatusCode,
			Details:    details,
		}
	}

	c.logger.Debug("Completion received",
		zap.String("model", c.model),
		zap.Int("response_bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	return body, nil
}
