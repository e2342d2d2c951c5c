package config

import "time"

// ServerConfig represents the configuration for the HTTP server
type ServerConfig struct {
	ListenAddress string
	CORSEnabled   bool
}

// AnthropicConfig represents the configuration for the Anthropic Messages API
type AnthropicConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	MaxTokens    int
	Timeout      time.Duration
	RateLimitRPS float64
}

// WebhookConfig represents the configuration for the analysis webhook
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// AuthConfig represents the configuration for authentication and sessions
type AuthConfig struct {
	SecretKey     string
	AdminPassword string
	Users         []string
	SessionTTL    time.Duration
}

// GetServer returns the server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
		CORSEnabled:   c.GetBool("server.cors_enabled"),
	}
}

// GetAnthropic returns the Anthropic configuration
func (c *Config) GetAnthropic() (AnthropicConfig, error) {
	timeout, err := c.GetDuration("anthropic.timeout")
	if err != nil {
		return AnthropicConfig{}, err
	}
	return AnthropicConfig{
		APIKey:       c.GetString("anthropic.api_key"),
		BaseURL:      c.GetString("anthropic.base_url"),
		Model:        c.GetString("anthropic.model"),
		MaxTokens:    c.GetInt("anthropic.max_tokens"),
		Timeout:      timeout,
		RateLimitRPS: c.GetFloat64("anthropic.rate_limit_rps"),
	}, nil
}

// GetWebhook returns the webhook configuration
func (c *Config) GetWebhook() (WebhookConfig, error) {
	timeout, err := c.GetDuration("webhook.timeout")
	if err != nil {
		return WebhookConfig{}, err
	}
	return WebhookConfig{
		URL:     c.GetString("webhook.url"),
		Timeout: timeout,
	}, nil
}

// GetAuth returns the auth configuration
func (c *Config) GetAuth() (AuthConfig, error) {
	ttl, err := c.GetDuration("auth.session_ttl")
	if err != nil {
		return AuthConfig{}, err
	}
	return AuthConfig{
		SecretKey:     c.GetString("auth.secret_key"),
		AdminPassword: c.GetString("auth.admin_password"),
		Users:         c.GetStringSlice("auth.users"),
		SessionTTL:    ttl,
	}, nil
}
