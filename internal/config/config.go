package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/lead-capture/")
	v.AddConfigPath("$HOME/.lead-capture")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("LEAD_CAPTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The original deployment configures these through bare env names,
	// so keep accepting them alongside the prefixed forms.
	bindLegacyEnv(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// bindLegacyEnv maps the bare environment names used by earlier deployments
// onto their config keys
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("anthropic.api_key", "LEAD_CAPTURE_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("auth.secret_key", "LEAD_CAPTURE_AUTH_SECRET_KEY", "SECRET_KEY")
	_ = v.BindEnv("auth.admin_password", "LEAD_CAPTURE_AUTH_ADMIN_PASSWORD", "ADMIN_PASSWORD")
	_ = v.BindEnv("webhook.url", "LEAD_CAPTURE_WEBHOOK_URL", "ANALYSIS_WEBHOOK_URL")
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8080")
	v.SetDefault("server.cors_enabled", true)

	// LLM provider defaults
	v.SetDefault("llm.provider", "anthropic")

	// Anthropic defaults
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.base_url", "https://api.anthropic.com")
	v.SetDefault("anthropic.model", "claude-3-opus-20240229")
	v.SetDefault("anthropic.max_tokens", 1000)
	v.SetDefault("anthropic.timeout", "20s")
	v.SetDefault("anthropic.rate_limit_rps", 0.0)

	// Webhook defaults
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.timeout", "5s")

	// Auth defaults
	v.SetDefault("auth.secret_key", "dev-key-change-in-production")
	v.SetDefault("auth.admin_password", "admin123")
	v.SetDefault("auth.users", []string{"admin", "Steve", "Bugs", "Ricki"})
	v.SetDefault("auth.session_ttl", "12h")

	// History defaults
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.type", "memory")
	v.SetDefault("history.sqlite_path", "/data/analysis_history.db")
	v.SetDefault("history.mysql_dsn", "user:password@tcp(localhost:3306)/lead_capture")
	v.SetDefault("history.retention", "720h")
	v.SetDefault("history.cleanup_frequency", "1h")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
