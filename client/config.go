package client

import (
	"time"

	"github.com/kbukum/httpflow/config"
	"github.com/kbukum/httpflow/logger"
	"github.com/kbukum/httpflow/mapper"
	"github.com/kbukum/httpflow/resilience"
	"github.com/kbukum/httpflow/validation"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxConcurrency = 4
	defaultChunkSize      = 4 << 10
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL applied to new requests. Optional; each
	// request can set its own URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxConcurrency caps concurrent in-flight requests per client
	// family. Requests over the cap queue in FIFO order. Defaults to 4.
	MaxConcurrency int `yaml:"max_concurrency" mapstructure:"max_concurrency" validate:"omitempty,min=1"`

	// StreamingCutoff is the response body size in bytes at which JSON
	// decoding switches from buffering to streaming. Defaults to 1024.
	StreamingCutoff int `yaml:"streaming_cutoff" mapstructure:"streaming_cutoff"`

	// ChunkSize is the read buffer size for response bodies. Defaults
	// to 4096.
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`

	// RateLimit configures outbound rate limiting. Nil disables it.
	RateLimit *resilience.RateLimiterConfig `yaml:"rate_limit" mapstructure:"rate_limit"`

	// Logging configures the client logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = defaultMaxConcurrency
	}
	if c.StreamingCutoff <= 0 {
		c.StreamingCutoff = mapper.DefaultCutoff
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	c.Logging.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return NewConfigError(err.Error())
	}
	if err := c.Logging.Validate(); err != nil {
		return NewConfigError(err.Error())
	}
	return nil
}

// DefaultRetryConfig returns a retry config suitable for HTTP clients:
// transport errors and 5xx statuses retry, everything else fails fast.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

// DefaultRateLimitConfig returns a default rate limiter config.
func DefaultRateLimitConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}

// LoadConfig loads client configuration from config files and
// environment variables under the "client" key.
func LoadConfig(opts ...config.LoaderOption) (Config, error) {
	var wrapper struct {
		Client Config `mapstructure:"client"`
	}
	if err := config.LoadConfig("client", &wrapper, opts...); err != nil {
		return Config{}, NewConfigError(err.Error())
	}

	cfg := wrapper.Client
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
