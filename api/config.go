package api

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Config holds the transport settings for the BidKing API client.
type Config struct {
	// BaseURL is the root of the BidKing REST API, e.g. https://api.bidking.io/v1
	BaseURL string `yaml:"base_url"`

	// Token is the bearer token attached to every request. Optional at
	// construction; see Client.SetToken.
	Token string `yaml:"token"`

	// Timeout bounds a single HTTP round trip. Zero means DefaultTimeout.
	Timeout time.Duration `yaml:"timeout"`

	// RetryMax is the number of transport-level retries for retryable
	// failures. Negative disables retries. Zero means DefaultRetryMax.
	RetryMax int `yaml:"retry_max"`

	// RetryWaitMin and RetryWaitMax bound the retry backoff.
	RetryWaitMin time.Duration `yaml:"retry_wait_min"`
	RetryWaitMax time.Duration `yaml:"retry_wait_max"`
}

const (
	DefaultTimeout      = 30 * time.Second
	DefaultRetryMax     = 2
	DefaultRetryWaitMin = 500 * time.Millisecond
	DefaultRetryWaitMax = 5 * time.Second
)

// Validate checks the configuration values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// withDefaults fills zero values with the package defaults.
func (c Config) withDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryMax == 0 {
		c.RetryMax = DefaultRetryMax
	}
	if c.RetryWaitMin == 0 {
		c.RetryWaitMin = DefaultRetryWaitMin
	}
	if c.RetryWaitMax == 0 {
		c.RetryWaitMax = DefaultRetryWaitMax
	}
	return c
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("api: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("api: parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("api: invalid config: %w", err)
	}

	return cfg, nil
}
