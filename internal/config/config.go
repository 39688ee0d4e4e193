package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"inputfetcher/internal/fetcher"
)

// Write policies control what happens when a fetched input cannot be cached.
const (
	// WritePolicyFailClosed fails the whole request with a cache write error
	WritePolicyFailClosed = "fail-closed"
	// WritePolicyResilient returns the fetched input anyway and logs a warning
	WritePolicyResilient = "resilient"
)

// Config holds all configuration for the input fetcher.
type Config struct {
	// CachePath is the local store root; entries live at <cache_path>/<day>/input.
	CachePath string `mapstructure:"cache_path"`
	// URL is the base endpoint, e.g. https://adventofcode.com/2020.
	URL string `mapstructure:"url"`
	// Session is the opaque session cookie value.
	Session string `mapstructure:"session"`

	WritePolicy string  `mapstructure:"write_policy"`
	RateLimit   float64 `mapstructure:"rate_limit"`
}

// Load reads configuration from the TOML file at path and environment variables.
// Environment variables take precedence over config file values.
// An empty path searches for config.toml in the working directory and
// $HOME/.config/inputfetcher, and tolerates its absence.
//
// Expected environment variables:
//   - INPUT_CACHE_PATH
//   - INPUT_URL
//   - INPUT_SESSION
//   - INPUT_WRITE_POLICY (optional, defaults to fail-closed)
//   - INPUT_RATE_LIMIT (optional, requests per second, 0 disables throttling)
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fetcher.NewConfigurationError("failed to read config file "+path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/inputfetcher")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fetcher.NewConfigurationError("failed to read config file", err)
			}
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated settings source.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("write_policy", WritePolicyFailClosed)
	v.SetDefault("rate_limit", 0)

	v.BindEnv("cache_path", "INPUT_CACHE_PATH")
	v.BindEnv("url", "INPUT_URL")
	v.BindEnv("session", "INPUT_SESSION")
	v.BindEnv("write_policy", "INPUT_WRITE_POLICY")
	v.BindEnv("rate_limit", "INPUT_RATE_LIMIT")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fetcher.NewConfigurationError("failed to unmarshal config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that every required setting is present and optional ones are well formed.
func (c *Config) Validate() error {
	var missing []string
	if c.CachePath == "" {
		missing = append(missing, "cache_path")
	}
	if c.URL == "" {
		missing = append(missing, "url")
	}
	if c.Session == "" {
		missing = append(missing, "session")
	}
	if len(missing) > 0 {
		return fetcher.NewConfigurationError(
			fmt.Sprintf("missing required configuration: %s", strings.Join(missing, ", ")), nil)
	}

	switch c.WritePolicy {
	case "", WritePolicyFailClosed, WritePolicyResilient:
	default:
		return fetcher.NewConfigurationError(
			fmt.Sprintf("unknown write_policy %q (want %s or %s)", c.WritePolicy, WritePolicyFailClosed, WritePolicyResilient), nil)
	}

	if c.RateLimit < 0 {
		return fetcher.NewConfigurationError("rate_limit must not be negative", nil)
	}
	return nil
}
