// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/govtrack/cache"
	"github.com/briangreenhill/govtrack/govtrack"
)

// Config holds all application configuration
type Config struct {
	GovTrack GovTrackConfig
	Cache    CacheConfig

	Port     string `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
}

// GovTrackConfig holds API connection settings
type GovTrackConfig struct {
	BaseURL   string        `env:"GOVTRACK_BASE_URL" envDefault:"https://www.govtrack.us/api/v2/" validate:"required,url"`
	UserAgent string        `env:"GOVTRACK_USER_AGENT" envDefault:"RealTimeWeb GovTrack library for educational purposes" validate:"required"`
	Timeout   time.Duration `env:"GOVTRACK_TIMEOUT" envDefault:"30s" validate:"gte=0"`
}

// CacheConfig holds record/replay settings
type CacheConfig struct {
	File         string `env:"GOVTRACK_CACHE_FILE" envDefault:"cache.json" validate:"required"`
	Offline      bool   `env:"GOVTRACK_OFFLINE"`
	Record       bool   `env:"GOVTRACK_RECORD"`
	RecordPolicy string `env:"GOVTRACK_RECORD_POLICY" envDefault:"repeat" validate:"oneof=repeat empty"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Policy returns the parsed replay policy
func (c *Config) Policy() cache.Policy {
	p, err := cache.ParsePolicy(c.Cache.RecordPolicy)
	if err != nil {
		return cache.PolicyRepeat
	}
	return p
}

// Level returns the zerolog level, defaulting to info
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewClient builds a GovTrack client from the configuration. Offline mode
// loads the cache file first. Recording starts right away when enabled and
// extends an existing cache file rather than starting from an empty one.
func (c *Config) NewClient(logger zerolog.Logger, opts ...govtrack.Option) (*govtrack.Client, error) {
	opts = append([]govtrack.Option{
		govtrack.WithBaseURL(c.GovTrack.BaseURL),
		govtrack.WithUserAgent(c.GovTrack.UserAgent),
		govtrack.WithTimeout(c.GovTrack.Timeout),
		govtrack.WithLogger(logger),
	}, opts...)

	client, err := govtrack.New(opts...)
	if err != nil {
		return nil, err
	}
	if c.Cache.Offline {
		if err := client.Disconnect(c.Cache.File); err != nil {
			return nil, err
		}
	}
	if c.Cache.Record {
		if !c.Cache.Offline {
			if _, err := os.Stat(c.Cache.File); err == nil {
				if err := client.LoadCache(c.Cache.File); err != nil {
					return nil, err
				}
				logger.Debug().Str("file", c.Cache.File).Msg("extending existing recording")
			}
		}
		client.BeginRecording(c.Policy())
	}
	return client, nil
}
