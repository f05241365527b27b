// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers a YAML file and environment variables over those defaults.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// HittersPath, PitchersPath and SchedulePath locate the datasets (CSV or XLSX).
	// SchedulePath is optional.
	HittersPath  string `koanf:"hitters_path"`
	PitchersPath string `koanf:"pitchers_path"`
	SchedulePath string `koanf:"schedule_path"`

	// ReferenceYear is the year given to "Mon Day" dates. Zero means the current year.
	ReferenceYear int `koanf:"reference_year"`

	// HittersReversedStats and PitchersReversedStats list the stat codes
	// where a lower value is the favorable outcome.
	HittersReversedStats  []string `koanf:"hitters_reversed_stats"`
	PitchersReversedStats []string `koanf:"pitchers_reversed_stats"`

	// CacheSize bounds the selection LRU. Zero disables caching.
	CacheSize int `koanf:"cache_size"`

	// MaxPreviewRows caps GET /datasets/{kind}/head?n.
	MaxPreviewRows int `koanf:"max_preview_rows"`

	// MaxSearchResults caps GET /players and GET /leaders limits.
	MaxSearchResults int `koanf:"max_search_results"`

	// RateLimitRPS and RateLimitBurst configure the per-process request limiter.
	// A zero RPS disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// Stats where a lower value is the favorable outcome.
var (
	DefaultHittersReversedStats  = []string{"SO", "GDP", "CS"}
	DefaultPitchersReversedStats = []string{
		"ERA", "WHIP", "H", "R", "ER", "BB", "HR", "L", "BB9", "H9", "HR9", "FIP",
	}
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		HittersPath:           "data/baseball_data/combined_hitters_data.csv",
		PitchersPath:          "data/baseball_data/combined_pitchers_data.csv",
		SchedulePath:          "data/MLB_Schedule.csv",
		ReferenceYear:         0,
		HittersReversedStats:  append([]string(nil), DefaultHittersReversedStats...),
		PitchersReversedStats: append([]string(nil), DefaultPitchersReversedStats...),
		CacheSize:             1024,
		MaxPreviewRows:        50,
		MaxSearchResults:      100,
		RateLimitRPS:          50,
		RateLimitBurst:        100,
	}
}

// Year resolves ReferenceYear against now.
func (c *Config) Year(now time.Time) int {
	if c.ReferenceYear == 0 {
		return now.Year()
	}
	return c.ReferenceYear
}

// Validate checks invariants Load relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.HittersPath == "":
		return fmt.Errorf("%w: hitters_path must not be empty", ErrInvalidConfig)
	case c.PitchersPath == "":
		return fmt.Errorf("%w: pitchers_path must not be empty", ErrInvalidConfig)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	case c.ReferenceYear != 0 && (c.ReferenceYear < 1800 || c.ReferenceYear > 9999):
		return fmt.Errorf("%w: reference_year %d out of range", ErrInvalidConfig, c.ReferenceYear)
	case c.MaxPreviewRows < 1:
		return fmt.Errorf("%w: max_preview_rows must be positive", ErrInvalidConfig)
	case c.MaxSearchResults < 1:
		return fmt.Errorf("%w: max_search_results must be positive", ErrInvalidConfig)
	case c.RateLimitRPS < 0 || c.RateLimitBurst < 0:
		return fmt.Errorf("%w: rate limits must not be negative", ErrInvalidConfig)
	}
	return nil
}
