// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New(ctx) returns defaults; Load(ctx) layers file and env on top.
//   - Domain values are converted through Settings, Classification and
//     Location so callers never parse raw strings.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	prommodel "github.com/prometheus/common/model"
	"go.uber.org/multierr"

	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxSetsPerRequest caps how many logged sets one request may carry.
	MaxSetsPerRequest int `koanf:"max_sets_per_request"`

	// MetricsEnabled toggles recording of Prometheus metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsPrefix is prepended to every metric name.
	MetricsPrefix string `koanf:"metrics_prefix"`

	// MetricsLabels are constant labels attached to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// MetricsRefreshInterval is how often system gauges are sampled.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`

	// BarWeightKg is the default bar when a request carries no settings.
	BarWeightKg float64 `koanf:"bar_weight_kg"`

	// AvailablePlates overrides model.DefaultPlates, heaviest first.
	AvailablePlates []float64 `koanf:"available_plates"`

	// ExperienceLevel is Beginner or Intermediate.
	ExperienceLevel string `koanf:"experience_level"`

	// WeeklyTargetKg is the default weekly volume goal.
	WeeklyTargetKg float64 `koanf:"weekly_target_kg"`

	// Timezone is the IANA zone that places week boundaries, calendar days
	// and weekends, e.g. "Europe/Berlin".
	Timezone string `koanf:"timezone"`

	// Muscles adds or overrides entries of the built-in classification.
	Muscles map[string]model.MuscleInfo `koanf:"muscles"`
}

// New returns a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              logger.FormatText,
		Addr:                   ":9080",
		MaxSetsPerRequest:      50_000,
		MetricsEnabled:         true,
		MetricsRefreshInterval: 10 * time.Second,
		BarWeightKg:            model.DefaultBarWeightKg,
		ExperienceLevel:        string(model.Beginner),
		WeeklyTargetKg:         model.DefaultWeeklyTargetKg,
		Timezone:               "UTC",
	}
}

// Validate reports every invalid field at once, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var err error
	if strings.TrimSpace(c.Addr) == "" {
		err = multierr.Append(err, fmt.Errorf("addr must not be empty"))
	}
	if c.MaxSetsPerRequest <= 0 {
		err = multierr.Append(err, fmt.Errorf("max_sets_per_request must be positive, got %d", c.MaxSetsPerRequest))
	}
	if c.MetricsRefreshInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("metrics_refresh_interval must be positive, got %s", c.MetricsRefreshInterval))
	}
	if c.MetricsPrefix != "" && !prommodel.IsValidLegacyMetricName(c.MetricsPrefix) {
		err = multierr.Append(err, fmt.Errorf("metrics_prefix %q is not a valid metric name", c.MetricsPrefix))
	}
	for name := range c.MetricsLabels {
		if !prommodel.LabelName(name).IsValidLegacy() || strings.HasPrefix(name, "__") {
			err = multierr.Append(err, fmt.Errorf("metrics_labels: %q is not a valid label name", name))
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case logger.FormatText, logger.FormatJSON:
	default:
		err = multierr.Append(err, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if _, e := c.Settings(); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := c.Location(); e != nil {
		err = multierr.Append(err, e)
	}
	for slug, info := range c.Muscles {
		if _, e := model.ParseMuscleGroup(string(info.Group)); e != nil {
			err = multierr.Append(err, fmt.Errorf("muscles.%s: %w", slug, e))
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Settings converts the configured defaults into model.UserSettings.
func (c *Config) Settings() (model.UserSettings, error) {
	lvl, err := model.ParseExperience(c.ExperienceLevel)
	if err != nil {
		return model.UserSettings{}, err
	}
	s := model.UserSettings{
		BarWeightKg:     c.BarWeightKg,
		AvailablePlates: append([]float64(nil), c.AvailablePlates...),
		Experience:      lvl,
		WeeklyTargetKg:  c.WeeklyTargetKg,
	}.WithDefaults(model.DefaultSettings())
	if err := s.Validate(); err != nil {
		return model.UserSettings{}, err
	}
	return s, nil
}

// Classification is the built-in table with configured overrides applied.
func (c *Config) Classification() model.Classification {
	overrides := make(model.Classification, len(c.Muscles))
	for slug, info := range c.Muscles {
		g, err := model.ParseMuscleGroup(string(info.Group))
		if err != nil {
			continue
		}
		info.Group = g
		overrides[slug] = info
	}
	return model.DefaultClassification().Merge(overrides)
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
