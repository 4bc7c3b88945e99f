// Package service composes the domain calculators into the operations the
// HTTP API and CLI expose, adding validation limits, logging and metrics.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/internal/domain/progression"
	"github.com/okian/ironrank/pkg/logger"
	"github.com/okian/ironrank/pkg/metrics"
)

const defaultMaxSets = 50_000

// Service is stateless with respect to user data: every call receives the
// full set stream and returns freshly computed results.
type Service struct {
	mu sync.RWMutex

	// Configuration
	settings       model.UserSettings
	classification model.Classification
	tiers          []model.RankTier
	badges         []model.BadgeDefinition
	location       *time.Location
	maxSets        int

	// State
	started   bool
	startedAt time.Time
	counts    map[string]int64
	failures  map[string]int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSettings sets the settings used when a request carries none.
func WithSettings(settings model.UserSettings) Option {
	return func(s *Service) {
		s.settings = settings.WithDefaults(model.DefaultSettings())
	}
}

// WithClassification replaces the muscle classification table.
func WithClassification(c model.Classification) Option {
	return func(s *Service) {
		if len(c) > 0 {
			s.classification = c
		}
	}
}

// WithTiers replaces the rank ladder.
func WithTiers(tiers []model.RankTier) Option {
	return func(s *Service) {
		if len(tiers) > 0 {
			s.tiers = tiers
		}
	}
}

// WithBadges replaces the badge definitions.
func WithBadges(defs []model.BadgeDefinition) Option {
	return func(s *Service) {
		if len(defs) > 0 {
			s.badges = defs
		}
	}
}

// WithLocation sets the zone week boundaries are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithMaxSets caps the number of sets accepted per call.
func WithMaxSets(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSets = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		settings:       model.DefaultSettings(),
		classification: model.DefaultClassification(),
		tiers:          progression.DefaultTiers(),
		badges:         progression.DefaultBadges(),
		location:       time.UTC,
		maxSets:        defaultMaxSets,
		counts:         make(map[string]int64),
		failures:       make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates the configuration and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if err := s.settings.Validate(); err != nil {
		return err
	}
	if err := progression.ValidateTiers(s.tiers); err != nil {
		return err
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "ironrank service started",
		logger.Int("max_sets", s.maxSets),
		logger.Int("muscles", len(s.classification)),
		logger.Int("tiers", len(s.tiers)),
		logger.Int("badges", len(s.badges)),
		logger.String("location", s.location.String()),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.log().Info(context.Background(), "ironrank service stopped",
		logger.Duration("uptime", time.Since(s.startedAt)),
	)
}

// Settings returns the default settings requests fall back to.
func (s *Service) Settings() model.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64, len(s.counts))
	for k, v := range s.counts {
		counts[k] = v
	}
	failures := make(map[string]int64, len(s.failures))
	for k, v := range s.failures {
		failures[k] = v
	}

	stats := map[string]interface{}{
		"started":      s.started,
		"maxSets":      s.maxSets,
		"muscles":      len(s.classification),
		"computations": counts,
		"failures":     failures,
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}

// observe runs fn as one computation of component, recording its outcome.
func (s *Service) observe(ctx context.Context, component string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	s.mu.Lock()
	if err != nil {
		s.failures[component]++
	} else {
		s.counts[component]++
	}
	s.mu.Unlock()

	if err != nil {
		metrics.RecordValidationError(component)
		metrics.RecordErrorByComponent(component, "invalid_input")
		s.log().Debug(ctx, "computation rejected", logger.String("component", component), logger.Error(err))
		return err
	}
	metrics.RecordComputation(component)
	metrics.RecordComputationLatency(component, elapsed)
	return nil
}

func (s *Service) log() logger.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.Get()
}

// checkSets enforces the per-call set limit and field validation.
func (s *Service) checkSets(sets []model.LoggedSet) error {
	if len(sets) > s.maxSets {
		return fmt.Errorf("%w: %d > %d", ErrTooManySets, len(sets), s.maxSets)
	}
	if err := model.ValidateSets(sets); err != nil {
		return err
	}
	metrics.RecordSetsProcessed(len(sets))
	return nil
}
