package service

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/internal/domain/progression"
	"github.com/okian/ironrank/internal/domain/recovery"
	"github.com/okian/ironrank/internal/domain/symmetry"
	"github.com/okian/ironrank/internal/domain/volume"
	"github.com/okian/ironrank/pkg/logger"
	"github.com/okian/ironrank/pkg/metrics"
)

// DashboardInput is everything a dashboard is computed from.
type DashboardInput struct {
	Sets []model.LoggedSet
	// Settings overrides the service defaults field by field when set.
	Settings *model.UserSettings
	AsOf     time.Time
	// SessionStarts lists workout start times. When empty, sessions are
	// derived from the sets (see SessionStarts).
	SessionStarts []time.Time
}

// Dashboard is every derived metric for one user at one instant.
type Dashboard struct {
	AsOf time.Time `json:"as_of"`

	VolumeByMuscle   map[string]model.VolumeEntry `json:"volume_by_muscle"`
	MuscleLoad       map[string]volume.Load       `json:"muscle_load"`
	LifetimeVolumeKg float64                      `json:"lifetime_volume_kg"`
	WeeklyVolumeKg   float64                      `json:"weekly_volume_kg"`
	WeeklyTarget     volume.TargetStatus          `json:"weekly_target"`

	Heat        map[string]float64       `json:"heat"`
	HeatTiers   map[string]recovery.Tier `json:"heat_tiers"`
	CoachTitle  string                   `json:"coach_title"`
	CoachingTip string                   `json:"coaching_tip"`

	Rank           progression.Standing `json:"rank"`
	Streak         int                  `json:"streak"`
	StreakElevated bool                 `json:"streak_elevated"`
	CurrentWeek    string               `json:"current_week"`
	BadgeStats     model.BadgeStats     `json:"badge_stats"`
	Badges         []string             `json:"badges"`

	Symmetry        symmetry.Result `json:"symmetry"`
	PersonalRecords []volume.Record `json:"personal_records"`
}

// Dashboard computes every derived metric. The components are independent
// and run concurrently; the first failure cancels the rest.
func (s *Service) Dashboard(ctx context.Context, in DashboardInput) (Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return Dashboard{}, err
	}

	var d Dashboard
	err := s.observe(ctx, metrics.ComponentDashboard, func() error {
		if in.AsOf.IsZero() {
			return ErrMissingAsOf
		}
		if err := s.checkSets(in.Sets); err != nil {
			return err
		}

		s.mu.RLock()
		settings := s.settings
		classification := s.classification
		tiers := s.tiers
		badges := s.badges
		loc := s.location
		s.mu.RUnlock()

		if in.Settings != nil {
			settings = in.Settings.WithDefaults(settings)
			if err := settings.Validate(); err != nil {
				return err
			}
		}

		asOf := in.AsOf.In(loc)
		sets := in.Sets
		d.AsOf = asOf

		g, gctx := errgroup.WithContext(ctx)
		run := func(component string, fn func() error) {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return s.observe(gctx, component, fn)
			})
		}

		run(metrics.ComponentVolume, func() error {
			byMuscle, err := volume.ByMuscle(sets, nil)
			if err != nil {
				return err
			}
			lifetime, err := volume.Total(sets)
			if err != nil {
				return err
			}
			weekly, err := volume.Weekly(sets, asOf)
			if err != nil {
				return err
			}
			load := make(map[string]volume.Load, len(byMuscle))
			for slug, e := range byMuscle {
				load[slug] = volume.LoadOf(e.TotalVolumeKg)
			}
			d.VolumeByMuscle = byMuscle
			d.MuscleLoad = load
			d.LifetimeVolumeKg = lifetime
			d.WeeklyVolumeKg = weekly
			d.WeeklyTarget = volume.TargetProgress(weekly, settings.WeeklyTargetKg)
			d.PersonalRecords = volume.PersonalRecords(sets)

			st, err := progression.CurrentRank(lifetime, tiers)
			if err != nil {
				return err
			}
			d.Rank = st
			return nil
		})

		run(metrics.ComponentRecovery, func() error {
			heat, err := recovery.Heat(sets, asOf)
			if err != nil {
				return err
			}
			d.Heat = heat
			d.HeatTiers = recovery.Tiers(heat)
			d.CoachTitle = recovery.CoachTitle(settings.Experience)
			d.CoachingTip = recovery.CoachingTip(heat, settings.Experience)
			return nil
		})

		run(metrics.ComponentStreak, func() error {
			starts := in.SessionStarts
			if len(starts) == 0 {
				starts = SessionStarts(sets, loc)
			}
			d.Streak = progression.WeeklyStreak(starts, asOf)
			d.StreakElevated = progression.IsElevated(d.Streak)
			d.CurrentWeek = progression.WeekOf(asOf).String()
			return nil
		})

		run(metrics.ComponentBadges, func() error {
			stats := progression.StatsFrom(sets, loc)
			if len(in.SessionStarts) > 0 {
				stats.TotalWorkouts = len(in.SessionStarts)
				for _, t := range in.SessionStarts {
					if wd := t.In(loc).Weekday(); wd == time.Saturday || wd == time.Sunday {
						stats.HasWeekendSession = true
					}
				}
			}
			d.BadgeStats = stats
			d.Badges = progression.EvaluateBadges(stats, badges)
			return nil
		})

		run(metrics.ComponentSymmetry, func() error {
			r, err := symmetry.Classify(sets, classification)
			if err != nil {
				return err
			}
			d.Symmetry = r
			return nil
		})

		return g.Wait()
	})
	if err != nil {
		return Dashboard{}, err
	}

	metrics.RecordBadgesUnlocked(d.Badges)
	metrics.UpdateLastRankProgress(d.Rank.ProgressPct)
	s.log().Debug(ctx, "dashboard computed",
		logger.Int("sets", len(in.Sets)),
		logger.Float64("lifetime_kg", d.LifetimeVolumeKg),
		logger.String("rank", d.Rank.Tier.Name),
		logger.Int("streak", d.Streak),
		logger.Int("badges", len(d.Badges)),
	)
	return d, nil
}

// SessionStarts derives one start time per workout from a set stream: the
// earliest set of each session id, or of each calendar day in loc for sets
// without one. The result is sorted oldest first. A nil loc means UTC.
func SessionStarts(sets []model.LoggedSet, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.UTC
	}
	first := make(map[string]time.Time)
	for _, s := range sets {
		key := s.SessionID
		if key == "" {
			key = "day:" + s.Timestamp.In(loc).Format(time.DateOnly)
		}
		if t, ok := first[key]; !ok || s.Timestamp.Before(t) {
			first[key] = s.Timestamp
		}
	}
	out := make([]time.Time, 0, len(first))
	for _, t := range first {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
