package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/internal/domain/plates"
	"github.com/okian/ironrank/internal/domain/progression"
	"github.com/okian/ironrank/internal/domain/repmax"
	"github.com/okian/ironrank/internal/domain/volume"
	"github.com/okian/ironrank/pkg/metrics"
)

// PlateRequest asks for a loadout. Zero BarKg and empty Plates fall back to
// the service settings; a non-empty Inventory switches to finite stock.
type PlateRequest struct {
	TargetKg  float64
	BarKg     float64
	Plates    []float64
	Inventory []plates.Stock
}

// PlateResult is a solved loadout plus the weight actually on the bar.
type PlateResult struct {
	plates.Loadout
	BarKg    float64 `json:"bar_kg"`
	LoadedKg float64 `json:"loaded_kg"`
}

// Plates solves a barbell loadout.
func (s *Service) Plates(ctx context.Context, req PlateRequest) (PlateResult, error) {
	settings := s.Settings()
	bar := req.BarKg
	if bar == 0 {
		bar = settings.BarWeightKg
	}

	var res PlateResult
	err := s.observe(ctx, metrics.ComponentPlates, func() error {
		var (
			l   plates.Loadout
			err error
		)
		if len(req.Inventory) > 0 {
			l, err = plates.SolveWithInventory(req.TargetKg, bar, req.Inventory)
		} else {
			available := req.Plates
			if len(available) == 0 {
				available = settings.AvailablePlates
			}
			l, err = plates.Solve(req.TargetKg, bar, available)
		}
		if err != nil {
			return err
		}
		res = PlateResult{Loadout: l, BarKg: bar, LoadedKg: l.TotalKg(bar)}
		return nil
	})
	return res, err
}

// OneRepMax estimates a one-rep max.
func (s *Service) OneRepMax(ctx context.Context, weightKg float64, reps int) (float64, error) {
	var est float64
	err := s.observe(ctx, metrics.ComponentRepMax, func() error {
		var err error
		est, err = repmax.Estimate(weightKg, reps)
		return err
	})
	return est, err
}

// Rank places a lifetime volume on the configured ladder.
func (s *Service) Rank(ctx context.Context, volumeKg float64) (progression.Standing, error) {
	s.mu.RLock()
	tiers := s.tiers
	s.mu.RUnlock()

	var st progression.Standing
	err := s.observe(ctx, metrics.ComponentRank, func() error {
		var err error
		st, err = progression.CurrentRank(volumeKg, tiers)
		return err
	})
	return st, err
}

// Summary builds the end-of-workout receipt for one session's sets.
func (s *Service) Summary(ctx context.Context, sets []model.LoggedSet, startedAt, endedAt time.Time) (volume.SessionSummary, error) {
	var sum volume.SessionSummary
	err := s.observe(ctx, metrics.ComponentSummary, func() error {
		if err := s.checkSets(sets); err != nil {
			return err
		}
		var err error
		sum, err = volume.Summarize(sets, startedAt, endedAt)
		return err
	})
	return sum, err
}

// ExerciseHistory is the per-day progression of one exercise.
type ExerciseHistory struct {
	ExerciseID string           `json:"exercise_id"`
	Days       []volume.DayStat `json:"days"`
	TrendKg    float64          `json:"trend_kg"`
	Record     *volume.Record   `json:"record,omitempty"`
}

// History returns the per-day stats of exerciseID.
func (s *Service) History(ctx context.Context, sets []model.LoggedSet, exerciseID string) (ExerciseHistory, error) {
	var h ExerciseHistory
	err := s.observe(ctx, metrics.ComponentHistory, func() error {
		if exerciseID == "" {
			return fmt.Errorf("%w: exercise_id", ErrMissingInput)
		}
		if err := s.checkSets(sets); err != nil {
			return err
		}
		days := volume.History(sets, exerciseID)
		h = ExerciseHistory{ExerciseID: exerciseID, Days: days, TrendKg: volume.Trend(days)}
		for _, r := range volume.PersonalRecords(sets) {
			if r.ExerciseID == exerciseID {
				h.Record = &r
				break
			}
		}
		return nil
	})
	return h, err
}

// Undo removes the latest set of exerciseID and returns the remaining sets.
func (s *Service) Undo(ctx context.Context, sets []model.LoggedSet, exerciseID string) ([]model.LoggedSet, bool, error) {
	var (
		out     []model.LoggedSet
		removed bool
	)
	err := s.observe(ctx, metrics.ComponentUndo, func() error {
		if err := s.checkSets(sets); err != nil {
			return err
		}
		out, removed = model.UndoLast(sets, exerciseID)
		return nil
	})
	return out, removed, err
}
