// Package volume aggregates training volume (weight × reps) from logged sets.
//
// Every function recomputes from the full input and is independent of the
// order sets are passed in.
package volume

import (
	"fmt"
	"time"

	"github.com/okian/ironrank/internal/domain/model"
)

// ByMuscle sums volume per muscle slug. When window is non-nil only sets with
// a timestamp in [window.Start, window.End) are counted. Slugs are normalised
// with model.NormalizeSlug.
func ByMuscle(sets []model.LoggedSet, window *model.TimeRange) (map[string]model.VolumeEntry, error) {
	if err := model.ValidateSets(sets); err != nil {
		return nil, err
	}
	if window != nil {
		if err := window.Validate(); err != nil {
			return nil, err
		}
	}

	out := make(map[string]model.VolumeEntry)
	for _, s := range sets {
		if window != nil && !window.Contains(s.Timestamp) {
			continue
		}
		slug := model.NormalizeSlug(s.MuscleSlug)
		e := out[slug]
		e.MuscleSlug = slug
		e.TotalVolumeKg += s.Volume()
		e.SetCount++
		if s.Timestamp.After(e.LastTimestamp) {
			e.LastTimestamp = s.Timestamp
		}
		out[slug] = e
	}
	return out, nil
}

// Total is the lifetime volume of sets.
func Total(sets []model.LoggedSet) (float64, error) {
	if err := model.ValidateSets(sets); err != nil {
		return 0, err
	}
	return sum(sets, nil), nil
}

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// Weekly is the volume logged from Monday 00:00 of asOf's week through asOf
// inclusive.
func Weekly(sets []model.LoggedSet, asOf time.Time) (float64, error) {
	if err := model.ValidateSets(sets); err != nil {
		return 0, err
	}
	start := WeekStart(asOf)
	return sum(sets, func(t time.Time) bool {
		return !t.Before(start) && !t.After(asOf)
	}), nil
}

// Window is a convenience constructor for ByMuscle's filter.
func Window(start, end time.Time) (*model.TimeRange, error) {
	r := model.TimeRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("volume window: %w", err)
	}
	return &r, nil
}

func sum(sets []model.LoggedSet, keep func(time.Time) bool) float64 {
	total := 0.0
	for _, s := range sets {
		if keep != nil && !keep(s.Timestamp) {
			continue
		}
		total += s.Volume()
	}
	return total
}
