// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// LoggedSet is one recorded set. Sets are immutable once logged; the only
// mutation a session performs is deleting its latest set (see UndoLast).
type LoggedSet struct {
	ExerciseID string    `json:"exercise_id"`
	MuscleSlug string    `json:"muscle_slug"`
	WeightKg   float64   `json:"weight_kg"`
	Reps       int       `json:"reps"`
	Timestamp  time.Time `json:"timestamp"`
	Tags       []string  `json:"tags,omitempty"`
	Note       *string   `json:"note,omitempty"`
	SessionID  string    `json:"session_id,omitempty"` // owning workout session, optional
}

// Volume returns weight × reps for the set.
func (s LoggedSet) Volume() float64 {
	return s.WeightKg * float64(s.Reps)
}

// HasTag reports whether the set carries tag (case-insensitive).
func (s LoggedSet) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Validate checks a single set against the field constraints.
func (s LoggedSet) Validate() error {
	var err error
	if s.WeightKg < 0 {
		err = multierr.Append(err, fmt.Errorf("weight_kg %.2f is negative", s.WeightKg))
	}
	if s.Reps < 0 {
		err = multierr.Append(err, fmt.Errorf("reps %d is negative", s.Reps))
	}
	if strings.TrimSpace(s.MuscleSlug) == "" {
		err = multierr.Append(err, fmt.Errorf("muscle_slug is empty"))
	}
	if s.Timestamp.IsZero() {
		err = multierr.Append(err, fmt.Errorf("timestamp is missing"))
	}
	return err
}

// ValidateSets validates every set and reports all violations at once.
// The returned error wraps ErrInvalidSet.
func ValidateSets(sets []LoggedSet) error {
	var errs error
	for i, s := range sets {
		if err := s.Validate(); err != nil {
			for _, e := range multierr.Errors(err) {
				errs = multierr.Append(errs, fmt.Errorf("set %d: %w", i, e))
			}
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSet, errs)
	}
	return nil
}

// UndoLast returns a copy of sets without the most recent set logged for
// exerciseID. An empty exerciseID targets the most recent set overall.
// The input slice is never modified.
func UndoLast(sets []LoggedSet, exerciseID string) ([]LoggedSet, bool) {
	latest := -1
	for i, s := range sets {
		if exerciseID != "" && s.ExerciseID != exerciseID {
			continue
		}
		if latest == -1 || s.Timestamp.After(sets[latest].Timestamp) {
			latest = i
		}
	}
	if latest == -1 {
		out := make([]LoggedSet, len(sets))
		copy(out, sets)
		return out, false
	}
	out := make([]LoggedSet, 0, len(sets)-1)
	out = append(out, sets[:latest]...)
	out = append(out, sets[latest+1:]...)
	return out, true
}

// SortedByTime returns a copy of sets ordered oldest first. Sets with equal
// timestamps keep their input order.
func SortedByTime(sets []LoggedSet) []LoggedSet {
	out := make([]LoggedSet, len(sets))
	copy(out, sets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Validate rejects ranges whose end precedes their start.
func (r TimeRange) Validate() error {
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: end %s before start %s", ErrInvalidRange,
			r.End.Format(time.RFC3339), r.Start.Format(time.RFC3339))
	}
	return nil
}

// VolumeEntry is the per-muscle aggregate derived from a set stream.
type VolumeEntry struct {
	MuscleSlug    string    `json:"muscle_slug"`
	TotalVolumeKg float64   `json:"total_volume_kg"`
	LastTimestamp time.Time `json:"last_timestamp"`
	SetCount      int       `json:"set_count"`
}
