package volume

import (
	"fmt"
	"time"

	"github.com/okian/ironrank/internal/domain/model"
)

// MaxRecordedDuration is the longest session we trust; anything longer is
// assumed to be a session the user forgot to finish.
const MaxRecordedDuration = 12 * time.Hour

// NotRecorded labels a session longer than MaxRecordedDuration.
const NotRecorded = "Not Recorded"

// SessionSummary is the receipt shown when a workout ends.
type SessionSummary struct {
	Duration      time.Duration `json:"duration_ns"`
	DurationLabel string        `json:"duration"`
	VolumeKg      float64       `json:"volume_kg"`
	Sets          int           `json:"sets"`
	Exercises     int           `json:"exercises"`
}

// Summarize builds the receipt for one workout. A zero endedAt means the
// session is still open and the latest set timestamp is used instead; a zero
// startedAt likewise falls back to the earliest set.
func Summarize(sets []model.LoggedSet, startedAt, endedAt time.Time) (SessionSummary, error) {
	if err := model.ValidateSets(sets); err != nil {
		return SessionSummary{}, err
	}
	if startedAt.IsZero() && endedAt.IsZero() && len(sets) == 0 {
		return SessionSummary{}, fmt.Errorf("%w: session has no start, end or sets", model.ErrInvalidRange)
	}

	exercises := make(map[string]struct{})
	var first, last time.Time
	total := 0.0
	for _, s := range sets {
		total += s.Volume()
		exercises[s.ExerciseID] = struct{}{}
		if first.IsZero() || s.Timestamp.Before(first) {
			first = s.Timestamp
		}
		if s.Timestamp.After(last) {
			last = s.Timestamp
		}
	}
	if startedAt.IsZero() {
		startedAt = first
	}
	if endedAt.IsZero() {
		endedAt = last
	}
	if endedAt.Before(startedAt) {
		return SessionSummary{}, fmt.Errorf("%w: session ends %s before it starts %s", model.ErrInvalidRange,
			endedAt.Format(time.RFC3339), startedAt.Format(time.RFC3339))
	}

	d := endedAt.Sub(startedAt)
	return SessionSummary{
		Duration:      d,
		DurationLabel: DurationLabel(d),
		VolumeKg:      total,
		Sets:          len(sets),
		Exercises:     len(exercises),
	}, nil
}

// DurationLabel renders d as "1h 5m" or "42m", truncating to whole minutes.
func DurationLabel(d time.Duration) string {
	if d > MaxRecordedDuration {
		return NotRecorded
	}
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	if h := minutes / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
