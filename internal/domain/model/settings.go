package model

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ExperienceLevel selects the coaching table.
type ExperienceLevel string

// Experience levels.
const (
	Beginner     ExperienceLevel = "Beginner"
	Intermediate ExperienceLevel = "Intermediate"
)

// ParseExperience accepts a level name in any case.
func ParseExperience(s string) (ExperienceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExperience, s)
	}
}

// Setting defaults.
const (
	DefaultBarWeightKg    = 20.0
	DefaultWeeklyTargetKg = 20000.0
)

// DefaultPlates is the standard plate set, heaviest first.
var DefaultPlates = []float64{25, 20, 15, 10, 5, 2.5, 1.25}

// UserSettings holds per-user inputs to the calculators.
type UserSettings struct {
	BarWeightKg     float64         `json:"bar_weight_kg"`
	AvailablePlates []float64       `json:"available_plates"`
	Experience      ExperienceLevel `json:"experience"`
	WeeklyTargetKg  float64         `json:"weekly_target_kg"`
}

// DefaultSettings returns the settings used when a user has none stored.
func DefaultSettings() UserSettings {
	plates := make([]float64, len(DefaultPlates))
	copy(plates, DefaultPlates)
	return UserSettings{
		BarWeightKg:     DefaultBarWeightKg,
		AvailablePlates: plates,
		Experience:      Beginner,
		WeeklyTargetKg:  DefaultWeeklyTargetKg,
	}
}

// WithDefaults fills zero fields from base.
func (s UserSettings) WithDefaults(base UserSettings) UserSettings {
	if s.BarWeightKg == 0 {
		s.BarWeightKg = base.BarWeightKg
	}
	if len(s.AvailablePlates) == 0 {
		s.AvailablePlates = append([]float64(nil), base.AvailablePlates...)
	}
	if s.Experience == "" {
		s.Experience = base.Experience
	}
	if s.WeeklyTargetKg == 0 {
		s.WeeklyTargetKg = base.WeeklyTargetKg
	}
	return s
}

// Validate reports every problem with the settings.
func (s UserSettings) Validate() error {
	var err error
	if s.BarWeightKg < 0 {
		err = multierr.Append(err, fmt.Errorf("bar_weight_kg %.2f is negative", s.BarWeightKg))
	}
	if s.WeeklyTargetKg < 0 {
		err = multierr.Append(err, fmt.Errorf("weekly_target_kg %.2f is negative", s.WeeklyTargetKg))
	}
	for i, p := range s.AvailablePlates {
		if p <= 0 {
			err = multierr.Append(err, fmt.Errorf("plate %d: %.2f must be positive", i, p))
		}
		if i > 0 && p > s.AvailablePlates[i-1] {
			err = multierr.Append(err, fmt.Errorf("plate %d: %.2f breaks descending order", i, p))
		}
	}
	if s.Experience != "" {
		if _, e := ParseExperience(string(s.Experience)); e != nil {
			err = multierr.Append(err, e)
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}
