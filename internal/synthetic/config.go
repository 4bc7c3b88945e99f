// Package synthetic generates realistic training histories and replays them
// against a running ironrank server.
package synthetic

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// ErrInvalidConfig wraps every generator configuration problem.
var ErrInvalidConfig = errors.New("invalid synthetic config")

// Generator defaults.
const (
	DefaultWeeks           = 12
	DefaultSessionsPerWeek = 3
	DefaultSetsPerExercise = 3
	MaxSessionsPerWeek     = 7
)

// Config controls history generation.
type Config struct {
	Weeks           int       // number of weeks of history
	SessionsPerWeek int       // workouts per week, 1..7
	SetsPerExercise int       // working sets per exercise
	End             time.Time // last day of history; its location is used for session times
	Seed            uint64    // same seed, same history
	Workers         int       // concurrent session builders
}

// DefaultConfig returns a three-day split over twelve weeks ending today.
func DefaultConfig() Config {
	return Config{
		Weeks:           DefaultWeeks,
		SessionsPerWeek: DefaultSessionsPerWeek,
		SetsPerExercise: DefaultSetsPerExercise,
		End:             time.Now(),
		Seed:            1,
		Workers:         4,
	}
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var err error
	if c.Weeks <= 0 {
		err = multierr.Append(err, fmt.Errorf("weeks must be positive, got %d", c.Weeks))
	}
	if c.SessionsPerWeek <= 0 || c.SessionsPerWeek > MaxSessionsPerWeek {
		err = multierr.Append(err, fmt.Errorf("sessions per week must be 1..%d, got %d", MaxSessionsPerWeek, c.SessionsPerWeek))
	}
	if c.SetsPerExercise <= 0 {
		err = multierr.Append(err, fmt.Errorf("sets per exercise must be positive, got %d", c.SetsPerExercise))
	}
	if c.End.IsZero() {
		err = multierr.Append(err, errors.New("end time is required"))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
