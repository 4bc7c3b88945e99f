// Package repmax estimates a one-rep max from a submaximal set.
package repmax

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for negative or non-finite weight or reps.
var ErrInvalidInput = errors.New("invalid rep max input")

// Brzycki coefficients.
const (
	brzyckiIntercept = 1.0278
	brzyckiSlope     = 0.0278
)

// MaxReliableReps is the highest rep count that still yields a positive
// Brzycki denominator.
const MaxReliableReps = 36

// Estimate returns the estimated one-rep max in whole kilograms.
// Zero reps and rep counts past MaxReliableReps return 0; a single rep
// returns the weight itself.
func Estimate(weightKg float64, reps int) (float64, error) {
	if weightKg < 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return 0, fmt.Errorf("%w: weight %v", ErrInvalidInput, weightKg)
	}
	if reps < 0 {
		return 0, fmt.Errorf("%w: reps %d", ErrInvalidInput, reps)
	}
	switch reps {
	case 0:
		return 0, nil
	case 1:
		return weightKg, nil
	}
	denominator := brzyckiIntercept - brzyckiSlope*float64(reps)
	if denominator <= 0 {
		return 0, nil
	}
	return math.Round(weightKg / denominator), nil
}

// Best returns the highest estimate across the given (weight, reps) pairs.
// Pairs that fail validation are skipped.
func Best(pairs ...Attempt) float64 {
	best := 0.0
	for _, p := range pairs {
		e, err := Estimate(p.WeightKg, p.Reps)
		if err == nil && e > best {
			best = e
		}
	}
	return best
}

// Attempt is a single weight × reps effort.
type Attempt struct {
	WeightKg float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
}
