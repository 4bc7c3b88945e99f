// Package plates computes the per-side plate loadout for a barbell target.
package plates

import (
	"fmt"
	"math"
)

const (
	// tolerance absorbs float drift when subtracting fractional plates.
	tolerance = 1e-9
	// remainderScale rounds the reported remainder to the nearest 1e-6 kg.
	remainderScale = 1e6
)

// Loadout is the plates to put on ONE side of the bar, heaviest first, and
// the per-side weight that could not be made with the available plates.
type Loadout struct {
	PerSide     []float64 `json:"per_side"`
	RemainderKg float64   `json:"remainder_kg"`
}

// Stock is a plate denomination with a finite number of pairs.
type Stock struct {
	WeightKg float64 `json:"weight_kg"`
	Pairs    int     `json:"pairs"`
}

// TotalKg returns the bar weight plus both sides of the loadout.
func (l Loadout) TotalKg(barKg float64) float64 {
	sum := 0.0
	for _, p := range l.PerSide {
		sum += p
	}
	return barKg + 2*sum
}

// Solve greedily fills each side from the heaviest plate down with an
// unlimited supply of every denomination. available must be sorted heaviest
// first.
func Solve(targetKg, barKg float64, available []float64) (Loadout, error) {
	if err := checkWeights(targetKg, barKg); err != nil {
		return Loadout{}, err
	}
	if err := checkPlates(available); err != nil {
		return Loadout{}, err
	}
	stock := make([]Stock, len(available))
	for i, p := range available {
		stock[i] = Stock{WeightKg: p, Pairs: -1}
	}
	return greedy(targetKg, barKg, stock), nil
}

// SolveWithInventory is Solve with each denomination capped at the given
// number of pairs. Denominations must still be heaviest first; a pair count
// of zero skips the plate.
func SolveWithInventory(targetKg, barKg float64, inventory []Stock) (Loadout, error) {
	if err := checkWeights(targetKg, barKg); err != nil {
		return Loadout{}, err
	}
	weights := make([]float64, len(inventory))
	for i, s := range inventory {
		if s.Pairs < 0 {
			return Loadout{}, fmt.Errorf("%w: %.2f kg has %d pairs", ErrInvalidPlate, s.WeightKg, s.Pairs)
		}
		weights[i] = s.WeightKg
	}
	if err := checkPlates(weights); err != nil {
		return Loadout{}, err
	}
	return greedy(targetKg, barKg, inventory), nil
}

// greedy treats a negative Pairs as unlimited.
func greedy(targetKg, barKg float64, stock []Stock) Loadout {
	remaining := (targetKg - barKg) / 2
	out := Loadout{PerSide: []float64{}}
	if remaining <= tolerance {
		return out
	}
	for _, s := range stock {
		used := 0
		for remaining+tolerance >= s.WeightKg && (s.Pairs < 0 || used < s.Pairs) {
			out.PerSide = append(out.PerSide, s.WeightKg)
			remaining -= s.WeightKg
			used++
		}
	}
	if remaining < tolerance {
		remaining = 0
	}
	out.RemainderKg = math.Round(remaining*remainderScale) / remainderScale
	return out
}

func checkWeights(targetKg, barKg float64) error {
	if targetKg < 0 || math.IsNaN(targetKg) || math.IsInf(targetKg, 0) {
		return fmt.Errorf("%w: target %v", ErrInvalidWeight, targetKg)
	}
	if barKg < 0 || math.IsNaN(barKg) || math.IsInf(barKg, 0) {
		return fmt.Errorf("%w: bar %v", ErrInvalidWeight, barKg)
	}
	return nil
}

func checkPlates(available []float64) error {
	for i, p := range available {
		if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: %v at index %d", ErrInvalidPlate, p, i)
		}
		if i > 0 && p > available[i-1] {
			return fmt.Errorf("%w: %v follows %v", ErrUnsortedPlates, p, available[i-1])
		}
	}
	return nil
}
