// Package progression turns training history into ranks, streaks and badges.
package progression

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/ironrank/internal/domain/model"
)

// MaxRankLabel is shown once the top tier is reached.
const MaxRankLabel = "MAX RANK REACHED"

// DefaultTiers returns the lifetime-volume ladder.
func DefaultTiers() []model.RankTier {
	return []model.RankTier{
		{Name: "RUST RECRUIT", ThresholdKg: 0, Color: "#cd7f32", Icon: "shield-outline"},
		{Name: "IRON SOLDIER", ThresholdKg: 10000, Color: "#9ca3af", Icon: "shield-half"},
		{Name: "STEEL WARLORD", ThresholdKg: 100000, Color: "#ffd700", Icon: "shield"},
		{Name: "TITANIUM GOD", ThresholdKg: 1000000, Color: "#22d3ee", Icon: "diamond"},
	}
}

// Standing is where a lifetime volume sits on the ladder.
type Standing struct {
	Tier              model.RankTier  `json:"tier"`
	Next              *model.RankTier `json:"next,omitempty"`
	ProgressPct       int             `json:"progress_pct"`
	RemainingToNextKg *float64        `json:"remaining_to_next_kg,omitempty"`
	Label             string          `json:"label"`
}

// ValidateTiers checks that thresholds start at zero and strictly increase.
func ValidateTiers(tiers []model.RankTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: no tiers", ErrInvalidTiers)
	}
	if tiers[0].ThresholdKg != 0 {
		return fmt.Errorf("%w: first threshold is %v, want 0", ErrInvalidTiers, tiers[0].ThresholdKg)
	}
	for i := 1; i < len(tiers); i++ {
		if !(tiers[i].ThresholdKg > tiers[i-1].ThresholdKg) {
			return fmt.Errorf("%w: %q threshold %v does not exceed %q", ErrInvalidTiers,
				tiers[i].Name, tiers[i].ThresholdKg, tiers[i-1].Name)
		}
	}
	return nil
}

// CurrentRank finds the highest tier whose threshold volumeKg has reached
// and the progress toward the tier after it.
func CurrentRank(volumeKg float64, tiers []model.RankTier) (Standing, error) {
	if volumeKg < 0 || math.IsNaN(volumeKg) || math.IsInf(volumeKg, 0) {
		return Standing{}, fmt.Errorf("%w: %v", ErrInvalidVolume, volumeKg)
	}
	if err := ValidateTiers(tiers); err != nil {
		return Standing{}, err
	}

	idx := 0
	for i := len(tiers) - 1; i >= 0; i-- {
		if volumeKg >= tiers[i].ThresholdKg {
			idx = i
			break
		}
	}

	st := Standing{Tier: tiers[idx]}
	if idx == len(tiers)-1 {
		st.ProgressPct = 100
		st.Label = MaxRankLabel
		return st, nil
	}

	next := tiers[idx+1]
	span := next.ThresholdKg - st.Tier.ThresholdKg
	pct := math.Round(100 * (volumeKg - st.Tier.ThresholdKg) / span)
	remaining := next.ThresholdKg - volumeKg

	st.Next = &next
	st.ProgressPct = int(math.Min(100, math.Max(0, pct)))
	st.RemainingToNextKg = &remaining
	st.Label = fmt.Sprintf("%skg to %s", formatKg(remaining), next.Name)
	return st, nil
}

// formatKg renders kg with thousands separators, e.g. 9,500 or 1,234.5.
func formatKg(kg float64) string {
	s := strconv.FormatFloat(math.Round(kg*1000)/1000, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
