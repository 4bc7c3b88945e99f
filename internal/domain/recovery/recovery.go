// Package recovery models how recently each muscle was trained.
package recovery

import (
	"time"

	"github.com/okian/ironrank/internal/domain/model"
)

// Window is how long a muscle takes to go from just trained to fully
// recovered.
const Window = 48 * time.Hour

// Tier thresholds on heat.
const (
	SoreAbove       = 0.6
	RecoveringAbove = 0.2
)

// Tier is the display bucket for a heat value.
type Tier string

// Heat tiers.
const (
	TierSore       Tier = "sore"
	TierRecovering Tier = "recovering"
	TierReady      Tier = "ready"
)

// Heat maps each muscle slug trained in the last 48h to a value in (0, 1],
// decaying linearly from 1 at the moment of the latest set. Muscles trained
// 48h or more before asOf are absent. Sets after asOf are ignored.
func Heat(sets []model.LoggedSet, asOf time.Time) (map[string]float64, error) {
	if err := model.ValidateSets(sets); err != nil {
		return nil, err
	}

	latest := make(map[string]time.Time)
	for _, s := range sets {
		if s.Timestamp.After(asOf) {
			continue
		}
		slug := model.NormalizeSlug(s.MuscleSlug)
		if s.Timestamp.After(latest[slug]) {
			latest[slug] = s.Timestamp
		}
	}

	heat := make(map[string]float64, len(latest))
	for slug, t := range latest {
		since := asOf.Sub(t)
		if since >= Window {
			continue
		}
		heat[slug] = 1 - since.Hours()/Window.Hours()
	}
	return heat, nil
}

// TierOf buckets a heat value. Absent muscles have heat 0 and are ready.
func TierOf(heat float64) Tier {
	switch {
	case heat > SoreAbove:
		return TierSore
	case heat > RecoveringAbove:
		return TierRecovering
	default:
		return TierReady
	}
}

// Tiers buckets every entry of a heat map.
func Tiers(heat map[string]float64) map[string]Tier {
	out := make(map[string]Tier, len(heat))
	for slug, h := range heat {
		out[slug] = TierOf(h)
	}
	return out
}
