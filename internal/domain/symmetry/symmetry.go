// Package symmetry scores the balance between pushing and pulling volume.
package symmetry

import (
	"math"

	"github.com/okian/ironrank/internal/domain/model"
)

// DominantAbovePct is the share above which one side is called dominant.
const DominantAbovePct = 55

// Advice strings.
const (
	AdviceNoData       = "Start logging to see your stats."
	AdviceInsufficient = "Not enough classified data yet."
	AdvicePushDominant = "⚠️ Push Dominant. Add more Rows/Deadlifts."
	AdvicePullDominant = "⚠️ Pull Dominant. Don't forget to Press!"
	AdviceBalanced     = "⚖️ Perfectly Balanced. Great structure."
)

// Fallback slug tables for muscles whose group is Legs, Unclassified or
// unknown. Quads and calves extend; hamstrings and glutes hinge.
var (
	pushSlugs = set("chest", "shoulders", "triceps", "push", "quads", "calves", "abs", "anterior deltoid", "medial deltoid")
	pullSlugs = set("lats", "biceps", "pull", "hamstrings", "glutes", "traps", "lower_back", "posterior deltoid")
)

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

// Result is the push/pull split. PushPct + PullPct is always 100.
type Result struct {
	PushPct      int     `json:"push_pct"`
	PullPct      int     `json:"pull_pct"`
	PushVolumeKg float64 `json:"push_volume_kg"`
	PullVolumeKg float64 `json:"pull_volume_kg"`
	SampleCount  int     `json:"sample_count"`
	Advice       string  `json:"advice"`
	Insufficient bool    `json:"insufficient"`
}

// Side is which bucket a set lands in.
type Side int

// Sides.
const (
	SideNone Side = iota
	SidePush
	SidePull
)

// SideOf resolves a slug to push or pull: an explicit Push or Pull group in
// classification wins, then the fallback slug tables.
func SideOf(slug string, classification model.Classification) Side {
	slug = model.NormalizeSlug(slug)
	if info, ok := classification.Lookup(slug); ok {
		switch info.Group {
		case model.GroupPush:
			return SidePush
		case model.GroupPull:
			return SidePull
		}
	}
	if _, ok := pushSlugs[slug]; ok {
		return SidePush
	}
	if _, ok := pullSlugs[slug]; ok {
		return SidePull
	}
	return SideNone
}

// Classify splits the volume of sets into push and pull. With no volume on
// either side the result is a 50/50 sentinel flagged Insufficient.
func Classify(sets []model.LoggedSet, classification model.Classification) (Result, error) {
	if err := model.ValidateSets(sets); err != nil {
		return Result{}, err
	}

	sentinel := Result{PushPct: 50, PullPct: 50, Insufficient: true, Advice: AdviceNoData}
	if len(sets) == 0 {
		return sentinel, nil
	}

	var r Result
	for _, s := range sets {
		switch SideOf(s.MuscleSlug, classification) {
		case SidePush:
			r.PushVolumeKg += s.Volume()
		case SidePull:
			r.PullVolumeKg += s.Volume()
		default:
			continue
		}
		r.SampleCount++
	}

	total := r.PushVolumeKg + r.PullVolumeKg
	if total == 0 {
		sentinel.SampleCount = r.SampleCount
		sentinel.Advice = AdviceInsufficient
		return sentinel, nil
	}

	r.PushPct = int(math.Round(100 * r.PushVolumeKg / total))
	r.PullPct = 100 - r.PushPct
	switch {
	case r.PushPct > DominantAbovePct:
		r.Advice = AdvicePushDominant
	case r.PullPct > DominantAbovePct:
		r.Advice = AdvicePullDominant
	default:
		r.Advice = AdviceBalanced
	}
	return r, nil
}
