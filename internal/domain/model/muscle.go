package model

import (
	"fmt"
	"strings"
)

// MuscleGroup is the push/pull bucket a muscle belongs to.
type MuscleGroup string

// Muscle groups.
const (
	GroupPush         MuscleGroup = "Push"
	GroupPull         MuscleGroup = "Pull"
	GroupLegs         MuscleGroup = "Legs"
	GroupUnclassified MuscleGroup = "Unclassified"
)

// ParseMuscleGroup accepts a group name in any case.
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "push":
		return GroupPush, nil
	case "pull":
		return GroupPull, nil
	case "legs":
		return GroupLegs, nil
	case "", "unclassified":
		return GroupUnclassified, nil
	default:
		return GroupUnclassified, fmt.Errorf("%w: %q", ErrUnknownGroup, s)
	}
}

// MuscleInfo describes one muscle slug.
type MuscleInfo struct {
	Group       MuscleGroup `json:"group" koanf:"group"`
	DisplayName string      `json:"display_name" koanf:"display_name"`
}

// Classification maps a muscle slug to its group and display name.
type Classification map[string]MuscleInfo

// Lookup finds a slug after normalising case and surrounding spaces.
func (c Classification) Lookup(slug string) (MuscleInfo, bool) {
	info, ok := c[NormalizeSlug(slug)]
	return info, ok
}

// Merge returns a new classification with overrides applied on top of c.
func (c Classification) Merge(overrides Classification) Classification {
	out := make(Classification, len(c)+len(overrides))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range overrides {
		out[NormalizeSlug(k)] = v
	}
	return out
}

// DisplayName returns the human name for slug, or the slug itself.
func (c Classification) DisplayName(slug string) string {
	if info, ok := c.Lookup(slug); ok && info.DisplayName != "" {
		return info.DisplayName
	}
	return slug
}

// NormalizeSlug lower-cases and trims a muscle slug.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// DefaultClassification returns the built-in muscle table. Each call returns
// a fresh map.
func DefaultClassification() Classification {
	return Classification{
		"chest":             {Group: GroupPush, DisplayName: "Chest"},
		"shoulders":         {Group: GroupPush, DisplayName: "Shoulders"},
		"anterior deltoid":  {Group: GroupPush, DisplayName: "Front Delts"},
		"medial deltoid":    {Group: GroupPush, DisplayName: "Side Delts"},
		"triceps":           {Group: GroupPush, DisplayName: "Triceps"},
		"lats":              {Group: GroupPull, DisplayName: "Lats"},
		"traps":             {Group: GroupPull, DisplayName: "Traps"},
		"biceps":            {Group: GroupPull, DisplayName: "Biceps"},
		"posterior deltoid": {Group: GroupPull, DisplayName: "Rear Delts"},
		"lower_back":        {Group: GroupPull, DisplayName: "Lower Back"},
		"forearms":          {Group: GroupPull, DisplayName: "Forearms"},
		"quads":             {Group: GroupLegs, DisplayName: "Quads"},
		"hamstrings":        {Group: GroupLegs, DisplayName: "Hamstrings"},
		"glutes":            {Group: GroupLegs, DisplayName: "Glutes"},
		"calves":            {Group: GroupLegs, DisplayName: "Calves"},
		"abs":               {Group: GroupUnclassified, DisplayName: "Abs"},
		"cardio":            {Group: GroupUnclassified, DisplayName: "Cardio"},
	}
}
