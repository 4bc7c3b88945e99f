package model

// RankTier is one rung of the lifetime-volume ladder.
type RankTier struct {
	Name        string  `json:"name"`
	ThresholdKg float64 `json:"threshold_kg"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
}

// BadgeStats are the inputs badge predicates are evaluated against.
type BadgeStats struct {
	TotalWorkouts     int     `json:"total_workouts"`
	MaxWeightKg       float64 `json:"max_weight_kg"`
	HasWeekendSession bool    `json:"has_weekend_session"`
}

// BadgeDefinition is a named unlock condition.
type BadgeDefinition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Predicate   func(BadgeStats) bool
}
