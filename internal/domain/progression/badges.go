package progression

import (
	"time"

	"github.com/okian/ironrank/internal/domain/model"
)

func minWorkouts(n int) func(model.BadgeStats) bool {
	return func(s model.BadgeStats) bool { return s.TotalWorkouts >= n }
}

func minWeight(kg float64) func(model.BadgeStats) bool {
	return func(s model.BadgeStats) bool { return s.MaxWeightKg >= kg }
}

// DefaultBadges returns the trophy case in display order.
func DefaultBadges() []model.BadgeDefinition {
	return []model.BadgeDefinition{
		{ID: "first_step", Name: "First Step", Description: "Log your first workout", Icon: "footsteps", Predicate: minWorkouts(1)},
		{ID: "regular", Name: "Regular", Description: "Complete 10 workouts", Icon: "walk", Predicate: minWorkouts(10)},
		{ID: "dedicated", Name: "Dedicated", Description: "Complete 25 workouts", Icon: "flame", Predicate: minWorkouts(25)},
		{ID: "beast", Name: "Beast", Description: "Complete 50 workouts", Icon: "skull", Predicate: minWorkouts(50)},
		{ID: "maniac", Name: "Maniac", Description: "Complete 100 workouts", Icon: "nuclear", Predicate: minWorkouts(100)},
		{ID: "legend", Name: "Godlike", Description: "Complete 200 workouts", Icon: "infinite", Predicate: minWorkouts(200)},
		{ID: "100kg", Name: "100kg Club", Description: "Lift 100kg in a single set", Icon: "barbell", Predicate: minWeight(100)},
		{ID: "140kg", Name: "3 Plates", Description: "Lift 140kg in a single set", Icon: "disc", Predicate: minWeight(140)},
		{ID: "180kg", Name: "4 Plates", Description: "Lift 180kg in a single set", Icon: "layers", Predicate: minWeight(180)},
		{ID: "220kg", Name: "Monster", Description: "Lift 220kg in a single set", Icon: "hardware-chip", Predicate: minWeight(220)},
		{ID: "300kg", Name: "HERCULES", Description: "Lift 300kg in a single set", Icon: "thunderstorm", Predicate: minWeight(300)},
		{ID: "weekend", Name: "No Days Off", Description: "Train on a Saturday or Sunday", Icon: "calendar", Predicate: func(s model.BadgeStats) bool { return s.HasWeekendSession }},
	}
}

// EvaluateBadges returns the ids of every definition whose predicate holds
// for stats, in definition order. Definitions without a predicate never
// unlock and repeated ids are reported once.
func EvaluateBadges(stats model.BadgeStats, defs []model.BadgeDefinition) []string {
	seen := make(map[string]struct{}, len(defs))
	out := []string{}
	for _, d := range defs {
		if d.Predicate == nil {
			continue
		}
		if _, dup := seen[d.ID]; dup {
			continue
		}
		if d.Predicate(stats) {
			seen[d.ID] = struct{}{}
			out = append(out, d.ID)
		}
	}
	return out
}

// StatsFrom derives badge stats from a set stream. Workouts are distinct
// session ids; sets without one are grouped by calendar day in loc, which
// also decides weekends. A nil loc means UTC.
func StatsFrom(sets []model.LoggedSet, loc *time.Location) model.BadgeStats {
	if loc == nil {
		loc = time.UTC
	}
	var st model.BadgeStats
	workouts := make(map[string]struct{})
	for _, s := range sets {
		local := s.Timestamp.In(loc)
		key := s.SessionID
		if key == "" {
			key = "day:" + local.Format(time.DateOnly)
		}
		workouts[key] = struct{}{}
		if s.WeightKg > st.MaxWeightKg {
			st.MaxWeightKg = s.WeightKg
		}
		if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
			st.HasWeekendSession = true
		}
	}
	st.TotalWorkouts = len(workouts)
	return st
}
