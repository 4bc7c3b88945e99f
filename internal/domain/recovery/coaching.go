package recovery

import "github.com/okian/ironrank/internal/domain/model"

// candidates are checked in this order; the first muscle wins ties.
var candidates = []string{"chest", "lats", "biceps", "triceps", "quads"}

var beginnerTips = map[string]string{
	"chest": "Builder Tip: Focus on Push Ups to build a base.",
	"lats":  "Builder Tip: Assisted Pull Ups are your best friend.",
	"quads": "Builder Tip: Bodyweight Squats explicitly targeting depth.",
}

var intermediateTips = map[string]string{
	"chest":   "Pro Tip: Try Incline Dumbbell Press for upper chest.",
	"lats":    "Pro Tip: Heavy Barbell Rows will thicken that back.",
	"biceps":  "Pro Tip: Preacher Curls for peak contraction.",
	"triceps": "Pro Tip: Skullcrushers to isolate the long head.",
	"quads":   "Pro Tip: Front Squats to emphasize the quads.",
}

// Fallback tips when the focus muscle has no entry.
const (
	BeginnerDefaultTip     = "Keep showing up! Consistency is key for new gains."
	IntermediateDefaultTip = "Balanced physique. Time to increase the weight!"
)

// FocusMuscle returns the candidate muscle with the lowest heat.
func FocusMuscle(heat map[string]float64) string {
	focus := candidates[0]
	low := heat[focus]
	for _, m := range candidates[1:] {
		if h := heat[m]; h < low {
			focus, low = m, h
		}
	}
	return focus
}

// CoachingTip suggests work for the most recovered candidate muscle using
// the table for level. Anything other than Beginner gets the intermediate
// table.
func CoachingTip(heat map[string]float64, level model.ExperienceLevel) string {
	focus := FocusMuscle(heat)
	if level == model.Beginner {
		if tip, ok := beginnerTips[focus]; ok {
			return tip
		}
		return BeginnerDefaultTip
	}
	if tip, ok := intermediateTips[focus]; ok {
		return tip
	}
	return IntermediateDefaultTip
}

// CoachTitle is the heading shown above a tip.
func CoachTitle(level model.ExperienceLevel) string {
	if level == model.Beginner {
		return "🌱 Starter Coach"
	}
	return "⚡ Pro Coach"
}
