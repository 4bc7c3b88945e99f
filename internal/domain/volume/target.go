package volume

import "math"

// Weekly target messages, keyed by completion.
const (
	MessageCrushed  = "🔥 WEEK CRUSHED! GOAL MET."
	MessageAlmost   = "💪 Almost there! One more session."
	MessageHalfway  = "⚡ Halfway mark. Keep pushing."
	MessageNewWeek  = "📅 New week. Let's build momentum."
	DefaultTargetKg = 20000.0
)

// TargetStatus is progress toward the weekly volume goal.
type TargetStatus struct {
	CurrentKg float64 `json:"current_kg"`
	TargetKg  float64 `json:"target_kg"`
	Percent   int     `json:"percent"`
	Message   string  `json:"message"`
	GoalMet   bool    `json:"goal_met"`
}

// TargetProgress rates currentKg against targetKg. A non-positive target
// falls back to DefaultTargetKg. Percent is rounded and capped at 100.
func TargetProgress(currentKg, targetKg float64) TargetStatus {
	if targetKg <= 0 || math.IsNaN(targetKg) {
		targetKg = DefaultTargetKg
	}
	if currentKg < 0 || math.IsNaN(currentKg) {
		currentKg = 0
	}
	pct := int(math.Min(100, math.Round(currentKg/targetKg*100)))

	st := TargetStatus{CurrentKg: currentKg, TargetKg: targetKg, Percent: pct}
	switch {
	case pct >= 100:
		st.Message = MessageCrushed
		st.GoalMet = true
	case pct >= 75:
		st.Message = MessageAlmost
	case pct >= 50:
		st.Message = MessageHalfway
	default:
		st.Message = MessageNewWeek
	}
	return st
}
