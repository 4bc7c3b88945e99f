package progression

import (
	"fmt"
	"time"
)

// ElevatedStreak is the streak length at which the flame turns blue.
const ElevatedStreak = 10

// IsElevated reports whether a streak earns the elevated display.
func IsElevated(streak int) bool {
	return streak >= ElevatedStreak
}

// WeekID names a Sunday-to-Saturday calendar week. Week 1 is the week
// containing January 1; a week that straddles New Year belongs to the new
// year, so every calendar week has exactly one id.
type WeekID struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

func (w WeekID) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Week)
}

// WeekOf returns the week id for t using t's own location for the date.
// The number is ceil((weekday(Jan 1) + 1 + daysSinceJan1) / 7).
func WeekOf(t time.Time) WeekID {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	saturday := day.AddDate(0, 0, int(time.Saturday-day.Weekday()))
	if saturday.Year() > y {
		return WeekID{Year: y + 1, Week: 1}
	}

	jan1 := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	n := int(jan1.Weekday()) + 1 + day.YearDay() - 1
	return WeekID{Year: y, Week: (n + 6) / 7}
}

// Prev returns the week before w. Week 1 steps back to the final week of
// the previous year, whatever its number.
func (w WeekID) Prev() WeekID {
	if w.Week > 1 {
		return WeekID{Year: w.Year, Week: w.Week - 1}
	}
	jan1 := time.Date(w.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	sunday := jan1.AddDate(0, 0, -int(jan1.Weekday()))
	return WeekOf(sunday.AddDate(0, 0, -1))
}

// WeeklyStreak counts consecutive weeks with at least one session, ending
// at asOf's week, or at the week before it when asOf's week has none yet.
// Sessions after asOf are ignored.
func WeeklyStreak(sessions []time.Time, asOf time.Time) int {
	weeks := make(map[WeekID]struct{}, len(sessions))
	for _, s := range sessions {
		if s.After(asOf) {
			continue
		}
		weeks[WeekOf(s.In(asOf.Location()))] = struct{}{}
	}

	check := WeekOf(asOf)
	if _, ok := weeks[check]; !ok {
		check = check.Prev()
		if _, ok := weeks[check]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := weeks[check]; !ok {
			return streak
		}
		streak++
		check = check.Prev()
	}
}
