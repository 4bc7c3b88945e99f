package volume

import (
	"sort"
	"time"

	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/internal/domain/repmax"
)

// Record is the heaviest set ever logged for one exercise.
type Record struct {
	ExerciseID string    `json:"exercise_id"`
	MuscleSlug string    `json:"muscle_slug"`
	WeightKg   float64   `json:"weight_kg"`
	Reps       int       `json:"reps"`
	Timestamp  time.Time `json:"timestamp"`
}

// PersonalRecords returns one record per exercise: the heaviest set, with
// the earliest timestamp winning ties. Results are sorted heaviest first,
// then by exercise id.
func PersonalRecords(sets []model.LoggedSet) []Record {
	best := make(map[string]Record)
	for _, s := range sets {
		if s.ExerciseID == "" {
			continue
		}
		r, ok := best[s.ExerciseID]
		if ok && (s.WeightKg < r.WeightKg || (s.WeightKg == r.WeightKg && !s.Timestamp.Before(r.Timestamp))) {
			continue
		}
		best[s.ExerciseID] = Record{
			ExerciseID: s.ExerciseID,
			MuscleSlug: model.NormalizeSlug(s.MuscleSlug),
			WeightKg:   s.WeightKg,
			Reps:       s.Reps,
			Timestamp:  s.Timestamp,
		}
	}

	out := make([]Record, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeightKg != out[j].WeightKg {
			return out[i].WeightKg > out[j].WeightKg
		}
		return out[i].ExerciseID < out[j].ExerciseID
	})
	return out
}

// DayStat is one calendar day of work on a single exercise.
type DayStat struct {
	Date         time.Time `json:"date"`
	BestWeightKg float64   `json:"best_weight_kg"`
	VolumeKg     float64   `json:"volume_kg"`
	Sets         int       `json:"sets"`
	Estimated1RM float64   `json:"estimated_1rm"`
}

// MinTrendPoints is how many days History needs before a trend is
// meaningful.
const MinTrendPoints = 2

// History buckets the sets of exerciseID by calendar day in each set's own
// location, oldest day first.
func History(sets []model.LoggedSet, exerciseID string) []DayStat {
	byDay := make(map[time.Time]*DayStat)
	for _, s := range sets {
		if s.ExerciseID != exerciseID {
			continue
		}
		y, m, d := s.Timestamp.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, s.Timestamp.Location())
		st, ok := byDay[day]
		if !ok {
			st = &DayStat{Date: day}
			byDay[day] = st
		}
		st.Sets++
		st.VolumeKg += s.Volume()
		if s.WeightKg > st.BestWeightKg {
			st.BestWeightKg = s.WeightKg
		}
		if e, err := repmax.Estimate(s.WeightKg, s.Reps); err == nil && e > st.Estimated1RM {
			st.Estimated1RM = e
		}
	}

	out := make([]DayStat, 0, len(byDay))
	for _, st := range byDay {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Trend is the change in best weight between the first and last day, or 0
// when fewer than MinTrendPoints days exist.
func Trend(days []DayStat) float64 {
	if len(days) < MinTrendPoints {
		return 0
	}
	return days[len(days)-1].BestWeightKg - days[0].BestWeightKg
}
