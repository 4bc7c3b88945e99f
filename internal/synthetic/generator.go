package synthetic

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/pkg/logger"
)

// sessionNamespace scopes generated session ids.
var sessionNamespace = uuid.MustParse("6f1c2a8e-3d47-4b0a-9e61-2c5d8f7a1b90")

// Progression and noise.
const (
	weeklyProgression = 0.02
	weightJitter      = 0.05
	plateStepKg       = 2.5
	minReps           = 5
	maxReps           = 10
	sessionHour       = 18
	restBetweenSets   = 3 * time.Minute
)

type exercise struct {
	id     string
	muscle string
	baseKg float64
}

// day is one workout template of the split.
type day struct {
	name      string
	exercises []exercise
}

var split = []day{
	{name: "push", exercises: []exercise{
		{"bench_press", "chest", 60},
		{"overhead_press", "shoulders", 35},
		{"triceps_pushdown", "triceps", 25},
	}},
	{name: "pull", exercises: []exercise{
		{"barbell_row", "lats", 50},
		{"lat_pulldown", "lats", 45},
		{"barbell_curl", "biceps", 25},
		{"face_pull", "posterior deltoid", 15},
	}},
	{name: "legs", exercises: []exercise{
		{"back_squat", "quads", 80},
		{"romanian_deadlift", "hamstrings", 60},
		{"hip_thrust", "glutes", 70},
		{"calf_raise", "calves", 40},
	}},
}

// trainingDays maps sessions-per-week to weekday offsets from Monday.
var trainingDays = map[int][]int{
	1: {2},
	2: {0, 3},
	3: {0, 2, 4},
	4: {0, 1, 3, 5},
	5: {0, 1, 2, 4, 5},
	6: {0, 1, 2, 3, 4, 5},
	7: {0, 1, 2, 3, 4, 5, 6},
}

// History is a generated training log.
type History struct {
	Sets          []model.LoggedSet `json:"sets"`
	SessionStarts []time.Time       `json:"session_starts"`
}

// Sessions groups the history's sets by session id, ordered by start.
func (h History) Sessions() [][]model.LoggedSet {
	index := make(map[string]int)
	var out [][]model.LoggedSet
	for _, s := range model.SortedByTime(h.Sets) {
		i, ok := index[s.SessionID]
		if !ok {
			i = len(out)
			index[s.SessionID] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], s)
	}
	return out
}

type slot struct {
	index int
	week  int
	start time.Time
}

// Generate builds a deterministic history for cfg. Sessions are built
// concurrently; each derives its randomness from the seed and its index.
func Generate(ctx context.Context, cfg Config) (History, error) {
	if err := cfg.Validate(); err != nil {
		return History{}, err
	}

	slots := schedule(cfg)
	logger.Get().Info(ctx, "generating training history",
		logger.Int("weeks", cfg.Weeks),
		logger.Int("sessions", len(slots)),
		logger.Int("workers", cfg.Workers),
	)

	sessions := make([][]model.LoggedSet, len(slots))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for _, sl := range slots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("session %d: %w", sl.index, err)
			}
			sessions[sl.index] = buildSession(cfg, sl)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return History{}, err
	}

	h := History{SessionStarts: make([]time.Time, 0, len(slots))}
	for i, sets := range sessions {
		h.Sets = append(h.Sets, sets...)
		h.SessionStarts = append(h.SessionStarts, slots[i].start)
	}
	logger.Get().Info(ctx, "generated training history", logger.Int("sets", len(h.Sets)))
	return h, nil
}

// schedule lays out session start times, oldest first, none after cfg.End.
func schedule(cfg Config) []slot {
	loc := cfg.End.Location()
	y, m, d := cfg.End.Date()
	endDay := time.Date(y, m, d, 0, 0, 0, 0, loc)
	offset := (int(endDay.Weekday()) + 6) % 7
	monday := endDay.AddDate(0, 0, -offset-7*(cfg.Weeks-1))

	var out []slot
	for w := 0; w < cfg.Weeks; w++ {
		for _, off := range trainingDays[cfg.SessionsPerWeek] {
			start := monday.AddDate(0, 0, 7*w+off).Add(sessionHour * time.Hour)
			if start.After(cfg.End) {
				continue
			}
			out = append(out, slot{index: len(out), week: w, start: start})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out
}

func buildSession(cfg Config, sl slot) []model.LoggedSet {
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(sl.index)))
	id := uuid.NewSHA1(sessionNamespace, []byte(strconv.FormatUint(cfg.Seed, 10)+"/"+strconv.Itoa(sl.index))).String()
	template := split[sl.index%len(split)]

	sets := make([]model.LoggedSet, 0, len(template.exercises)*cfg.SetsPerExercise)
	at := sl.start
	for _, ex := range template.exercises {
		target := ex.baseKg * (1 + weeklyProgression*float64(sl.week))
		for i := 0; i < cfg.SetsPerExercise; i++ {
			at = at.Add(restBetweenSets)
			jitter := 1 + weightJitter*(2*rng.Float64()-1)
			sets = append(sets, model.LoggedSet{
				ExerciseID: ex.id,
				MuscleSlug: ex.muscle,
				WeightKg:   roundTo(target*jitter, plateStepKg),
				Reps:       minReps + rng.IntN(maxReps-minReps+1),
				Timestamp:  at,
				Tags:       []string{template.name},
				SessionID:  id,
			})
		}
	}
	return sets
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}
