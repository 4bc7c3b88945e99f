package synthetic_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/ironrank/internal/adapters/http/api"
	service "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/internal/synthetic"
	"github.com/okian/ironrank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

// sunday closes a full Monday-based week.
var sunday = time.Date(2025, 3, 23, 21, 0, 0, 0, time.UTC)

func config() synthetic.Config {
	cfg := synthetic.DefaultConfig()
	cfg.End = sunday
	cfg.Seed = 42
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	Convey("Given the default config", t, func() {
		So(synthetic.DefaultConfig().Validate(), ShouldBeNil)
	})

	Convey("Given a config with several problems", t, func() {
		err := synthetic.Config{Weeks: 0, SessionsPerWeek: 9, SetsPerExercise: 0}.Validate()
		So(errors.Is(err, synthetic.ErrInvalidConfig), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "weeks")
		So(err.Error(), ShouldContainSubstring, "sessions per week")
		So(err.Error(), ShouldContainSubstring, "end time")
	})
}

func TestGenerate(t *testing.T) {
	Convey("Given a twelve week three day split", t, func() {
		h, err := synthetic.Generate(context.Background(), config())
		So(err, ShouldBeNil)

		Convey("Then every session is present and valid", func() {
			So(h.SessionStarts, ShouldHaveLength, 36)
			So(h.Sessions(), ShouldHaveLength, 36)
			So(model.ValidateSets(h.Sets), ShouldBeNil)
			for _, s := range h.Sets {
				So(s.Timestamp.After(sunday), ShouldBeFalse)
				So(s.SessionID, ShouldNotBeEmpty)
			}
		})

		Convey("Then sessions rotate through the split", func() {
			sessions := h.Sessions()
			So(sessions[0][0].ExerciseID, ShouldEqual, "bench_press")
			So(sessions[1][0].ExerciseID, ShouldEqual, "barbell_row")
			So(sessions[2][0].ExerciseID, ShouldEqual, "back_squat")
			So(sessions[0][0].HasTag("push"), ShouldBeTrue)
		})

		Convey("Then the same seed reproduces the same history", func() {
			again, err := synthetic.Generate(context.Background(), config())
			So(err, ShouldBeNil)
			So(again, ShouldResemble, h)
		})

		Convey("Then weights sit on plate steps", func() {
			for _, s := range h.Sets {
				So(s.WeightKg/2.5, ShouldEqual, float64(int(s.WeightKg/2.5)))
			}
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := synthetic.Generate(ctx, config())
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})

	Convey("Given an invalid config", t, func() {
		cfg := config()
		cfg.Weeks = 0
		_, err := synthetic.Generate(context.Background(), cfg)
		So(errors.Is(err, synthetic.ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestSaveLoad(t *testing.T) {
	Convey("Given a generated history on disk", t, func() {
		cfg := config()
		cfg.Weeks = 1
		h, err := synthetic.Generate(context.Background(), cfg)
		So(err, ShouldBeNil)

		path := filepath.Join(t.TempDir(), "nested", "history.json")
		So(synthetic.Save(path, h), ShouldBeNil)

		Convey("Then it loads back", func() {
			loaded, err := synthetic.Load(path)
			So(err, ShouldBeNil)
			So(loaded.Sets, ShouldHaveLength, len(h.Sets))
			So(loaded.SessionStarts, ShouldHaveLength, 3)
		})

		Convey("Then a bare array of sets loads too", func() {
			data, err := json.Marshal(h.Sets)
			So(err, ShouldBeNil)
			bare := filepath.Join(t.TempDir(), "sets.json")
			So(os.WriteFile(bare, data, 0o600), ShouldBeNil)

			loaded, err := synthetic.Load(bare)
			So(err, ShouldBeNil)
			So(loaded.Sets, ShouldHaveLength, len(h.Sets))
			So(loaded.SessionStarts, ShouldBeEmpty)
		})
	})
}

func TestSubmit(t *testing.T) {
	Convey("Given a running ironrank server", t, func() {
		svc := service.New()
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		cfg := config()
		cfg.Weeks = 2
		h, err := synthetic.Generate(context.Background(), cfg)
		So(err, ShouldBeNil)

		Convey("When replaying the history", func() {
			client := synthetic.NewClient(srv.URL+"/", 5*time.Second)
			stats, body, err := synthetic.Submit(context.Background(), client, h, sunday, 3)

			Convey("Then every session is summarized and the dashboard returned", func() {
				So(err, ShouldBeNil)
				So(stats.Sessions, ShouldEqual, 6)
				So(stats.SummariesOK, ShouldEqual, 6)
				So(stats.SummariesFailed, ShouldEqual, 0)

				var d service.Dashboard
				So(json.Unmarshal(body, &d), ShouldBeNil)
				So(d.Streak, ShouldEqual, 2)
				So(d.BadgeStats.TotalWorkouts, ShouldEqual, 6)
				So(d.Badges, ShouldContain, "first_step")
			})
		})
	})

	Convey("Given an unreachable server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client := synthetic.NewClient(url, time.Second)
		_, _, err := synthetic.Submit(context.Background(), client, synthetic.History{}, sunday, 1)
		So(err, ShouldNotBeNil)
	})

	Convey("Given a server that rejects requests", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		defer srv.Close()

		client := synthetic.NewClient(srv.URL, time.Second)
		err := client.Post(context.Background(), "/v1/plates", map[string]float64{"target_kg": 100}, nil)
		So(errors.Is(err, synthetic.ErrStatus), ShouldBeTrue)
	})
}
