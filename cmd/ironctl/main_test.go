package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/ironrank/internal/adapters/http/api"
	service "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func execute(args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlatesCommand(t *testing.T) {
	convey.Convey("Given the plates command", t, func() {
		convey.Convey("When solving 140kg", func() {
			out, err := execute("plates", "140")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "per side: 25 + 25 + 10")
			convey.So(out, convey.ShouldContainSubstring, "loaded:   140kg on a 20kg bar")
			convey.So(out, convey.ShouldNotContainSubstring, "short")
		})

		convey.Convey("When the plates cannot make the target", func() {
			out, err := execute("plates", "23", "--plates", "1.25")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "per side: 1.25")
			convey.So(out, convey.ShouldContainSubstring, "short:    0.25kg per side")
		})

		convey.Convey("When the target is just the bar", func() {
			out, err := execute("plates", "20")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "per side: empty bar")
		})

		convey.Convey("When asking for JSON", func() {
			out, err := execute("plates", "100", "--bar", "15", "--json")
			convey.So(err, convey.ShouldBeNil)
			var res map[string]any
			convey.So(json.Unmarshal([]byte(out), &res), convey.ShouldBeNil)
			convey.So(res["bar_kg"], convey.ShouldEqual, 15.0)
		})

		convey.Convey("When the target is not a number", func() {
			_, err := execute("plates", "heavy")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestOneRepMaxCommand(t *testing.T) {
	convey.Convey("Given the 1rm command", t, func() {
		out, err := execute("1rm", "100", "5")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "estimated 1RM: 113kg\n")

		out, err = execute("1rm", "100", "40")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldContainSubstring, "no reliable estimate")

		_, err = execute("1rm", "100", "-2")
		convey.So(err, convey.ShouldNotBeNil)

		_, err = execute("1rm", "100")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestGenerateAndReport(t *testing.T) {
	convey.Convey("Given a generated history file", t, func() {
		path := filepath.Join(t.TempDir(), "history.json")
		out, err := execute("generate", "--weeks", "4", "--end", "2025-03-23", "--seed", "7", "-o", path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldContainSubstring, "in 12 sessions")

		convey.Convey("When reporting on it", func() {
			out, err := execute("report", "-i", path, "--as-of", "2025-03-23", "--experience", "intermediate")
			convey.So(err, convey.ShouldBeNil)

			var d service.Dashboard
			convey.So(json.Unmarshal([]byte(out), &d), convey.ShouldBeNil)
			convey.So(d.BadgeStats.TotalWorkouts, convey.ShouldEqual, 12)
			convey.So(d.Streak, convey.ShouldEqual, 4)
			convey.So(d.CoachTitle, convey.ShouldEqual, "⚡ Pro Coach")
			convey.So(d.LifetimeVolumeKg, convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("When the input flag is missing", func() {
			_, err := execute("report")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given generate without an output file", t, func() {
		out, err := execute("generate", "--weeks", "1", "--end", "2025-03-23")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldContainSubstring, `"session_starts"`)
	})

	convey.Convey("Given an invalid end date", t, func() {
		_, err := execute("generate", "--end", "yesterday")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestSubmitCommand(t *testing.T) {
	convey.Convey("Given a running server", t, func() {
		svc := service.New()
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		out, err := execute("submit", "--url", srv.URL, "--as-of", "2025-03-23T21:00:00Z", "--workers", "2")
		convey.So(err, convey.ShouldBeNil)

		var d map[string]any
		convey.So(json.Unmarshal([]byte(out), &d), convey.ShouldBeNil)
		convey.So(d, convey.ShouldContainKey, "rank")
		convey.So(d["streak"], convey.ShouldEqual, 12.0)
	})
}
