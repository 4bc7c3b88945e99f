package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/ironrank/internal/adapters/http/api"
	service "github.com/okian/ironrank/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2025, 3, 19, 20, 0, 0, 0, time.UTC)

func newMux(opts ...api.ServerOption) *http.ServeMux {
	svc := service.New()
	opts = append([]api.ServerOption{api.WithClock(func() time.Time { return fixedNow })}, opts...)
	server := api.NewServer(svc, svc, opts...)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeBody(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
	return out
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux()

		Convey("Then /healthz serves the metrics registry", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then /stats returns service statistics", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(w), ShouldContainKey, "maxSets")
		})

		Convey("Then /stats rejects other methods", func() {
			w := do(mux, http.MethodPost, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Then unknown paths are not found", func() {
			w := do(mux, http.MethodGet, "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then every response carries a request id", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)

			req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})
	})
}

func TestCalculatorEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux()

		Convey("When solving plates", func() {
			w := do(mux, http.MethodPost, "/v1/plates", `{"target_kg": 140}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decodeBody(w)
			So(body["per_side"], ShouldResemble, []any{25.0, 25.0, 10.0})
			So(body["loaded_kg"], ShouldEqual, 140.0)
		})

		Convey("When solving plates from an inventory", func() {
			w := do(mux, http.MethodPost, "/v1/plates",
				`{"target_kg": 100, "inventory": [{"weight_kg": 20, "pairs": 1}]}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(w)["remainder_kg"], ShouldEqual, 20.0)
		})

		Convey("When the target is negative", func() {
			w := do(mux, http.MethodPost, "/v1/plates", `{"target_kg": -5}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(w)["code"], ShouldEqual, "bad_request")
		})

		Convey("When using GET on a POST endpoint", func() {
			w := do(mux, http.MethodGet, "/v1/plates", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/v1/one-rep-max", `{not json`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When estimating a one-rep max", func() {
			w := do(mux, http.MethodPost, "/v1/one-rep-max", `{"weight_kg": 100, "reps": 5}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(w)["estimate_kg"], ShouldEqual, 113.0)
		})

		Convey("When ranking a lifetime volume", func() {
			w := do(mux, http.MethodPost, "/v1/rank", `{"volume_kg": 15000}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decodeBody(w)
			So(body["label"], ShouldEqual, "85,000kg to STEEL WARLORD")
		})

		Convey("When summarizing a session", func() {
			w := do(mux, http.MethodPost, "/v1/summary", `{
				"started_at": "2025-03-19T18:00:00Z",
				"ended_at": "2025-03-19T19:05:00Z",
				"sets": [{"exercise_id": "bench", "muscle_slug": "chest", "weight_kg": 100, "reps": 5, "timestamp": "2025-03-19T18:10:00Z"}]
			}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decodeBody(w)
			So(body["duration"], ShouldEqual, "1h 5m")
			So(body["volume_kg"], ShouldEqual, 500.0)
		})

		Convey("When a session ends before it starts", func() {
			w := do(mux, http.MethodPost, "/v1/summary",
				`{"started_at": "2025-03-19T18:00:00Z", "ended_at": "2025-03-19T17:00:00Z", "sets": []}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When asking for history without an exercise", func() {
			w := do(mux, http.MethodPost, "/v1/history", `{"sets": []}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When undoing the latest set", func() {
			w := do(mux, http.MethodPost, "/v1/undo", `{"sets": [
				{"exercise_id": "bench", "muscle_slug": "chest", "weight_kg": 100, "reps": 5, "timestamp": "2025-03-19T18:10:00Z"}
			]}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decodeBody(w)
			So(body["removed"], ShouldBeTrue)
			So(body["sets"], ShouldBeEmpty)
		})
	})
}

func TestDashboardEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux()
		sets := `[
			{"exercise_id": "bench", "muscle_slug": "chest", "weight_kg": 100, "reps": 5, "timestamp": "2025-03-19T18:00:00Z"},
			{"exercise_id": "row", "muscle_slug": "lats", "weight_kg": 100, "reps": 5, "timestamp": "2025-03-19T18:10:00Z"}
		]`

		Convey("When as_of is omitted", func() {
			w := do(mux, http.MethodPost, "/v1/dashboard", `{"sets": `+sets+`}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decodeBody(w)

			Convey("Then the server clock is used", func() {
				asOf, err := time.Parse(time.RFC3339, body["as_of"].(string))
				So(err, ShouldBeNil)
				So(asOf.Equal(fixedNow), ShouldBeTrue)
				So(body["lifetime_volume_kg"], ShouldEqual, 1000.0)
				So(body["current_week"], ShouldEqual, "2025-W12")
				So(body["symmetry"].(map[string]any)["advice"], ShouldContainSubstring, "Balanced")
			})
		})

		Convey("When settings use a lowercase experience", func() {
			w := do(mux, http.MethodPost, "/v1/dashboard", `{"sets": `+sets+`, "settings": {"experience": "intermediate"}}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(w)["coach_title"], ShouldEqual, "⚡ Pro Coach")
		})

		Convey("When settings name an unknown experience", func() {
			w := do(mux, http.MethodPost, "/v1/dashboard", `{"sets": [], "settings": {"experience": "wizard"}}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a set is invalid", func() {
			w := do(mux, http.MethodPost, "/v1/dashboard",
				`{"sets": [{"muscle_slug": "chest", "weight_kg": -1, "reps": 5, "timestamp": "2025-03-19T18:00:00Z"}]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the body exceeds the limit", func() {
			small := newMux(api.WithMaxBodyBytes(16))
			w := do(small, http.MethodPost, "/v1/dashboard", `{"sets": `+sets+`}`)
			So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
		})
	})
}

type failingDeps struct {
	api.Dependencies
}

func (failingDeps) OneRepMax(context.Context, float64, int) (float64, error) {
	return 0, errors.New("boom")
}

type staticStats map[string]interface{}

func (s staticStats) GetStats() map[string]interface{} { return s }

func TestServerErrors(t *testing.T) {
	Convey("Given dependencies that fail unexpectedly", t, func() {
		server := api.NewServer(failingDeps{}, staticStats{"ok": true})
		mux := http.NewServeMux()
		server.Register(context.Background(), mux)

		w := do(mux, http.MethodPost, "/v1/one-rep-max", `{"weight_kg": 100, "reps": 5}`)
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(decodeBody(w)["code"], ShouldEqual, "internal_error")
	})

	Convey("Given a wrapped error", t, func() {
		err := api.WrapKind("api.test", api.ErrBadRequest, errors.New("cause"))
		So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "api.test: bad request: cause")
		So(api.Wrap("op", nil), ShouldBeNil)
		So(api.NewKind("op", api.ErrMethodNotAllowed).Error(), ShouldEqual, "op: method not allowed")
	})
}
