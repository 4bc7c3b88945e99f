package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"

	"github.com/okian/ironrank/internal/config"
	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/pkg/logger"
	"github.com/okian/ironrank/pkg/metrics"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}

func TestNewService(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then a service is built from it", func() {
			svc, err := newService(cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Settings().BarWeightKg, convey.ShouldEqual, model.DefaultBarWeightKg)
			convey.So(svc.GetStats()["maxSets"], convey.ShouldEqual, cfg.MaxSetsPerRequest)
		})

		convey.Convey("Then an unknown timezone is rejected", func() {
			cfg.Timezone = "Nowhere/Special"
			_, err := newService(cfg, logger.Get())
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("Then an unknown experience level is rejected", func() {
			cfg.ExperienceLevel = "wizard"
			_, err := newService(cfg, logger.Get())
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given the assembled mux", t, func() {
		ctx := context.Background()
		svc, err := newService(config.New(ctx), logger.Get())
		convey.So(err, convey.ShouldBeNil)
		mux := newMux(ctx, svc, logger.Get())

		for _, path := range []string{"/healthz", "/stats", "/api-docs", "/openapi.yaml"} {
			req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		}
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a config listening on an ephemeral port", t, func() {
		cfg := config.New(context.Background())
		cfg.Addr = "127.0.0.1:0"

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg) }()

			time.Sleep(50 * time.Millisecond)
			cancel()

			convey.Convey("Then run shuts down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					t.Fatal("run did not return")
				}
			})
		})
	})

	convey.Convey("Given metrics are disabled", t, func() {
		cfg := config.New(context.Background())
		cfg.Addr = "127.0.0.1:0"
		cfg.MetricsEnabled = false

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		convey.So(run(ctx, cfg), convey.ShouldBeNil)
		convey.So(metrics.Global().Enabled(), convey.ShouldBeTrue)
	})
}

func TestConfigureMetrics(t *testing.T) {
	convey.Convey("Given metrics settings in the config", t, func() {
		prev := metrics.Global()
		cfg := config.New(context.Background())
		cfg.MetricsEnabled = false
		cfg.MetricsPrefix = "gym"
		cfg.MetricsLabels = map[string]string{"region": "eu"}
		cfg.MetricsRefreshInterval = 30 * time.Second

		restore := configureMetrics(cfg)
		m := metrics.Global()
		restore()

		convey.So(m.Enabled(), convey.ShouldBeFalse)
		convey.So(m.RefreshInterval(), convey.ShouldEqual, 30*time.Second)
		convey.So(metrics.Global(), convey.ShouldPointTo, prev)
	})

	convey.Convey("Given a prefix and labels", t, func() {
		cfg := config.New(context.Background())
		cfg.MetricsPrefix = "gym"
		cfg.MetricsLabels = map[string]string{"region": "eu"}

		restore := configureMetrics(cfg)
		defer restore()
		metrics.RecordSetsProcessed(2)

		families, err := metrics.GetRegistry().Gather()
		convey.So(err, convey.ShouldBeNil)
		var found bool
		for _, f := range families {
			if f.GetName() == "ironrank_engine_gym_sets_processed_total" {
				found = true
				convey.So(f.GetMetric()[0].GetLabel()[0].GetValue(), convey.ShouldEqual, "eu")
			}
		}
		convey.So(found, convey.ShouldBeTrue)
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given a running updater", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			startSystemMetricsUpdater(ctx, time.Millisecond)
			close(done)
		}()
		time.Sleep(10 * time.Millisecond)
		cancel()

		convey.So(func() { <-done }, convey.ShouldNotPanic)
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})
}
