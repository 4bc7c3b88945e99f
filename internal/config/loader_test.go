package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/ironrank/internal/config"
	"github.com/okian/ironrank/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.BarWeightKg, convey.ShouldEqual, 20)
				convey.So(cfg.AvailablePlates, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			setenv("IRONRANK_ADDR", ":8080")
			setenv("IRONRANK_MAX_SETS_PER_REQUEST", "100")
			setenv("IRONRANK_AVAILABLE_PLATES", "20,10,5,1.25")
			setenv("IRONRANK_EXPERIENCE_LEVEL", "intermediate")
			setenv("IRONRANK_METRICS_REFRESH_INTERVAL", "30s")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxSetsPerRequest, convey.ShouldEqual, 100)
				convey.So(cfg.AvailablePlates, convey.ShouldResemble, []float64{20, 10, 5, 1.25})
				convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 30*time.Second)

				s, err := cfg.Settings()
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.Experience, convey.ShouldEqual, model.Intermediate)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := writeConfig(t, `
addr: ":9090"
log_format: json
bar_weight_kg: 15
available_plates: [20, 10, 5]
weekly_target_kg: 30000
timezone: Europe/Berlin
metrics_prefix: gym
metrics_labels:
  region: eu
muscles:
  neck:
    group: Pull
    display_name: Neck
`)
			setenv("IRONRANK_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.BarWeightKg, convey.ShouldEqual, 15)
				convey.So(cfg.AvailablePlates, convey.ShouldResemble, []float64{20, 10, 5})
				convey.So(cfg.WeeklyTargetKg, convey.ShouldEqual, 30000)
				convey.So(cfg.MetricsPrefix, convey.ShouldEqual, "gym")
				convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"region": "eu"})
				convey.So(cfg.Classification()["neck"].Group, convey.ShouldEqual, model.GroupPull)
			})

			convey.Convey("And environment variables override file values", func() {
				setenv("IRONRANK_ADDR", ":7070")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.BarWeightKg, convey.ShouldEqual, 15)
			})

			convey.Convey("And a plate list from env replaces the file list", func() {
				setenv("IRONRANK_AVAILABLE_PLATES", " 25, 15 ,2.5,")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AvailablePlates, convey.ShouldResemble, []float64{25, 15, 2.5})

				s, err := cfg.Settings()
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.AvailablePlates, convey.ShouldResemble, []float64{25, 15, 2.5})
			})
		})

		convey.Convey("When the config file does not exist", func() {
			setenv("IRONRANK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the loaded values are invalid", func() {
			setenv("IRONRANK_MAX_SETS_PER_REQUEST", "-1")
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

// setenv sets key for the current Convey path only.
func setenv(key, value string) {
	_ = os.Setenv(key, value)
	convey.Reset(func() { _ = os.Unsetenv(key) })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ironrank.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
