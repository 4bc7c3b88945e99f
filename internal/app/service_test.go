package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it uses the default settings", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Settings(), ShouldResemble, model.DefaultSettings())
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithSettings(model.UserSettings{BarWeightKg: 15}),
			service.WithMaxSets(10),
			service.WithLocation(time.FixedZone("X", 3600)),
		)

		Convey("Then missing settings are filled from the defaults", func() {
			So(svc.Settings().BarWeightKg, ShouldEqual, 15)
			So(svc.Settings().AvailablePlates, ShouldResemble, model.DefaultPlates)
			So(svc.GetStats()["maxSets"], ShouldEqual, 10)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		ctx := context.Background()

		So(svc.GetStats()["started"], ShouldEqual, false)

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it is marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats, ShouldContainKey, "uptimeSeconds")
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When the configured tiers are malformed", func() {
			bad := service.New(service.WithTiers([]model.RankTier{{Name: "x", ThresholdKg: 5}}))
			So(bad.Start(ctx), ShouldNotBeNil)
		})
	})
}
