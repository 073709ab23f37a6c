package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/livescore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Variant, convey.ShouldEqual, config.VariantEvent)
			convey.So(cfg.StrictMatchLookup, convey.ShouldBeFalse)
			convey.So(cfg.StoreCapacity, convey.ShouldEqual, 64)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "livescore")
			convey.So(cfg.SimulationMatches, convey.ShouldEqual, 100)
			convey.So(cfg.SimulationWorkers, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.SimulationMaxGoals, convey.ShouldEqual, 8)
			convey.So(cfg.SimulationFinishRatio, convey.ShouldEqual, 0.25)
			convey.So(cfg.PruneFinished, convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one invalid field", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"log level", func(c *config.Config) { c.LogLevel = "loud" }},
			{"log format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"variant", func(c *config.Config) { c.Variant = "hybrid" }},
			{"capacity", func(c *config.Config) { c.StoreCapacity = -1 }},
			{"namespace", func(c *config.Config) { c.MetricsNamespace = "" }},
			{"matches", func(c *config.Config) { c.SimulationMatches = -5 }},
			{"workers", func(c *config.Config) { c.SimulationWorkers = 0 }},
			{"max goals", func(c *config.Config) { c.SimulationMaxGoals = -1 }},
			{"finish ratio", func(c *config.Config) { c.SimulationFinishRatio = 1.5 }},
		}

		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()

			convey.Convey("Then "+tc.name+" is rejected with ErrInvalidConfig", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
