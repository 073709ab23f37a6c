package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/livescore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			// Clear any existing environment variables
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCOREBOARD_VARIANT", "snapshot")
			_ = os.Setenv("SCOREBOARD_STRICT_MATCH_LOOKUP", "true")
			_ = os.Setenv("SCOREBOARD_STORE_CAPACITY", "1024")
			_ = os.Setenv("SCOREBOARD_SIMULATION_FINISH_RATIO", "0.5")
			_ = os.Setenv("SCOREBOARD_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Variant, convey.ShouldEqual, config.VariantSnapshot)
				convey.So(cfg.StrictMatchLookup, convey.ShouldBeTrue)
				convey.So(cfg.StoreCapacity, convey.ShouldEqual, 1024)
				convey.So(cfg.SimulationFinishRatio, convey.ShouldEqual, 0.5)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
variant: snapshot
log_level: debug
simulation_matches: 40
simulation_workers: 3
prune_finished: true
`
			tmpFile := createTempFile("scoreboard-config-*.yaml", yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOREBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Variant, convey.ShouldEqual, config.VariantSnapshot)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.SimulationMatches, convey.ShouldEqual, 40)
				convey.So(cfg.SimulationWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.PruneFinished, convey.ShouldBeTrue)
				convey.So(cfg.SimulationMaxGoals, convey.ShouldEqual, 8) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
variant: snapshot
simulation_matches: 40
`
			tmpFile := createTempFile("scoreboard-config-*.yaml", yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOREBOARD_CONFIG", tmpFile)
			_ = os.Setenv("SCOREBOARD_VARIANT", "event") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Variant, convey.ShouldEqual, config.VariantEvent) // Overridden by env
				convey.So(cfg.SimulationMatches, convey.ShouldEqual, 40)        // From file
			})
		})

		convey.Convey("When loading config with a .env file", func() {
			tmpFile := createTempFile("scoreboard-*.env", "SCOREBOARD_VARIANT=snapshot\nSCOREBOARD_STORE_CAPACITY=7\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOREBOARD_ENV_FILE", tmpFile)
			_ = os.Setenv("SCOREBOARD_STORE_CAPACITY", "9") // Already set wins over .env
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fill unset variables only", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Variant, convey.ShouldEqual, config.VariantSnapshot)
				convey.So(cfg.StoreCapacity, convey.ShouldEqual, 9)
			})
		})

		convey.Convey("When the explicit .env file does not exist", func() {
			_ = os.Setenv("SCOREBOARD_ENV_FILE", "/non/existent/.env")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile("scoreboard-config-*.yaml", `invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOREBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SCOREBOARD_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown variant", func() {
			_ = os.Setenv("SCOREBOARD_VARIANT", "hybrid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unknown variant")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SCOREBOARD_STORE_CAPACITY", "invalid")
			_ = os.Setenv("SCOREBOARD_SIMULATION_WORKERS", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			cfg, err := config.Load(cctx)

			convey.Convey("Then it should fail fast", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SCOREBOARD_CONFIG",
		"SCOREBOARD_ENV_FILE",
		"SCOREBOARD_VARIANT",
		"SCOREBOARD_LOG_LEVEL",
		"SCOREBOARD_LOG_FORMAT",
		"SCOREBOARD_STRICT_MATCH_LOOKUP",
		"SCOREBOARD_STORE_CAPACITY",
		"SCOREBOARD_SIMULATION_WORKERS",
		"SCOREBOARD_SIMULATION_FINISH_RATIO",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
