package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	service "github.com/okian/livescore/internal/app"
	"github.com/okian/livescore/internal/config"
	"github.com/okian/livescore/internal/domain/types"
	"github.com/okian/livescore/internal/simulation"
	"github.com/okian/livescore/pkg/logger"
	"github.com/okian/livescore/pkg/metrics"
)

const defaultTimeout = 5 * time.Minute

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Flags override the loaded configuration when set.
	cfg, err := config.Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var (
		variant     = flag.String("variant", cfg.Variant, "Scoreboard variant: event or snapshot")
		matches     = flag.Int("matches", cfg.SimulationMatches, "Number of matches to play")
		workers     = flag.Int("workers", cfg.SimulationWorkers, "Number of concurrent workers")
		maxGoals    = flag.Int("max-goals", cfg.SimulationMaxGoals, "Maximum goals per match")
		finishRatio = flag.Float64("finish-ratio", cfg.SimulationFinishRatio, "Share of matches that finish")
		prune       = flag.Bool("prune", cfg.PruneFinished, "Delete finished matches afterwards")
		seed        = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the match plans")
		timeout     = flag.Duration("timeout", defaultTimeout, "Overall simulation timeout")
		showMetrics = flag.Bool("metrics", false, "Print metrics after the run")
	)
	flag.Parse()

	if err := logger.InitWith(logger.Options{Format: cfg.LogFormat, Writer: os.Stderr, AddCaller: true}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	loggerInstance := logger.Get()

	metrics.Init(metrics.WithNamespace(cfg.MetricsNamespace))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	board, err := service.New(ctx, *variant, cfg.StoreCapacity,
		service.WithLogger(loggerInstance),
		service.WithStrictMatchLookup(cfg.StrictMatchLookup),
	)
	if err != nil {
		return fmt.Errorf("failed to build scoreboard: %w", err)
	}

	report, err := simulation.Run(ctx, board, simulation.Config{
		Matches:     *matches,
		Workers:     *workers,
		MaxGoals:    *maxGoals,
		FinishRatio: *finishRatio,
		Prune:       *prune,
		Seed:        *seed,
		Logger:      loggerInstance,
	})
	if err != nil {
		loggerInstance.Error(ctx, "simulation failed", logger.Error(err), logger.Any("seed", *seed))
		return err
	}

	fmt.Printf("played %d matches (%d finished, %d goals, %d pruned) in %s\n",
		report.Matches, report.Finished, report.Goals, report.Pruned, report.Duration)
	fmt.Print(types.FormatSummary(report.Board))

	if *showMetrics {
		if err := metrics.WriteText(os.Stdout); err != nil {
			loggerInstance.Warn(ctx, "failed to write metrics", logger.Error(err))
		}
	}
	return nil
}
