package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	service "github.com/okian/livescore/internal/app"
	"github.com/okian/livescore/internal/config"
	"github.com/okian/livescore/internal/console"
	"github.com/okian/livescore/pkg/logger"
	"github.com/okian/livescore/pkg/metrics"
)

func main() {
	script := flag.String("file", "", "Read commands from file instead of stdin")
	flag.Parse()

	if err := run(*script); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(script string) error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Logs go to stderr so stdout carries only command output.
	if err := logger.InitWith(logger.Options{Format: cfg.LogFormat, Writer: os.Stderr, AddCaller: true}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(metrics.WithNamespace(cfg.MetricsNamespace))

	board, err := service.New(ctx, cfg.Variant, cfg.StoreCapacity,
		service.WithLogger(loggerInstance),
		service.WithStrictMatchLookup(cfg.StrictMatchLookup),
	)
	if err != nil {
		return fmt.Errorf("failed to build scoreboard: %w", err)
	}

	var in io.Reader = os.Stdin
	if script != "" {
		f, err := os.Open(script)
		if err != nil {
			return fmt.Errorf("failed to open command file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	loggerInstance.Info(ctx, "scoreboard ready",
		logger.String("variant", cfg.Variant),
		logger.Bool("strict", cfg.StrictMatchLookup))

	c := console.New(board, os.Stdout, console.WithLogger(loggerInstance))
	if err := c.Run(ctx, in); err != nil && ctx.Err() == nil {
		return fmt.Errorf("console stopped: %w", err)
	}
	loggerInstance.Info(ctx, "scoreboard stopped")
	return nil
}
