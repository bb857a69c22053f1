package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"peoplecli/internal/app"
	"peoplecli/internal/config"
	"peoplecli/internal/infrastructure"
)

func main() {
	baseDir := flag.String("dir", "", "base directory (defaults to PEOPLE_BASE_DIR, then the working directory)")
	flag.Parse()

	paths, err := config.GetPaths(*baseDir)
	if err != nil {
		fmt.Printf("Error: Failed to initialize paths: %v\n", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Printf("Error: Failed to create required directories: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Warning: Failed to load config, using defaults: %v\n", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:    "info",
				Format:   "json",
				Output:   "both",
				FilePath: paths.GetLogPath("headcount.log"),
			},
		}
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("headcount.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "Historical headcount builder starting",
		slog.String("headcount_csv", paths.HeadcountCSV),
		slog.String("exits_csv", paths.ExitsCSV),
		slog.String("output", paths.HistoricalHeadcountCSV))

	stage := app.HeadcountStage(logger, paths)
	if err := stage.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Historical headcount reconstruction failed", slog.String("error", err.Error()))
		fmt.Printf("Error: Historical headcount reconstruction failed: %v\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Historical headcount reconstruction complete")
	fmt.Printf("Wrote %s\n", paths.HistoricalHeadcountCSV)
}
