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
				FilePath: paths.GetLogPath("activecomp.log"),
			},
		}
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("activecomp.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "Active compensation calculator starting",
		slog.String("headcount_csv", paths.HeadcountCSV),
		slog.String("output", paths.ActiveCompCSV))

	stage := app.ActiveCompStage(logger, paths)
	if err := stage.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Active compensation calculation failed", slog.String("error", err.Error()))
		fmt.Printf("Error: Active compensation calculation failed: %v\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Active compensation calculation complete")
	fmt.Printf("Wrote %s\n", paths.ActiveCompCSV)
}
