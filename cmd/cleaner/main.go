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
	seniority := flag.String("seniority", "", "payband seniority used for targets (Early, Seasoned or Veteran)")
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
				FilePath: paths.GetLogPath("cleaner.log"),
			},
			Cleaning: config.CleaningConfig{
				PaybandSeniority:  "Seasoned",
				VarianceTolerance: 0.01,
			},
		}
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("cleaner.log")
	}
	if *seniority != "" {
		cfg.Cleaning.PaybandSeniority = *seniority
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "Candidate cleaner starting",
		slog.String("candidates_csv", paths.CandidatesCSV),
		slog.String("payband_seniority", cfg.Cleaning.PaybandSeniority))

	stage := app.CleanStage(logger, cfg.Cleaning, paths)
	if err := stage.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Cleaning failed", slog.String("error", err.Error()))
		fmt.Printf("Error: Cleaning failed: %v\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Cleaning complete")
	for _, out := range stage.Outputs {
		fmt.Printf("Wrote %s\n", out)
	}
}
