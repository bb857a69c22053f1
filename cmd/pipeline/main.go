package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"peoplecli/internal/app"
	"peoplecli/internal/config"
	"peoplecli/internal/files"
	"peoplecli/internal/infrastructure"
	"peoplecli/pkg/contracts"
)

func main() {
	baseDir := flag.String("dir", "", "base directory (defaults to PEOPLE_BASE_DIR, then the working directory)")
	workbookPath := flag.String("workbook", "", "path to the source workbook (defaults to data/source/"+config.WorkbookFileName+")")
	skipExtract := flag.Bool("skip-extract", false, "reuse existing normalized CSVs instead of re-reading the workbook")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	paths, err := config.GetPaths(*baseDir)
	if err != nil {
		fmt.Printf("Error: Failed to initialize paths: %v\n", err)
		os.Exit(1)
	}
	if *workbookPath != "" {
		paths.WorkbookFile = *workbookPath
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
				FilePath: paths.GetLogPath("pipeline.log"),
			},
			Cleaning: config.CleaningConfig{
				PaybandSeniority:  "Seasoned",
				VarianceTolerance: 0.01,
			},
		}
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("pipeline.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "Pipeline starting",
		slog.String("base_dir", paths.BaseDir),
		slog.String("workbook", paths.WorkbookFile),
		slog.Bool("skip_extract", *skipExtract))
	paths.LogPathResolution()

	var stages []app.Stage
	if !*skipExtract {
		stages = append(stages, app.ExtractStage(logger, paths))
	}
	stages = append(stages,
		app.CleanStage(logger, cfg.Cleaning, paths),
		app.ActiveCompStage(logger, paths),
		app.HeadcountStage(logger, paths),
	)

	results, ok := app.NewRunner(logger, stages...).Run(ctx)

	fmt.Println("\nPipeline summary")
	fmt.Println("----------------")
	for _, res := range results {
		switch res.Status {
		case app.StatusCompleted:
			fmt.Printf("  %-22s %s (%s)\n", res.Name, res.Status, res.Duration.Round(time.Millisecond))
		case app.StatusFailed:
			fmt.Printf("  %-22s %s: %v\n", res.Name, res.Status, res.Err)
		default:
			fmt.Printf("  %-22s %s\n", res.Name, res.Status)
		}
	}

	fmt.Println("\nGenerated files")
	fmt.Println("---------------")
	for _, artifact := range files.Manifest(paths) {
		if artifact.Present {
			fmt.Printf("  %-22s %s (%d bytes)\n", artifact.Label, artifact.Path, artifact.Size)
		} else {
			fmt.Printf("  %-22s missing\n", artifact.Label)
		}
	}

	if !ok {
		logger.ErrorContext(ctx, "Pipeline finished with failures")
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Pipeline finished")
}
