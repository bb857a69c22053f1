package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"peoplecli/internal/app"
	"peoplecli/internal/config"
	"peoplecli/internal/files"
	"peoplecli/internal/infrastructure"
)

func main() {
	baseDir := flag.String("dir", "", "base directory (defaults to PEOPLE_BASE_DIR, then the working directory)")
	workbookPath := flag.String("workbook", "", "path to the source workbook (defaults to data/source/"+config.WorkbookFileName+")")
	flag.Parse()

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
				FilePath: paths.GetLogPath("extractor.log"),
			},
		}
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("extractor.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "Workbook extractor starting",
		slog.String("workbook", paths.WorkbookFile),
		slog.String("reports_dir", paths.ReportsDir))

	if !config.FileExists(paths.WorkbookFile) {
		// Fall back to the newest workbook dropped in the source
		// directory under any name.
		workbooks, err := files.NewDiscovery(paths.BaseDir).FindWorkbooks(paths.SourceDir)
		if err == nil && len(workbooks) > 0 {
			if latest, ok := files.GetLatestFile(workbooks); ok {
				logger.InfoContext(ctx, "Default workbook missing, using newest workbook in source directory",
					slog.String("workbook", latest.Path))
				paths.WorkbookFile = latest.Path
			}
		}
	}
	if !config.FileExists(paths.WorkbookFile) {
		logger.ErrorContext(ctx, "Workbook not found", slog.String("path", paths.WorkbookFile))
		fmt.Printf("Error: Workbook not found: %s\n", paths.WorkbookFile)
		os.Exit(1)
	}

	stage := app.ExtractStage(logger, paths)
	if err := stage.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Extraction failed", slog.String("error", err.Error()))
		fmt.Printf("Error: Extraction failed: %v\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Extraction complete")
	for _, out := range stage.Outputs {
		fmt.Printf("Wrote %s\n", out)
	}
}
