package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mrtcli/internal/config"
	"mrtcli/internal/infrastructure"
	"mrtcli/internal/pipeline"
	"mrtcli/pkg/contracts"
)

func main() {
	inDir := flag.String("in", "", "input directory for monthly .xlsx workbooks (defaults to data relative to executable)")
	outDir := flag.String("out", "", "output directory for the cleaned dataset (defaults to cleaned relative to executable)")
	dataset := flag.String("dataset", "", "output dataset file name (defaults to mrt_data.json)")
	version := flag.String("version", "", "sheet layout version: v1 | v2 (defaults to config)")
	workers := flag.Int("workers", 0, "parallel extraction workers (defaults to config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	// Command-line flags override file and environment configuration.
	if *inDir != "" {
		cfg.Paths.DataDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.CleanedDir = *outDir
	}
	if *dataset != "" {
		cfg.Extraction.OutputFile = *dataset
	}
	if *version != "" {
		cfg.Extraction.DatasetVersion = *version
	}
	if *workers > 0 {
		cfg.Extraction.Workers = *workers
	}

	paths, err := cfg.BuildPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	// Keep the application log under the logs directory unless config
	// points somewhere absolute.
	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetLogPath(filepath.Base(cfg.Logging.FilePath))
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := infrastructure.EnsureRunID(context.Background())

	logger.InfoContext(ctx, "Starting ridership extraction",
		slog.String("version", contracts.Version),
		slog.String("data_dir", paths.DataDir),
		slog.String("output", paths.GetDatasetPath()),
		slog.String("dataset_version", cfg.Extraction.DatasetVersion),
		slog.Int("workers", cfg.Extraction.Workers),
		slog.String("executable_dir", paths.ExecutableDir))

	runner, err := pipeline.NewRunner(cfg,
		pipeline.WithProgress(func(done, total int, file string) {
			fmt.Printf("Processing file %d of %d: %s\n", done, total, file)
		}))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build extraction pipeline", slog.String("error", err.Error()))
		os.Exit(1)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Extracted %d time elements and %d date elements.\n",
		len(result.Dataset.Times), len(result.Dataset.Dates))
	for _, s := range result.Dataset.Series {
		fmt.Printf("%s: %d\n", s.Name, len(s.Counts))
	}
	if result.Skipped > 0 {
		fmt.Printf("Skipped %d of %d files; see the dated log for details.\n", result.Skipped, result.Files)
	}
	fmt.Printf("Extraction complete: %d files\n", result.Processed)

	logger.InfoContext(ctx, "Extraction completed",
		slog.Int("processed_files", result.Processed),
		slog.Int("skipped_files", result.Skipped),
		slog.String("output_path", result.OutputPath),
		slog.Duration("elapsed", result.Elapsed))
}
