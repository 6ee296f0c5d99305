package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"hrpulse/internal/analyze"
	"hrpulse/internal/config"
	"hrpulse/internal/dataset"
	"hrpulse/internal/infrastructure"
	"hrpulse/internal/report"
)

func main() {
	dataFile := flag.String("data", "", "input csv path (defaults to <base>/dataset/HR_comma_sep.csv)")
	out := flag.String("out", "", "output workbook path (defaults to <base>/output/xlsx_output/q1_data_exploration.xlsx)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		wd, _ := os.Getwd()
		cfg = config.Default(wd)
	}
	paths := config.NewPaths(cfg.Paths)
	cfg.Logging.FilePath = paths.GetLogPath("explorer.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *dataFile == "" {
		resolved, err := paths.ResolveDataset()
		if err != nil {
			logger.Error("Data file not found", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		*dataFile = resolved
	}
	if *out == "" {
		*out = paths.ExplorationXLSX
	}
	if err := paths.EnsureOutputDirs(); err != nil {
		logger.Error("Failed to create output directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting data exploration",
		slog.String("data_file", *dataFile),
		slog.String("output_file", *out))

	ds, err := dataset.Load(*dataFile)
	if err != nil {
		logger.Error("Failed to load dataset", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s: %d rows, %d columns\n", *dataFile, ds.NumRows(), ds.NumCols())

	exploration := analyze.Explore(ds)
	if !ds.HasColumn(dataset.Target) {
		logger.Warn("Target column missing, distribution sheets will be empty",
			slog.String("column", dataset.Target))
		fmt.Printf("note: column %q not found; left_distribution and left_proportion are header-only\n", dataset.Target)
	}

	if err := report.WriteWorkbook(*out, exploration.Sheets()); err != nil {
		logger.Error("Failed to write workbook", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Exploration complete",
		slog.Int("rows", ds.NumRows()),
		slog.Int("cols", ds.NumCols()),
		slog.String("workbook", *out))
	fmt.Printf("Wrote %s (7 sheets)\n", *out)
}
