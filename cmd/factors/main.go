package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"hrpulse/internal/analyze"
	"hrpulse/internal/chart"
	"hrpulse/internal/config"
	"hrpulse/internal/dataset"
	"hrpulse/internal/infrastructure"
	"hrpulse/internal/report"
)

func main() {
	dataFile := flag.String("data", "", "input csv path (defaults to <base>/dataset/HR_comma_sep.csv)")
	out := flag.String("out", "", "output workbook path (defaults to <base>/output/xlsx_output/q3_factor_analysis.xlsx)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		wd, _ := os.Getwd()
		cfg = config.Default(wd)
	}
	paths := config.NewPaths(cfg.Paths)
	cfg.Logging.FilePath = paths.GetLogPath("factors.log")

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
		*out = paths.FactorXLSX
	}
	if err := paths.EnsureOutputDirs(); err != nil {
		logger.Error("Failed to create output directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting factor analysis",
		slog.String("data_file", *dataFile),
		slog.String("output_file", *out))

	ds, err := dataset.Load(*dataFile)
	if err != nil {
		logger.Error("Failed to load dataset", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s: %d rows, %d columns\n", *dataFile, ds.NumRows(), ds.NumCols())

	factors, err := analyze.Factors(ds)
	if err != nil {
		logger.Error("Factor analysis failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := report.WriteWorkbook(*out, factors.Sheets()); err != nil {
		logger.Error("Failed to write workbook", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (5 sheets)\n", *out)

	bars := []struct {
		name     string
		table    report.Table
		nameCols int
		path     string
		title    string
	}{
		{"department", factors.Department, 1, paths.DeptBarPNG, "Attrition Rate by Department"},
		{"salary", factors.Salary, 1, paths.SalaryBarPNG, "Attrition Rate by Salary Tier"},
		{"department x salary", factors.DeptSalary, 2, paths.DeptSalaryBarPNG, "Attrition Rate by Department and Salary"},
	}
	for _, b := range bars {
		if b.table.IsEmpty() {
			logger.Warn("Skipping chart, source sheet is empty", slog.String("chart", b.name))
			fmt.Printf("note: skipping %s chart (no data)\n", b.name)
			continue
		}
		names, rates := analyze.BarData(b.table, b.nameCols)
		if err := chart.Bar(b.path, b.title, "attrition_rate", names, rates); err != nil {
			logger.Error("Failed to render bar chart",
				slog.String("chart", b.name),
				slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", b.path)
	}

	logger.Info("Factor analysis complete", slog.String("workbook", *out))
}
