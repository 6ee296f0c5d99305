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
	out := flag.String("out", "", "output workbook path (defaults to <base>/output/xlsx_output/q2_satisfaction_summary.xlsx)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		wd, _ := os.Getwd()
		cfg = config.Default(wd)
	}
	paths := config.NewPaths(cfg.Paths)
	cfg.Logging.FilePath = paths.GetLogPath("correlate.log")

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
		*out = paths.CorrelationXLSX
	}
	if err := paths.EnsureOutputDirs(); err != nil {
		logger.Error("Failed to create output directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting correlation analysis",
		slog.String("data_file", *dataFile),
		slog.String("output_file", *out))

	ds, err := dataset.Load(*dataFile)
	if err != nil {
		logger.Error("Failed to load dataset", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s: %d rows, %d columns\n", *dataFile, ds.NumRows(), ds.NumCols())

	corr, err := analyze.Correlate(ds)
	if err != nil {
		logger.Error("Correlation analysis failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Correlation (all employees): %.4f\n", corr.CorrAll)
	if corr.HasLeft {
		fmt.Printf("Correlation (left only): %.4f\n", corr.CorrLeft)
	} else {
		fmt.Println("Correlation (left only): n/a (no attrited rows)")
	}

	sheets := []report.Sheet{
		{Name: "summary", Table: corr.Summary},
		{Name: "column_dtypes", Table: corr.Dtypes},
		{Name: "quartile_means", Table: corr.QuartileMeans},
	}
	if err := report.WriteWorkbook(*out, sheets); err != nil {
		logger.Error("Failed to write workbook", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (3 sheets)\n", *out)

	stayed := chart.Series{Name: "Stayed"}
	left := chart.Series{Name: "Left"}
	stayedSat := chart.Group{Name: "Stayed"}
	leftSat := chart.Group{Name: "Left"}
	for i, attrited := range corr.Left {
		if attrited == 1 {
			left.X = append(left.X, corr.Satisfaction[i])
			left.Y = append(left.Y, corr.Hours[i])
			leftSat.Values = append(leftSat.Values, corr.Satisfaction[i])
		} else {
			stayed.X = append(stayed.X, corr.Satisfaction[i])
			stayed.Y = append(stayed.Y, corr.Hours[i])
			stayedSat.Values = append(stayedSat.Values, corr.Satisfaction[i])
		}
	}

	if err := chart.Scatter(paths.ScatterPNG,
		"Satisfaction vs Average Monthly Hours",
		"satisfaction", "average_monthly_hours",
		[]chart.Series{stayed, left}); err != nil {
		logger.Error("Failed to render scatter chart", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", paths.ScatterPNG)

	if err := chart.DensityHist(paths.DistributionPNG,
		"Satisfaction Distribution: Stayed vs Left",
		"satisfaction",
		[]chart.Group{stayedSat, leftSat}); err != nil {
		logger.Error("Failed to render distribution chart", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", paths.DistributionPNG)

	logger.Info("Correlation analysis complete",
		slog.Float64("correlation_all", corr.CorrAll),
		slog.Bool("has_left", corr.HasLeft),
		slog.String("workbook", *out))
}
