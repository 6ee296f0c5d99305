package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"hrpulse/internal/chart"
	"hrpulse/internal/config"
	"hrpulse/internal/dataset"
	"hrpulse/internal/infrastructure"
	"hrpulse/internal/mlearn"
	"hrpulse/internal/report"
)

const (
	testFraction = 0.2
	randomSeed   = 42
	forestTrees  = 200
	topFeatures  = 20
)

var classNames = []string{"Stayed (0)", "Left (1)"}

func main() {
	dataFile := flag.String("data", "", "input csv path (defaults to <base>/dataset/HR_comma_sep.csv)")
	out := flag.String("out", "", "output workbook path (defaults to <base>/output/xlsx_output/q4_model_results.xlsx)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		wd, _ := os.Getwd()
		cfg = config.Default(wd)
	}
	paths := config.NewPaths(cfg.Paths)
	cfg.Logging.FilePath = paths.GetLogPath("trainmodel.log")

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
		*out = paths.ModelXLSX
	}
	if err := paths.EnsureOutputDirs(); err != nil {
		logger.Error("Failed to create output directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting model training",
		slog.String("data_file", *dataFile),
		slog.String("output_file", *out))

	ds, err := dataset.Load(*dataFile)
	if err != nil {
		logger.Error("Failed to load dataset", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s: %d rows, %d columns\n", *dataFile, ds.NumRows(), ds.NumCols())

	dm, err := mlearn.Encode(ds, dataset.Target)
	if err != nil {
		logger.Error("Failed to encode features", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Encoded %d features\n", len(dm.Features))

	trainIdx, testIdx := mlearn.StratifiedSplit(dm.Y, testFraction, randomSeed)
	trainX, trainY := mlearn.Subset(dm.X, dm.Y, trainIdx)
	testX, testY := mlearn.Subset(dm.X, dm.Y, testIdx)
	logger.Info("Split dataset",
		slog.Int("train_rows", len(trainY)),
		slog.Int("test_rows", len(testY)))

	logit := mlearn.NewLogisticRegression()
	if err := logit.Fit(trainX, trainY); err != nil {
		logger.Error("Logistic regression training failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logitPred := logit.Predict(testX)
	logitAcc := mlearn.Accuracy(testY, logitPred)
	fmt.Printf("Logistic regression accuracy: %.4f\n", logitAcc)

	forest := mlearn.NewRandomForest(forestTrees, randomSeed)
	if err := forest.Fit(trainX, trainY); err != nil {
		logger.Error("Random forest training failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	forestPred := forest.Predict(testX)
	forestAcc := mlearn.Accuracy(testY, forestPred)
	fmt.Printf("Random forest accuracy: %.4f\n", forestAcc)

	summary := report.Empty("metric", "value")
	summary.AddRow("data_file", *dataFile)
	summary.AddRow("total_rows", ds.NumRows())
	summary.AddRow("feature_count", len(dm.Features))
	summary.AddRow("train_rows", len(trainY))
	summary.AddRow("test_rows", len(testY))
	summary.AddRow("logistic_accuracy", fmt.Sprintf("%.4f", logitAcc))
	summary.AddRow("random_forest_accuracy", fmt.Sprintf("%.4f", forestAcc))

	importances := report.Empty("feature", "importance")
	for _, fi := range mlearn.TopImportances(dm.Features, forest.FeatureImportances(), topFeatures) {
		importances.AddRow(fi.Feature, fi.Importance)
	}

	features := report.Empty("feature", "dtype")
	for i, name := range dm.Features {
		features.AddRow(name, dm.FeatureTypes[i])
	}

	sheets := []report.Sheet{
		{Name: "summary", Table: summary},
		{Name: "logistic_report", Table: reportTable(mlearn.ClassificationReport(testY, logitPred, classNames))},
		{Name: "rf_report", Table: reportTable(mlearn.ClassificationReport(testY, forestPred, classNames))},
		{Name: "feature_importances", Table: importances},
		{Name: "features", Table: features},
	}
	if err := report.WriteWorkbook(*out, sheets); err != nil {
		logger.Error("Failed to write workbook", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (5 sheets)\n", *out)

	heatmaps := []struct {
		path  string
		title string
		cm    [][]int
	}{
		{paths.ConfusionLogisticPNG, "Logistic Regression Confusion Matrix", mlearn.ConfusionMatrix(testY, logitPred)},
		{paths.ConfusionForestPNG, "Random Forest Confusion Matrix", mlearn.ConfusionMatrix(testY, forestPred)},
	}
	for _, h := range heatmaps {
		if err := chart.ConfusionHeatmap(h.path, h.title, h.cm, []string{"0", "1"}); err != nil {
			logger.Error("Failed to render confusion heatmap", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", h.path)
	}

	logger.Info("Model training complete",
		slog.Float64("logistic_accuracy", logitAcc),
		slog.Float64("random_forest_accuracy", forestAcc),
		slog.String("workbook", *out))
}

// reportTable renders a classification report as a sheet. The accuracy row
// has no precision or recall, those cells stay blank.
func reportTable(rows []mlearn.ReportRow) report.Table {
	t := report.Empty("label", "precision", "recall", "f1_score", "support")
	for _, r := range rows {
		t.AddRow(r.Label, metricCell(r.Precision), metricCell(r.Recall), metricCell(r.F1), r.Support)
	}
	return t
}

func metricCell(v float64) interface{} {
	if math.IsNaN(v) {
		return ""
	}
	return v
}
