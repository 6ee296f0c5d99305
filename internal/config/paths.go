package config

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "hrpulse/internal/errors"
)

// datasetDirs is the prioritized list of directories searched for the
// dataset file, relative to the base directory. The first existing
// candidate wins.
var datasetDirs = []string{"dataset", "data"}

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	BaseDir  string
	XLSXDir  string
	ImageDir string
	LogsDir  string

	// Dataset candidates in priority order (absolute paths)
	DatasetCandidates []string

	// Well-known workbook artifacts
	ExplorationXLSX string
	CorrelationXLSX string
	FactorXLSX      string
	ModelXLSX       string

	// Well-known image artifacts
	ScatterPNG           string
	DistributionPNG      string
	DeptBarPNG           string
	SalaryBarPNG         string
	DeptSalaryBarPNG     string
	ConfusionLogisticPNG string
	ConfusionForestPNG   string
}

// NewPaths builds the path table for a base directory. All outputs live
// under <base>/<output>/xlsx_output and <base>/<output>/image_output,
// mirroring the conventional layout the artifacts are consumed from.
func NewPaths(cfg PathsConfig) *Paths {
	outputDir := filepath.Join(cfg.BaseDir, cfg.OutputDir)
	xlsxDir := filepath.Join(outputDir, "xlsx_output")
	imageDir := filepath.Join(outputDir, "image_output")

	candidates := make([]string, 0, len(datasetDirs))
	for _, d := range datasetDirs {
		candidates = append(candidates, filepath.Join(cfg.BaseDir, d, cfg.DatasetFile))
	}

	return &Paths{
		BaseDir:  cfg.BaseDir,
		XLSXDir:  xlsxDir,
		ImageDir: imageDir,
		LogsDir:  filepath.Join(cfg.BaseDir, "logs"),

		DatasetCandidates: candidates,

		ExplorationXLSX: filepath.Join(xlsxDir, "q1_data_exploration.xlsx"),
		CorrelationXLSX: filepath.Join(xlsxDir, "q2_satisfaction_summary.xlsx"),
		FactorXLSX:      filepath.Join(xlsxDir, "q3_factor_analysis.xlsx"),
		ModelXLSX:       filepath.Join(xlsxDir, "q4_model_results.xlsx"),

		ScatterPNG:           filepath.Join(imageDir, "q2_scatter_satisfaction_vs_hours.png"),
		DistributionPNG:      filepath.Join(imageDir, "q2_distribution_satisfaction_left_vs_stayed.png"),
		DeptBarPNG:           filepath.Join(imageDir, "q3_dept_attrition_bar.png"),
		SalaryBarPNG:         filepath.Join(imageDir, "q3_salary_attrition_bar.png"),
		DeptSalaryBarPNG:     filepath.Join(imageDir, "q3_dept_salary_attrition_bar.png"),
		ConfusionLogisticPNG: filepath.Join(imageDir, "q4_confusion_logistic.png"),
		ConfusionForestPNG:   filepath.Join(imageDir, "q4_confusion_random_forest.png"),
	}
}

// ResolveDataset returns the first existing dataset candidate. When none
// exists the error names every path that was tried.
func (p *Paths) ResolveDataset() (string, error) {
	for _, c := range p.DatasetCandidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", apperrors.NewNotFoundError(
		"data file (tried: "+strings.Join(p.DatasetCandidates, ", ")+")", os.ErrNotExist)
}

// EnsureOutputDirs creates the spreadsheet and image output directories.
func (p *Paths) EnsureOutputDirs() error {
	for _, dir := range []string{p.XLSXDir, p.ImageDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewStorageError("failed to create output directory "+dir, err)
		}
	}
	return nil
}

// GetLogPath returns the absolute path for a log file name.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
