package analyze

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"hrpulse/internal/dataset"
	"hrpulse/internal/report"
)

// quartileBins is the number of equal-frequency satisfaction bins.
const quartileBins = 4

// Correlation holds the satisfaction-vs-hours analysis plus the raw series
// the chart renderers consume.
type Correlation struct {
	TotalRows int
	CorrAll   float64
	// CorrLeft is only meaningful when HasLeft is true; with no attrited
	// rows the metric is reported as n/a.
	CorrLeft float64
	HasLeft  bool

	Summary       report.Table
	Dtypes        report.Table
	QuartileMeans report.Table

	// Resolved series for plotting, aligned row by row.
	Satisfaction []float64
	Hours        []float64
	Left         []float64
}

// Correlate resolves the logical fields through their alias sets and
// computes the correlation summary. All three fields are required.
func Correlate(ds *dataset.Dataset) (*Correlation, error) {
	resolved, err := dataset.ResolveFields(ds, []dataset.Field{
		dataset.FieldSatisfaction,
		dataset.FieldMonthlyHours,
		dataset.FieldAttrition,
	})
	if err != nil {
		return nil, err
	}

	satCol := resolved[dataset.FieldSatisfaction.Name]
	hoursCol := resolved[dataset.FieldMonthlyHours.Name]
	leftCol := resolved[dataset.FieldAttrition.Name]

	c := &Correlation{
		TotalRows:    ds.NumRows(),
		Satisfaction: ds.Float(satCol),
		Hours:        ds.Float(hoursCol),
		Left:         ds.Float(leftCol),
	}

	c.CorrAll = stat.Correlation(c.Satisfaction, c.Hours, nil)

	var leftSat, leftHours []float64
	for i, v := range c.Left {
		if v == 1 {
			leftSat = append(leftSat, c.Satisfaction[i])
			leftHours = append(leftHours, c.Hours[i])
		}
	}
	if len(leftSat) > 0 {
		c.HasLeft = true
		c.CorrLeft = stat.Correlation(leftSat, leftHours, nil)
	}

	c.Summary = summaryTable(ds.Path(), c, []string{satCol, hoursCol, leftCol})

	c.Dtypes = report.Empty("column", "dtype")
	types := ds.ColumnTypes()
	for i, col := range ds.Columns() {
		c.Dtypes.AddRow(col, types[i])
	}

	c.QuartileMeans = quartileMeans(leftSat, leftHours)
	return c, nil
}

// summaryTable renders the metric/value summary sheet.
func summaryTable(path string, c *Correlation, usedColumns []string) report.Table {
	t := report.Empty("metric", "value")
	t.AddRow("data_file", path)
	t.AddRow("total_rows", c.TotalRows)
	t.AddRow("used_columns", strings.Join(usedColumns, ", "))

	if math.IsNaN(c.CorrAll) {
		t.AddRow("correlation_all", "nan")
	} else {
		t.AddRow("correlation_all", fmt.Sprintf("%.4f", c.CorrAll))
	}

	if c.HasLeft && !math.IsNaN(c.CorrLeft) {
		t.AddRow("correlation_left", fmt.Sprintf("%.4f", c.CorrLeft))
	} else {
		t.AddRow("correlation_left", "n/a")
	}
	return t
}

// quartileMeans bins the attrited population's satisfaction into
// equal-frequency quartiles and reports the mean monthly hours per bin.
func quartileMeans(leftSat, leftHours []float64) report.Table {
	t := report.Empty("quartile", "avg_monthly_hours")
	if len(leftSat) == 0 {
		return t
	}

	bins, _ := qcut(leftSat, quartileBins)
	sums := make(map[int]float64)
	counts := make(map[int]int)
	maxBin := 0
	for i, b := range bins {
		sums[b] += leftHours[i]
		counts[b]++
		if b > maxBin {
			maxBin = b
		}
	}
	for b := 0; b <= maxBin; b++ {
		if counts[b] == 0 {
			continue
		}
		t.AddRow(b, sums[b]/float64(counts[b]))
	}
	return t
}
