// Package analyze derives the descriptive aggregates each batch job writes
// out. Every function takes an immutable dataset and returns report tables;
// nothing here touches the filesystem.
package analyze

import (
	"sort"
	"strconv"

	"hrpulse/internal/dataset"
	"hrpulse/internal/report"
)

// Exploration holds the seven summary tables of the data exploration job.
type Exploration struct {
	Shape             report.Table
	Dtypes            report.Table
	Missing           report.Table
	Duplicates        report.Table
	Describe          report.Table
	TargetCounts      report.Table
	TargetProportions report.Table
}

// Sheets returns the workbook layout in its fixed order.
func (e Exploration) Sheets() []report.Sheet {
	return []report.Sheet{
		{Name: "dataset_shape", Table: e.Shape},
		{Name: "column_dtypes", Table: e.Dtypes},
		{Name: "missing_values", Table: e.Missing},
		{Name: "duplicate_rows", Table: e.Duplicates},
		{Name: "describe_numeric", Table: e.Describe},
		{Name: "left_distribution", Table: e.TargetCounts},
		{Name: "left_proportion", Table: e.TargetProportions},
	}
}

// Explore computes the full exploration summary. A dataset without the
// target column degrades to header-only distribution sheets.
func Explore(ds *dataset.Dataset) Exploration {
	e := Exploration{
		Shape:      report.Empty("rows", "cols"),
		Dtypes:     report.Empty("column", "dtype"),
		Missing:    report.Empty("column", "missing_count"),
		Duplicates: report.Empty("duplicate_rows"),
	}

	e.Shape.AddRow(ds.NumRows(), ds.NumCols())

	types := ds.ColumnTypes()
	missing := ds.MissingCounts()
	for i, col := range ds.Columns() {
		e.Dtypes.AddRow(col, types[i])
		e.Missing.AddRow(col, missing[i])
	}

	e.Duplicates.AddRow(ds.DuplicateRows())
	e.Describe = describeNumeric(ds)
	e.TargetCounts, e.TargetProportions = targetDistribution(ds)
	return e
}

// describeNumeric builds the describe table: one column per numeric dataset
// column, one row per statistic.
func describeNumeric(ds *dataset.Dataset) report.Table {
	var numeric []string
	for _, col := range ds.Columns() {
		if ds.IsNumeric(col) {
			numeric = append(numeric, col)
		}
	}

	table := report.Empty(append([]string{"stat"}, numeric...)...)
	if len(numeric) == 0 {
		return table
	}

	stats := [][]interface{}{
		{"count"}, {"mean"}, {"std"}, {"min"}, {"25%"}, {"50%"}, {"75%"}, {"max"},
	}
	for _, col := range numeric {
		count, mean, std, min, q25, q50, q75, max := describeColumn(ds.Float(col))
		for i, v := range []float64{count, mean, std, min, q25, q50, q75, max} {
			stats[i] = append(stats[i], v)
		}
	}
	table.Rows = stats
	return table
}

// targetDistribution counts the target values and their proportions,
// ordered by descending count as a value_counts-style ranking.
func targetDistribution(ds *dataset.Dataset) (counts, proportions report.Table) {
	counts = report.Empty("left_value", "count")
	proportions = report.Empty("left_value", "proportion")
	if !ds.HasColumn(dataset.Target) {
		return counts, proportions
	}

	records := ds.Strings(dataset.Target)
	tally := make(map[string]int)
	for _, v := range records {
		tally[v]++
	}

	values := make([]string, 0, len(tally))
	for v := range tally {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if tally[values[i]] != tally[values[j]] {
			return tally[values[i]] > tally[values[j]]
		}
		return values[i] < values[j]
	})

	total := float64(len(records))
	for _, v := range values {
		label := interface{}(v)
		if n, err := strconv.Atoi(v); err == nil {
			label = n
		}
		counts.AddRow(label, tally[v])
		proportions.AddRow(label, float64(tally[v])/total)
	}
	return counts, proportions
}
