// Package mlearn holds the minimal learning stack the model trainer needs:
// design-matrix encoding, a stratified split, a logistic regression, and a
// CART random forest with impurity-based feature importances. Everything is
// deterministic under a fixed seed.
package mlearn

import (
	"fmt"
	"sort"

	"hrpulse/internal/dataset"
)

// DesignMatrix is the fully numeric feature matrix derived from a dataset,
// with the target separated out.
type DesignMatrix struct {
	Features     []string
	FeatureTypes []string
	X            [][]float64
	Y            []int
}

// Encode builds the design matrix: numeric columns pass through in dataset
// order, categorical columns one-hot encode with the first level (sorted
// lexicographically) dropped as the reference, so the indicators stay free
// of perfect collinearity.
func Encode(ds *dataset.Dataset, target string) (*DesignMatrix, error) {
	if !ds.HasColumn(target) {
		return nil, dataset.MissingTarget(ds)
	}

	n := ds.NumRows()
	dm := &DesignMatrix{Y: make([]int, n)}
	for i, v := range ds.Float(target) {
		dm.Y[i] = int(v)
	}

	types := ds.ColumnTypes()
	var columns []func(row int) float64
	for ci, col := range ds.Columns() {
		if col == target {
			continue
		}
		if ds.IsNumeric(col) {
			values := ds.Float(col)
			dm.Features = append(dm.Features, col)
			dm.FeatureTypes = append(dm.FeatureTypes, types[ci])
			columns = append(columns, func(row int) float64 { return values[row] })
			continue
		}

		records := ds.Strings(col)
		levels := uniqueSorted(records)
		// Dummy features for all but the reference level.
		for _, level := range levels[1:] {
			level := level
			dm.Features = append(dm.Features, fmt.Sprintf("%s_%s", col, level))
			dm.FeatureTypes = append(dm.FeatureTypes, "bool")
			columns = append(columns, func(row int) float64 {
				if records[row] == level {
					return 1
				}
				return 0
			})
		}
	}

	dm.X = make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, len(columns))
		for j, col := range columns {
			row[j] = col(i)
		}
		dm.X[i] = row
	}
	return dm, nil
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
