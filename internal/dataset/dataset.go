// Package dataset loads the HR attrition CSV and answers schema questions
// about it. The dataset is immutable input; every accessor derives read-only
// views.
package dataset

import (
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "hrpulse/internal/errors"
)

// Target is the attrition flag column every predictive job keys on.
const Target = "left"

// Dataset wraps a loaded dataframe together with its source path.
type Dataset struct {
	df   dataframe.DataFrame
	path string
}

// Load reads a CSV file into a Dataset with header and type detection.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("data file "+path, err)
		}
		return nil, apperrors.NewStorageError("failed to open data file "+path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to parse CSV "+path, df.Err)
	}

	return &Dataset{df: df, path: path}, nil
}

// FromDataFrame wraps an existing dataframe. Used by tests.
func FromDataFrame(df dataframe.DataFrame) *Dataset {
	return &Dataset{df: df}
}

// Path returns the source file path ("" for in-memory datasets).
func (d *Dataset) Path() string { return d.path }

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int { return d.df.Nrow() }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return d.df.Ncol() }

// Columns returns the column names in dataset order.
func (d *Dataset) Columns() []string { return d.df.Names() }

// ColumnTypes returns the detected type name for every column, aligned
// with Columns.
func (d *Dataset) ColumnTypes() []string {
	types := d.df.Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// HasColumn reports whether a column exists.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.df.Names() {
		if c == name {
			return true
		}
	}
	return false
}

// IsNumeric reports whether a column holds int or float values.
func (d *Dataset) IsNumeric(name string) bool {
	names := d.df.Names()
	types := d.df.Types()
	for i, c := range names {
		if c == name {
			return types[i] == series.Int || types[i] == series.Float
		}
	}
	return false
}

// Float returns a column as float64 values. Non-numeric entries map to NaN.
// The column must exist.
func (d *Dataset) Float(name string) []float64 {
	return d.df.Col(name).Float()
}

// Strings returns a column as its raw string records. The column must exist.
func (d *Dataset) Strings(name string) []string {
	return d.df.Col(name).Records()
}

// MissingCounts returns the number of missing entries per column, aligned
// with Columns.
func (d *Dataset) MissingCounts() []int {
	out := make([]int, d.df.Ncol())
	for i, name := range d.df.Names() {
		for _, isNA := range d.df.Col(name).IsNaN() {
			if isNA {
				out[i]++
			}
		}
	}
	return out
}

// DuplicateRows counts the rows that are exact duplicates of an earlier row.
func (d *Dataset) DuplicateRows() int {
	records := d.df.Records()
	if len(records) <= 1 {
		return 0
	}
	seen := make(map[string]struct{}, len(records)-1)
	dups := 0
	for _, row := range records[1:] { // records[0] is the header
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
