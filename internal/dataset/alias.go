package dataset

import (
	apperrors "hrpulse/internal/errors"
)

// Field maps a logical field name to the physical column names accepted for
// it, in priority order. The alias lists absorb the naming drift seen in
// circulating copies of the dataset (notably the "montly" misspelling).
type Field struct {
	Name    string
	Aliases []string
}

// Logical fields used by the correlation job.
var (
	FieldSatisfaction = Field{
		Name:    "satisfaction",
		Aliases: []string{"satisfaction_level", "satisfaction"},
	}
	FieldMonthlyHours = Field{
		Name:    "average_monthly_hours",
		Aliases: []string{"average_monthly_hours", "average_montly_hours", "avg_monthly_hours"},
	}
	FieldAttrition = Field{
		Name:    "left",
		Aliases: []string{"left", "attrition"},
	}
)

// MissingTarget builds the schema error for a dataset without the target
// column.
func MissingTarget(d *Dataset) error {
	return apperrors.NewMissingColumnsError([]string{Target}, d.Columns())
}

// ResolveFields maps each logical field to the first of its aliases present
// in the dataset. When any field cannot be resolved the returned error
// names every unresolved field together with the available columns.
func ResolveFields(d *Dataset, fields []Field) (map[string]string, error) {
	resolved := make(map[string]string, len(fields))
	var missing []string
	for _, f := range fields {
		col := ""
		for _, alias := range f.Aliases {
			if d.HasColumn(alias) {
				col = alias
				break
			}
		}
		if col == "" {
			missing = append(missing, f.Name)
			continue
		}
		resolved[f.Name] = col
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMissingColumnsError(missing, d.Columns())
	}
	return resolved, nil
}
