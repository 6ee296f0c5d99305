package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hrpulse/internal/errors"
)

func TestResolveFields(t *testing.T) {
	fields := []Field{FieldSatisfaction, FieldMonthlyHours, FieldAttrition}

	t.Run("canonical names", func(t *testing.T) {
		ds := newDataset(t, "satisfaction_level,average_monthly_hours,left\n0.5,160,0\n")
		resolved, err := ResolveFields(ds, fields)
		require.NoError(t, err)
		assert.Equal(t, "satisfaction_level", resolved["satisfaction"])
		assert.Equal(t, "average_monthly_hours", resolved["average_monthly_hours"])
		assert.Equal(t, "left", resolved["left"])
	})

	t.Run("misspelled hours alias resolves", func(t *testing.T) {
		ds := newDataset(t, "satisfaction,average_montly_hours,attrition\n0.5,160,0\n")
		resolved, err := ResolveFields(ds, fields)
		require.NoError(t, err)
		assert.Equal(t, "satisfaction", resolved["satisfaction"])
		assert.Equal(t, "average_montly_hours", resolved["average_monthly_hours"])
		assert.Equal(t, "attrition", resolved["left"])
	})

	t.Run("no alias present names every field", func(t *testing.T) {
		ds := newDataset(t, "foo,bar\n1,2\n")
		_, err := ResolveFields(ds, fields)
		require.Error(t, err)

		var missingErr *apperrors.MissingColumnsError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, []string{"satisfaction", "average_monthly_hours", "left"}, missingErr.Fields)
		assert.Equal(t, []string{"foo", "bar"}, missingErr.Available)
	})

	t.Run("partial resolution still fails", func(t *testing.T) {
		ds := newDataset(t, "satisfaction_level,foo\n0.5,1\n")
		_, err := ResolveFields(ds, fields)
		require.Error(t, err)

		var missingErr *apperrors.MissingColumnsError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, []string{"average_monthly_hours", "left"}, missingErr.Fields)
	})
}
