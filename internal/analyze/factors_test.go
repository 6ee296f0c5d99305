package analyze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hrpulse/internal/errors"
)

const factorCSV = `satisfaction_level,left,Department,salary,promotion_last_5years
0.38,1,sales,low,0
0.80,0,sales,medium,0
0.11,1,technical,low,0
0.72,0,hr,high,1
0.37,1,sales,low,0
0.45,0,technical,medium,0
0.90,0,hr,high,0
0.20,1,technical,low,0
`

func TestFactors_RequiresTarget(t *testing.T) {
	_, err := Factors(newDataset(t, "a,b\n1,2\n"))
	require.Error(t, err)

	var missingErr *apperrors.MissingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"left"}, missingErr.Fields)
	assert.Equal(t, []string{"a", "b"}, missingErr.Available)
}

func TestFactors_DepartmentRates(t *testing.T) {
	r, err := Factors(newDataset(t, factorCSV))
	require.NoError(t, err)

	// technical 2/3, sales 2/3, hr 0/2 — sorted descending, ties by name.
	require.Len(t, r.Department.Rows, 3)
	assert.Equal(t, "sales", r.Department.Rows[0][0])
	assert.Equal(t, "technical", r.Department.Rows[1][0])
	assert.Equal(t, "hr", r.Department.Rows[2][0])
	assert.InDelta(t, 2.0/3.0, r.Department.Rows[0][2].(float64), 1e-9)
	assert.Equal(t, 0.0, r.Department.Rows[2][2])
}

func TestFactors_GroupTotalsReconstruct(t *testing.T) {
	r, err := Factors(newDataset(t, factorCSV))
	require.NoError(t, err)

	// Σ(group size × rate) over the department sheet equals the total
	// attrited count.
	total := 0.0
	for _, row := range r.Department.Rows {
		total += float64(row[1].(int)) * row[2].(float64)
	}
	assert.InDelta(t, 4.0, total, 1e-9)
}

func TestFactors_SalaryAndPromotion(t *testing.T) {
	r, err := Factors(newDataset(t, factorCSV))
	require.NoError(t, err)

	require.Len(t, r.Salary.Rows, 3)
	assert.Equal(t, "low", r.Salary.Rows[0][0])
	assert.Equal(t, 1.0, r.Salary.Rows[0][2])

	// Promotion sheet is keyed ascending, not sorted by rate.
	require.Len(t, r.Promotion.Rows, 2)
	assert.Equal(t, 0, r.Promotion.Rows[0][0])
	assert.Equal(t, 1, r.Promotion.Rows[1][0])
}

func TestFactors_DeptSalaryCross(t *testing.T) {
	r, err := Factors(newDataset(t, factorCSV))
	require.NoError(t, err)

	require.NotEmpty(t, r.DeptSalary.Rows)
	top := r.DeptSalary.Rows[0]
	assert.Equal(t, "sales", top[0])
	assert.Equal(t, "low", top[1])
	assert.Equal(t, 1.0, top[3])

	// Rates never increase going down the sheet.
	prev := math.Inf(1)
	for _, row := range r.DeptSalary.Rows {
		rate := row[3].(float64)
		assert.LessOrEqual(t, rate, prev)
		prev = rate
	}
}

func TestFactors_OptionalColumnsDegrade(t *testing.T) {
	csv := "left,other\n1,x\n0,y\n"
	r, err := Factors(newDataset(t, csv))
	require.NoError(t, err)

	assert.True(t, r.SatisfactionByLeft.IsEmpty())
	assert.True(t, r.Department.IsEmpty())
	assert.True(t, r.Salary.IsEmpty())
	assert.True(t, r.Promotion.IsEmpty())
	assert.True(t, r.DeptSalary.IsEmpty())

	// Headers survive so the workbook layout is stable.
	assert.Equal(t, []string{"Department", "employee_count", "attrition_rate"}, r.Department.Columns)
}

func TestFactors_SatisfactionByLeft(t *testing.T) {
	r, err := Factors(newDataset(t, factorCSV))
	require.NoError(t, err)

	require.Len(t, r.SatisfactionByLeft.Rows, 2)
	assert.Equal(t, 0, r.SatisfactionByLeft.Rows[0][0])
	stayed := r.SatisfactionByLeft.Rows[0][1].(float64)
	left := r.SatisfactionByLeft.Rows[1][1].(float64)
	assert.Greater(t, stayed, left)
}

func TestBarData(t *testing.T) {
	r, err := Factors(newDataset(t, factorCSV))
	require.NoError(t, err)

	names, rates := BarData(r.Department, 1)
	assert.Equal(t, []string{"sales", "technical", "hr"}, names)
	require.Len(t, rates, 3)

	crossNames, crossRates := BarData(r.DeptSalary, 2)
	assert.Equal(t, "sales/low", crossNames[0])
	assert.Len(t, crossRates, len(r.DeptSalary.Rows))
}
