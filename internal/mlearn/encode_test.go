package mlearn

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpulse/internal/dataset"
	apperrors "hrpulse/internal/errors"
)

func newDataset(t *testing.T, csv string) *dataset.Dataset {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(csv),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	require.NoError(t, df.Err)
	return dataset.FromDataFrame(df)
}

func TestEncode(t *testing.T) {
	csv := `satisfaction_level,left,Department,salary
0.38,1,sales,low
0.80,0,technical,medium
0.11,1,hr,low
0.72,0,sales,high
`
	dm, err := Encode(newDataset(t, csv), "left")
	require.NoError(t, err)

	// Numeric passthrough, then dummies with the first sorted level
	// (hr, high) dropped per categorical column.
	assert.Equal(t, []string{
		"satisfaction_level",
		"Department_sales", "Department_technical",
		"salary_low", "salary_medium",
	}, dm.Features)
	assert.Equal(t, []string{"float", "bool", "bool", "bool", "bool"}, dm.FeatureTypes)

	assert.Equal(t, []int{1, 0, 1, 0}, dm.Y)
	require.Len(t, dm.X, 4)
	assert.Equal(t, []float64{0.38, 1, 0, 1, 0}, dm.X[0])
	assert.Equal(t, []float64{0.80, 0, 1, 0, 1}, dm.X[1])
	assert.Equal(t, []float64{0.11, 0, 0, 1, 0}, dm.X[2]) // hr is the reference level
	assert.Equal(t, []float64{0.72, 1, 0, 0, 0}, dm.X[3]) // high is the reference level
}

func TestEncode_MissingTarget(t *testing.T) {
	_, err := Encode(newDataset(t, "a,b\n1,2\n"), "left")
	require.Error(t, err)

	var missingErr *apperrors.MissingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"left"}, missingErr.Fields)
}

func TestStratifiedSplit(t *testing.T) {
	y := make([]int, 100)
	for i := 75; i < 100; i++ {
		y[i] = 1 // 25% positive
	}

	train, test := StratifiedSplit(y, 0.2, 42)
	assert.Len(t, test, 20)
	assert.Len(t, train, 80)

	countOnes := func(idx []int) int {
		c := 0
		for _, i := range idx {
			c += y[i]
		}
		return c
	}
	// Class balance carries over exactly: 25% of each partition.
	assert.Equal(t, 5, countOnes(test))
	assert.Equal(t, 20, countOnes(train))

	// No overlap, full coverage.
	seen := make(map[int]bool)
	for _, i := range append(append([]int(nil), train...), test...) {
		assert.False(t, seen[i])
		seen[i] = true
	}
	assert.Len(t, seen, 100)
}

func TestStratifiedSplit_Deterministic(t *testing.T) {
	y := []int{0, 1, 0, 1, 0, 1, 0, 1, 0, 0}

	train1, test1 := StratifiedSplit(y, 0.3, 7)
	train2, test2 := StratifiedSplit(y, 0.3, 7)
	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
}

func TestSubset(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []int{0, 1, 0, 1}

	subX, subY := Subset(X, y, []int{3, 0})
	assert.Equal(t, [][]float64{{4}, {1}}, subX)
	assert.Equal(t, []int{1, 0}, subY)
}
