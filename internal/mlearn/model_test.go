package mlearn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable returns a two-feature dataset where feature 0 fully determines
// the class and feature 1 is seeded noise.
func separable(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]int, n)
	for i := range X {
		if i%2 == 0 {
			X[i] = []float64{rng.Float64(), rng.Float64()}
			y[i] = 0
		} else {
			X[i] = []float64{10 + rng.Float64(), rng.Float64()}
			y[i] = 1
		}
	}
	return X, y
}

func TestLogisticRegression_Separable(t *testing.T) {
	X, y := separable(60, 1)

	m := NewLogisticRegression()
	require.NoError(t, m.Fit(X, y))

	pred := m.Predict(X)
	assert.Equal(t, 1.0, Accuracy(y, pred))

	proba := m.PredictProba(X)
	for i, p := range proba {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		if y[i] == 1 {
			assert.Greater(t, p, 0.5)
		} else {
			assert.Less(t, p, 0.5)
		}
	}
}

func TestLogisticRegression_Deterministic(t *testing.T) {
	X, y := separable(40, 2)

	m1 := NewLogisticRegression()
	require.NoError(t, m1.Fit(X, y))
	m2 := NewLogisticRegression()
	require.NoError(t, m2.Fit(X, y))

	assert.Equal(t, m1.PredictProba(X), m2.PredictProba(X))
}

func TestLogisticRegression_EmptyInput(t *testing.T) {
	m := NewLogisticRegression()
	require.Error(t, m.Fit(nil, nil))
	require.Error(t, m.Fit([][]float64{{1}}, []int{0, 1}))
}

func TestRandomForest_Separable(t *testing.T) {
	X, y := separable(80, 3)

	rf := NewRandomForest(31, 42)
	require.NoError(t, rf.Fit(X, y))

	pred := rf.Predict(X)
	assert.Equal(t, 1.0, Accuracy(y, pred))
}

func TestRandomForest_Deterministic(t *testing.T) {
	X, y := separable(60, 4)

	rf1 := NewRandomForest(15, 42)
	require.NoError(t, rf1.Fit(X, y))
	rf2 := NewRandomForest(15, 42)
	require.NoError(t, rf2.Fit(X, y))

	assert.Equal(t, rf1.Predict(X), rf2.Predict(X))
	assert.Equal(t, rf1.FeatureImportances(), rf2.FeatureImportances())

	cm1 := ConfusionMatrix(y, rf1.Predict(X))
	cm2 := ConfusionMatrix(y, rf2.Predict(X))
	assert.Equal(t, cm1, cm2)
}

func TestRandomForest_Importances(t *testing.T) {
	X, y := separable(80, 5)

	rf := NewRandomForest(25, 42)
	require.NoError(t, rf.Fit(X, y))

	imp := rf.FeatureImportances()
	require.Len(t, imp, 2)

	// The informative feature dominates the noise feature.
	assert.Greater(t, imp[0], imp[1])

	sum := imp[0] + imp[1]
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestTopImportances(t *testing.T) {
	features := []string{"a", "b", "c", "d"}
	importances := []float64{0.1, 0.4, 0.4, 0.1}

	top := TopImportances(features, importances, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Feature) // tie broken by feature order
	assert.Equal(t, "c", top[1].Feature)
	assert.Equal(t, "a", top[2].Feature)

	// Non-increasing importance values.
	for i := 1; i < len(top); i++ {
		assert.LessOrEqual(t, top[i].Importance, top[i-1].Importance)
	}

	assert.Len(t, TopImportances(features, importances, 20), 4)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.75, Accuracy([]int{0, 1, 1, 0}, []int{0, 1, 0, 0}))
	assert.Equal(t, 0.0, Accuracy(nil, nil))
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []int{0, 0, 1, 1, 1, 0}
	yPred := []int{0, 1, 1, 0, 1, 0}

	cm := ConfusionMatrix(yTrue, yPred)
	assert.Equal(t, [][]int{{2, 1}, {1, 2}}, cm)
}

func TestClassificationReport(t *testing.T) {
	yTrue := []int{0, 0, 0, 1, 1, 1}
	yPred := []int{0, 0, 1, 1, 1, 0}

	rows := ClassificationReport(yTrue, yPred, []string{"Stayed (0)", "Left (1)"})
	require.Len(t, rows, 5)

	stayed := rows[0]
	assert.Equal(t, "Stayed (0)", stayed.Label)
	assert.InDelta(t, 2.0/3.0, stayed.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, stayed.Recall, 1e-9)
	assert.Equal(t, 3, stayed.Support)

	acc := rows[2]
	assert.Equal(t, "accuracy", acc.Label)
	assert.True(t, math.IsNaN(acc.Precision))
	assert.InDelta(t, 4.0/6.0, acc.F1, 1e-9)
	assert.Equal(t, 6, acc.Support)

	macro := rows[3]
	assert.Equal(t, "macro avg", macro.Label)
	assert.InDelta(t, 2.0/3.0, macro.F1, 1e-9)

	weighted := rows[4]
	assert.Equal(t, "weighted avg", weighted.Label)
	assert.Equal(t, 6, weighted.Support)
}
