package mlearn

import (
	"errors"
	"math"
)

// LogisticRegression is a binary classifier fitted with full-batch gradient
// descent on L2-regularized cross-entropy. Features are standardized
// internally, so raw column scales (hours vs. a 0-1 score) do not skew the
// updates. Zero-initialized weights make Fit deterministic.
type LogisticRegression struct {
	LearningRate float64
	MaxIter      int
	L2           float64

	weights []float64
	bias    float64
	means   []float64
	scales  []float64
}

// NewLogisticRegression returns a model with the fixed hyperparameters the
// trainer uses (1000 iterations).
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		LearningRate: 0.1,
		MaxIter:      1000,
		L2:           1e-4,
	}
}

// Fit trains the model on X (n rows, p features) and binary labels y.
func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("logistic: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("logistic: X and y length mismatch")
	}
	p := len(X[0])

	m.fitScaler(X, p)
	m.weights = make([]float64, p)
	m.bias = 0

	grad := make([]float64, p)
	for iter := 0; iter < m.MaxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0

		for i, row := range X {
			d := m.decision(row) - float64(y[i])
			for j := range grad {
				grad[j] += d * m.scaled(row, j)
			}
			gradBias += d
		}

		inv := 1.0 / float64(n)
		for j := range m.weights {
			m.weights[j] -= m.LearningRate * (grad[j]*inv + m.L2*m.weights[j])
		}
		m.bias -= m.LearningRate * gradBias * inv
	}
	return nil
}

// PredictProba returns the positive-class probability for each row.
func (m *LogisticRegression) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = m.decision(row)
	}
	return out
}

// Predict returns class labels using a 0.5 threshold.
func (m *LogisticRegression) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, p := range m.PredictProba(X) {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

func (m *LogisticRegression) decision(row []float64) float64 {
	sum := m.bias
	for j := range row {
		sum += m.weights[j] * m.scaled(row, j)
	}
	return sigmoid(sum)
}

func (m *LogisticRegression) scaled(row []float64, j int) float64 {
	return (row[j] - m.means[j]) / m.scales[j]
}

// fitScaler records per-feature mean and spread from the training data.
// Constant features get unit scale so they contribute nothing.
func (m *LogisticRegression) fitScaler(X [][]float64, p int) {
	m.means = make([]float64, p)
	m.scales = make([]float64, p)
	n := float64(len(X))

	for _, row := range X {
		for j, v := range row {
			m.means[j] += v
		}
	}
	for j := range m.means {
		m.means[j] /= n
	}

	for _, row := range X {
		for j, v := range row {
			d := v - m.means[j]
			m.scales[j] += d * d
		}
	}
	for j := range m.scales {
		m.scales[j] = math.Sqrt(m.scales[j] / n)
		if m.scales[j] == 0 {
			m.scales[j] = 1
		}
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
