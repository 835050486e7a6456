package ai

import (
	"fmt"
	"persona-lab/errors"
	"slices"
)

// Threshold is the decision boundary: a probability of exactly Threshold is positive.
const Threshold = 0.5

// Probability returns sigmoid(x·theta) for a single feature vector.
// v is read as a set: order and repeated indices do not matter.
func (m *Model) Probability(v FeatureVector) (float64, error) {
	if !slices.IsSorted(v) {
		v = slices.Clone(v)
		slices.Sort(v)
	}
	var z float64
	for i, j := range v {
		if i > 0 && v[i-1] == j {
			continue
		}
		if j < 0 || j >= len(m.theta) {
			return 0, fmt.Errorf("%w: feature index %d outside [0, %d)",
				errors.ErrDimensionMismatch, j, len(m.theta))
		}
		z += m.theta[j]
	}
	return Sigmoid(z), nil
}

// PredictVector labels a single feature vector, typically the output of HashTokens.
func (m *Model) PredictVector(v FeatureVector) (int, error) {
	p, err := m.Probability(v)
	if err != nil {
		return 0, err
	}
	return Decide(p), nil
}

// Predict labels every row of x without requiring ground truth.
func (m *Model) Predict(x *Matrix) ([]int, error) {
	if x.Cols() != len(m.theta) {
		return nil, fmt.Errorf("%w: matrix has %d columns, theta has %d weights",
			errors.ErrDimensionMismatch, x.Cols(), len(m.theta))
	}
	labels := make([]int, x.Rows())
	for i := range labels {
		labels[i] = Decide(Sigmoid(x.Dot(i, m.theta)))
	}
	return labels, nil
}

// Score returns the fraction of rows whose predicted label equals the actual one.
func (m *Model) Score(x *Matrix, y []int) (float64, error) {
	if len(y) == 0 {
		return 0, fmt.Errorf("%w: nothing to score", errors.ErrEmptyDataset)
	}
	if err := m.checkShape(x, y); err != nil {
		return 0, err
	}
	if err := checkLabels(y); err != nil {
		return 0, err
	}
	predicted, err := m.Predict(x)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i, label := range predicted {
		if label == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}

// Decide turns a probability into a label using Threshold.
func Decide(p float64) int {
	if p >= Threshold {
		return 1
	}
	return 0
}
