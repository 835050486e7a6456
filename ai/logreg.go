package ai

import (
	"fmt"
	"math"
	"persona-lab/errors"
	"slices"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/floats"
)

// InitialWeight is the constant every coefficient of a fresh model starts from.
const InitialWeight = -1.0

var validate = validator.New()

type Hyperparameters struct {
	MappingSize int     `validate:"gt=0"`
	BatchSize   int     `validate:"gt=0"`
	Alpha       float64 `validate:"gt=0"`
	C           float64 `validate:"gte=0"`
}

// DefaultHyperparameters mirrors the values the classifier was historically tuned with.
func DefaultHyperparameters(mappingSize int) Hyperparameters {
	return Hyperparameters{
		MappingSize: mappingSize,
		BatchSize:   1000,
		Alpha:       0.2,
		C:           0,
	}
}

func (h Hyperparameters) Validate() error {
	return validate.Struct(h)
}

// Model is a binary logistic regression trained by mini-batch gradient descent
// with L2 regularization. It owns its weight vector; Fit calls on the same
// Model must be serialized by the caller.
type Model struct {
	params Hyperparameters
	theta  []float64
}

// NewModel allocates theta with InitialWeight in every coordinate.
func NewModel(params Hyperparameters) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hyperparameters: %w", err)
	}
	theta := make([]float64, params.MappingSize)
	for i := range theta {
		theta[i] = InitialWeight
	}
	return &Model{params: params, theta: theta}, nil
}

// RestoreModel rebuilds a model from persisted state.
func RestoreModel(params Hyperparameters, theta []float64) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hyperparameters: %w", err)
	}
	if len(theta) != params.MappingSize {
		return nil, fmt.Errorf("%w: theta has %d weights, mapping size is %d",
			errors.ErrDimensionMismatch, len(theta), params.MappingSize)
	}
	return &Model{params: params, theta: slices.Clone(theta)}, nil
}

func (m *Model) Hyperparameters() Hyperparameters {
	return m.params
}

func (m *Model) MappingSize() int {
	return m.params.MappingSize
}

// Theta returns a copy of the weight vector.
func (m *Model) Theta() []float64 {
	return slices.Clone(m.theta)
}

// Fit performs one epoch of mini-batch gradient descent over x and y.
// Rows are split into contiguous batches of exactly BatchSize rows in row order;
// a trailing remainder shorter than BatchSize is skipped for this call, so a
// matrix with fewer rows than BatchSize leaves theta untouched.
// For every batch:
//
//	h     = sigmoid(X_batch · theta)
//	grad  = X_batch^T · (h - y_batch)
//	theta = theta - alpha * (grad + C * theta)
//
// It returns the number of batches applied.
func (m *Model) Fit(x *Matrix, y []int) (int, error) {
	if err := m.checkShape(x, y); err != nil {
		return 0, err
	}
	if err := checkLabels(y); err != nil {
		return 0, err
	}

	size := m.params.BatchSize
	if x.Rows() < size {
		return 0, nil
	}
	grad := make([]float64, len(m.theta))
	h := make([]float64, size)
	batches := 0
	for start := 0; start+size <= x.Rows(); start += size {
		for r := range size {
			h[r] = Sigmoid(x.Dot(start+r, m.theta))
		}

		clear(grad)
		for r := range size {
			diff := h[r] - float64(y[start+r])
			for _, j := range x.Row(start + r) {
				grad[j] += diff
			}
		}

		floats.AddScaled(grad, m.params.C, m.theta)
		floats.AddScaled(m.theta, -m.params.Alpha, grad)
		batches++
	}
	return batches, nil
}

func (m *Model) checkShape(x *Matrix, y []int) error {
	if x.Cols() != len(m.theta) {
		return fmt.Errorf("%w: matrix has %d columns, theta has %d weights",
			errors.ErrDimensionMismatch, x.Cols(), len(m.theta))
	}
	if x.Rows() != len(y) {
		return fmt.Errorf("%w: matrix has %d rows, got %d labels",
			errors.ErrDimensionMismatch, x.Rows(), len(y))
	}
	return nil
}

func checkLabels(y []int) error {
	for i, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("%w: row %d has label %d", errors.ErrInvalidLabel, i, label)
		}
	}
	return nil
}

// Sigmoid is the logistic function, written so that exp never overflows.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
