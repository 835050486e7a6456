package ai

import (
	"persona-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatrix_AppendRow(t *testing.T) {
	req := require.New(t)
	m := NewMatrix(8)
	req.NoError(m.AppendRow(FeatureVector{5, 2, 5}))
	req.NoError(m.AppendRow(nil))
	req.NoError(m.AppendRow(FeatureVector{7}))

	req.Equal(3, m.Rows())
	req.Equal(8, m.Cols())
	req.Equal(3, m.Nnz())
	req.Equal(FeatureVector{2, 5}, m.Row(0))
	req.Empty(m.Row(1))
	req.Equal(FeatureVector{7}, m.Row(2))
	req.Equal([]float64{0, 0, 1, 0, 0, 1, 0, 0}, m.Dense(0))
}

func TestMatrix_AppendRow_OutOfRange(t *testing.T) {
	req := require.New(t)
	m := NewMatrix(4)
	err := m.AppendRow(FeatureVector{1, 4})
	req.ErrorIs(err, errors.ErrDimensionMismatch)
	req.Equal(0, m.Rows())
}

func TestMatrix_Dot(t *testing.T) {
	req := require.New(t)
	m, err := NewMatrixFromRows(4, []FeatureVector{{0, 3}, {}})
	req.NoError(err)
	theta := []float64{0.5, 10, 10, -2}
	req.Equal(-1.5, m.Dot(0, theta))
	req.Equal(0.0, m.Dot(1, theta))
}

func TestMatrix_Slice(t *testing.T) {
	req := require.New(t)
	m, err := NewMatrixFromRows(6, []FeatureVector{{0}, {1, 2}, {3}, {4, 5}, {}})
	req.NoError(err)

	s := m.Slice(1, 4)
	req.Equal(3, s.Rows())
	req.Equal(6, s.Cols())
	req.Equal(FeatureVector{1, 2}, s.Row(0))
	req.Equal(FeatureVector{3}, s.Row(1))
	req.Equal(FeatureVector{4, 5}, s.Row(2))

	empty := m.Slice(2, 2)
	req.Equal(0, empty.Rows())
}

func TestMatrix_Permute(t *testing.T) {
	req := require.New(t)
	m, err := NewMatrixFromRows(5, []FeatureVector{{0}, {1, 2}, {3, 4}})
	req.NoError(err)

	p := m.Permute([]int{2, 0, 1})
	req.Equal(3, p.Rows())
	req.Equal(m.Nnz(), p.Nnz())
	req.Equal(FeatureVector{3, 4}, p.Row(0))
	req.Equal(FeatureVector{0}, p.Row(1))
	req.Equal(FeatureVector{1, 2}, p.Row(2))
	// Source untouched
	req.Equal(FeatureVector{0}, m.Row(0))
}
