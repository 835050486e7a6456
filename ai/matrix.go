package ai

import (
	"fmt"
	"persona-lab/errors"
	"slices"
)

// Matrix is a binary design matrix stored in compressed row form.
// Row i owns indices[indptr[i]:indptr[i+1]], sorted and duplicate-free.
// Memory scales with the number of non-zero entries, not rows × cols.
type Matrix struct {
	cols    int
	indptr  []int
	indices []int
}

// NewMatrix allocates an all-zero matrix with the given column count.
// Rows are added with AppendRow.
func NewMatrix(cols int) *Matrix {
	return &Matrix{cols: cols, indptr: []int{0}}
}

// NewMatrixFromRows builds a matrix from explicit index sets.
func NewMatrixFromRows(cols int, rows []FeatureVector) (*Matrix, error) {
	m := NewMatrix(cols)
	for _, row := range rows {
		if err := m.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AppendRow sets column j to 1 for every j of row in a new trailing row.
// Repeated indices collapse to a single entry.
func (m *Matrix) AppendRow(row FeatureVector) error {
	sorted := slices.Clone(row)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for _, j := range sorted {
		if j < 0 || j >= m.cols {
			return fmt.Errorf("%w: column %d outside [0, %d)", errors.ErrDimensionMismatch, j, m.cols)
		}
	}
	m.indices = append(m.indices, sorted...)
	m.indptr = append(m.indptr, len(m.indices))
	return nil
}

func (m *Matrix) Rows() int {
	return len(m.indptr) - 1
}

func (m *Matrix) Cols() int {
	return m.cols
}

// Nnz returns the number of non-zero entries.
func (m *Matrix) Nnz() int {
	return len(m.indices)
}

// Row returns the active column indices of row i. The slice aliases the
// matrix storage and must not be modified.
func (m *Matrix) Row(i int) FeatureVector {
	return m.indices[m.indptr[i]:m.indptr[i+1]]
}

// Dot computes the dot product of row i with a dense vector.
func (m *Matrix) Dot(i int, dense []float64) float64 {
	var sum float64
	for _, j := range m.Row(i) {
		sum += dense[j]
	}
	return sum
}

// Slice returns a copy holding rows [start, end).
func (m *Matrix) Slice(start, end int) *Matrix {
	base := m.indptr[start]
	indptr := make([]int, 0, end-start+1)
	for _, p := range m.indptr[start : end+1] {
		indptr = append(indptr, p-base)
	}
	return &Matrix{
		cols:    m.cols,
		indptr:  indptr,
		indices: slices.Clone(m.indices[base:m.indptr[end]]),
	}
}

// Permute returns a new matrix whose row i is row perm[i] of m.
func (m *Matrix) Permute(perm []int) *Matrix {
	out := &Matrix{
		cols:    m.cols,
		indptr:  make([]int, 1, len(m.indptr)),
		indices: make([]int, 0, len(m.indices)),
	}
	for _, src := range perm {
		out.indices = append(out.indices, m.Row(src)...)
		out.indptr = append(out.indptr, len(out.indices))
	}
	return out
}

// Dense expands row i into a full 0/1 vector.
func (m *Matrix) Dense(i int) []float64 {
	vec := make([]float64, m.cols)
	for _, j := range m.Row(i) {
		vec[j] = 1
	}
	return vec
}
