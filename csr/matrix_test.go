package csr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnzcore/symspmv/csr"
)

// buildTestMatrix builds a small 3x3 symmetric matrix:
// A = [[2,1,0],[1,3,1],[0,1,4]].
func buildTestMatrix(t *testing.T) *csr.Matrix {
	t.Helper()
	m, err := csr.New(3, 3,
		[]int{0, 2, 5, 7},
		[]int{0, 1, 0, 1, 2, 1, 2},
		[]float64{2, 1, 1, 3, 1, 1, 4},
		true,
	)
	require.NoError(t, err)

	return m
}

func TestNewValidatesInvariants(t *testing.T) {
	_, err := csr.New(2, 2, []int{0, 1}, []int{0}, []float64{1}, false)
	assert.ErrorIs(t, err, csr.ErrBadRowPtr)

	_, err = csr.New(2, 2, []int{0, 1, 1}, []int{5}, []float64{1}, false)
	assert.ErrorIs(t, err, csr.ErrIndexOutOfRange)

	_, err = csr.New(2, 2, []int{0, 2, 2}, []int{1, 0}, []float64{1, 1}, false)
	assert.ErrorIs(t, err, csr.ErrNonAscendingCols)
}

func TestNaiveMultiply(t *testing.T) {
	m := buildTestMatrix(t)
	y := make([]float64, 3)
	require.NoError(t, m.NaiveMultiply(y, []float64{1, 1, 1}))
	assert.Equal(t, []float64{3, 5, 5}, y)
}

func TestNaiveMultiplyDimensionMismatch(t *testing.T) {
	m := buildTestMatrix(t)
	err := m.NaiveMultiply(make([]float64, 2), []float64{1, 1, 1})
	assert.True(t, errors.Is(err, csr.ErrDimensionMismatch))
}

func TestDiagonal(t *testing.T) {
	m := buildTestMatrix(t)
	assert.Equal(t, []float64{2, 3, 4}, m.Diagonal())
}

func TestCheckSymmetric(t *testing.T) {
	m := buildTestMatrix(t)
	assert.True(t, m.CheckSymmetric(1e-9))

	asym, err := csr.New(2, 2, []int{0, 1, 2}, []int{1, 0}, []float64{1, 2}, false)
	require.NoError(t, err)
	assert.False(t, asym.CheckSymmetric(1e-9))
}

func TestSymmetricMultiplyMirrorsOffDiagonal(t *testing.T) {
	// Lower triangle + diagonal only, as stored by the symmetric compressor.
	lower, err := csr.New(3, 3,
		[]int{0, 1, 3, 5},
		[]int{0, 0, 1, 1, 2},
		[]float64{2, 1, 3, 1, 4},
		true,
	)
	require.NoError(t, err)
	y := make([]float64, 3)
	require.NoError(t, lower.SymmetricMultiply(y, []float64{1, 1, 1}))
	assert.Equal(t, []float64{3, 5, 5}, y)
}
