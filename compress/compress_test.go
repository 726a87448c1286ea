package compress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnzcore/symspmv/compress"
	"github.com/nnzcore/symspmv/csr"
)

func build3x3(t *testing.T) *csr.Matrix {
	t.Helper()
	rowptr := []int{0, 1, 4, 6}
	colind := []int{0, 0, 1, 2, 1, 2}
	values := []float64{2, 1, 3, 1, 1, 4}
	m, err := csr.New(3, 3, rowptr, colind, values, true)
	require.NoError(t, err)

	return m
}

func TestCompressSplitsLowerTriangleAndDiagonal(t *testing.T) {
	m := build3x3(t)
	res, err := compress.Compress(m, []int{0, 2, 3}, compress.Options{})
	require.NoError(t, err)

	require.Len(t, res.Threads, 2)
	t0, t1 := res.Threads[0], res.Threads[1]

	assert.Equal(t, []int{0, 0, 1}, t0.RowPtrL)
	assert.Equal(t, []int{0}, t0.ColIndL)
	assert.Equal(t, []float64{1}, t0.ValuesL)
	assert.Equal(t, []float64{2, 3}, t0.Diagonal)
	assert.Equal(t, 1, t0.NNZLowerLocal)
	assert.Equal(t, 2, t0.NNZDiagLocal)

	assert.Equal(t, []int{0, 1}, t1.RowPtrL)
	assert.Equal(t, []int{1}, t1.ColIndL)
	assert.Equal(t, []float64{1}, t1.ValuesL)
	assert.Equal(t, []float64{4}, t1.Diagonal)

	assert.Equal(t, []float64{2, 3, 4}, res.Diagonal)
}

func TestCompressRejectsBadRowSplit(t *testing.T) {
	m := build3x3(t)
	_, err := compress.Compress(m, []int{0, 2, 2}, compress.Options{})
	assert.ErrorIs(t, err, compress.ErrBadRowSplit)
}

func TestCompressHybridDivertsHighBand(t *testing.T) {
	rowptr := []int{0, 1, 3, 4, 6}
	colind := []int{0, 0, 1, 2, 0, 3}
	values := []float64{1, 2, 1, 1, 5, 1}
	m, err := csr.New(4, 4, rowptr, colind, values, true)
	require.NoError(t, err)

	res, err := compress.Compress(m, []int{0, 4}, compress.Options{Hybrid: true, BandwidthThreshold: 2})
	require.NoError(t, err)

	td := res.Threads[0]
	assert.Equal(t, []int{0}, td.ColIndL)
	assert.Equal(t, []float64{2}, td.ValuesL)
	assert.Equal(t, []int{0}, td.ColIndH)
	assert.Equal(t, []float64{5}, td.ValuesH)
	assert.Equal(t, []float64{1, 1, 1, 1}, td.Diagonal)
}
