package partition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnzcore/symspmv/csr"
	"github.com/nnzcore/symspmv/partition"
)

// buildBandedMatrix returns a 6x6 matrix whose strict-lower-triangle row
// counts are [0,1,1,2,2,3] and whose high-band (threshold=3) row counts
// are [0,0,0,1,0,2], chosen to make the split arithmetic easy to verify
// by hand.
func buildBandedMatrix(t *testing.T) *csr.Matrix {
	t.Helper()
	rowptr := []int{0, 1, 3, 5, 8, 11, 15}
	colind := []int{
		0,
		0, 1,
		1, 2,
		0, 2, 3,
		2, 3, 4,
		0, 2, 4, 5,
	}
	values := make([]float64, len(colind))
	for i := range values {
		values[i] = 1
	}
	m, err := csr.New(6, 6, rowptr, colind, values, true)
	require.NoError(t, err)

	return m
}

func TestSplitSymmetricBalancesLowerTriangle(t *testing.T) {
	m := buildBandedMatrix(t)
	rowSplit, err := partition.Split(m, partition.Options{
		Symmetric:   true,
		Threads:     3,
		BlockFactor: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 6, 6}, rowSplit)
}

func TestSplitHybridAddsHighBandWeight(t *testing.T) {
	m := buildBandedMatrix(t)
	rowSplit, err := partition.Split(m, partition.Options{
		Symmetric:          true,
		Hybrid:             true,
		BandwidthThreshold: 3,
		Threads:            3,
		BlockFactor:        1,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 6, 6}, rowSplit)
}

func TestSplitSingleThreadCoversAllRows(t *testing.T) {
	m := buildBandedMatrix(t)
	rowSplit, err := partition.Split(m, partition.Options{Symmetric: true, Threads: 1, BlockFactor: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6}, rowSplit)
}

func TestSplitCutsAreBlockAligned(t *testing.T) {
	m := buildBandedMatrix(t)
	rowSplit, err := partition.Split(m, partition.Options{Symmetric: true, Threads: 2, BlockFactor: 4})
	require.NoError(t, err)
	for _, cut := range rowSplit[1 : len(rowSplit)-1] {
		assert.Zero(t, cut%4)
	}
	assert.Equal(t, 6, rowSplit[len(rowSplit)-1])
}

func TestSplitNonSymmetricUsesFullRowLength(t *testing.T) {
	rowptr := []int{0, 2, 4, 6}
	colind := []int{0, 1, 0, 1, 1, 2}
	values := []float64{1, 1, 1, 1, 1, 1}
	m, err := csr.New(3, 3, rowptr, colind, values, false)
	require.NoError(t, err)

	rowSplit, err := partition.Split(m, partition.Options{Threads: 3, BlockFactor: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, rowSplit[0])
	assert.Equal(t, 3, rowSplit[3])
}

func TestSplitRejectsInvalidOptions(t *testing.T) {
	m := buildBandedMatrix(t)
	_, err := partition.Split(m, partition.Options{Threads: 0, BlockFactor: 1})
	assert.ErrorIs(t, err, partition.ErrNoThreads)

	_, err = partition.Split(m, partition.Options{Threads: 1, BlockFactor: 0})
	assert.ErrorIs(t, err, partition.ErrBadBlockFactor)

	_, err = partition.Split(m, partition.Options{Threads: 100, BlockFactor: 1})
	assert.ErrorIs(t, err, partition.ErrTooManyThreads)
}
