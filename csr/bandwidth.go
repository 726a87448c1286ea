package csr

// StrictLowerCounts returns, for each row i, the number of stored entries
// with column < i (the strict lower triangle). It is used by both the
// partitioner (to balance nnz_lower across threads) and the engine's
// check of the symmetric compressor's totals.
func (m *Matrix) StrictLowerCounts() []int {
	counts := make([]int, m.NRows)
	for i := 0; i < m.NRows; i++ {
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			if m.ColInd[j] < i {
				counts[i]++
			}
		}
	}

	return counts
}

// DiagonalCounts returns, for each row i, 1 if the matrix stores a (i,i)
// entry and 0 otherwise.
func (m *Matrix) DiagonalCounts() []int {
	counts := make([]int, m.NRows)
	for i := 0; i < m.NRows; i++ {
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			if m.ColInd[j] == i {
				counts[i] = 1

				break
			}
		}
	}

	return counts
}

// HighBandCounts returns, for each row i, the number of stored entries
// whose column lies at least threshold away from i in either direction:
// the "far from the diagonal" entries the hybrid mode keeps outside of
// symmetric compression.
func (m *Matrix) HighBandCounts(threshold int) []int {
	counts := make([]int, m.NRows)
	for i := 0; i < m.NRows; i++ {
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			d := m.ColInd[j] - i
			if d < 0 {
				d = -d
			}
			if d >= threshold {
				counts[i]++
			}
		}
	}

	return counts
}
