package csr

import "fmt"

// Matrix is a compressed-sparse-row sparse matrix.
//
// RowPtr has length NRows+1; row i's nonzeros are ColInd[RowPtr[i]:RowPtr[i+1]]
// with parallel values Values[RowPtr[i]:RowPtr[i+1]], sorted ascending by
// column. Symmetric records the Matrix Market symmetry flag the matrix was
// ingested with. It is an assertion about the data, not a computed fact;
// use CheckSymmetric to verify it.
type Matrix struct {
	NRows, NCols, NNZ int
	RowPtr            []int
	ColInd            []int
	Values            []float64
	Symmetric         bool
}

// New constructs a Matrix from parallel CSR arrays and validates the
// structural invariants. The slices are taken by reference, not
// copied: callers must not mutate them afterward.
func New(nrows, ncols int, rowptr, colind []int, values []float64, symmetric bool) (*Matrix, error) {
	m := &Matrix{
		NRows:     nrows,
		NCols:     ncols,
		NNZ:       len(values),
		RowPtr:    rowptr,
		ColInd:    colind,
		Values:    values,
		Symmetric: symmetric,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks the CSR invariants: rowptr is monotonic non-decreasing
// with the right length and rowptr[nrows]==nnz, every column index lies in
// [0,ncols), and each row's columns are sorted ascending.
func (m *Matrix) Validate() error {
	if m.NRows < 0 || m.NCols < 0 || m.NNZ < 0 {
		return fmt.Errorf("nrows=%d ncols=%d nnz=%d: %w", m.NRows, m.NCols, m.NNZ, ErrBadDimensions)
	}
	if len(m.ColInd) != m.NNZ || len(m.Values) != m.NNZ {
		return fmt.Errorf("len(colind)=%d len(values)=%d nnz=%d: %w", len(m.ColInd), len(m.Values), m.NNZ, ErrBadDimensions)
	}
	if len(m.RowPtr) != m.NRows+1 {
		return fmt.Errorf("len(rowptr)=%d want %d: %w", len(m.RowPtr), m.NRows+1, ErrBadRowPtr)
	}
	if m.RowPtr[0] != 0 {
		return fmt.Errorf("rowptr[0]=%d want 0: %w", m.RowPtr[0], ErrBadRowPtr)
	}
	if m.RowPtr[m.NRows] != m.NNZ {
		return fmt.Errorf("rowptr[nrows]=%d want nnz=%d: %w", m.RowPtr[m.NRows], m.NNZ, ErrBadRowPtr)
	}
	for i := 0; i < m.NRows; i++ {
		if m.RowPtr[i] > m.RowPtr[i+1] {
			return fmt.Errorf("rowptr[%d]=%d > rowptr[%d]=%d: %w", i, m.RowPtr[i], i+1, m.RowPtr[i+1], ErrBadRowPtr)
		}
		prevCol := -1
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			col := m.ColInd[j]
			if col < 0 || col >= m.NCols {
				return fmt.Errorf("row %d col %d: %w", i, col, ErrIndexOutOfRange)
			}
			if col <= prevCol {
				return fmt.Errorf("row %d: col %d after %d: %w", i, col, prevCol, ErrNonAscendingCols)
			}
			prevCol = col
		}
	}

	return nil
}

// NaiveMultiply computes y = A*x with a single straight-line pass over the
// stored entries, treating the matrix as non-symmetric (every stored entry
// contributes only to its own row). It is the correctness oracle used by
// property tests; the "vanilla" kernel mode computes the same product
// with its own loop.
func (m *Matrix) NaiveMultiply(y, x []float64) error {
	if len(x) != m.NCols || len(y) != m.NRows {
		return fmt.Errorf("len(x)=%d len(y)=%d: %w", len(x), len(y), ErrDimensionMismatch)
	}
	for i := 0; i < m.NRows; i++ {
		var acc float64
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			acc += m.Values[j] * x[m.ColInd[j]]
		}
		y[i] = acc
	}

	return nil
}

// SymmetricMultiply reconstructs the full symmetric matrix implicitly from
// a matrix that stores only the lower triangle (including the diagonal) and
// computes y = A*x, mirroring every off-diagonal entry into the transposed
// position. It is the oracle for the symmetric strategies and assumes m
// holds exactly the strict lower triangle plus diagonal.
func (m *Matrix) SymmetricMultiply(y, x []float64) error {
	if len(x) != m.NCols || len(y) != m.NRows {
		return fmt.Errorf("len(x)=%d len(y)=%d: %w", len(x), len(y), ErrDimensionMismatch)
	}
	for i := range y {
		y[i] = 0
	}
	for i := 0; i < m.NRows; i++ {
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			col := m.ColInd[j]
			val := m.Values[j]
			y[i] += val * x[col]
			if col != i {
				y[col] += val * x[i]
			}
		}
	}

	return nil
}

// Diagonal returns the diagonal entries of the matrix, zero where the
// matrix stores no diagonal entry for a row.
func (m *Matrix) Diagonal() []float64 {
	diag := make([]float64, m.NRows)
	for i := 0; i < m.NRows; i++ {
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			if m.ColInd[j] == i {
				diag[i] = m.Values[j]

				break
			}
		}
	}

	return diag
}

// CheckSymmetric reports whether the stored full matrix is numerically
// symmetric within eps: for every stored a[i][j] there is a matching
// a[j][i] of the same value. It is O(nnz) using a lookup built once, and
// is used at construction time to reconcile a caller's symmetric
// assertion with the data.
func (m *Matrix) CheckSymmetric(eps float64) bool {
	if m.NRows != m.NCols {
		return false
	}
	lookup := make(map[[2]int]float64, m.NNZ)
	for i := 0; i < m.NRows; i++ {
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			lookup[[2]int{i, m.ColInd[j]}] = m.Values[j]
		}
	}
	for key, val := range lookup {
		mirrored, ok := lookup[[2]int{key[1], key[0]}]
		if !ok {
			if abs(val) > eps {
				return false
			}

			continue
		}
		if abs(val-mirrored) > eps {
			return false
		}
	}

	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
