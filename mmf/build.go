package mmf

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/nnzcore/symspmv/csr"
)

// BuildCSR drains source and assembles the full CSR matrix the engine's
// preprocessing pipeline expects. When the source declares symmetric=true
// (only the lower triangle was supplied, mirrored entries implicit), every
// off-diagonal triplet is mirrored into the transposed position so the
// result is always the full matrix; reconciliation with a caller's own
// `symmetric` option happens one layer up, in engine.New.
//
// Construction is two-pass (count rows, then fill): once the true nnz
// including mirrors is known, no late reallocation can occur.
func BuildCSR(source TripletSource) (*csr.Matrix, error) {
	nrows, ncols, declaredNNZ, symmetric := source.Shape()

	type triplet struct {
		row, col int
		val      float64
	}
	buf := make([]triplet, 0, declaredNNZ)
	for {
		row, col, val, ok, err := source.Next()
		if err != nil {
			return nil, errors.Wrap(err, "mmf: reading triplets")
		}
		if !ok {
			break
		}
		buf = append(buf, triplet{row, col, val})
	}

	counts := make([]int, nrows)
	for _, t := range buf {
		counts[t.row]++
		if symmetric && t.col != t.row {
			counts[t.col]++
		}
	}

	rowptr := make([]int, nrows+1)
	for i := 0; i < nrows; i++ {
		rowptr[i+1] = rowptr[i] + counts[i]
	}
	nnz := rowptr[nrows]

	colind := make([]int, nnz)
	values := make([]float64, nnz)
	cursor := make([]int, nrows)
	copy(cursor, rowptr[:nrows])

	place := func(row, col int, val float64) {
		pos := cursor[row]
		colind[pos] = col
		values[pos] = val
		cursor[row]++
	}
	for _, t := range buf {
		place(t.row, t.col, t.val)
		if symmetric && t.col != t.row {
			place(t.col, t.row, t.val)
		}
	}

	for i := 0; i < nrows; i++ {
		sortRow(colind[rowptr[i]:rowptr[i+1]], values[rowptr[i]:rowptr[i+1]])
	}

	return csr.New(nrows, ncols, rowptr, colind, values, symmetric)
}

// rowCols/rowVals pair implements sort.Interface so a row's column indices
// and values can be reordered together after mirroring may have
// interleaved them out of ascending order.
type rowCols struct {
	cols []int
	vals []float64
}

func (r rowCols) Len() int           { return len(r.cols) }
func (r rowCols) Less(i, j int) bool { return r.cols[i] < r.cols[j] }
func (r rowCols) Swap(i, j int) {
	r.cols[i], r.cols[j] = r.cols[j], r.cols[i]
	r.vals[i], r.vals[j] = r.vals[j], r.vals[i]
}

func sortRow(cols []int, vals []float64) {
	sort.Sort(rowCols{cols: cols, vals: vals})
}
