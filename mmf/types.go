package mmf

// TripletSource is the fixed interface between the engine and whatever
// produces coordinate triplets. Implementations MUST yield triplets with
// row, col 0-indexed and rows non-decreasing; Next returns ok=false once
// exhausted.
type TripletSource interface {
	// Next returns the next triplet, or ok=false when the source is
	// exhausted. err is non-nil only on a genuine read failure.
	Next() (row, col int, val float64, ok bool, err error)

	// Shape returns the matrix dimensions and symmetry flag declared by
	// the source (e.g. the MatrixMarket header), known before the first
	// triplet is read.
	Shape() (nrows, ncols, nnz int, symmetric bool)
}

// SliceSource is an in-memory TripletSource, useful for tests, examples,
// and synthetic matrices. Triplets must already be ascending by row; use
// NewSliceSource to sort them once up front. Indices are not validated.
type SliceSource struct {
	nrows, ncols int
	symmetric    bool
	rows, cols   []int
	vals         []float64
	pos          int
}

// NewSliceSource builds a SliceSource from parallel row/col/value slices.
// The slices are not required to be pre-sorted; NewSliceSource stable-sorts
// them by row so the resulting source satisfies the ascending-row contract.
func NewSliceSource(nrows, ncols int, symmetric bool, rows, cols []int, vals []float64) *SliceSource {
	n := len(vals)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Stable insertion sort by row: triplet counts in this engine's tests
	// and examples are small, and stability preserves caller-supplied
	// column order within a row, which callers rely on for fixtures.
	for i := 1; i < n; i++ {
		for j := i; j > 0 && rows[order[j-1]] > rows[order[j]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	sr := make([]int, n)
	sc := make([]int, n)
	sv := make([]float64, n)
	for i, idx := range order {
		sr[i], sc[i], sv[i] = rows[idx], cols[idx], vals[idx]
	}

	return &SliceSource{nrows: nrows, ncols: ncols, symmetric: symmetric, rows: sr, cols: sc, vals: sv}
}

// Next implements TripletSource.
func (s *SliceSource) Next() (row, col int, val float64, ok bool, err error) {
	if s.pos >= len(s.vals) {
		return 0, 0, 0, false, nil
	}
	row, col, val = s.rows[s.pos], s.cols[s.pos], s.vals[s.pos]
	s.pos++

	return row, col, val, true, nil
}

// Shape implements TripletSource.
func (s *SliceSource) Shape() (nrows, ncols, nnz int, symmetric bool) {
	return s.nrows, s.ncols, len(s.vals), s.symmetric
}
