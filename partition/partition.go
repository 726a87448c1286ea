package partition

import (
	"github.com/nnzcore/symspmv/csr"
)

// Options configures Split. BandwidthThreshold is only consulted when
// Hybrid is true.
type Options struct {
	Symmetric          bool
	Hybrid             bool
	Threads            int
	BlockFactor        int
	BandwidthThreshold int
}

// Split computes the row boundaries row_split[0..Threads], where thread t
// owns rows [row_split[t], row_split[t+1]).
//
// The per-row weight driving the split is the strict-lower-triangle nnz
// count when Symmetric is set (full row length otherwise), plus the
// high-band count again when Hybrid is set. The hybrid term is additive
// on top of the lower-triangle term: sidecar rows cost their thread a
// second pass, and the split has to account for that work.
//
// Partition cuts only land on a multiple of BlockFactor so every later
// blocked-row structure (conflict graphs, color classes, schedules) can
// assume thread boundaries are block-aligned.
func Split(m *csr.Matrix, opts Options) ([]int, error) {
	if opts.Threads < 1 {
		return nil, ErrNoThreads
	}
	if opts.BlockFactor < 1 {
		return nil, ErrBadBlockFactor
	}
	if m.NRows < opts.Threads {
		return nil, ErrTooManyThreads
	}

	rowSplit := make([]int, opts.Threads+1)
	if opts.Threads == 1 {
		rowSplit[1] = m.NRows

		return rowSplit, nil
	}

	weight := rowWeights(m, opts)

	total := 0
	for _, w := range weight {
		total += w
	}
	target := total / opts.Threads
	if target < 1 {
		target = 1
	}

	tid := 1
	currNNZ := 0
	for i := 0; i < m.NRows; i++ {
		currNNZ += weight[i]
		if tid < opts.Threads && currNNZ >= target && (i+1)%opts.BlockFactor == 0 {
			rowSplit[tid] = i + 1
			tid++
			currNNZ = 0
		}
	}
	for ; tid <= opts.Threads; tid++ {
		rowSplit[tid] = m.NRows
	}

	return rowSplit, nil
}

// rowWeights returns the per-row nnz weight used to balance the split,
// per the Symmetric/Hybrid accounting documented on Split.
func rowWeights(m *csr.Matrix, opts Options) []int {
	if !opts.Symmetric {
		weight := make([]int, m.NRows)
		for i := 0; i < m.NRows; i++ {
			weight[i] = m.RowPtr[i+1] - m.RowPtr[i]
		}

		return weight
	}

	weight := m.StrictLowerCounts()
	if opts.Hybrid {
		high := m.HighBandCounts(opts.BandwidthThreshold)
		for i := range weight {
			weight[i] += high[i]
		}
	}

	return weight
}
