package kernel

import (
	"github.com/nnzcore/symspmv/csr"
	"github.com/nnzcore/symspmv/internal/xsync"
)

// vanillaKernel is the untuned single-pass CSR multiply over the full
// matrix. It is the fallback for non-symmetric input with tuning off,
// and the baseline other kernels are tested against.
type vanillaKernel struct {
	m *csr.Matrix
}

func newVanilla(m *csr.Matrix) *vanillaKernel { return &vanillaKernel{m: m} }

func (k *vanillaKernel) Mode() Mode { return ModeVanilla }

func (k *vanillaKernel) Multiply(y, x []float64) {
	m := k.m
	for i := 0; i < m.NRows; i++ {
		var acc float64
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			acc += m.Values[j] * x[m.ColInd[j]]
		}
		y[i] = acc
	}
}

// splitNNZKernel is the row-partitioned full-CSR multiply: thread t
// computes y rows [row_split[t], row_split[t+1]). Slabs are disjoint so
// no synchronisation beyond the fan-in is needed.
type splitNNZKernel struct {
	m        *csr.Matrix
	rowSplit []int
	pool     *xsync.Pool
}

func newSplitNNZ(m *csr.Matrix, rowSplit []int, pool *xsync.Pool) *splitNNZKernel {
	return &splitNNZKernel{m: m, rowSplit: rowSplit, pool: pool}
}

func (k *splitNNZKernel) Mode() Mode { return ModeSplitNNZ }

func (k *splitNNZKernel) Multiply(y, x []float64) {
	m := k.m
	jobs := make([]func(), len(k.rowSplit)-1)
	for t := range jobs {
		start, end := k.rowSplit[t], k.rowSplit[t+1]
		jobs[t] = func() {
			for i := start; i < end; i++ {
				var acc float64
				for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
					acc += m.Values[j] * x[m.ColInd[j]]
				}
				y[i] = acc
			}
		}
	}
	k.pool.Run(jobs)
}
