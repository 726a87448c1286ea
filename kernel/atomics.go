package kernel

import (
	"math"
	"sync/atomic"

	"github.com/nnzcore/symspmv/compress"
	"github.com/nnzcore/symspmv/internal/xsync"
)

// symAtomicsKernel resolves every write that can cross a slab boundary
// with a compare-and-swap add on the float64 bit pattern. Accumulation
// happens in a bits scratch array rather than directly in y so the CAS
// target is a plain uint64 without unsafe pointer casts; each owned row's
// local sum is folded in with a single atomic add, since peers may be
// mirroring into the same slot concurrently.
type symAtomicsKernel struct {
	sym      *compress.Result
	rowSplit []int
	pool     *xsync.Pool
	bits     []uint64
}

func newSymAtomics(sym *compress.Result, rowSplit []int, pool *xsync.Pool) *symAtomicsKernel {
	return &symAtomicsKernel{
		sym:      sym,
		rowSplit: rowSplit,
		pool:     pool,
		bits:     make([]uint64, rowSplit[len(rowSplit)-1]),
	}
}

func (k *symAtomicsKernel) Mode() Mode { return ModeSymAtomics }

func atomicAddFloat64(addr *uint64, delta float64) {
	for {
		old := atomic.LoadUint64(addr)
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(addr, old, next) {
			return
		}
	}
}

func (k *symAtomicsKernel) Multiply(y, x []float64) {
	nthreads := len(k.rowSplit) - 1

	zero := make([]func(), nthreads)
	for t := 0; t < nthreads; t++ {
		start, end := k.rowSplit[t], k.rowSplit[t+1]
		zero[t] = func() {
			clear(k.bits[start:end])
		}
	}
	k.pool.Run(zero)

	compute := make([]func(), nthreads)
	for t := 0; t < nthreads; t++ {
		td := &k.sym.Threads[t]
		compute[t] = func() {
			for l := 0; l < td.NRowsLocal; l++ {
				i := td.RowOffset + l
				acc := td.Diagonal[l] * x[i]
				for j := td.RowPtrL[l]; j < td.RowPtrL[l+1]; j++ {
					col, val := td.ColIndL[j], td.ValuesL[j]
					acc += val * x[col]
					atomicAddFloat64(&k.bits[col], val*x[i])
				}
				for j := td.RowPtrH[l]; j < td.RowPtrH[l+1]; j++ {
					acc += td.ValuesH[j] * x[td.ColIndH[j]]
				}
				atomicAddFloat64(&k.bits[i], acc)
			}
		}
	}
	k.pool.Run(compute)

	out := make([]func(), nthreads)
	for t := 0; t < nthreads; t++ {
		start, end := k.rowSplit[t], k.rowSplit[t+1]
		out[t] = func() {
			for i := start; i < end; i++ {
				y[i] = math.Float64frombits(k.bits[i])
			}
		}
	}
	k.pool.Run(out)
}
