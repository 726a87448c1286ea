package kernel

import (
	"github.com/nnzcore/symspmv/compress"
	"github.com/nnzcore/symspmv/internal/xsync"
)

// symEffectiveRangesKernel gives every thread t > 0 a private shadow of
// y[0:row_split[t]], exactly the prefix its mirrored writes can land
// in. Mirrored writes below the slab boundary go to the shadow; writes
// at or above it stay in the thread's own slab and go to y directly
// (a mirrored write targets y[col] with col < row, so it can never land
// in a slab above the writer's). After the compute phase a parallel
// reduction folds every shadow prefix back into y.
type symEffectiveRangesKernel struct {
	sym      *compress.Result
	rowSplit []int
	pool     *xsync.Pool
	locals   [][]float64
}

func newSymEffectiveRanges(sym *compress.Result, rowSplit []int, pool *xsync.Pool) *symEffectiveRangesKernel {
	nthreads := len(rowSplit) - 1
	locals := make([][]float64, nthreads)
	for t := 1; t < nthreads; t++ {
		locals[t] = make([]float64, rowSplit[t])
	}

	return &symEffectiveRangesKernel{sym: sym, rowSplit: rowSplit, pool: pool, locals: locals}
}

func (k *symEffectiveRangesKernel) Mode() Mode { return ModeSymEffectiveRanges }

func (k *symEffectiveRangesKernel) Multiply(y, x []float64) {
	nthreads := len(k.rowSplit) - 1

	compute := make([]func(), nthreads)
	for t := 0; t < nthreads; t++ {
		t := t
		td := &k.sym.Threads[t]
		compute[t] = func() {
			boundary := k.rowSplit[t]
			local := k.locals[t]
			clear(local)
			clear(y[k.rowSplit[t]:k.rowSplit[t+1]])

			for l := 0; l < td.NRowsLocal; l++ {
				i := td.RowOffset + l
				acc := td.Diagonal[l] * x[i]
				for j := td.RowPtrL[l]; j < td.RowPtrL[l+1]; j++ {
					col, val := td.ColIndL[j], td.ValuesL[j]
					acc += val * x[col]
					if col >= boundary {
						y[col] += val * x[i]
					} else {
						local[col] += val * x[i]
					}
				}
				for j := td.RowPtrH[l]; j < td.RowPtrH[l+1]; j++ {
					acc += td.ValuesH[j] * x[td.ColIndH[j]]
				}
				y[i] += acc
			}
		}
	}
	k.pool.Run(compute)

	reduce := make([]func(), nthreads)
	for r := 0; r < nthreads; r++ {
		start, end := k.rowSplit[r], k.rowSplit[r+1]
		first := r + 1
		reduce[r] = func() {
			for t := first; t < nthreads; t++ {
				local := k.locals[t]
				for i := start; i < end; i++ {
					y[i] += local[i]
				}
			}
		}
	}
	k.pool.Run(reduce)
}
