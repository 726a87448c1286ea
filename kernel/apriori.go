package kernel

import (
	"github.com/nnzcore/symspmv/compress"
	"github.com/nnzcore/symspmv/internal/xsync"
	"github.com/nnzcore/symspmv/schedule"
)

// symConflictFreeAprioriKernel runs one fan-out per color phase. The
// schedule it consumes is a coloring of the same cross-thread conflict
// graph the a-posteriori kernel uses, so within a phase rows of different
// threads never touch the same output slot; rows of one thread that share
// a color may, and run one after another on that thread. The pool fan-in
// between phases is the implicit barrier.
type symConflictFreeAprioriKernel struct {
	sym      *compress.Result
	rowSplit []int
	sched    *schedule.Result
	pool     *xsync.Pool
}

func newSymConflictFreeApriori(sym *compress.Result, rowSplit []int, sched *schedule.Result, pool *xsync.Pool) *symConflictFreeAprioriKernel {
	return &symConflictFreeAprioriKernel{sym: sym, rowSplit: rowSplit, sched: sched, pool: pool}
}

func (k *symConflictFreeAprioriKernel) Mode() Mode { return ModeSymConflictFreeApriori }

func (k *symConflictFreeAprioriKernel) Multiply(y, x []float64) {
	nthreads := len(k.rowSplit) - 1

	diag := make([]func(), nthreads)
	for t := 0; t < nthreads; t++ {
		td := &k.sym.Threads[t]
		diag[t] = func() {
			for l := 0; l < td.NRowsLocal; l++ {
				i := td.RowOffset + l
				y[i] = td.Diagonal[l] * x[i]
			}
		}
	}
	k.pool.Run(diag)

	for c := 0; c < k.sched.NColors; c++ {
		phase := make([]func(), nthreads)
		for t := 0; t < nthreads; t++ {
			td := &k.sym.Threads[t]
			ts := &k.sched.Threads[t]
			lo, hi := ts.RangePtr[c], ts.RangePtr[c+1]
			phase[t] = func() {
				runRanges(td, ts, lo, hi, y, x)
			}
		}
		k.pool.Run(phase)
	}
}

// runRanges executes the symmetric inner loop over one thread's row
// ranges [lo,hi) of a single color phase.
func runRanges(td *compress.ThreadData, ts *schedule.ThreadSchedule, lo, hi int, y, x []float64) {
	for r := lo; r < hi; r++ {
		for l := ts.RangeStart[r]; l < ts.RangeEnd[r]; l++ {
			i := td.RowOffset + l
			var acc float64
			for j := td.RowPtrL[l]; j < td.RowPtrL[l+1]; j++ {
				col, val := td.ColIndL[j], td.ValuesL[j]
				acc += val * x[col]
				y[col] += val * x[i]
			}
			y[i] += acc
		}
	}
}
