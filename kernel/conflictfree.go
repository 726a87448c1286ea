package kernel

import (
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/nnzcore/symspmv/compress"
	"github.com/nnzcore/symspmv/internal/xsync"
	"github.com/nnzcore/symspmv/schedule"
)

const (
	// spinBudget bounds the Gosched polls on a done flag before the
	// waiter backs off to sleeping, so an oversubscribed test run
	// (T > GOMAXPROCS) cannot livelock the scheduler.
	spinBudget = 1 << 12

	backoff = time.Microsecond
)

// doneFlag is one color-completion flag, padded so adjacent threads'
// flags never share a cache line.
type doneFlag struct {
	v atomic.Bool
	_ cpu.CacheLinePad
}

// symConflictFreeKernel is the production symmetric kernel: per-thread
// row ranges grouped by color, with either a global barrier between
// color phases or point-to-point signaling through the done flag
// matrix. In point-to-point mode thread t spins only on the flags of
// the threads its schedule names for color c-1, so threads with sparse
// dependency sets start their next phase without waiting for the
// stragglers a barrier would chain them to.
type symConflictFreeKernel struct {
	sym      *compress.Result
	rowSplit []int
	sched    *schedule.Result
	pool     *xsync.Pool

	useBarrier bool
	hybrid     bool
	barrier    *xsync.Barrier

	// done[t*ncolors+c] is published by thread t when it finishes color
	// c, and reset at the head of every Multiply.
	done    []doneFlag
	ncolors int
}

func newSymConflictFree(sym *compress.Result, rowSplit []int, sched *schedule.Result, pool *xsync.Pool, useBarrier, hybrid bool) *symConflictFreeKernel {
	nthreads := len(rowSplit) - 1

	return &symConflictFreeKernel{
		sym:        sym,
		rowSplit:   rowSplit,
		sched:      sched,
		pool:       pool,
		useBarrier: useBarrier,
		hybrid:     hybrid,
		barrier:    xsync.NewBarrier(nthreads),
		done:       make([]doneFlag, nthreads*sched.NColors),
		ncolors:    sched.NColors,
	}
}

func (k *symConflictFreeKernel) Mode() Mode {
	if k.hybrid {
		return ModeSymConflictFreeHyb
	}

	return ModeSymConflictFree
}

func (k *symConflictFreeKernel) await(tid, c int) {
	flag := &k.done[tid*k.ncolors+c].v
	for spins := 0; !flag.Load(); spins++ {
		if spins < spinBudget {
			runtime.Gosched()
		} else {
			time.Sleep(backoff)
		}
	}
}

func (k *symConflictFreeKernel) Multiply(y, x []float64) {
	nthreads := len(k.rowSplit) - 1
	for i := range k.done {
		k.done[i].v.Store(false)
	}

	jobs := make([]func(), nthreads)
	for t := 0; t < nthreads; t++ {
		t := t
		jobs[t] = func() { k.run(t, y, x) }
	}
	k.pool.Run(jobs)
}

func (k *symConflictFreeKernel) run(t int, y, x []float64) {
	td := &k.sym.Threads[t]
	ts := &k.sched.Threads[t]

	for l := 0; l < td.NRowsLocal; l++ {
		i := td.RowOffset + l
		y[i] = td.Diagonal[l] * x[i]
	}
	// Diagonal writes are slab-local but must be visible everywhere
	// before the first mirrored write lands on them.
	k.barrier.Wait()

	for c := 0; c < k.sched.NColors; c++ {
		if k.useBarrier {
			if c > 0 {
				k.barrier.Wait()
			}
		} else {
			for _, dep := range ts.Deps[c] {
				k.await(dep, c-1)
			}
		}

		lo, hi := ts.RangePtr[c], ts.RangePtr[c+1]
		if k.hybrid {
			k.runRangesHyb(td, ts, lo, hi, y, x)
		} else {
			runRanges(td, ts, lo, hi, y, x)
		}

		if !k.useBarrier {
			k.done[t*k.ncolors+c].v.Store(true)
		}
	}
}

// runRangesHyb adds the high-bandwidth sidecar rows to the inner loop.
// Sidecar entries were stored non-symmetric, so they only accumulate
// into their own row and never mirror.
func (k *symConflictFreeKernel) runRangesHyb(td *compress.ThreadData, ts *schedule.ThreadSchedule, lo, hi int, y, x []float64) {
	for r := lo; r < hi; r++ {
		for l := ts.RangeStart[r]; l < ts.RangeEnd[r]; l++ {
			i := td.RowOffset + l
			var acc float64
			for j := td.RowPtrL[l]; j < td.RowPtrL[l+1]; j++ {
				col, val := td.ColIndL[j], td.ValuesL[j]
				acc += val * x[col]
				y[col] += val * x[i]
			}
			for j := td.RowPtrH[l]; j < td.RowPtrH[l+1]; j++ {
				acc += td.ValuesH[j] * x[td.ColIndH[j]]
			}
			y[i] += acc
		}
	}
}
