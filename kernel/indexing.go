package kernel

import (
	"sort"

	"github.com/nnzcore/symspmv/compress"
	"github.com/nnzcore/symspmv/internal/xsync"
)

// conflictMap enumerates, once at build time, every (row, source thread)
// pair that actually receives a cross-slab mirrored write. Pos is sorted
// ascending so reduction work can be assigned to threads by slab with a
// binary search; Start[r]..Start[r+1] are the entries whose Pos falls in
// thread r's slab.
type conflictMap struct {
	Pos   []int
	CPU   []int
	Start []int
}

func buildConflictMap(sym *compress.Result, rowSplit []int) conflictMap {
	type entry struct{ pos, cpu int }
	seen := make(map[entry]bool)
	var entries []entry

	for t := 1; t < len(sym.Threads); t++ {
		td := &sym.Threads[t]
		boundary := rowSplit[t]
		for j := 0; j < len(td.ColIndL); j++ {
			col := td.ColIndL[j]
			if col >= boundary {
				continue
			}
			e := entry{pos: col, cpu: t}
			if !seen[e] {
				seen[e] = true
				entries = append(entries, e)
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].pos != entries[j].pos {
			return entries[i].pos < entries[j].pos
		}

		return entries[i].cpu < entries[j].cpu
	})

	nthreads := len(rowSplit) - 1
	cm := conflictMap{
		Pos:   make([]int, len(entries)),
		CPU:   make([]int, len(entries)),
		Start: make([]int, nthreads+1),
	}
	for i, e := range entries {
		cm.Pos[i] = e.pos
		cm.CPU[i] = e.cpu
	}
	for r := 0; r < nthreads; r++ {
		cm.Start[r+1] = sort.SearchInts(cm.Pos, rowSplit[r+1])
	}

	return cm
}

// symLocalVectorsIndexingKernel is the effective-ranges scheme with an
// indexed reduction: instead of sweeping every shadow prefix in full,
// the reduction walks only the conflict-map entries, so its cost scales
// with the number of actual cross-slab conflicts. The map doubles as
// the shadow-reset list, which keeps the shadows zeroed between
// multiplies without an O(nrows) clear per thread.
type symLocalVectorsIndexingKernel struct {
	sym      *compress.Result
	rowSplit []int
	pool     *xsync.Pool
	locals   [][]float64
	cm       conflictMap
}

func newSymLocalVectorsIndexing(sym *compress.Result, rowSplit []int, pool *xsync.Pool) *symLocalVectorsIndexingKernel {
	nthreads := len(rowSplit) - 1
	locals := make([][]float64, nthreads)
	for t := 1; t < nthreads; t++ {
		locals[t] = make([]float64, rowSplit[t])
	}

	return &symLocalVectorsIndexingKernel{
		sym:      sym,
		rowSplit: rowSplit,
		pool:     pool,
		locals:   locals,
		cm:       buildConflictMap(sym, rowSplit),
	}
}

func (k *symLocalVectorsIndexingKernel) Mode() Mode { return ModeSymLocalVectorsIndexing }

func (k *symLocalVectorsIndexingKernel) Multiply(y, x []float64) {
	nthreads := len(k.rowSplit) - 1

	compute := make([]func(), nthreads)
	for t := 0; t < nthreads; t++ {
		t := t
		td := &k.sym.Threads[t]
		compute[t] = func() {
			boundary := k.rowSplit[t]
			local := k.locals[t]
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
		lo, hi := k.cm.Start[r], k.cm.Start[r+1]
		reduce[r] = func() {
			for e := lo; e < hi; e++ {
				pos, cpu := k.cm.Pos[e], k.cm.CPU[e]
				y[pos] += k.locals[cpu][pos]
				k.locals[cpu][pos] = 0
			}
		}
	}
	k.pool.Run(reduce)
}
