package schedule

import (
	"github.com/nnzcore/symspmv/color"
	"github.com/nnzcore/symspmv/conflict"
)

// Compile builds the per-thread row-range and dependency schedule from a
// color map. rowSplit and blockFactor must match the ones used to build
// g and colorRes.
func Compile(g *conflict.Graph, colorRes color.Result, rowSplit []int, blockFactor int) Result {
	nthreads := len(rowSplit) - 1
	ncolors := colorRes.NColors

	rowColor := func(row int) int {
		return colorRes.Color[row/blockFactor]
	}

	threads := make([]ThreadSchedule, nthreads)
	for t := 0; t < nthreads; t++ {
		threads[t] = compileRanges(rowSplit[t], rowSplit[t+1], ncolors, rowColor)
	}

	cnfls := buildDependencyTable(g, colorRes, nthreads, ncolors)
	for t := 0; t < nthreads; t++ {
		deps := make([][]int, ncolors)
		for c := 1; c < ncolors; c++ {
			for other := 0; other < nthreads; other++ {
				if cnfls[c][t][other] {
					deps[c] = append(deps[c], other)
				}
			}
		}
		threads[t].Deps = deps
	}

	return Result{Threads: threads, NColors: ncolors}
}

// compileRanges groups rows [start,end) by color and compacts each
// color's ascending row list into maximal consecutive (start,end) runs,
// in slab-local coordinates.
func compileRanges(start, end, ncolors int, rowColor func(int) int) ThreadSchedule {
	rowsByColor := make([][]int, ncolors)
	for i := start; i < end; i++ {
		c := rowColor(i)
		rowsByColor[c] = append(rowsByColor[c], i-start)
	}

	ts := ThreadSchedule{RangePtr: make([]int, ncolors+1)}
	for c := 0; c < ncolors; c++ {
		rows := rowsByColor[c]
		for i := 0; i < len(rows); {
			j := i + 1
			for j < len(rows) && rows[j] == rows[j-1]+1 {
				j++
			}
			ts.RangeStart = append(ts.RangeStart, rows[i])
			ts.RangeEnd = append(ts.RangeEnd, rows[j-1]+1)
			i = j
		}
		ts.RangePtr[c+1] = len(ts.RangeStart)
	}

	return ts
}

// buildDependencyTable fills the cnfls[c][t][t'] table: for every
// vertex u colored c with a lower-colored neighbor v owned by a
// different thread, thread tid(u) must wait for thread tid(v) to finish
// color c-1 before starting c. Completion flags publish cumulatively
// per color, so waiting on tid(v)'s c-1 flag covers every neighbor
// color below c, not just c-1; the balancing pass can legally leave
// conflict edges with a color gap larger than one, and those still need
// ordering.
func buildDependencyTable(g *conflict.Graph, colorRes color.Result, nthreads, ncolors int) [][][]bool {
	cnfls := make([][][]bool, ncolors)
	for c := range cnfls {
		cnfls[c] = make([][]bool, nthreads)
		for t := range cnfls[c] {
			cnfls[c][t] = make([]bool, nthreads)
		}
	}

	for u := 0; u < g.V; u++ {
		cu := colorRes.Color[u]
		if cu == 0 {
			continue
		}
		for _, v := range g.Adjacency[u] {
			if colorRes.Color[v] >= cu {
				continue
			}
			if g.TID[u] != g.TID[v] {
				cnfls[cu][g.TID[u]][g.TID[v]] = true
			}
		}
	}

	return cnfls
}
