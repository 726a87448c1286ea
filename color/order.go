package color

import (
	"sort"

	"github.com/nnzcore/symspmv/conflict"
)

func buildOrder(g *conflict.Graph, opts Options) []int {
	switch opts.Ordering {
	case ShortestRow:
		return sortedByWeight(g, false)
	case LongestRow:
		return sortedByWeight(g, true)
	case ShortestRowRoundRobin:
		return roundRobinByWeight(g, false)
	case LongestRowRoundRobin:
		return roundRobinByWeight(g, true)
	default:
		return firstFitRoundRobin(g, opts.RowSplit, opts.BlockFactor)
	}
}

// firstFitRoundRobin visits one block per thread per round, in the order
// threads appear, reproducing first_fit_round_robin's row_split-stepping
// walk but in block space.
func firstFitRoundRobin(g *conflict.Graph, rowSplit []int, blockFactor int) []int {
	nthreads := len(rowSplit) - 1
	blockStart := make([]int, nthreads)
	blockEnd := make([]int, nthreads)
	for t := 0; t < nthreads; t++ {
		blockStart[t] = rowSplit[t] / blockFactor
		blockEnd[t] = (rowSplit[t+1] + blockFactor - 1) / blockFactor
	}

	order := make([]int, 0, g.V)
	for cnt, step := 0, 0; cnt < g.V; step++ {
		for t := 0; t < nthreads; t++ {
			v := blockStart[t] + step
			if v < blockEnd[t] {
				order = append(order, v)
				cnt++
			}
		}
	}

	return order
}

func sortedByWeight(g *conflict.Graph, descending bool) []int {
	order := make([]int, g.V)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if descending {
			return g.NNZ[order[i]] > g.NNZ[order[j]]
		}

		return g.NNZ[order[i]] < g.NNZ[order[j]]
	})

	return order
}

func roundRobinByWeight(g *conflict.Graph, descending bool) []int {
	nthreads := 0
	for _, t := range g.TID {
		if t+1 > nthreads {
			nthreads = t + 1
		}
	}

	byThread := make([][]int, nthreads)
	for v := 0; v < g.V; v++ {
		byThread[g.TID[v]] = append(byThread[g.TID[v]], v)
	}
	for t := range byThread {
		verts := byThread[t]
		sort.SliceStable(verts, func(i, j int) bool {
			if descending {
				return g.NNZ[verts[i]] > g.NNZ[verts[j]]
			}

			return g.NNZ[verts[i]] < g.NNZ[verts[j]]
		})
	}

	order := make([]int, 0, g.V)
	for cnt, idx := 0, 0; cnt < g.V; idx++ {
		for t := 0; t < nthreads; t++ {
			if idx < len(byThread[t]) {
				order = append(order, byThread[t][idx])
				cnt++
			}
		}
	}

	return order
}
