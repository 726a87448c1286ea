package color

import (
	"container/heap"
	"sync"
	"sync/atomic"

	"github.com/nnzcore/symspmv/conflict"
)

// balance runs the per-thread deviance-reduction pass that
// flattens each thread's per-color nnz load by moving vertices into a
// less-loaded, still-legal color.
//
// Each thread only ever writes colors of vertices it owns, but reads the
// colors of neighboring vertices that may be owned by a different thread
// running its own pass concurrently; a single RWMutex around every color
// read/write keeps that race-free without serializing the (much more
// expensive) greedy pass that precedes this one.
func balance(g *conflict.Graph, color []int, ncolors int, steps int) int {
	if steps <= 0 || ncolors == 0 {
		return 0
	}

	threads := make(map[int]bool)
	for _, t := range g.TID {
		threads[t] = true
	}

	var moves atomic.Int64
	var mu sync.RWMutex
	var wg sync.WaitGroup
	for t := range threads {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			moves.Add(int64(balanceThread(g, color, ncolors, t, steps, &mu)))
		}(t)
	}
	wg.Wait()

	return int(moves.Load())
}

func balanceThread(g *conflict.Graph, color []int, ncolors, tid, steps int, mu *sync.RWMutex) int {
	load := make([]int, ncolors)
	bins := make([]vertexHeap, ncolors)
	totalLoad := 0
	moved := 0

	mu.RLock()
	for v := 0; v < g.V; v++ {
		if g.TID[v] != tid {
			continue
		}
		totalLoad += g.NNZ[v]
		c := color[v]
		load[c] += g.NNZ[v]
		bins[c] = append(bins[c], v)
	}
	mu.RUnlock()

	for c := range bins {
		heap.Init(&bins[c])
	}
	meanLoad := totalLoad / ncolors

	for step := 0; step < steps; step++ {
		maxC, maxDev := 0, load[0]-meanLoad
		for c := 1; c < ncolors; c++ {
			if dev := load[c] - meanLoad; dev > maxDev {
				maxC, maxDev = c, dev
			}
		}

		noVertices := bins[maxC].Len()
		for i := 0; i < noVertices && load[maxC]-meanLoad > 0; i++ {
			if bins[maxC].Len() == 0 {
				break
			}
			current := bins[maxC][0]

			mu.RLock()
			used := make([]bool, ncolors)
			used[maxC] = true
			for _, nb := range g.Adjacency[current] {
				used[color[nb]] = true
			}
			mu.RUnlock()

			minC, minLoad := maxC, load[maxC]
			for c := 0; c < ncolors; c++ {
				if !used[c] && load[c] < minLoad {
					minC, minLoad = c, load[c]
				}
			}

			if minC != maxC {
				mu.Lock()
				color[current] = minC
				mu.Unlock()

				load[maxC] -= g.NNZ[current]
				load[minC] += g.NNZ[current]
				heap.Pop(&bins[maxC])
				heap.Push(&bins[minC], current)
				moved++
			}
			// else: leave it at the top of bins[maxC] unmoved; the
			// loop only pops on a successful move and otherwise
			// retries the same vertex.
		}
	}

	return moved
}
