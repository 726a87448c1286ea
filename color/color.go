package color

import "github.com/nnzcore/symspmv/conflict"

// Color runs the greedy distance-1 coloring pass followed by the
// per-thread load-balancing pass and returns the resulting color map.
func Color(g *conflict.Graph, opts Options) Result {
	order := buildOrder(g, opts)
	c, ncolors := greedyColor(g, order)
	moves := balance(g, c, ncolors, opts.BalancingSteps)

	return Result{Color: c, NColors: ncolors, Moves: moves}
}
