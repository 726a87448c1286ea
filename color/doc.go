// Package color implements the distance-1 greedy colorer and its
// per-thread load-balancing pass over the conflict graph.
//
// Coloring runs in two stages: a sequential greedy pass assigns the
// smallest color not used by any already-colored neighbor, in an order
// chosen by a vertex-ordering heuristic (first-fit round-robin by
// default); then, for each thread independently, a deviance-reduction
// pass moves vertices between colors to flatten that thread's per-color
// workload without ever recoloring a vertex into a color used by one of
// its neighbors.
package color
