package color

import "github.com/nnzcore/symspmv/conflict"

// greedyColor assigns each vertex, visited in order, the smallest color
// not already used by one of its already-colored neighbors, the
// standard sequential distance-1 coloring.
func greedyColor(g *conflict.Graph, order []int) ([]int, int) {
	color := make([]int, g.V)
	colored := make([]bool, g.V)
	mark := make([]int, 0)
	maxColor := 0

	for i, v := range order {
		for _, nb := range g.Adjacency[v] {
			if colored[nb] {
				mark[color[nb]] = i
			}
		}

		j := 0
		for j < maxColor && mark[j] == i {
			j++
		}
		if j == maxColor {
			maxColor++
			mark = append(mark, -1)
		}

		color[v] = j
		colored[v] = true
	}

	return color, maxColor
}
