package color

// vertexHeap is a min-heap over vertex ids. Ordering is by id, not by
// nnz weight, so the balancing pass always considers its
// lowest-numbered vertex first and stays deterministic.
type vertexHeap []int

func (h vertexHeap) Len() int            { return len(h) }
func (h vertexHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h vertexHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *vertexHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *vertexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]

	return v
}
