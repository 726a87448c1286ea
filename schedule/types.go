package schedule

// ThreadSchedule is one thread's compiled execution plan.
//
// RangePtr has NColors+1 entries; color c's ranges are
// RangeStart[RangePtr[c]:RangePtr[c+1]] paired with the same slice of
// RangeEnd. Row indices are slab-local (0 == this thread's first owned
// row).
//
// Deps[c] lists the other threads whose color c-1 phase must complete
// before this thread may start color c; Deps[0] is always empty.
type ThreadSchedule struct {
	RangePtr   []int
	RangeStart []int
	RangeEnd   []int
	Deps       [][]int
}

// Result is the output of Compile: one ThreadSchedule per thread.
type Result struct {
	Threads []ThreadSchedule
	NColors int
}
