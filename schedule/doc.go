// Package schedule compiles a color map into the per-thread execution
// plan the conflict-free kernels replay on every multiply: for each
// thread, its owned rows grouped by color and compacted into maximal
// (start,end) runs, plus the set of other threads it must wait for
// before starting each color phase.
package schedule
