// Package conflict builds the conflict graph over blocked rows: an
// undirected graph whose edges mark pairs of row-blocks that cannot be
// processed by different threads at the same time without racing on a
// shared y entry.
//
// Two conflict kinds feed the edge set: direct conflicts, where a
// thread's own lower-triangle write lands in an earlier thread's slab,
// and indirect conflicts, where two different threads' rows both have a
// nonzero in the same column and so both mirror-write that column's y
// entry.
package conflict
