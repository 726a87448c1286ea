// Package kernel holds the SpMV execution schemes and the dispatcher
// that selects one from the tuned engine state.
//
// Every kernel computes y = A*x for the full symmetric matrix
// reconstructed from the stored strict lower triangle plus diagonal:
// each stored off-diagonal entry contributes once to its own row and
// once, mirrored, to its column's row. The kernels differ only in how
// they keep concurrent mirrored writes off each other:
//
//   - sym_serial: one thread, nothing to order.
//   - sym_atomics: CAS adds on every potentially shared slot.
//   - sym_effective_ranges: per-thread shadow prefixes + full reduction.
//   - sym_local_vectors_indexing: shadow prefixes + indexed reduction.
//   - sym_conflict_free_apriori: color phases free of cross-thread
//     conflicts, barrier between phases.
//   - sym_conflict_free: per-thread color schedules with dependency
//     sets, barrier or point-to-point signaling. The production path.
//   - sym_conflict_free_hyb: conflict_free plus the high-bandwidth
//     sidecar loop, barrier mode only.
//
// vanilla and split_nnz cover non-symmetric input.
package kernel
