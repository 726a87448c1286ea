// Package symspmv accelerates repeated sparse-matrix times dense-vector
// multiplication for symmetric matrices on shared-memory multicore CPUs.
//
// The engine stores only the strict lower triangle plus the diagonal,
// halving memory traffic, and schedules the resulting symmetric kernel
// across threads without atomics on the hot path: a conflict graph over
// row blocks is colored once at tune time, and each thread executes
// per-color row ranges ordered by point-to-point phase dependencies.
//
// Packages:
//
//	mmf       - triplet sources (Matrix Market reader, in-memory slices,
//	            random symmetric generator) and full-CSR assembly
//	csr       - compressed-sparse-row matrix, validation, oracle multiplies
//	partition - nnz-balanced contiguous row slabs, one per thread
//	compress  - per-thread strict-lower-triangle + diagonal extraction,
//	            optional high-bandwidth sidecar
//	conflict  - conflict graph over blocked rows (direct and indirect
//	            write conflicts across thread boundaries)
//	color     - greedy distance-1 coloring + per-thread load balancing
//	schedule  - per-thread per-color row ranges and dependency sets
//	kernel    - the SpMV execution schemes and their dispatcher
//	engine    - the public facade: New, Tune, Multiply
package symspmv
