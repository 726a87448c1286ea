// Package csr implements the compressed-sparse-row matrix format used as
// the engine's in-memory representation.
//
// A Matrix stores rowptr/colind/values with rowptr monotonic
// non-decreasing and rowptr[nrows]==nnz, every colind in [0,ncols), and
// each row's column indices sorted ascending. Matrix itself never
// mutates nonzeros after construction; the engine's preprocessing
// pipeline (partition, compress, conflict, color, schedule) consumes a
// *Matrix once and may discard it afterward.
//
// Package responsibilities:
//   - Validate() enforces the CSR structural invariants.
//   - NaiveMultiply is the O(nnz) reference SpMV used as the correctness
//     oracle in property tests; the "vanilla" kernel mode computes the
//     same product with its own loop.
//   - Diagonal/CheckSymmetric support the engine's symmetric/hybrid setup.
package csr
