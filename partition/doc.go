// Package partition implements the row partitioner: it assigns a
// contiguous range of matrix rows to each thread so the strict-lower-
// triangle work implied by those rows is balanced across threads, not
// the raw row count.
//
// Split walks rows accumulating a running nnz count and cuts a partition
// once that count reaches the per-thread target, rounding cuts to a
// block-factor boundary so later per-thread blocked-row processing
// (conflict.Build, color.Color) stays aligned.
package partition
