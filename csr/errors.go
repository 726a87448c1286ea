package csr

import "errors"

// Sentinel errors for the csr package. Callers should compare with
// errors.Is; messages are prefixed with "csr: " for grep-ability across
// logs, matching the convention used throughout this module.
var (
	// ErrBadDimensions is returned when nrows, ncols, or nnz is negative,
	// or len(values) != len(colind) != nnz.
	ErrBadDimensions = errors.New("csr: invalid matrix dimensions")

	// ErrBadRowPtr is returned when rowptr is not monotonic non-decreasing,
	// has the wrong length, or rowptr[nrows] != nnz.
	ErrBadRowPtr = errors.New("csr: rowptr invariant violated")

	// ErrIndexOutOfRange is returned when a column index lies outside [0,ncols).
	ErrIndexOutOfRange = errors.New("csr: column index out of range")

	// ErrNonAscendingCols is returned when a row's column indices are not
	// sorted ascending.
	ErrNonAscendingCols = errors.New("csr: row is not sorted ascending by column")

	// ErrDimensionMismatch is returned by NaiveMultiply and
	// SymmetricMultiply when len(x) != NCols or len(y) != NRows.
	ErrDimensionMismatch = errors.New("csr: x/y length does not match matrix shape")
)
