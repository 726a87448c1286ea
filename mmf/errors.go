package mmf

import "errors"

// Sentinel errors for the mmf package.
var (
	// ErrEmptyHeader is returned when a Matrix Market file has no banner line.
	ErrEmptyHeader = errors.New("mmf: missing %%MatrixMarket header")

	// ErrUnsupportedFormat is returned when the banner has fewer than four
	// words or its object/format is not "matrix coordinate". The field
	// word (real, integer, ...) is not checked.
	ErrUnsupportedFormat = errors.New("mmf: unsupported MatrixMarket format")

	// ErrMissingSize is returned when the "nrows ncols nnz" size line is
	// absent or malformed.
	ErrMissingSize = errors.New("mmf: missing or malformed size line")

	// ErrNonAscendingRow is returned when a triplet source yields a row
	// index smaller than a previously yielded row index.
	ErrNonAscendingRow = errors.New("mmf: triplets are not in ascending-row order")

	// ErrIndexOutOfRange is returned when a triplet's row or column falls
	// outside the declared matrix shape.
	ErrIndexOutOfRange = errors.New("mmf: triplet index out of declared shape")

	// ErrTripletCountMismatch is returned when fewer or more triplets are
	// read than the declared nnz.
	ErrTripletCountMismatch = errors.New("mmf: triplet count does not match declared nnz")

	// ErrBadRandomShape is returned when RandomSymmetric is asked for a
	// non-positive size or a probability outside [0,1].
	ErrBadRandomShape = errors.New("mmf: invalid random matrix parameters")

	// ErrNeedRandSource is returned when RandomSymmetric needs genuine
	// sampling but was given a nil rand source.
	ErrNeedRandSource = errors.New("mmf: rand source is required")
)
