package engine

import "errors"

var (
	// ErrZeroThreads is returned when the engine is constructed with
	// fewer than one worker thread.
	ErrZeroThreads = errors.New("engine: threads must be >= 1")

	// ErrTooManyThreads is returned when threads exceed MaxThreads.
	ErrTooManyThreads = errors.New("engine: threads exceed MaxThreads")

	// ErrUnsupportedPlatform is returned for any platform other than CPU.
	ErrUnsupportedPlatform = errors.New("engine: unsupported platform")

	// ErrNotTuned is returned by Multiply before Tune installed a kernel.
	ErrNotTuned = errors.New("engine: multiply before tune")

	// ErrAlreadyTuned is returned when Tune is called a second time; the
	// engine is immutable once a kernel is installed.
	ErrAlreadyTuned = errors.New("engine: already tuned")

	// ErrDimensionMismatch is returned when the x or y vector does not
	// match the matrix shape.
	ErrDimensionMismatch = errors.New("engine: x/y length does not match matrix shape")

	// ErrInvariant flags an internal preprocessing inconsistency
	// (compression totals, schedule row totals). These are programmer
	// errors, not recoverable conditions.
	ErrInvariant = errors.New("engine: preprocessing invariant violated")
)
