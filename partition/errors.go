package partition

import "errors"

var (
	// ErrNoThreads is returned when Split is asked to partition rows
	// across zero or negative threads.
	ErrNoThreads = errors.New("partition: threads must be >= 1")
	// ErrBadBlockFactor is returned when the requested block factor is
	// less than 1.
	ErrBadBlockFactor = errors.New("partition: block factor must be >= 1")
	// ErrTooManyThreads is returned when there are fewer rows than
	// threads, so some thread would be assigned an empty range.
	ErrTooManyThreads = errors.New("partition: more threads than rows")
)
