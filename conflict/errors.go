package conflict

import "errors"

// ErrBadBlockFactor is returned when Build is asked to block rows by
// less than 1.
var ErrBadBlockFactor = errors.New("conflict: block factor must be >= 1")
