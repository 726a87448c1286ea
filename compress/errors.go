package compress

import "errors"

// ErrBadRowSplit is returned when row_split is not a valid partition of
// [0, nrows) for the supplied matrix (see partition.Split).
var ErrBadRowSplit = errors.New("compress: row_split is not a valid partition")
