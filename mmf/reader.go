package mmf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Reader parses the coordinate subset of the Matrix Market text format:
//
//	%%MatrixMarket matrix coordinate real general|symmetric
//	% optional comment lines
//	nrows ncols nnz
//	row col value
//	...
//
// Row/col in the file are 1-indexed; Reader converts to 0-indexed before
// handing triplets to callers, per the fixed TripletSource contract.
type Reader struct {
	scanner      *bufio.Scanner
	nrows, ncols int
	nnz          int
	symmetric    bool
	read         int
	lastRow      int
	started      bool
}

// NewReader parses the header and size line from r and returns a Reader
// positioned to yield triplets via Next. It fails fast on a malformed
// banner or size line so construction errors surface at Tune/New time,
// not mid-multiply.
func NewReader(r io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var banner string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		banner = line

		break
	}
	if banner == "" {
		return nil, errors.Wrap(ErrEmptyHeader, "reading banner line")
	}
	if !strings.HasPrefix(banner, "%%MatrixMarket") {
		return nil, errors.Wrapf(ErrEmptyHeader, "banner %q", banner)
	}
	fields := strings.Fields(banner)
	if len(fields) < 4 || !strings.EqualFold(fields[1], "matrix") || !strings.EqualFold(fields[2], "coordinate") {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "banner %q", banner)
	}
	symmetric := len(fields) >= 5 && strings.EqualFold(fields[4], "symmetric")

	var nrows, ncols, nnz int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 3 {
			return nil, errors.Wrapf(ErrMissingSize, "size line %q", line)
		}
		var err error
		if nrows, err = strconv.Atoi(parts[0]); err != nil {
			return nil, errors.Wrap(err, "parsing nrows")
		}
		if ncols, err = strconv.Atoi(parts[1]); err != nil {
			return nil, errors.Wrap(err, "parsing ncols")
		}
		if nnz, err = strconv.Atoi(parts[2]); err != nil {
			return nil, errors.Wrap(err, "parsing nnz")
		}

		break
	}
	if nrows == 0 && ncols == 0 {
		return nil, errors.Wrap(ErrMissingSize, "no size line found")
	}

	return &Reader{scanner: scanner, nrows: nrows, ncols: ncols, nnz: nnz, symmetric: symmetric, lastRow: -1}, nil
}

// Shape implements TripletSource.
func (r *Reader) Shape() (nrows, ncols, nnz int, symmetric bool) {
	return r.nrows, r.ncols, r.nnz, r.symmetric
}

// Next implements TripletSource.
func (r *Reader) Next() (row, col int, val float64, ok bool, err error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return 0, 0, 0, false, errors.Errorf("mmf: malformed triplet line %q", line)
		}
		row1, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, 0, false, errors.Wrap(err, "parsing row")
		}
		col1, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, 0, false, errors.Wrap(err, "parsing col")
		}
		val = 1
		if len(parts) >= 3 {
			if val, err = strconv.ParseFloat(parts[2], 64); err != nil {
				return 0, 0, 0, false, errors.Wrap(err, "parsing value")
			}
		}
		row, col = row1-1, col1-1
		if row < 0 || row >= r.nrows || col < 0 || col >= r.ncols {
			return 0, 0, 0, false, errors.Wrapf(ErrIndexOutOfRange, "row=%d col=%d", row, col)
		}
		if row < r.lastRow {
			return 0, 0, 0, false, errors.Wrapf(ErrNonAscendingRow, "row=%d after row=%d", row, r.lastRow)
		}
		r.lastRow = row
		r.read++

		return row, col, val, true, nil
	}
	if err := r.scanner.Err(); err != nil {
		return 0, 0, 0, false, errors.Wrap(err, "scanning triplets")
	}
	if r.read != r.nnz {
		return 0, 0, 0, false, errors.Wrapf(ErrTripletCountMismatch, "read=%d declared=%d", r.read, r.nnz)
	}

	return 0, 0, 0, false, nil
}
