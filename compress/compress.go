package compress

import (
	"github.com/nnzcore/symspmv/csr"
)

// Options configures Compress. BandwidthThreshold is only consulted when
// Hybrid is true.
type Options struct {
	Hybrid             bool
	BandwidthThreshold int
}

// Compress extracts, for each thread's row slab, the strict lower
// triangle plus diagonal of m, and (when Hybrid is set) the high-
// bandwidth sidecar defined by Options.BandwidthThreshold.
//
// rowSplit must be a valid partition as produced by partition.Split:
// rowSplit[0]==0, rowSplit[len(rowSplit)-1]==m.NRows, non-decreasing.
func Compress(m *csr.Matrix, rowSplit []int, opts Options) (Result, error) {
	if err := validateRowSplit(rowSplit, m.NRows); err != nil {
		return Result{}, err
	}

	threads := make([]ThreadData, len(rowSplit)-1)
	diagonal := make([]float64, m.NRows)

	for t := 0; t < len(threads); t++ {
		start, end := rowSplit[t], rowSplit[t+1]
		td := ThreadData{
			RowOffset:  start,
			NRowsLocal: end - start,
			RowPtrL:    make([]int, end-start+1),
			RowPtrH:    make([]int, end-start+1),
			Diagonal:   make([]float64, end-start),
		}

		for i := start; i < end; i++ {
			local := i - start
			for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
				col, val := m.ColInd[j], m.Values[j]

				if opts.Hybrid {
					d := col - i
					if d < 0 {
						d = -d
					}
					if d >= opts.BandwidthThreshold {
						td.ColIndH = append(td.ColIndH, col)
						td.ValuesH = append(td.ValuesH, val)

						continue
					}
				}

				switch {
				case col < i:
					td.ColIndL = append(td.ColIndL, col)
					td.ValuesL = append(td.ValuesL, val)
					td.NNZLowerLocal++
				case col == i:
					td.Diagonal[local] = val
					diagonal[i] = val
					td.NNZDiagLocal++
				}
				// col > i and within band: the mirror is captured when
				// that column's own row is walked, by a thread that may
				// or may not be this one.
			}
			td.RowPtrL[local+1] = len(td.ColIndL)
			td.RowPtrH[local+1] = len(td.ColIndH)
		}

		threads[t] = td
	}

	return Result{Threads: threads, Diagonal: diagonal}, nil
}

func validateRowSplit(rowSplit []int, nrows int) error {
	if len(rowSplit) < 2 || rowSplit[0] != 0 || rowSplit[len(rowSplit)-1] != nrows {
		return ErrBadRowSplit
	}
	for i := 1; i < len(rowSplit); i++ {
		if rowSplit[i] < rowSplit[i-1] {
			return ErrBadRowSplit
		}
	}

	return nil
}
