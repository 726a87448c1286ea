package conflict

import (
	"github.com/nnzcore/symspmv/compress"
)

// rowThread records, for one lower-triangle entry landing in column k,
// which block and which thread wrote it: the raw material for
// detecting indirect conflicts (two different threads sharing a column).
type rowThread struct {
	block int
	tid   int
}

// Build constructs the conflict graph for a compressed, partitioned
// matrix. rowSplit is the same partition passed to compress.Compress;
// hybrid mirrors the Options.Hybrid used there, since only the lower-
// triangle (non-hybrid-sidecar) entries ever produce mirrored writes and
// therefore conflicts, while hybrid-high nonzeros still contribute to
// vertex weight for load balancing.
func Build(res compress.Result, rowSplit []int, blockFactor int, hybrid bool) (*Graph, error) {
	if blockFactor < 1 {
		return nil, ErrBadBlockFactor
	}

	nrows := rowSplit[len(rowSplit)-1]
	v := (nrows + blockFactor - 1) / blockFactor
	g := &Graph{
		V:           v,
		BlockFactor: blockFactor,
		TID:         make([]int, v),
		NNZ:         make([]int, v),
		Adjacency:   make([][]int, v),
	}

	indirect := make(map[int][]rowThread)

	for t, td := range res.Threads {
		for l := 0; l < td.NRowsLocal; l++ {
			i := td.RowOffset + l
			bi := i / blockFactor
			g.TID[bi] = t

			lo, hi := td.RowPtrL[l], td.RowPtrL[l+1]
			g.NNZ[bi] += hi - lo
			if hybrid {
				hlo, hhi := td.RowPtrH[l], td.RowPtrH[l+1]
				g.NNZ[bi] += hhi - hlo
			}

			for j := lo; j < hi; j++ {
				col := td.ColIndL[j]
				indirect[col] = append(indirect[col], rowThread{block: bi, tid: t})

				if col < rowSplit[t] {
					g.addEdge(bi, col/blockFactor)
				}
			}
		}
	}

	for _, writers := range indirect {
		for a := 0; a < len(writers); a++ {
			for b := a + 1; b < len(writers); b++ {
				if writers[a].tid != writers[b].tid {
					g.addEdge(writers[a].block, writers[b].block)
				}
			}
		}
	}

	return g, nil
}
