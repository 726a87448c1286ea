package kernel

import "github.com/nnzcore/symspmv/compress"

// symSerialKernel is the single-threaded symmetric multiply: one pass
// over the stored lower triangle, mirroring every entry into the
// transposed position as it goes. With one thread there is nothing to
// conflict with, so no coloring or shadow state exists.
type symSerialKernel struct {
	td *compress.ThreadData
}

func newSymSerial(sym *compress.Result) *symSerialKernel {
	return &symSerialKernel{td: &sym.Threads[0]}
}

func (k *symSerialKernel) Mode() Mode { return ModeSymSerial }

func (k *symSerialKernel) Multiply(y, x []float64) {
	td := k.td
	for l := 0; l < td.NRowsLocal; l++ {
		y[l] = td.Diagonal[l] * x[l]
	}
	for l := 0; l < td.NRowsLocal; l++ {
		for j := td.RowPtrL[l]; j < td.RowPtrL[l+1]; j++ {
			col, val := td.ColIndL[j], td.ValuesL[j]
			y[l] += val * x[col]
			y[col] += val * x[l]
		}
		// Sidecar rows were never symmetry-compressed, so they carry
		// both triangle sides and get no mirrored write.
		for j := td.RowPtrH[l]; j < td.RowPtrH[l+1]; j++ {
			y[l] += td.ValuesH[j] * x[td.ColIndH[j]]
		}
	}
}
