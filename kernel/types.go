package kernel

import (
	"github.com/nnzcore/symspmv/compress"
	"github.com/nnzcore/symspmv/csr"
	"github.com/nnzcore/symspmv/internal/xsync"
	"github.com/nnzcore/symspmv/schedule"
)

// Strategy selects which symmetric execution scheme Dispatch builds.
type Strategy int

const (
	// Atomics resolves cross-slab mirrored writes with atomic adds.
	Atomics Strategy = iota
	// EffectiveRanges gives each thread a shadow output prefix and adds
	// the shadows back in a parallel reduction.
	EffectiveRanges
	// LocalVectorsIndexing is EffectiveRanges with a precomputed conflict
	// map so the reduction only walks slots that actually received
	// cross-slab writes.
	LocalVectorsIndexing
	// ConflictFreeApriori colors row blocks so that within a color phase
	// no two threads write the same output slot, with an implicit barrier
	// per color.
	ConflictFreeApriori
	// ConflictFreeAposteriori colors only cross-thread conflicts and
	// orders color phases by per-thread dependency sets. This is the
	// production strategy.
	ConflictFreeAposteriori
)

// String returns the strategy name used in logs and error messages.
func (s Strategy) String() string {
	switch s {
	case Atomics:
		return "atomics"
	case EffectiveRanges:
		return "effective_ranges"
	case LocalVectorsIndexing:
		return "local_vectors_indexing"
	case ConflictFreeApriori:
		return "conflict_free_apriori"
	case ConflictFreeAposteriori:
		return "conflict_free_aposteriori"
	default:
		return "unknown"
	}
}

// Mode identifies the concrete kernel Dispatch selected.
type Mode int

const (
	ModeVanilla Mode = iota
	ModeSplitNNZ
	ModeSymSerial
	ModeSymAtomics
	ModeSymEffectiveRanges
	ModeSymLocalVectorsIndexing
	ModeSymConflictFreeApriori
	ModeSymConflictFree
	ModeSymConflictFreeHyb
)

// String returns the mode name used in logs and error messages.
func (m Mode) String() string {
	switch m {
	case ModeVanilla:
		return "vanilla"
	case ModeSplitNNZ:
		return "split_nnz"
	case ModeSymSerial:
		return "sym_serial"
	case ModeSymAtomics:
		return "sym_atomics"
	case ModeSymEffectiveRanges:
		return "sym_effective_ranges"
	case ModeSymLocalVectorsIndexing:
		return "sym_local_vectors_indexing"
	case ModeSymConflictFreeApriori:
		return "sym_conflict_free_apriori"
	case ModeSymConflictFree:
		return "sym_conflict_free"
	case ModeSymConflictFreeHyb:
		return "sym_conflict_free_hyb"
	default:
		return "unknown"
	}
}

// Kernel is one installed SpMV execution scheme. Multiply fully
// overwrites y with A*x; callers validate vector lengths before each
// call, so Multiply itself performs no checks on the hot path.
type Kernel interface {
	Mode() Mode
	Multiply(y, x []float64)
}

// Config carries everything Dispatch may need to build a kernel. Which
// fields must be populated depends on the selected path: Full for the
// non-symmetric modes, Sym+RowSplit for every symmetric mode, Schedule
// for the a-posteriori conflict-free modes, Apriori for the a-priori
// mode. Pool is required by split_nnz and by every symmetric mode with
// Threads > 1.
type Config struct {
	Full     *csr.Matrix
	Sym      *compress.Result
	RowSplit []int
	Schedule *schedule.Result
	Apriori  *schedule.Result

	Threads    int
	Symmetric  bool
	Tuned      bool
	Hybrid     bool
	UseBarrier bool
	Strategy   Strategy

	Pool *xsync.Pool
}
