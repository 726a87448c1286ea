package kernel

import "fmt"

// Dispatch maps (symmetric, strategy, hybrid, threads) to a concrete
// kernel, built once at tune time. The selection table:
//
//	vanilla                     tuning off, non-symmetric
//	split_nnz                   tuning on, non-symmetric
//	sym_serial                  symmetric, T == 1
//	sym_atomics                 strategy = Atomics
//	sym_effective_ranges        strategy = EffectiveRanges
//	sym_local_vectors_indexing  strategy = LocalVectorsIndexing
//	sym_conflict_free_apriori   strategy = ConflictFreeApriori
//	sym_conflict_free           strategy = ConflictFreeAposteriori
//	sym_conflict_free_hyb       strategy = ConflictFreeAposteriori, hybrid
func Dispatch(cfg Config) (Kernel, error) {
	if cfg.Threads < 1 {
		return nil, ErrNoThreads
	}

	if !cfg.Symmetric {
		if cfg.Full == nil {
			return nil, fmt.Errorf("non-symmetric mode needs the full CSR: %w", ErrIncompleteConfig)
		}
		if !cfg.Tuned || cfg.Threads == 1 {
			return newVanilla(cfg.Full), nil
		}
		if len(cfg.RowSplit) != cfg.Threads+1 || cfg.Pool == nil {
			return nil, fmt.Errorf("split_nnz needs row_split and a worker pool: %w", ErrIncompleteConfig)
		}

		return newSplitNNZ(cfg.Full, cfg.RowSplit, cfg.Pool), nil
	}

	if cfg.Sym == nil || len(cfg.RowSplit) != cfg.Threads+1 {
		return nil, fmt.Errorf("symmetric mode needs compressed data and row_split: %w", ErrIncompleteConfig)
	}

	if cfg.Threads == 1 {
		return newSymSerial(cfg.Sym), nil
	}
	if cfg.Pool == nil {
		return nil, fmt.Errorf("parallel symmetric mode needs a worker pool: %w", ErrIncompleteConfig)
	}

	switch cfg.Strategy {
	case Atomics:
		return newSymAtomics(cfg.Sym, cfg.RowSplit, cfg.Pool), nil
	case EffectiveRanges:
		return newSymEffectiveRanges(cfg.Sym, cfg.RowSplit, cfg.Pool), nil
	case LocalVectorsIndexing:
		return newSymLocalVectorsIndexing(cfg.Sym, cfg.RowSplit, cfg.Pool), nil
	case ConflictFreeApriori:
		if cfg.Apriori == nil {
			return nil, fmt.Errorf("a-priori mode needs a color schedule: %w", ErrIncompleteConfig)
		}

		return newSymConflictFreeApriori(cfg.Sym, cfg.RowSplit, cfg.Apriori, cfg.Pool), nil
	case ConflictFreeAposteriori:
		if cfg.Schedule == nil {
			return nil, fmt.Errorf("conflict-free mode needs a compiled schedule: %w", ErrIncompleteConfig)
		}
		if cfg.Hybrid {
			// The sidecar inner loop has no mirrored writes, so its rows
			// can straddle color phases; only the global barrier keeps
			// that ordered. Point-to-point signaling is not offered here.
			return newSymConflictFree(cfg.Sym, cfg.RowSplit, cfg.Schedule, cfg.Pool, true, true), nil
		}

		return newSymConflictFree(cfg.Sym, cfg.RowSplit, cfg.Schedule, cfg.Pool, cfg.UseBarrier, false), nil
	default:
		return nil, fmt.Errorf("strategy %d: %w", cfg.Strategy, ErrUnknownStrategy)
	}
}
