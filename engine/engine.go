package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nnzcore/symspmv/color"
	"github.com/nnzcore/symspmv/compress"
	"github.com/nnzcore/symspmv/conflict"
	"github.com/nnzcore/symspmv/csr"
	"github.com/nnzcore/symspmv/internal/xsync"
	"github.com/nnzcore/symspmv/kernel"
	"github.com/nnzcore/symspmv/mmf"
	"github.com/nnzcore/symspmv/partition"
	"github.com/nnzcore/symspmv/schedule"
)

// Engine is a preprocessed symmetric SpMV executor: construct it from a
// triplet source, Tune once to run the preprocessing pipeline and
// install a kernel, then call Multiply any number of times. The engine
// is immutable after Tune.
type Engine struct {
	opts options

	nrows, ncols, nnz int
	symmetric         bool

	full     *csr.Matrix
	rowSplit []int
	sym      *compress.Result
	sched    *schedule.Result
	apriori  *schedule.Result
	ncolors  int

	pool  *xsync.Pool
	kern  kernel.Kernel
	tuned bool

	met       *metrics
	sizeBytes int64
}

// New ingests the triplet source into a full CSR matrix and validates
// the configuration. Preprocessing is deferred to Tune.
//
// A caller's symmetric assertion is reconciled with the data: when the
// source neither declares symmetry nor stores numerically symmetric
// values, the engine falls back to the non-symmetric path with a
// diagnostic instead of failing.
func New(source mmf.TripletSource, opts ...Option) (*Engine, error) {
	o := gatherOptions(opts)
	if o.platform != PlatformCPU {
		return nil, ErrUnsupportedPlatform
	}
	if o.threads < 1 {
		return nil, ErrZeroThreads
	}
	if o.threads > MaxThreads {
		return nil, fmt.Errorf("threads=%d max=%d: %w", o.threads, MaxThreads, ErrTooManyThreads)
	}

	m, err := mmf.BuildCSR(source)
	if err != nil {
		return nil, err
	}

	symmetric := o.symmetric
	if symmetric && !m.Symmetric && !m.CheckSymmetric(symmetryEps) {
		log.Warn().
			Int("nrows", m.NRows).
			Int("nnz", m.NNZ).
			Msg("symmetric requested but matrix is not symmetric; falling back to non-symmetric CSR")
		symmetric = false
	}
	if o.threads == 1 || !symmetric {
		o.hybrid = false
	}

	return &Engine{
		opts:      o,
		nrows:     m.NRows,
		ncols:     m.NCols,
		nnz:       m.NNZ,
		symmetric: symmetric,
		full:      m,
		met:       newMetrics(o.registerer),
	}, nil
}

// Tune runs the preprocessing pipeline (partition, compress, conflict
// graph, coloring, schedule) and installs the kernel selected by the
// engine options. It may be called once; the engine is immutable
// afterwards.
func (e *Engine) Tune() error {
	if e.tuned {
		return ErrAlreadyTuned
	}

	var err error
	if e.symmetric {
		err = e.tuneSymmetric()
	} else {
		err = e.tuneNonSymmetric()
	}
	if err != nil {
		return err
	}

	e.sizeBytes = e.computeSizeBytes()
	e.tuned = true

	return nil
}

func (e *Engine) tuneSymmetric() error {
	o := e.opts

	rowSplit, err := partition.Split(e.full, partition.Options{
		Symmetric:          true,
		Hybrid:             o.hybrid,
		Threads:            o.threads,
		BlockFactor:        o.blkFactor,
		BandwidthThreshold: o.bandwidthThreshold,
	})
	if err != nil {
		return err
	}

	sym, err := compress.Compress(e.full, rowSplit, compress.Options{
		Hybrid:             o.hybrid,
		BandwidthThreshold: o.bandwidthThreshold,
	})
	if err != nil {
		return err
	}
	if err := verifyCompression(e.full, &sym); err != nil {
		return err
	}

	e.rowSplit = rowSplit
	e.sym = &sym

	cfg := kernel.Config{
		Sym:        &sym,
		RowSplit:   rowSplit,
		Threads:    o.threads,
		Symmetric:  true,
		Tuned:      true,
		Hybrid:     o.hybrid,
		UseBarrier: o.useBarrier,
		Strategy:   o.strategy,
	}

	if o.threads > 1 {
		e.pool = xsync.New(o.threads)
		cfg.Pool = e.pool

		if err := e.compileSchedules(&sym, rowSplit, &cfg); err != nil {
			return err
		}
	}

	e.kern, err = kernel.Dispatch(cfg)
	if err != nil {
		return err
	}

	// The full CSR is no longer needed once the compressed form exists.
	e.full = nil

	log.Info().
		Stringer("mode", e.kern.Mode()).
		Int("threads", o.threads).
		Int("ncolors", e.ncolors).
		Msg("engine tuned")

	return nil
}

// compileSchedules builds the conflict graph, colors it, and compiles
// the per-thread schedules the conflict-free kernels execute. The
// a-priori variant recolors the same graph, which holds only cross-thread
// conflicts, with every block recorded as its own owner and no balancing
// pass; its color phases are disjoint across threads, not within one.
func (e *Engine) compileSchedules(sym *compress.Result, rowSplit []int, cfg *kernel.Config) error {
	o := e.opts

	g, err := conflict.Build(*sym, rowSplit, o.blkFactor, o.hybrid)
	if err != nil {
		return err
	}

	colors := color.Color(g, color.Options{
		Ordering:       o.ordering,
		RowSplit:       rowSplit,
		BlockFactor:    o.blkFactor,
		BalancingSteps: o.balancingSteps,
	})
	if e.met != nil {
		e.met.balancingMoves.Add(float64(colors.Moves))
	}

	sched := schedule.Compile(g, colors, rowSplit, o.blkFactor)
	if err := verifySchedule(&sched, rowSplit); err != nil {
		return err
	}
	e.sched = &sched
	e.ncolors = sched.NColors
	cfg.Schedule = &sched

	if o.strategy == kernel.ConflictFreeApriori {
		blockTID := make([]int, g.V)
		for v := range blockTID {
			blockTID[v] = v
		}
		ga := &conflict.Graph{V: g.V, BlockFactor: g.BlockFactor, TID: blockTID, NNZ: g.NNZ, Adjacency: g.Adjacency}
		colorsA := color.Color(ga, color.Options{
			Ordering:    o.ordering,
			RowSplit:    rowSplit,
			BlockFactor: o.blkFactor,
		})
		schedA := schedule.Compile(g, colorsA, rowSplit, o.blkFactor)
		if err := verifySchedule(&schedA, rowSplit); err != nil {
			return err
		}
		e.apriori = &schedA
		e.ncolors = schedA.NColors
		cfg.Apriori = &schedA
	}

	return nil
}

func (e *Engine) tuneNonSymmetric() error {
	o := e.opts

	cfg := kernel.Config{
		Full:    e.full,
		Threads: o.threads,
		Tuned:   o.tuning == TuningEnabled,
	}
	if cfg.Tuned && o.threads > 1 {
		rowSplit, err := partition.Split(e.full, partition.Options{
			Threads:     o.threads,
			BlockFactor: o.blkFactor,
		})
		if err != nil {
			return err
		}
		e.rowSplit = rowSplit
		e.pool = xsync.New(o.threads)
		cfg.RowSplit = rowSplit
		cfg.Pool = e.pool
	}

	var err error
	e.kern, err = kernel.Dispatch(cfg)

	return err
}

// Multiply computes y = A*x. y is fully overwritten.
func (e *Engine) Multiply(y, x []float64) error {
	if !e.tuned {
		return ErrNotTuned
	}
	if len(x) != e.ncols || len(y) != e.nrows {
		return fmt.Errorf("len(x)=%d len(y)=%d shape=%dx%d: %w", len(x), len(y), e.nrows, e.ncols, ErrDimensionMismatch)
	}

	if e.met == nil {
		e.kern.Multiply(y, x)

		return nil
	}

	start := time.Now()
	e.kern.Multiply(y, x)
	e.met.multiplySeconds.Observe(time.Since(start).Seconds())

	return nil
}

// NRows returns the matrix row count.
func (e *Engine) NRows() int { return e.nrows }

// NCols returns the matrix column count.
func (e *Engine) NCols() int { return e.ncols }

// NNZ returns the stored nonzero count of the full matrix.
func (e *Engine) NNZ() int { return e.nnz }

// Symmetric reports whether the engine runs the symmetric path after
// reconciliation with the data.
func (e *Engine) Symmetric() bool { return e.symmetric }

// Mode returns the installed kernel's execution mode, or -1 before Tune.
func (e *Engine) Mode() kernel.Mode {
	if !e.tuned {
		return kernel.Mode(-1)
	}

	return e.kern.Mode()
}

// SizeBytes returns the memory footprint of the preprocessed matrix
// structures (CSR arrays, diagonals, schedules), excluding transient
// kernel scratch.
func (e *Engine) SizeBytes() int64 { return e.sizeBytes }

// Close releases the worker pool. The engine must not be used after
// Close.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

const wordBytes = 8

func (e *Engine) computeSizeBytes() int64 {
	var n int64
	n += int64(len(e.rowSplit)) * wordBytes
	if e.full != nil {
		n += int64(len(e.full.RowPtr)+len(e.full.ColInd)) * wordBytes
		n += int64(len(e.full.Values)) * wordBytes
	}
	if e.sym != nil {
		n += int64(len(e.sym.Diagonal)) * wordBytes
		for t := range e.sym.Threads {
			td := &e.sym.Threads[t]
			n += int64(len(td.RowPtrL)+len(td.ColIndL)+len(td.RowPtrH)+len(td.ColIndH)) * wordBytes
			n += int64(len(td.ValuesL)+len(td.ValuesH)+len(td.Diagonal)) * wordBytes
		}
	}
	for _, s := range []*schedule.Result{e.sched, e.apriori} {
		if s == nil {
			continue
		}
		for t := range s.Threads {
			ts := &s.Threads[t]
			n += int64(len(ts.RangePtr)+len(ts.RangeStart)+len(ts.RangeEnd)) * wordBytes
			for _, d := range ts.Deps {
				n += int64(len(d)) * wordBytes
			}
		}
	}

	return n
}

// verifyCompression checks the compressor's totals against the full
// matrix: every strict-lower nonzero lands in exactly one slab (either
// the compressed triangle or, lower-side only, the sidecar), and every
// compressed column stays strictly below its global row.
func verifyCompression(m *csr.Matrix, sym *compress.Result) error {
	wantLower := 0
	for _, c := range m.StrictLowerCounts() {
		wantLower += c
	}

	gotLower := 0
	for t := range sym.Threads {
		td := &sym.Threads[t]
		gotLower += td.NNZLowerLocal
		for l := 0; l < td.NRowsLocal; l++ {
			row := td.RowOffset + l
			for j := td.RowPtrL[l]; j < td.RowPtrL[l+1]; j++ {
				if td.ColIndL[j] >= row {
					return fmt.Errorf("thread %d row %d col %d not strictly lower: %w",
						t, row, td.ColIndL[j], ErrInvariant)
				}
			}
			for j := td.RowPtrH[l]; j < td.RowPtrH[l+1]; j++ {
				if td.ColIndH[j] < row {
					gotLower++
				}
			}
		}
	}
	if gotLower != wantLower {
		return fmt.Errorf("lower nnz: got %d want %d: %w", gotLower, wantLower, ErrInvariant)
	}

	return nil
}

// verifySchedule checks that every thread's ranges cover exactly its
// owned rows, once each.
func verifySchedule(s *schedule.Result, rowSplit []int) error {
	for t := range s.Threads {
		ts := &s.Threads[t]
		covered := 0
		for r := 0; r < len(ts.RangeStart); r++ {
			covered += ts.RangeEnd[r] - ts.RangeStart[r]
		}
		owned := rowSplit[t+1] - rowSplit[t]
		if covered != owned {
			return fmt.Errorf("thread %d: ranges cover %d rows, owns %d: %w", t, covered, owned, ErrInvariant)
		}
	}

	return nil
}
