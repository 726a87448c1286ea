package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nnzcore/symspmv/color"
	"github.com/nnzcore/symspmv/kernel"
)

// Platform names the allocator/execution target. Only CPU is supported.
type Platform int

const (
	// PlatformCPU is shared-memory multicore execution.
	PlatformCPU Platform = iota
)

// Tuning gates the partitioned/conflict-free execution path. With
// TuningNone a non-symmetric engine always runs the vanilla kernel.
type Tuning int

const (
	TuningNone Tuning = iota
	TuningEnabled
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// MaxThreads is the configuration ceiling on worker threads.
	MaxThreads = 28

	// DefaultThreads is used when WithThreads is not supplied; thread
	// count discovery belongs to the caller, so the safe default is
	// serial execution.
	DefaultThreads = 1

	// DefaultBlockFactor disables row blocking.
	DefaultBlockFactor = 1

	// DefaultBandwidthThreshold is the |row-col| distance past which
	// hybrid mode diverts an entry into the sidecar.
	DefaultBandwidthThreshold = 4000

	// symmetryEps is the tolerance used when reconciling a caller's
	// symmetric assertion against the stored values.
	symmetryEps = 1e-12
)

const panicBadOptionValue = "engine: option value out of domain"

// Option mutates internal options. Constructors panic only on
// nonsensical values (programmer error); data-dependent validation
// happens in New.
type Option func(*options)

type options struct {
	platform           Platform
	threads            int
	symmetric          bool
	hybrid             bool
	tuning             Tuning
	strategy           kernel.Strategy
	useBarrier         bool
	blkFactor          int
	bandwidthThreshold int
	balancingSteps     int
	ordering           color.Heuristic
	registerer         prometheus.Registerer
}

func defaultOptions() options {
	return options{
		platform:           PlatformCPU,
		threads:            DefaultThreads,
		symmetric:          true,
		tuning:             TuningEnabled,
		strategy:           kernel.ConflictFreeAposteriori,
		blkFactor:          DefaultBlockFactor,
		bandwidthThreshold: DefaultBandwidthThreshold,
		balancingSteps:     color.DefaultBalancingSteps,
		ordering:           color.FirstFitRoundRobin,
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithPlatform selects the allocator/execution target.
func WithPlatform(p Platform) Option {
	return func(o *options) { o.platform = p }
}

// WithThreads sets the worker thread count. Domain validation (>=1,
// <=MaxThreads) happens in New since T usually arrives from runtime
// discovery outside this package.
func WithThreads(t int) Option {
	return func(o *options) { o.threads = t }
}

// WithSymmetric records the caller's assertion that the matrix is
// symmetric. It is reconciled against the data at construction time.
func WithSymmetric(symmetric bool) Option {
	return func(o *options) { o.symmetric = symmetric }
}

// WithHybrid enables the high-bandwidth sidecar. Forced off when the
// engine runs single-threaded or non-symmetric.
func WithHybrid(hybrid bool) Option {
	return func(o *options) { o.hybrid = hybrid }
}

// WithTuning gates the partitioned execution path for non-symmetric
// matrices.
func WithTuning(tuning Tuning) Option {
	return func(o *options) { o.tuning = tuning }
}

// WithStrategy selects the symmetric execution scheme.
func WithStrategy(s kernel.Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithBarrier chooses global barriers over point-to-point signaling in
// the conflict-free kernel.
func WithBarrier(useBarrier bool) Option {
	return func(o *options) { o.useBarrier = useBarrier }
}

// WithBlockFactor sets the row-blocking factor; must be a power of two
// so blocked indices stay shift-computable.
func WithBlockFactor(factor int) Option {
	if factor < 1 || factor&(factor-1) != 0 {
		panic(panicBadOptionValue)
	}

	return func(o *options) { o.blkFactor = factor }
}

// WithBandwidthThreshold sets the hybrid |row-col| split distance.
func WithBandwidthThreshold(threshold int) Option {
	if threshold < 1 {
		panic(panicBadOptionValue)
	}

	return func(o *options) { o.bandwidthThreshold = threshold }
}

// WithBalancingSteps sets the number of deviance-reduction passes the
// colorer runs per thread.
func WithBalancingSteps(steps int) Option {
	if steps < 0 {
		panic(panicBadOptionValue)
	}

	return func(o *options) { o.balancingSteps = steps }
}

// WithOrdering selects the colorer's vertex visitation heuristic.
func WithOrdering(h color.Heuristic) Option {
	return func(o *options) { o.ordering = h }
}

// WithRegisterer installs a Prometheus registerer for the engine's
// metrics. Without it no metric is registered anywhere, so tests never
// touch the global default registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}
