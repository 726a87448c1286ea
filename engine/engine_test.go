package engine_test

import (
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnzcore/symspmv/engine"
	"github.com/nnzcore/symspmv/kernel"
	"github.com/nnzcore/symspmv/mmf"
)

// tridiagSource returns the lower triangle of the 3x3 symmetric matrix
// [[2,1,0],[1,3,1],[0,1,4]].
func tridiagSource() *mmf.SliceSource {
	return mmf.NewSliceSource(3, 3, true,
		[]int{0, 1, 1, 2, 2},
		[]int{0, 0, 1, 1, 2},
		[]float64{2, 1, 3, 1, 4})
}

func randomSource(t *testing.T, n int, seed int64) *mmf.SliceSource {
	t.Helper()
	src, err := mmf.RandomSymmetric(n, 0.15, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)

	return src
}

func oracle(t *testing.T, src *mmf.SliceSource, x []float64) []float64 {
	t.Helper()
	m, err := mmf.BuildCSR(src)
	require.NoError(t, err)
	want := make([]float64, m.NRows)
	require.NoError(t, m.NaiveMultiply(want, x))

	return want
}

func TestNewRejectsBadConfiguration(t *testing.T) {
	_, err := engine.New(tridiagSource(), engine.WithThreads(0))
	assert.ErrorIs(t, err, engine.ErrZeroThreads)

	_, err = engine.New(tridiagSource(), engine.WithThreads(engine.MaxThreads+1))
	assert.ErrorIs(t, err, engine.ErrTooManyThreads)

	_, err = engine.New(tridiagSource(), engine.WithPlatform(engine.Platform(42)))
	assert.ErrorIs(t, err, engine.ErrUnsupportedPlatform)
}

func TestMultiplyBeforeTuneFails(t *testing.T) {
	eng, err := engine.New(tridiagSource())
	require.NoError(t, err)
	defer eng.Close()

	err = eng.Multiply(make([]float64, 3), []float64{1, 1, 1})
	assert.ErrorIs(t, err, engine.ErrNotTuned)
}

func TestTuneIsOnceOnly(t *testing.T) {
	eng, err := engine.New(tridiagSource())
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.Tune())
	assert.ErrorIs(t, eng.Tune(), engine.ErrAlreadyTuned)
}

func TestMultiplyRejectsWrongShapes(t *testing.T) {
	eng, err := engine.New(tridiagSource())
	require.NoError(t, err)
	defer eng.Close()
	require.NoError(t, eng.Tune())

	assert.ErrorIs(t, eng.Multiply(make([]float64, 2), []float64{1, 1, 1}), engine.ErrDimensionMismatch)
	assert.ErrorIs(t, eng.Multiply(make([]float64, 3), []float64{1, 1}), engine.ErrDimensionMismatch)
}

func TestAsymmetricDataFallsBackToNonSymmetric(t *testing.T) {
	// (1,0)=5 with no mirrored (0,1): not symmetric, declared full.
	src := mmf.NewSliceSource(2, 2, false,
		[]int{0, 1, 1},
		[]int{0, 0, 1},
		[]float64{3, 5, 4})

	eng, err := engine.New(src, engine.WithSymmetric(true))
	require.NoError(t, err)
	defer eng.Close()
	assert.False(t, eng.Symmetric())

	require.NoError(t, eng.Tune())
	y := make([]float64, 2)
	require.NoError(t, eng.Multiply(y, []float64{1, 1}))
	assert.InDeltaSlice(t, []float64{3, 9}, y, 1e-12)
}

func TestSerialSymmetricPath(t *testing.T) {
	eng, err := engine.New(tridiagSource(), engine.WithThreads(1))
	require.NoError(t, err)
	defer eng.Close()
	require.NoError(t, eng.Tune())
	assert.Equal(t, kernel.ModeSymSerial, eng.Mode())

	y := make([]float64, 3)
	require.NoError(t, eng.Multiply(y, []float64{1, 1, 1}))
	assert.InDeltaSlice(t, []float64{3, 5, 5}, y, 1e-12)
}

func TestAllStrategiesEndToEnd(t *testing.T) {
	const n = 48
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i%9) - 4
	}
	want := oracle(t, randomSource(t, n, 3), x)

	strategies := map[kernel.Strategy]kernel.Mode{
		kernel.Atomics:                 kernel.ModeSymAtomics,
		kernel.EffectiveRanges:         kernel.ModeSymEffectiveRanges,
		kernel.LocalVectorsIndexing:    kernel.ModeSymLocalVectorsIndexing,
		kernel.ConflictFreeApriori:     kernel.ModeSymConflictFreeApriori,
		kernel.ConflictFreeAposteriori: kernel.ModeSymConflictFree,
	}
	for strat, mode := range strategies {
		for _, threads := range []int{2, 4} {
			eng, err := engine.New(randomSource(t, n, 3),
				engine.WithThreads(threads),
				engine.WithStrategy(strat))
			require.NoError(t, err)
			require.NoError(t, eng.Tune())
			assert.Equal(t, mode, eng.Mode(), "strategy=%s threads=%d", strat, threads)

			y := make([]float64, n)
			require.NoError(t, eng.Multiply(y, x))
			assert.InDeltaSlice(t, want, y, 1e-9, "strategy=%s threads=%d", strat, threads)
			eng.Close()
		}
	}
}

func TestDiagonalOnlyMatrixAllStrategies(t *testing.T) {
	src := func() *mmf.SliceSource {
		return mmf.NewSliceSource(4, 4, true,
			[]int{0, 1, 2, 3},
			[]int{0, 1, 2, 3},
			[]float64{2, 3, 4, 5})
	}
	x := []float64{1, 2, 3, 4}

	for _, strat := range []kernel.Strategy{
		kernel.Atomics,
		kernel.EffectiveRanges,
		kernel.LocalVectorsIndexing,
		kernel.ConflictFreeApriori,
		kernel.ConflictFreeAposteriori,
	} {
		eng, err := engine.New(src(), engine.WithThreads(2), engine.WithStrategy(strat))
		require.NoError(t, err)
		require.NoError(t, eng.Tune())

		y := make([]float64, 4)
		require.NoError(t, eng.Multiply(y, x))
		assert.InDeltaSlice(t, []float64{2, 6, 12, 20}, y, 1e-12, "strategy=%s", strat)
		eng.Close()
	}
}

func TestHybridEndToEnd(t *testing.T) {
	const n = 32
	x := make([]float64, n)
	for i := range x {
		x[i] = 1 + float64(i%3)
	}
	want := oracle(t, randomSource(t, n, 5), x)

	eng, err := engine.New(randomSource(t, n, 5),
		engine.WithThreads(3),
		engine.WithHybrid(true),
		engine.WithBandwidthThreshold(8))
	require.NoError(t, err)
	defer eng.Close()
	require.NoError(t, eng.Tune())
	assert.Equal(t, kernel.ModeSymConflictFreeHyb, eng.Mode())

	y := make([]float64, n)
	require.NoError(t, eng.Multiply(y, x))
	assert.InDeltaSlice(t, want, y, 1e-9)
}

func TestHybridForcedOffSingleThread(t *testing.T) {
	eng, err := engine.New(tridiagSource(), engine.WithThreads(1), engine.WithHybrid(true))
	require.NoError(t, err)
	defer eng.Close()
	require.NoError(t, eng.Tune())
	assert.Equal(t, kernel.ModeSymSerial, eng.Mode())
}

func TestPreprocessingIsDeterministic(t *testing.T) {
	const n = 40
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * 0.25
	}

	run := func() []float64 {
		eng, err := engine.New(randomSource(t, n, 9), engine.WithThreads(4))
		require.NoError(t, err)
		defer eng.Close()
		require.NoError(t, eng.Tune())
		y := make([]float64, n)
		require.NoError(t, eng.Multiply(y, x))

		return y
	}

	// Same input, same options, a fixed ordering heuristic: the compiled
	// schedules agree, so the float accumulation order agrees bit for bit.
	assert.Equal(t, run(), run())
}

func TestBlockFactorTwoEndToEnd(t *testing.T) {
	const n = 32
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i%4) + 0.5
	}
	want := oracle(t, randomSource(t, n, 13), x)

	eng, err := engine.New(randomSource(t, n, 13),
		engine.WithThreads(4),
		engine.WithBlockFactor(2))
	require.NoError(t, err)
	defer eng.Close()
	require.NoError(t, eng.Tune())

	y := make([]float64, n)
	require.NoError(t, eng.Multiply(y, x))
	assert.InDeltaSlice(t, want, y, 1e-9)
}

func TestNonSymmetricModes(t *testing.T) {
	src := func() *mmf.SliceSource {
		return mmf.NewSliceSource(3, 3, false,
			[]int{0, 0, 1, 2, 2},
			[]int{0, 2, 1, 0, 2},
			[]float64{1, 2, 3, 4, 5})
	}

	eng, err := engine.New(src(), engine.WithSymmetric(false), engine.WithTuning(engine.TuningNone))
	require.NoError(t, err)
	require.NoError(t, eng.Tune())
	assert.Equal(t, kernel.ModeVanilla, eng.Mode())
	y := make([]float64, 3)
	require.NoError(t, eng.Multiply(y, []float64{1, 1, 1}))
	assert.InDeltaSlice(t, []float64{3, 3, 9}, y, 1e-12)
	eng.Close()

	eng, err = engine.New(src(), engine.WithSymmetric(false), engine.WithThreads(2))
	require.NoError(t, err)
	require.NoError(t, eng.Tune())
	assert.Equal(t, kernel.ModeSplitNNZ, eng.Mode())
	require.NoError(t, eng.Multiply(y, []float64{1, 1, 1}))
	assert.InDeltaSlice(t, []float64{3, 3, 9}, y, 1e-12)
	eng.Close()
}

func TestAccessorsAndSize(t *testing.T) {
	eng, err := engine.New(tridiagSource(), engine.WithThreads(2))
	require.NoError(t, err)
	defer eng.Close()

	assert.Equal(t, 3, eng.NRows())
	assert.Equal(t, 3, eng.NCols())
	assert.Equal(t, 7, eng.NNZ())
	assert.True(t, eng.Symmetric())

	require.NoError(t, eng.Tune())
	assert.Positive(t, eng.SizeBytes())
}

func TestMetricsRegisterOnlyWhenAsked(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	eng, err := engine.New(tridiagSource(), engine.WithThreads(2), engine.WithRegisterer(reg))
	require.NoError(t, err)
	defer eng.Close()
	require.NoError(t, eng.Tune())

	y := make([]float64, 3)
	require.NoError(t, eng.Multiply(y, []float64{1, 1, 1}))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "symspmv_multiply_duration_seconds")
	assert.Contains(t, names, "symspmv_colorer_balancing_moves_total")
}
