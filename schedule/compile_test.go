package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnzcore/symspmv/color"
	"github.com/nnzcore/symspmv/compress"
	"github.com/nnzcore/symspmv/conflict"
	"github.com/nnzcore/symspmv/csr"
	"github.com/nnzcore/symspmv/schedule"
)

func TestCompileRangesCoverEveryOwnedRowExactlyOnce(t *testing.T) {
	rowptr := []int{0, 1, 4, 6}
	colind := []int{0, 0, 1, 2, 1, 2}
	values := []float64{2, 1, 3, 1, 1, 4}
	m, err := csr.New(3, 3, rowptr, colind, values, true)
	require.NoError(t, err)

	rowSplit := []int{0, 2, 3}
	res, err := compress.Compress(m, rowSplit, compress.Options{})
	require.NoError(t, err)
	g, err := conflict.Build(res, rowSplit, 1, false)
	require.NoError(t, err)

	colorRes := color.Color(g, color.Options{RowSplit: rowSplit, BlockFactor: 1, BalancingSteps: 1})
	sched := schedule.Compile(g, colorRes, rowSplit, 1)

	require.Len(t, sched.Threads, 2)
	for ti, ts := range sched.Threads {
		total := 0
		for i := 0; i < len(ts.RangeStart); i++ {
			total += ts.RangeEnd[i] - ts.RangeStart[i]
		}
		assert.Equal(t, rowSplit[ti+1]-rowSplit[ti], total)
		require.Len(t, ts.RangePtr, sched.NColors+1)
		require.Len(t, ts.Deps, sched.NColors)
		assert.Empty(t, ts.Deps[0])
	}
}

func TestCompileCompactsConsecutiveRowsIntoOneRange(t *testing.T) {
	g := &conflict.Graph{V: 4, BlockFactor: 1, TID: []int{0, 0, 0, 0}, NNZ: []int{1, 1, 1, 1}, Adjacency: make([][]int, 4)}
	colorRes := color.Result{Color: []int{0, 0, 0, 0}, NColors: 1}
	sched := schedule.Compile(g, colorRes, []int{0, 4}, 1)

	ts := sched.Threads[0]
	require.Len(t, ts.RangeStart, 1)
	assert.Equal(t, 0, ts.RangeStart[0])
	assert.Equal(t, 4, ts.RangeEnd[0])
}

func TestCompileDependencyTableRecordsCrossThreadColorOrdering(t *testing.T) {
	// Two blocks, different threads, directly conflicting -> different
	// colors and a dependency edge for the thread colored second.
	g := &conflict.Graph{
		V: 2, BlockFactor: 1,
		TID:       []int{0, 1},
		NNZ:       []int{1, 1},
		Adjacency: [][]int{{1}, {0}},
	}
	colorRes := color.Result{Color: []int{0, 1}, NColors: 2}
	sched := schedule.Compile(g, colorRes, []int{0, 1, 2}, 1)

	assert.Empty(t, sched.Threads[0].Deps[0])
	assert.Empty(t, sched.Threads[0].Deps[1])
	assert.Equal(t, []int{0}, sched.Threads[1].Deps[1])
}

func TestCompileOrdersConflictsAcrossColorGaps(t *testing.T) {
	// Balancing can leave a conflict edge whose endpoints are more than
	// one color apart; the later color must still wait on the earlier
	// thread even though the neighbor is not colored c-1.
	g := &conflict.Graph{
		V: 3, BlockFactor: 1,
		TID:       []int{0, 0, 1},
		NNZ:       []int{1, 1, 1},
		Adjacency: [][]int{{2}, {}, {0}},
	}
	colorRes := color.Result{Color: []int{0, 1, 2}, NColors: 3}
	sched := schedule.Compile(g, colorRes, []int{0, 2, 3}, 1)

	assert.Equal(t, []int{0}, sched.Threads[1].Deps[2])
}
