package engine_test

import (
	"fmt"

	"github.com/nnzcore/symspmv/engine"
	"github.com/nnzcore/symspmv/mmf"
)

// Example builds an engine over a small symmetric matrix, tunes it, and
// runs one multiply.
func Example() {
	// Lower triangle of [[2,1,0],[1,3,1],[0,1,4]].
	source := mmf.NewSliceSource(3, 3, true,
		[]int{0, 1, 1, 2, 2},
		[]int{0, 0, 1, 1, 2},
		[]float64{2, 1, 3, 1, 4})

	eng, err := engine.New(source, engine.WithThreads(2))
	if err != nil {
		fmt.Println("new:", err)
		return
	}
	defer eng.Close()

	if err := eng.Tune(); err != nil {
		fmt.Println("tune:", err)
		return
	}

	y := make([]float64, eng.NRows())
	if err := eng.Multiply(y, []float64{1, 1, 1}); err != nil {
		fmt.Println("multiply:", err)
		return
	}
	fmt.Println(y)

	// Output:
	// [3 5 5]
}
