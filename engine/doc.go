// Package engine is the public facade of the symmetric SpMV
// accelerator: it ingests a triplet source into CSR form, runs the
// preprocessing pipeline (row partitioning, symmetric compression,
// conflict-graph coloring, schedule compilation) once at Tune time, and
// then executes y = A*x repeatedly through the installed kernel.
//
// Typical use:
//
//	eng, err := engine.New(source,
//		engine.WithThreads(8),
//		engine.WithStrategy(kernel.ConflictFreeAposteriori))
//	if err != nil { ... }
//	defer eng.Close()
//	if err := eng.Tune(); err != nil { ... }
//	for step := 0; step < iterations; step++ {
//		if err := eng.Multiply(y, x); err != nil { ... }
//	}
package engine
