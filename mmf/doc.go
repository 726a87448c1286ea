// Package mmf defines the triplet-ingestion contract the engine depends
// on and a reference Matrix Market reader that satisfies it.
//
// The engine does not care where triplets come from; only the shape of
// the data is fixed: triplets (row, col, value), 0-indexed, delivered in
// ascending row order, with a symmetry flag saying whether the stream
// holds only the lower triangle (mirrored entries implicit) or the full
// matrix. That shape is TripletSource. Reader is a complete, if minimal,
// ".mtx" coordinate-format reader good enough to drive the engine end to
// end in tests and examples without pulling in an external parser
// package.
package mmf
