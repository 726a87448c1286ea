// Package compress implements the symmetric compressor: given a full
// CSR matrix and a row partition, it extracts, per thread, only the
// strict lower triangle plus the diagonal. That is the data a symmetric
// kernel actually needs, since every upper-triangle entry is recoverable
// as the mirror of some lower-triangle entry, owned by whichever thread
// holds that entry's row (this thread or another).
//
// When hybrid mode is enabled, entries at least BandwidthThreshold
// columns away from the diagonal are diverted into a separate, ordinary
// (non-symmetric) per-thread CSR sidecar instead of being compressed.
package compress
