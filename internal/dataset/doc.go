// Package dataset loads the precomputed log-return series and binds it to
// its change point in an immutable Snapshot.
//
// Two on-disk formats are accepted, selected by extension:
//
//	.npy  one-dimensional NumPy array of float64, float32 or integer values
//	.csv  a column named log_returns, or the first column when absent
//
// A Snapshot is built once at startup and shared read-only by every request.
package dataset
