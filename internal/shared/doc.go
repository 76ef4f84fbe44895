// Package shared groups helpers used across the repository that belong to
// no single layer.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and fixture writers for return arrays and tabular files:
//
//	logger, logs := testutil.NewTestLogger(t)
//	path := testutil.WriteNPY(t, []float64{0.01, -0.02, 0.03})
//
// Nothing here may import business packages.
package shared
