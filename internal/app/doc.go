// Package app wires the statistics service together and manages its lifecycle.
//
// # Initialization Flow
//
//  1. Load configuration (defaults, YAML file, BRENT_* environment)
//  2. Initialize the process logger and OpenTelemetry providers
//  3. Load the return series and change point into an immutable snapshot
//  4. Build the stats and health services over the snapshot
//  5. Assemble the chi router and middleware chain
//  6. Create the HTTP server
//
// A dataset that cannot be loaded or a change point outside [0, N] fails
// NewApplication; main exits non-zero.
//
// # Graceful Shutdown
//
// Run serves until SIGINT or SIGTERM, then drains in-flight requests within
// the configured shutdown timeout and flushes telemetry.
//
// The app does not call os.Exit() directly, allowing the main function to
// control the exit process.
package app
