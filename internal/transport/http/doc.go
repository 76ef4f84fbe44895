// Package http implements the HTTP handlers of the statistics service.
// Handlers stay thin: they call a service, map its errors to API errors and
// render the result.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → StatsService → Snapshot
//	                                             ↓
//	HTTP Response ← render.JSON / ErrorHandler ←─┘
//
// # Error Mapping
//
// A *services.SegmentError becomes a 422 problem naming the segment, its
// length and the minimum length. services.ErrServiceUnavailable becomes
// 503. Anything else is rendered by the shared ErrorHandler, which hides
// internal detail behind a generic 500.
//
// # Routes
//
//	GET /                    plaintext usage string
//	GET /api/data            full return series
//	GET /api/change_point    configured split index
//	GET /api/summary_stats   before/after segment statistics
//	GET /api/health[/ready|/live], /api/version
package http
