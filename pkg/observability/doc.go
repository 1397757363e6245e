// Package observability provides structured logging, Prometheus metrics,
// health checks and panic recovery for the Quill API service.
//
// # Logging
//
// Logger wraps stdlib slog with a JSON handler and the WithField/WithError
// chaining style used across the codebase:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("post_id", id).Info("post created")
//
// # Metrics
//
// NewMetrics registers HTTP, cache and report-job metrics on a dedicated
// registry; Metrics.Handler exposes them for scraping.
//
// # Health
//
// HealthChecker pings the database and (optionally) Redis and powers the
// readiness endpoint. The public /health contract is served by the API
// router itself and stays a flat {"api":"OK"} body.
package observability
