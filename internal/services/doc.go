// Package services holds the application layer shared by the HTTP API and
// the command line tool.
//
// StatisticsService turns uploaded workbooks into statistics: it parses
// them concurrently with a bounded errgroup, caches parsed reports by
// content hash, records per-file failures without aborting the batch and
// aggregates once all parses are done. HealthService reports liveness and
// readiness.
package services
