// Package logging assembles structured slog loggers and formatting helpers used
// across apkship.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline stages automatically
// tag log lines with the run identifier and stage name. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
