// Package logging assembles structured slog loggers used across tunedupe.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standard attribute keys (component, run ID,
// library, path, reason). Console output goes to stderr by default so the
// duplicate report keeps stdout to itself. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
