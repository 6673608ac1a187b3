// Package config loads, normalizes, and validates tunedupe configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the TUNEDUPE_LIBRARY environment fallback for the
// library export path. Always obtain settings through this package so the CLI
// receives expanded paths, canonical enum values, and clear validation errors.
package config
