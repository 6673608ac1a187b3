// Package track builds per-track records from the lines of one track block.
//
// Build always returns a record. Anything that keeps a track out of duplicate
// comparison (missing Location or Total Time, a Location that does not
// resolve, a missing or empty media file, a failed fingerprint) is reported
// through Record.Valid and Record.Reason rather than as an error, so callers
// can skip bad entries uniformly and keep scanning.
package track
