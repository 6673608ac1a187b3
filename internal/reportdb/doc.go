// Package reportdb archives scan reports in a SQLite database.
//
// The archive is write-mostly: every run records its identifier, library,
// cutoff, timing, and counts, plus one row per reported pair. Scans never
// read the archive back as input. A sibling ".lock" file guarded by flock
// keeps two processes from writing the same archive at once.
package reportdb
