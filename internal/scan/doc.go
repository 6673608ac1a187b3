// Package scan runs one duplicate search over a library export.
//
// Run opens the export, segments it into track blocks, builds a record per
// block, feeds valid records through a dupes.Session, and streams every
// match at or above the cutoff to a report.Sink. Each run starts from an
// empty session and carries a fresh run identifier that tags its log lines
// and archive rows.
package scan
