// Package dupes scores track pairs for likely duplication and drives the
// pairwise comparison over a library scan.
//
// Scoring is a fixed policy: identical content fingerprints score 100;
// otherwise the count and mix of matching fields (title, artist, album,
// length within one second) selects one of a handful of literal scores.
// Session compares every new valid record against all earlier ones, so each
// unordered pair is scored exactly once. Comparison is O(n²) in the number of
// valid tracks.
package dupes
