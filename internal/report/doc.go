// Package report renders duplicate pairs found during a scan.
//
// A Sink receives the run header, each pair as it is found, and the final
// summary. The text sink streams the classic human-readable block per pair;
// the JSON and table sinks must see the whole run before rendering, so they
// buffer pairs until End. Multi fans one run out to several sinks.
package report
