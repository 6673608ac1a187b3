// Package main hosts the tunedupe CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration and logging once, then hands
// off to the internal packages: scan for library runs, dupes and mediatags
// for ad hoc file comparisons, reportdb for the optional run archive, and
// config for scaffolding. Running tunedupe with a library path and no
// subcommand behaves like `tunedupe scan`.
package main
