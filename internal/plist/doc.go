// Package plist reads the flat, tag-per-line subset of the iTunes/Music
// library export format.
//
// It is deliberately not an XML parser. Each helper looks at one line of text
// and either recognizes a `<key>` declaration paired with a value tag on the
// same line, or classifies the line as a dictionary boundary. Values split
// across lines are not recognized; library exports always place the key and
// its value on one line.
package plist
