package plist

import (
	"regexp"
	"strings"
)

// LineKind classifies a line for dictionary depth tracking.
type LineKind int

const (
	LineOther LineKind = iota
	LineDictOpen
	LineDictClose
)

var sectionKeyPattern = regexp.MustCompile(`^\s*<key>\s*(.*?)\s*</key>`)

// Classify reports whether line consists solely of a dictionary marker.
// Surrounding whitespace is ignored; anything else on the line makes it
// LineOther.
func Classify(line string) LineKind {
	switch strings.TrimSpace(line) {
	case "<dict>":
		return LineDictOpen
	case "</dict>":
		return LineDictClose
	default:
		return LineOther
	}
}

// IsSectionKey reports whether line is a key declaration whose name contains
// section, compared case-insensitively.
func IsSectionKey(line, section string) bool {
	match := sectionKeyPattern.FindStringSubmatch(line)
	if match == nil {
		return false
	}
	return strings.Contains(strings.ToLower(match[1]), strings.ToLower(section))
}
