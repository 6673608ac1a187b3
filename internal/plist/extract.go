package plist

import (
	"regexp"
	"strconv"
	"strings"
)

// Shape identifies the value tag that follows a key declaration.
type Shape int

const (
	// ShapeString matches <string>...</string>.
	ShapeString Shape = iota
	// ShapeInteger matches <integer>...</integer>.
	ShapeInteger
	// ShapeDate matches <date>...</date>.
	ShapeDate
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeInteger:
		return "integer"
	case ShapeDate:
		return "date"
	default:
		return "unknown"
	}
}

// Value patterns are anchored so only the tag directly after the key marker
// counts; a later key's value on the same line is never borrowed.
var valuePatterns = map[Shape]*regexp.Regexp{
	ShapeString:  regexp.MustCompile(`^\s*<string>(.*?)</string>`),
	ShapeInteger: regexp.MustCompile(`^\s*<integer>\s*([+-]?[0-9]+)\s*</integer>`),
	ShapeDate:    regexp.MustCompile(`^\s*<date>(.*?)</date>`),
}

// KeyMarker returns the literal key declaration for name.
func KeyMarker(name string) string {
	return "<key>" + name + "</key>"
}

// Extract returns the raw value declared for key on line. The second result
// is false when the line does not declare key or when the value tag is
// missing or malformed. An empty <string></string> yields ("", true).
func Extract(line, key string, shape Shape) (string, bool) {
	idx := strings.Index(line, KeyMarker(key))
	if idx < 0 {
		return "", false
	}
	pattern, ok := valuePatterns[shape]
	if !ok {
		return "", false
	}
	// The value must follow the key on the same line.
	rest := line[idx+len(KeyMarker(key)):]
	match := pattern.FindStringSubmatch(rest)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ExtractInt is Extract with ShapeInteger, parsed to int64.
func ExtractInt(line, key string) (int64, bool) {
	raw, ok := Extract(line, key, ShapeInteger)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
