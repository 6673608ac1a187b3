package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldKey returns value with surrounding whitespace removed and Unicode case
// folding applied, suitable for case-insensitive equality.
func FoldKey(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}

// FoldEqual reports whether a and b are equal ignoring case and surrounding
// whitespace.
func FoldEqual(a, b string) bool {
	return FoldKey(a) == FoldKey(b)
}
