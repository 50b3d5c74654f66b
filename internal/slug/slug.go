package slug

import (
	"regexp"
	"strings"
)

// Everything except lowercase ASCII letters, digits and CJK unified ideographs.
var separatorExpr = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}a-z0-9]+`)

// Normalize lowercases s, collapses every run of other characters into a
// hyphen and trims hyphens from both ends.
func Normalize(s string) string {
	out := separatorExpr.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(out, "-")
}

// Truncate cuts s to at most maxRunes runes and drops a trailing hyphen left by the cut.
func Truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimRight(string(runes[:maxRunes]), "-")
}
