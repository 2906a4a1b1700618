package classify

import "regexp"

// Coordinate value patterns: decimal degrees (signed or hemisphere-marked)
// and degrees-minutes-seconds with symbol, letter, or colon separators.
// Latitude degrees run to 90, longitude to 180; beyond the digit width no
// range validation is performed.

var LatPatterns = compilePatterns(
	`[+-]?\d{1,2}(\.\d+)?°?`,
	`[NS]\s*\d{1,2}(\.\d+)?°?`,
	`\d{1,2}(\.\d+)?°?\s*[NS]`,
	`[NS]?\s*\d{1,2}\s*[°d:\s]\s*[0-5]?\d(\.\d+)?\s*['′m:]?(\s*[0-5]?\d(\.\d+)?\s*["″s]?)?\s*[NS]?`,
)

var LonPatterns = compilePatterns(
	`[+-]?\d{1,3}(\.\d+)?°?`,
	`[EW]\s*\d{1,3}(\.\d+)?°?`,
	`\d{1,3}(\.\d+)?°?\s*[EW]`,
	`[EW]?\s*\d{1,3}\s*[°d:\s]\s*[0-5]?\d(\.\d+)?\s*['′m:]?(\s*[0-5]?\d(\.\d+)?\s*["″s]?)?\s*[EW]?`,
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)^(` + e + `)$`)
	}
	return out
}
