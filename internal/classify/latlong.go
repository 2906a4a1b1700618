package classify

import (
	"regexp"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

// Header patterns for the two coordinate roles: common spellings, bare
// axis letters, and HXL geo tags. Prefix-anchored like the value scan.
var (
	latHeaderRe = regexp.MustCompile(`(?i)^((.*latitude?.*)|(lat)|((point.?)?y)|(#\s?geo\s?\+\s?lat))`)
	lonHeaderRe = regexp.MustCompile(`(?i)^((.*longitude?.*)|(lon(g)?)|((point.?)?x)|(#\s?geo\s?\+\s?lon))`)
)

// HasLatLong reports whether any single sample carries both a qualifying
// latitude column and a qualifying longitude column. The roles may be
// satisfied by different columns or the same ambiguous one.
func HasLatLong(samples map[string]tabular.Table) bool {
	for _, t := range samples {
		if sampleHasLatLong(t) {
			return true
		}
	}
	return false
}

func sampleHasLatLong(t tabular.Table) bool {
	var latted, longed bool
	for ci, col := range t.Columns {
		isLat := headerMatches(col, latHeaderRe)
		isLon := headerMatches(col, lonHeaderRe)
		if !isLat && !isLon {
			continue
		}
		if isLat && !latted && columnPasses(t, ci, matchesAny(LatPatterns)) {
			latted = true
		}
		if isLon && !longed && columnPasses(t, ci, matchesAny(LonPatterns)) {
			longed = true
		}
		if latted && longed {
			return true
		}
	}
	return false
}

func matchesAny(patterns []*regexp.Regexp) func(string) bool {
	return func(v string) bool {
		for _, p := range patterns {
			if p.MatchString(v) {
				return true
			}
		}
		return false
	}
}
