// Package classify scans normalized table samples for administrative
// p-code and latitude/longitude columns using fuzzy header and value
// patterns with a fixed mismatch tolerance.
package classify

import (
	"regexp"
	"strings"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

// maxMismatches is how many non-matching non-missing values a candidate
// column may carry before it is rejected.
const maxMismatches = 5

// Country pairs the ISO code spellings used to build the p-code value
// pattern. The list is injected so tests can substitute small fixtures.
type Country struct {
	ISO2 string
	ISO3 string
}

// pcodeHeaderRe accepts an optional administrative-level token followed by
// an optional p-code token, in both human and HXL spellings.
var pcodeHeaderRe = regexp.MustCompile(`(?i)^(((adm)?.*p?.?cod.*)|(#\s?adm\s?\d?\+?\s?p?(code)?))`)

// PcodeClassifier detects country-code-prefixed administrative codes.
type PcodeClassifier struct {
	valueRe *regexp.Regexp
}

// NewPcodeClassifier builds the value pattern from the country reference
// list: an alternation of every ISO3 then ISO2 code, followed by digits.
func NewPcodeClassifier(countries []Country) *PcodeClassifier {
	codes := make([]string, 0, len(countries)*2)
	for _, c := range countries {
		if c.ISO3 != "" {
			codes = append(codes, c.ISO3)
		}
	}
	for _, c := range countries {
		if c.ISO2 != "" {
			codes = append(codes, c.ISO2)
		}
	}
	if len(codes) == 0 {
		codes = append(codes, `\b\B`) // matches nothing
	}
	return &PcodeClassifier{
		valueRe: regexp.MustCompile(`(?i)^(` + strings.Join(codes, "|") + `)\d+`),
	}
}

// HasPcode reports whether any sample carries a p-coded column. The scan
// stops at the first qualifying column.
func (c *PcodeClassifier) HasPcode(samples map[string]tabular.Table) bool {
	for _, t := range samples {
		if c.sampleHasPcode(t) {
			return true
		}
	}
	return false
}

func (c *PcodeClassifier) sampleHasPcode(t tabular.Table) bool {
	for ci, col := range t.Columns {
		if ci < len(t.Kinds) && t.Kinds[ci] != tabular.KindText {
			continue
		}
		if !headerMatches(col, pcodeHeaderRe) {
			continue
		}
		if columnPasses(t, ci, c.valueRe.MatchString) {
			return true
		}
	}
	return false
}

// headerMatches tests each constituent part of a merged column label.
func headerMatches(label string, re *regexp.Regexp) bool {
	for _, part := range strings.Split(label, tabular.HeaderSep) {
		if re.MatchString(part) {
			return true
		}
	}
	return false
}

// columnPasses drops missing values and applies the mismatch tolerance to
// the remainder: at least one match, at most maxMismatches misses.
func columnPasses(t tabular.Table, ci int, match func(string) bool) bool {
	var total, matches int
	for _, row := range t.Rows {
		if ci >= len(row) || row[ci] == "" {
			continue
		}
		total++
		if match(row[ci]) {
			matches++
		}
	}
	return matches > 0 && total-matches <= maxMismatches
}
