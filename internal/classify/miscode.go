package classify

import (
	"strings"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

// HasMiscodes reports whether any sample carries a p-code-headed column
// whose values are known mis-formatted codes for the dataset's countries.
// Membership is exact but case-insensitive, under the usual tolerance.
func HasMiscodes(samples map[string]tabular.Table, miscodes []string) bool {
	if len(miscodes) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(miscodes))
	for _, m := range miscodes {
		set[strings.ToUpper(m)] = struct{}{}
	}
	match := func(v string) bool {
		_, ok := set[strings.ToUpper(v)]
		return ok
	}

	for _, t := range samples {
		for ci, col := range t.Columns {
			if ci < len(t.Kinds) && t.Kinds[ci] != tabular.KindText {
				continue
			}
			if !headerMatches(col, pcodeHeaderRe) {
				continue
			}
			if columnPasses(t, ci, match) {
				return true
			}
		}
	}
	return false
}
