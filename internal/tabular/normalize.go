package tabular

import (
	"regexp"
	"strings"
)

// HeaderSep joins the constituent parts of a merged column label.
const HeaderSep = "||"

// hxlScanLimit bounds how deep into the data the tag-row scan looks.
const hxlScanLimit = 10

var (
	placeholderRe = regexp.MustCompile(`^Unnamed.*`)
	hxlTagRe      = regexp.MustCompile(`^#.*`)
)

// Normalize cleans a raw sample so every column carries a unique,
// meaningful label and only true data rows remain. Spreadsheet and
// delimited samples run the full heuristic; vector and container reads
// arrive with typed schemas and are returned untouched by the loader.
//
// The steps, in order: prune empty rows and columns; promote row 0 to the
// header when every label is a placeholder; stop early when the read
// already produced typed columns or a single row; merge a detected HXL tag
// row into the header; otherwise fold a multi-row composite header for
// non-delimited formats.
func Normalize(t Table, family Family) Table {
	t = dropEmptyRows(t)
	t = dropEmptyColumns(t)

	if allPlaceholders(t.Columns) && len(t.Rows) > 0 {
		for c := range t.Columns {
			if c < len(t.Rows[0]) && t.Rows[0][c] != "" {
				t.Columns[c] = t.Rows[0][c]
			} else {
				t.Columns[c] = Placeholder(c)
			}
		}
		t.Rows = t.Rows[1:]
	}

	// Typed columns mean the read already located the correct header.
	for _, k := range t.Kinds {
		if k != KindText {
			return t
		}
	}

	if len(t.Rows) == 1 {
		return t
	}

	if h, ok := findHXLRow(t.Rows); ok {
		t.Columns = mergeHeaders(t, h+1)
		t.Rows = t.Rows[h+1:]
		return t
	}

	// Delimited files without a tag row are assumed correctly headered.
	if family == FamilyDelimited {
		return t
	}

	// No tag row: assume a multi-row composite header.
	datarow := 3
	if len(t.Rows) < 3 {
		datarow = len(t.Rows)
	}
	t.Columns = mergeHeaders(t, datarow)
	t.Rows = t.Rows[datarow:]
	return t
}

// findHXLRow scans the first rows for one whose every cell is empty or a
// hash tag, returning its index.
func findHXLRow(rows [][]string) (int, bool) {
	for i := 0; i < hxlScanLimit && i < len(rows); i++ {
		all := true
		for _, cell := range rows[i] {
			if cell != "" && !hxlTagRe.MatchString(cell) {
				all = false
				break
			}
		}
		if all {
			return i, true
		}
	}
	return 0, false
}

// mergeHeaders builds each column's label from its placeholder-free
// existing label followed by the column's non-empty cells in rows [0, n).
func mergeHeaders(t Table, n int) []string {
	merged := make([]string, len(t.Columns))
	for c, label := range t.Columns {
		var parts []string
		if !strings.Contains(label, "Unnamed") {
			parts = append(parts, label)
		}
		for r := 0; r < n && r < len(t.Rows); r++ {
			if c < len(t.Rows[r]) && t.Rows[r][c] != "" {
				parts = append(parts, t.Rows[r][c])
			}
		}
		if len(parts) == 0 {
			parts = append(parts, label)
		}
		merged[c] = strings.Join(parts, HeaderSep)
	}
	return merged
}

func allPlaceholders(cols []string) bool {
	if len(cols) == 0 {
		return false
	}
	for _, c := range cols {
		if !placeholderRe.MatchString(c) {
			return false
		}
	}
	return true
}

func dropEmptyRows(t Table) Table {
	rows := t.Rows[:0:0]
	for _, row := range t.Rows {
		empty := true
		for _, cell := range row {
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	t.Rows = rows
	return t
}

func dropEmptyColumns(t Table) Table {
	keep := make([]int, 0, len(t.Columns))
	for c := range t.Columns {
		for _, row := range t.Rows {
			if c < len(row) && row[c] != "" {
				keep = append(keep, c)
				break
			}
		}
	}
	if len(keep) == len(t.Columns) {
		return t
	}

	cols := make([]string, len(keep))
	kinds := make([]Kind, len(keep))
	for i, c := range keep {
		cols[i] = t.Columns[c]
		if c < len(t.Kinds) {
			kinds[i] = t.Kinds[c]
		}
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		nr := make([]string, len(keep))
		for i, c := range keep {
			if c < len(row) {
				nr[i] = row[c]
			}
		}
		rows[r] = nr
	}
	return Table{Columns: cols, Kinds: kinds, Rows: rows}
}
