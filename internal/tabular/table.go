// Package tabular holds the in-memory sample table model and the header
// normalization heuristics applied to raw samples before classification.
package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the inferred type of a column's values.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindBool
)

// Family groups file extensions into loader format families.
type Family int

const (
	FamilySpreadsheet Family = iota // xlsx, xls
	FamilyDelimited                 // csv
	FamilyVector                    // geojson, json, shp, topojson
	FamilyContainer                 // gdb, gpkg
)

var families = map[string]Family{
	"xlsx":     FamilySpreadsheet,
	"xls":      FamilySpreadsheet,
	"csv":      FamilyDelimited,
	"geojson":  FamilyVector,
	"json":     FamilyVector,
	"shp":      FamilyVector,
	"topojson": FamilyVector,
	"gdb":      FamilyContainer,
	"gpkg":     FamilyContainer,
}

// FamilyOf maps a file extension to its format family.
func FamilyOf(ext string) (Family, bool) {
	f, ok := families[strings.ToLower(ext)]
	return f, ok
}

// Table is a row-capped sample of one tabular file or layer.
// Empty cells represent missing values.
type Table struct {
	Columns []string
	Kinds   []Kind
	Rows    [][]string
}

// Placeholder returns the synthetic label for a headerless column at
// position i, following the pandas convention the audit's heuristics key on.
func Placeholder(i int) string {
	return fmt.Sprintf("Unnamed: %d", i)
}

// DedupeLabels suffixes repeated labels with ".1", ".2", ... so sibling
// columns never collide, mirroring how the upstream readers mangle
// duplicate headers.
func DedupeLabels(labels []string) []string {
	seen := make(map[string]int, len(labels))
	out := make([]string, len(labels))
	for i, l := range labels {
		n := seen[l]
		seen[l] = n + 1
		if n == 0 {
			out[i] = l
			continue
		}
		out[i] = fmt.Sprintf("%s.%d", l, n)
	}
	return out
}

// InferKinds classifies each of ncols columns from the data rows.
// A column with at least one value where every non-empty value parses as a
// number is numeric; all-boolean columns are bool; everything else is text.
func InferKinds(rows [][]string, ncols int) []Kind {
	kinds := make([]Kind, ncols)
	for c := 0; c < ncols; c++ {
		kinds[c] = inferKind(rows, c)
	}
	return kinds
}

func inferKind(rows [][]string, c int) Kind {
	var seen int
	numeric, boolean := true, true
	for _, row := range rows {
		if c >= len(row) || row[c] == "" {
			continue
		}
		seen++
		v := row[c]
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			numeric = false
		}
		switch strings.ToLower(v) {
		case "true", "false":
		default:
			boolean = false
		}
		if !numeric && !boolean {
			return KindText
		}
	}
	if seen == 0 {
		return KindText
	}
	if numeric {
		return KindNumeric
	}
	if boolean {
		return KindBool
	}
	return KindText
}
