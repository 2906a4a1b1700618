package sample

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite" // geopackages are sqlite databases

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

// loadContainer reads multi-layer geo containers. Candidates are
// pseudo-paths of the form container-path + layer-name. The replace
// policy of loadVector applies here too.
func (l *Loader) loadContainer(paths []string, ext string) (map[string]tabular.Table, error) {
	samples := make(map[string]tabular.Table)
	var lastErr error

	for _, p := range paths {
		t, err := l.readLayer(p, ext)
		if err != nil {
			lastErr = readErr(p)
			continue
		}
		if !l.AccumulateGeo {
			samples = make(map[string]tabular.Table)
		}
		samples[newKey()] = t
	}

	return samples, lastErr
}

func (l *Loader) readLayer(pseudoPath, ext string) (tabular.Table, error) {
	// Esri geodatabases have no pure-Go reader; the error verdict is the
	// supported outcome for them.
	if ext != "gpkg" {
		return tabular.Table{}, eris.New("geodatabase layers are not readable")
	}

	container := filepath.Dir(pseudoPath)
	layer := filepath.Base(pseudoPath)
	if !strings.HasSuffix(strings.ToLower(container), ".gpkg") {
		return tabular.Table{}, eris.New("candidate is not a geopackage layer path")
	}

	return readGPKGLayer(container, layer, l.cap())
}

func readGPKGLayer(container, layer string, maxRows int) (tabular.Table, error) {
	db, err := sql.Open("sqlite", container)
	if err != nil {
		return tabular.Table{}, err
	}
	defer db.Close() //nolint:errcheck

	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM %q LIMIT %d`, layer, maxRows))
	if err != nil {
		return tabular.Table{}, err
	}
	defer rows.Close() //nolint:errcheck

	names, err := rows.Columns()
	if err != nil {
		return tabular.Table{}, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return tabular.Table{}, err
	}

	// Geometry and blob columns carry no classifiable text.
	keep := make([]int, 0, len(names))
	cols := make([]string, 0, len(names))
	kinds := make([]tabular.Kind, 0, len(names))
	for i, name := range names {
		k, ok := sqliteKind(types[i].DatabaseTypeName())
		if !ok {
			continue
		}
		keep = append(keep, i)
		cols = append(cols, name)
		kinds = append(kinds, k)
	}

	var data [][]string
	scan := make([]any, len(names))
	for i := range scan {
		scan[i] = new(any)
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return tabular.Table{}, err
		}
		row := make([]string, len(keep))
		for j, i := range keep {
			row[j] = stringifyValue(*scan[i].(*any))
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return tabular.Table{}, err
	}

	return tabular.Table{
		Columns: tabular.DedupeLabels(cols),
		Kinds:   kinds,
		Rows:    data,
	}, nil
}

func sqliteKind(declType string) (tabular.Kind, bool) {
	t := strings.ToUpper(declType)
	switch {
	case t == "" || strings.Contains(t, "BLOB"):
		return tabular.KindText, false
	case isGeometryType(t):
		return tabular.KindText, false
	case strings.Contains(t, "INT"), strings.Contains(t, "REAL"),
		strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"),
		strings.Contains(t, "NUMERIC"):
		return tabular.KindNumeric, true
	case strings.Contains(t, "BOOL"):
		return tabular.KindBool, true
	default:
		return tabular.KindText, true
	}
}

func isGeometryType(t string) bool {
	switch t {
	case "GEOMETRY", "POINT", "LINESTRING", "POLYGON",
		"MULTIPOINT", "MULTILINESTRING", "MULTIPOLYGON", "GEOMETRYCOLLECTION":
		return true
	}
	return false
}

func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
