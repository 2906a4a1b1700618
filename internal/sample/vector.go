package sample

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

// loadVector reads point/polygon feature files. Each successful candidate
// REPLACES the sample set unless AccumulateGeo is set, so by default only
// the most recently read candidate survives for classification.
func (l *Loader) loadVector(paths []string, ext string) (map[string]tabular.Table, error) {
	samples := make(map[string]tabular.Table)
	var lastErr error

	for _, p := range paths {
		t, err := l.readVector(p, ext)
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

func (l *Loader) readVector(path, ext string) (tabular.Table, error) {
	switch ext {
	case "shp":
		return readSHP(path, l.cap())
	case "geojson":
		return readGeoJSON(path, l.cap())
	case "topojson":
		return readTopoJSON(path, l.cap())
	default: // json: GeoJSON first, generic object arrays as fallback
		return readJSON(path, l.cap())
	}
}

// dbase field type bytes: N and F are numeric, L is logical.
func shpKind(fieldType byte) tabular.Kind {
	switch fieldType {
	case 'N', 'F':
		return tabular.KindNumeric
	case 'L':
		return tabular.KindBool
	default:
		return tabular.KindText
	}
}

func readSHP(path string, maxRows int) (tabular.Table, error) {
	r, err := shp.Open(path)
	if err != nil {
		return tabular.Table{}, err
	}
	defer func() { _ = r.Close() }()

	fields := r.Fields()
	cols := make([]string, len(fields))
	kinds := make([]tabular.Kind, len(fields))
	for i, f := range fields {
		cols[i] = strings.TrimRight(f.String(), "\x00")
		kinds[i] = shpKind(f.Fieldtype)
	}

	var rows [][]string
	for r.Next() && len(rows) < maxRows {
		row := make([]string, len(fields))
		for i := range fields {
			row[i] = strings.TrimSpace(strings.TrimRight(r.Attribute(i), "\x00"))
		}
		rows = append(rows, row)
	}

	return tabular.Table{
		Columns: tabular.DedupeLabels(cols),
		Kinds:   kinds,
		Rows:    rows,
	}, nil
}

func readGeoJSON(path string, maxRows int) (tabular.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return tabular.Table{}, err
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(b, &fc); err != nil {
		return tabular.Table{}, err
	}

	props := make([]map[string]any, 0, len(fc.Features))
	for _, f := range fc.Features {
		if len(props) >= maxRows {
			break
		}
		props = append(props, f.Properties)
	}
	return propertiesTable(props), nil
}

func readJSON(path string, maxRows int) (tabular.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return tabular.Table{}, err
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(b, &fc); err == nil && len(fc.Features) > 0 {
		props := make([]map[string]any, 0, len(fc.Features))
		for _, f := range fc.Features {
			if len(props) >= maxRows {
				break
			}
			props = append(props, f.Properties)
		}
		return propertiesTable(props), nil
	}

	var records []map[string]any
	if err := json.Unmarshal(b, &records); err != nil {
		return tabular.Table{}, err
	}
	if len(records) > maxRows {
		records = records[:maxRows]
	}
	return propertiesTable(records), nil
}

var errNotTopology = eris.New("not a topojson topology")

// topology is the minimal TopoJSON shape the sampler cares about: the
// first object's geometries and their properties.
type topology struct {
	Type    string `json:"type"`
	Objects map[string]struct {
		Geometries []struct {
			Properties map[string]any `json:"properties"`
		} `json:"geometries"`
	} `json:"objects"`
}

func readTopoJSON(path string, maxRows int) (tabular.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return tabular.Table{}, err
	}

	var topo topology
	if err := json.Unmarshal(b, &topo); err != nil {
		return tabular.Table{}, err
	}
	if !strings.EqualFold(topo.Type, "Topology") || len(topo.Objects) == 0 {
		return tabular.Table{}, errNotTopology
	}

	names := make([]string, 0, len(topo.Objects))
	for name := range topo.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	var props []map[string]any
	for _, g := range topo.Objects[names[0]].Geometries {
		if len(props) >= maxRows {
			break
		}
		props = append(props, g.Properties)
	}
	return propertiesTable(props), nil
}

// propertiesTable flattens feature property maps into a typed table. The
// column set is the union of keys across sampled features, sorted for
// determinism.
func propertiesTable(props []map[string]any) tabular.Table {
	keySet := make(map[string]struct{})
	for _, p := range props {
		for k := range p {
			keySet[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(keySet))
	for k := range keySet {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	kinds := make([]tabular.Kind, len(cols))
	rows := make([][]string, len(props))
	for c, col := range cols {
		kinds[c] = propertyKind(props, col)
	}
	for r, p := range props {
		row := make([]string, len(cols))
		for c, col := range cols {
			row[c] = stringifyProperty(p[col])
		}
		rows[r] = row
	}

	return tabular.Table{Columns: cols, Kinds: kinds, Rows: rows}
}

func propertyKind(props []map[string]any, col string) tabular.Kind {
	var seen int
	numeric, boolean := true, true
	for _, p := range props {
		v, ok := p[col]
		if !ok || v == nil {
			continue
		}
		seen++
		switch v.(type) {
		case float64, json.Number:
			boolean = false
		case bool:
			numeric = false
		default:
			return tabular.KindText
		}
	}
	if seen == 0 {
		return tabular.KindText
	}
	if numeric {
		return tabular.KindNumeric
	}
	if boolean {
		return tabular.KindBool
	}
	return tabular.KindText
}

func stringifyProperty(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
