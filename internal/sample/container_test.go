package sample

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

// createTestGPKG builds a sqlite-backed geopackage with one feature layer
// holding the given (name, pcode) rows plus a blob geometry column.
func createTestGPKG(t *testing.T, path, layer string, rows [][2]string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	_, err = db.Exec(`CREATE TABLE gpkg_contents (table_name TEXT NOT NULL, data_type TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO gpkg_contents (table_name, data_type) VALUES (?, 'features')`, layer)
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE "` + layer + `" (fid INTEGER, geom BLOB, name TEXT, adm1_pcode TEXT)`)
	require.NoError(t, err)
	for i, r := range rows {
		_, err = db.Exec(`INSERT INTO "`+layer+`" (fid, geom, name, adm1_pcode) VALUES (?, ?, ?, ?)`,
			i+1, []byte{0x47, 0x50}, r[0], r[1])
		require.NoError(t, err)
	}
}

func TestLoadContainer_GeopackageLayer(t *testing.T) {
	dir := t.TempDir()
	gpkg := filepath.Join(dir, "admin.gpkg")
	createTestGPKG(t, gpkg, "adm1", [][2]string{
		{"Nairobi", "KEN001"},
		{"Mombasa", "KEN002"},
	})

	samples, err := NewLoader().Load([]string{filepath.Join(gpkg, "adm1")}, "gpkg")
	require.NoError(t, err)

	tab := onlySample(t, samples)
	assert.Equal(t, []string{"fid", "name", "adm1_pcode"}, tab.Columns, "blob columns are dropped")
	assert.Equal(t, []tabular.Kind{tabular.KindNumeric, tabular.KindText, tabular.KindText}, tab.Kinds)
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, []string{"1", "Nairobi", "KEN001"}, tab.Rows[0])
}

func TestLoadContainer_RowCap(t *testing.T) {
	dir := t.TempDir()
	gpkg := filepath.Join(dir, "admin.gpkg")
	createTestGPKG(t, gpkg, "adm1", [][2]string{
		{"a", "KEN001"}, {"b", "KEN002"}, {"c", "KEN003"}, {"d", "KEN004"},
	})

	l := &Loader{MaxRows: 2}
	samples, err := l.Load([]string{filepath.Join(gpkg, "adm1")}, "gpkg")
	require.NoError(t, err)

	tab := onlySample(t, samples)
	assert.Len(t, tab.Rows, 2)
}

func TestLoadContainer_MissingLayer(t *testing.T) {
	dir := t.TempDir()
	gpkg := filepath.Join(dir, "admin.gpkg")
	createTestGPKG(t, gpkg, "adm1", [][2]string{{"Nairobi", "KEN001"}})

	samples, err := NewLoader().Load([]string{filepath.Join(gpkg, "absent")}, "gpkg")
	require.Error(t, err)
	assert.Equal(t, "Unable to read resource absent", err.Error())
	assert.Empty(t, samples)
}

func TestLoadContainer_GeodatabaseUnreadable(t *testing.T) {
	samples, err := NewLoader().Load([]string{"/tmp/whatever/data.gdb"}, "gdb")
	require.Error(t, err)
	assert.Equal(t, "Unable to read resource data.gdb", err.Error())
	assert.Empty(t, samples)
}

func TestLoadContainer_ReplacePolicy(t *testing.T) {
	dir := t.TempDir()
	gpkg := filepath.Join(dir, "admin.gpkg")
	createTestGPKG(t, gpkg, "adm1", [][2]string{{"Nairobi", "KEN001"}})

	second := filepath.Join(dir, "other.gpkg")
	createTestGPKG(t, second, "adm2", [][2]string{{"Westlands", "KEN001001"}})

	paths := []string{filepath.Join(gpkg, "adm1"), filepath.Join(second, "adm2")}
	samples, err := NewLoader().Load(paths, "gpkg")
	require.NoError(t, err)

	tab := onlySample(t, samples)
	assert.Equal(t, "KEN001001", tab.Rows[0][2])
}
