package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

func coordTable(labels []string, rows [][]string) tabular.Table {
	return tabular.Table{
		Columns: labels,
		Kinds:   make([]tabular.Kind, len(labels)),
		Rows:    rows,
	}
}

func TestHasLatLong_BothRoles(t *testing.T) {
	samples := map[string]tabular.Table{
		"s": coordTable(
			[]string{"name", "Latitude", "Longitude"},
			[][]string{
				{"Nairobi", "-1.2921", "36.8219"},
				{"Mombasa", "-4.0435", "39.6682"},
			},
		),
	}
	assert.True(t, HasLatLong(samples))
}

func TestHasLatLong_LatOnly(t *testing.T) {
	samples := map[string]tabular.Table{
		"s": coordTable(
			[]string{"Latitude", "name"},
			[][]string{
				{"-1.2921", "Nairobi"},
				{"-4.0435", "Mombasa"},
			},
		),
	}
	assert.False(t, HasLatLong(samples))
}

func TestHasLatLong_RolesSplitAcrossSamples(t *testing.T) {
	samples := map[string]tabular.Table{
		"a": coordTable([]string{"lat"}, [][]string{{"1.5"}}),
		"b": coordTable([]string{"lon"}, [][]string{{"36.8"}}),
	}
	assert.False(t, HasLatLong(samples), "each sample must carry both roles on its own")
}

func TestHasLatLong_AxisLetterHeaders(t *testing.T) {
	samples := map[string]tabular.Table{
		"s": coordTable(
			[]string{"X", "Y"},
			[][]string{
				{"36.8219", "-1.2921"},
				{"39.6682", "-4.0435"},
			},
		),
	}
	assert.True(t, HasLatLong(samples))
}

func TestHasLatLong_HXLTags(t *testing.T) {
	samples := map[string]tabular.Table{
		"s": coordTable(
			[]string{"lat" + tabular.HeaderSep + "#geo+lat", "lon" + tabular.HeaderSep + "#geo+lon"},
			[][]string{{"12.5", "101.25"}},
		),
	}
	assert.True(t, HasLatLong(samples))
}

func TestHasLatLong_DMSValues(t *testing.T) {
	samples := map[string]tabular.Table{
		"s": coordTable(
			[]string{"latitude", "longitude"},
			[][]string{
				{`1°17'31" S`, `36°49'19" E`},
				{`4°02'37" S`, `39°40'06" E`},
			},
		),
	}
	assert.True(t, HasLatLong(samples))
}

func TestHasLatLong_WideValuesFailLatitude(t *testing.T) {
	// Three-digit degrees pass the longitude pattern but not latitude.
	samples := map[string]tabular.Table{
		"s": coordTable(
			[]string{"latitude", "longitude"},
			[][]string{
				{"123.45", "123.45"},
				{"150.01", "150.01"},
				{"101.20", "101.20"},
				{"140.75", "140.75"},
				{"170.33", "170.33"},
				{"160.90", "160.90"},
			},
		),
	}
	assert.False(t, HasLatLong(samples))
}

func TestHasLatLong_TextValuesRejected(t *testing.T) {
	samples := map[string]tabular.Table{
		"s": coordTable(
			[]string{"latitude", "longitude"},
			[][]string{
				{"north-ish", "east-ish"},
				{"somewhere", "elsewhere"},
			},
		),
	}
	assert.False(t, HasLatLong(samples))
}

func TestHasMiscodes(t *testing.T) {
	miscodes := []string{"KE-001", "KE-002", "KE-003"}
	samples := map[string]tabular.Table{
		"s": columnTable("ADM1_PCODE", []string{"ke-001", "KE-002", "KE-003"}),
	}
	assert.True(t, HasMiscodes(samples, miscodes))
}

func TestHasMiscodes_HeaderGate(t *testing.T) {
	miscodes := []string{"KE-001"}
	samples := map[string]tabular.Table{
		"s": columnTable("identifier", []string{"KE-001", "KE-001"}),
	}
	assert.False(t, HasMiscodes(samples, miscodes))
}

func TestHasMiscodes_EmptyList(t *testing.T) {
	samples := map[string]tabular.Table{
		"s": columnTable("ADM1_PCODE", []string{"KE-001"}),
	}
	assert.False(t, HasMiscodes(samples, nil))
}

func TestHasMiscodes_BeyondTolerance(t *testing.T) {
	miscodes := []string{"KE-001"}
	vals := make([]string, 12)
	for i := range vals {
		vals[i] = "unrelated"
	}
	vals[0] = "KE-001"
	samples := map[string]tabular.Table{
		"s": columnTable("ADM1_PCODE", vals),
	}
	assert.False(t, HasMiscodes(samples, miscodes))
}
