package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

var testCountries = []Country{
	{ISO2: "KE", ISO3: "KEN"},
	{ISO2: "UG", ISO3: "UGA"},
}

func columnTable(label string, values []string) tabular.Table {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	return tabular.Table{
		Columns: []string{label},
		Kinds:   []tabular.Kind{tabular.KindText},
		Rows:    rows,
	}
}

func codeValues(n, bad int) []string {
	vals := make([]string, n)
	for i := range vals {
		if i < bad {
			vals[i] = "not a code"
			continue
		}
		vals[i] = fmt.Sprintf("KEN%03d", i)
	}
	return vals
}

func TestHasPcode_CleanColumn(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	samples := map[string]tabular.Table{
		"s": columnTable("ADM1_PCODE", codeValues(20, 0)),
	}
	assert.True(t, c.HasPcode(samples))
}

func TestHasPcode_WithinTolerance(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	samples := map[string]tabular.Table{
		"s": columnTable("admin1Pcode", codeValues(20, 5)),
	}
	assert.True(t, c.HasPcode(samples))
}

func TestHasPcode_BeyondTolerance(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	samples := map[string]tabular.Table{
		"s": columnTable("ADM1_PCODE", codeValues(20, 10)),
	}
	assert.False(t, c.HasPcode(samples))
}

func TestHasPcode_HeaderGate(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	samples := map[string]tabular.Table{
		"s": columnTable("region identifier", codeValues(20, 0)),
	}
	assert.False(t, c.HasPcode(samples), "matching values behind a non-matching header do not count")
}

func TestHasPcode_HXLHeader(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	samples := map[string]tabular.Table{
		"s": columnTable("#adm1+pcode", codeValues(10, 0)),
	}
	assert.True(t, c.HasPcode(samples))
}

func TestHasPcode_MergedHeaderParts(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	label := "Admin 1" + tabular.HeaderSep + "#adm1+pcode"
	samples := map[string]tabular.Table{
		"s": columnTable(label, codeValues(10, 0)),
	}
	assert.True(t, c.HasPcode(samples))
}

func TestHasPcode_ISO2Values(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	samples := map[string]tabular.Table{
		"s": columnTable("pcode", []string{"KE001", "ke002", "KE003"}),
	}
	assert.True(t, c.HasPcode(samples))
}

func TestHasPcode_SkipsTypedColumns(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	tab := columnTable("ADM1_PCODE", []string{"1", "2", "3"})
	tab.Kinds[0] = tabular.KindNumeric
	samples := map[string]tabular.Table{"s": tab}
	assert.False(t, c.HasPcode(samples))
}

func TestHasPcode_MissingValuesIgnored(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	samples := map[string]tabular.Table{
		"s": columnTable("pcode", []string{"KEN001", "", "", "KEN002"}),
	}
	assert.True(t, c.HasPcode(samples))
}

func TestHasPcode_NoCountries(t *testing.T) {
	c := NewPcodeClassifier(nil)
	samples := map[string]tabular.Table{
		"s": columnTable("ADM1_PCODE", codeValues(10, 0)),
	}
	assert.False(t, c.HasPcode(samples))
}

func TestHasPcode_SecondSample(t *testing.T) {
	c := NewPcodeClassifier(testCountries)
	samples := map[string]tabular.Table{
		"a": columnTable("name", []string{"Nairobi", "Mombasa"}),
		"b": columnTable("ADM2_PCODE", codeValues(10, 0)),
	}
	assert.True(t, c.HasPcode(samples))
}
