package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textTable(cols []string, rows [][]string) Table {
	kinds := make([]Kind, len(cols))
	return Table{Columns: cols, Kinds: kinds, Rows: rows}
}

func TestNormalize_DropsEmptyRowsAndColumns(t *testing.T) {
	in := textTable(
		[]string{"a", "b", "c"},
		[][]string{
			{"1", "", "x"},
			{"", "", ""},
			{"2", "", "y"},
		},
	)

	out := Normalize(in, FamilyDelimited)
	assert.Equal(t, []string{"a", "c"}, out.Columns)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, []string{"1", "x"}, out.Rows[0])
	assert.Equal(t, []string{"2", "y"}, out.Rows[1])
}

func TestNormalize_AllPlaceholdersPromotesFirstRow(t *testing.T) {
	in := textTable(
		[]string{"Unnamed: 0", "Unnamed: 1", "Unnamed: 2"},
		[][]string{
			{"Region", "", "Code"},
			{"North", "a", "KEN001"},
			{"South", "b", "KEN002"},
		},
	)

	out := Normalize(in, FamilyDelimited)
	// Column count is preserved; the empty cell keeps its positional name.
	require.Len(t, out.Columns, 3)
	assert.Equal(t, "Region", out.Columns[0])
	assert.Equal(t, "Unnamed: 1", out.Columns[1])
	assert.Equal(t, "Code", out.Columns[2])
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "North", out.Rows[0][0])
}

func TestNormalize_TypedColumnsReturnAsIs(t *testing.T) {
	in := Table{
		Columns: []string{"name", "population"},
		Kinds:   []Kind{KindText, KindNumeric},
		Rows: [][]string{
			{"junk header?", "12"},
			{"more junk", "34"},
		},
	}

	out := Normalize(in, FamilySpreadsheet)
	assert.Equal(t, in.Columns, out.Columns)
	assert.Len(t, out.Rows, 2)
}

func TestNormalize_SingleRowReturnAsIs(t *testing.T) {
	in := textTable(
		[]string{"h1", "h2"},
		[][]string{{"only", "row"}},
	)

	out := Normalize(in, FamilySpreadsheet)
	assert.Equal(t, []string{"h1", "h2"}, out.Columns)
	assert.Len(t, out.Rows, 1)
}

func TestNormalize_HXLRowMergedIntoHeader(t *testing.T) {
	in := textTable(
		[]string{"Admin 1", "Unnamed: 1", "Population"},
		[][]string{
			{"#adm1+name", "#adm1+code", "#population"},
			{"Nairobi", "KEN001", "4397073"},
			{"Mombasa", "KEN002", "1208333"},
		},
	)

	out := Normalize(in, FamilySpreadsheet)
	require.Len(t, out.Columns, 3)
	assert.Equal(t, "Admin 1||#adm1+name", out.Columns[0])
	assert.Equal(t, "#adm1+code", out.Columns[1])
	assert.Equal(t, "Population||#population", out.Columns[2])
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "Nairobi", out.Rows[0][0])
}

func TestNormalize_HXLRowBelowHumanSubheader(t *testing.T) {
	in := textTable(
		[]string{"Admin 1", "Code"},
		[][]string{
			{"name", "pcode"},
			{"#adm1+name", "#adm1+code"},
			{"Nairobi", "KEN001"},
		},
	)

	out := Normalize(in, FamilySpreadsheet)
	assert.Equal(t, "Admin 1||name||#adm1+name", out.Columns[0])
	assert.Equal(t, "Code||pcode||#adm1+code", out.Columns[1])
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Nairobi", out.Rows[0][0])
}

func TestNormalize_DelimitedWithoutTagRowKeepsHeader(t *testing.T) {
	in := textTable(
		[]string{"name", "pcode"},
		[][]string{
			{"Nairobi", "KEN001"},
			{"Mombasa", "KEN002"},
		},
	)

	out := Normalize(in, FamilyDelimited)
	assert.Equal(t, []string{"name", "pcode"}, out.Columns)
	assert.Len(t, out.Rows, 2)
}

func TestNormalize_SpreadsheetCompositeHeader(t *testing.T) {
	in := textTable(
		[]string{"Report", "Unnamed: 1"},
		[][]string{
			{"Admin 1", "P-Code"},
			{"(official)", ""},
			{"", "2024"},
			{"Nairobi", "KEN001"},
			{"Mombasa", "KEN002"},
		},
	)

	out := Normalize(in, FamilySpreadsheet)
	assert.Equal(t, "Report||Admin 1||(official)", out.Columns[0])
	assert.Equal(t, "P-Code||2024", out.Columns[1])
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "Nairobi", out.Rows[0][0])
}

func TestNormalize_CompositeHeaderShortTable(t *testing.T) {
	in := textTable(
		[]string{"Unnamed: 0", "Unnamed: 1"},
		[][]string{
			{"Region", "Code"},
			{"North", "a"},
			{"South", "b"},
		},
	)

	// Promotion consumes row 0; the remaining two rows fall under the
	// composite-header fallback's data-start bound and get folded into
	// the labels.
	out := Normalize(in, FamilySpreadsheet)
	assert.Equal(t, []string{"Region||North||South", "Code||a||b"}, out.Columns)
	assert.Len(t, out.Rows, 0)
}

func TestNormalize_Idempotent(t *testing.T) {
	in := textTable(
		[]string{"Admin 1||#adm1+name", "Code||#adm1+code"},
		[][]string{
			{"Nairobi", "KEN001"},
			{"Mombasa", "KEN002"},
		},
	)

	once := Normalize(in, FamilyDelimited)
	twice := Normalize(once, FamilyDelimited)
	assert.Equal(t, once.Columns, twice.Columns)
	assert.Equal(t, once.Rows, twice.Rows)
}

func TestFindHXLRow_ScanBound(t *testing.T) {
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = []string{"data", "data"}
	}
	rows[11] = []string{"#adm1", "#adm2"}

	_, ok := findHXLRow(rows)
	assert.False(t, ok, "tag rows beyond the scan bound are not detected")
}
