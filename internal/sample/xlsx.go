package sample

import (
	"github.com/tealeg/xlsx/v2"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

// loadSpreadsheet reads every sheet of every candidate workbook, one sample
// per non-empty sheet. A failed workbook is recorded and skipped.
func (l *Loader) loadSpreadsheet(paths []string, _ string) (map[string]tabular.Table, error) {
	samples := make(map[string]tabular.Table)
	var lastErr error

	for _, p := range paths {
		f, err := xlsx.OpenFile(p)
		if err != nil {
			lastErr = readErr(p)
			continue
		}
		for _, sheet := range f.Sheets {
			t, ok := sheetTable(sheet, l.cap())
			if !ok {
				continue
			}
			samples[newKey()] = tabular.Normalize(t, tabular.FamilySpreadsheet)
		}
	}

	return samples, lastErr
}

// sheetTable converts one worksheet into a raw table, returning false for
// sheets that load empty.
func sheetTable(sheet *xlsx.Sheet, maxRows int) (tabular.Table, bool) {
	if len(sheet.Rows) < 2 {
		return tabular.Table{}, false
	}

	header := rowStrings(sheet.Rows[0])
	ncols := len(header)

	end := len(sheet.Rows)
	if end > maxRows+1 {
		end = maxRows + 1
	}
	rows := make([][]string, 0, end-1)
	for _, r := range sheet.Rows[1:end] {
		cells := rowStrings(r)
		if len(cells) > ncols {
			ncols = len(cells)
		}
		rows = append(rows, cells)
	}

	return rawTable(header, rows, ncols), true
}

func rowStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = c.String()
	}
	return cells
}

// rawTable assembles a table from a header row and data rows, padding
// ragged rows, filling blank header cells with positional placeholders,
// and inferring column kinds from the data.
func rawTable(header []string, rows [][]string, ncols int) tabular.Table {
	cols := make([]string, ncols)
	for i := 0; i < ncols; i++ {
		if i < len(header) && header[i] != "" {
			cols[i] = header[i]
		} else {
			cols[i] = tabular.Placeholder(i)
		}
	}
	for r, row := range rows {
		if len(row) < ncols {
			padded := make([]string, ncols)
			copy(padded, row)
			rows[r] = padded
		}
	}
	return tabular.Table{
		Columns: tabular.DedupeLabels(cols),
		Kinds:   tabular.InferKinds(rows, ncols),
		Rows:    rows,
	}
}
