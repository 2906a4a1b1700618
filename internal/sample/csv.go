package sample

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

// loadDelimited reads each candidate CSV into one sample, blank lines
// skipped, capped at the row limit.
func (l *Loader) loadDelimited(paths []string, _ string) (map[string]tabular.Table, error) {
	samples := make(map[string]tabular.Table)
	var lastErr error

	for _, p := range paths {
		t, err := readCSV(p, l.cap())
		if err != nil {
			lastErr = readErr(p)
			continue
		}
		samples[newKey()] = tabular.Normalize(t, tabular.FamilyDelimited)
	}

	return samples, lastErr
}

func readCSV(path string, maxRows int) (tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return tabular.Table{}, err
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(decodeReader(f))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return tabular.Table{}, err
	}
	ncols := len(header)

	var rows [][]string
	for len(rows) < maxRows {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return tabular.Table{}, err
		}
		if len(record) > ncols {
			ncols = len(record)
		}
		rows = append(rows, record)
	}

	return rawTable(header, rows, ncols), nil
}

// decodeReader sniffs the byte stream and returns a UTF-8 reader. A BOM is
// honored when present; streams that are not valid UTF-8 fall back to
// Windows-1252 so noisy exports still sample.
func decodeReader(f io.Reader) io.Reader {
	br := bufio.NewReader(f)
	peek, _ := br.Peek(4096)

	if hasBOM(peek) || utf8.Valid(trimPartialRune(peek)) {
		return transform.NewReader(br, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	}
	return charmap.Windows1252.NewDecoder().Reader(br)
}

func hasBOM(b []byte) bool {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return true
	}
	if len(b) >= 2 && ((b[0] == 0xFE && b[1] == 0xFF) || (b[0] == 0xFF && b[1] == 0xFE)) {
		return true
	}
	return false
}

// trimPartialRune drops trailing bytes that may be a rune cut by the peek
// window so validity checking is not fooled at the boundary.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < 4 && len(b) > 0; i++ {
		r, _ := utf8.DecodeLastRune(b)
		if r != utf8.RuneError {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}
